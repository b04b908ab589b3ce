package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
)

const (
	formatPretty = "pretty"
	formatPlain  = "plain"
)

type renderer interface {
	header(cols ...string)
	row(cells ...any)
	render()
}

func newRenderer(format, title string, out io.Writer) (renderer, error) {
	switch format {
	case formatPretty:
		tbl := table.NewWriter()
		tbl.SetTitle(title)
		tbl.SetOutputMirror(out)
		return &prettyRenderer{tbl: tbl}, nil
	case formatPlain:
		return &plainRenderer{title: title, out: out, tbl: tablewriter.NewWriter(out)}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

type prettyRenderer struct {
	tbl table.Writer
}

func (r *prettyRenderer) header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	r.tbl.AppendHeader(row)
}

func (r *prettyRenderer) row(cells ...any) {
	r.tbl.AppendRow(table.Row(cells))
}

func (r *prettyRenderer) render() {
	r.tbl.Render()
}

type plainRenderer struct {
	title string
	out   io.Writer
	tbl   *tablewriter.Table
}

func (r *plainRenderer) header(cols ...string) {
	r.tbl.SetHeader(cols)
}

func (r *plainRenderer) row(cells ...any) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	r.tbl.Append(row)
}

func (r *plainRenderer) render() {
	fmt.Fprintln(r.out, r.title)
	r.tbl.Render()
}
