package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
)

var timingColumns = []string{"benchmark", "avg", "min", "p75", "p99", "max", "ops/s"}

type intCell interface {
	Value() int
}

func runPropagate(ctx context.Context, cfg *benchConfig, format string) error {
	tbl, err := newRenderer(format, "propagate", os.Stdout)
	if err != nil {
		return err
	}
	tbl.header(timingColumns...)

	for _, w := range cfg.Widths {
		for _, h := range cfg.Heights {
			if err := ctx.Err(); err != nil {
				return err
			}
			tach := tachymeter.New(&tachymeter.Config{Size: cfg.Iterations})

			rs := reactivity.New(reactivity.WithErrorHandler(func(d *reactivity.Diagnostic) {
				log.Panic(d)
			}))
			src := reactivity.NewRef(rs, 1)
			for i := 0; i < w; i++ {
				var last intCell = src
				for j := 0; j < h; j++ {
					prev := last
					last = reactivity.Computed(rs, func() int {
						return prev.Value() + 1
					})
				}

				reactivity.Effect(rs, func() error {
					last.Value()
					return nil
				})
			}

			for i := 0; i < cfg.Iterations; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}
			rs.Dispose()

			appendTimings(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach.Calc())
		}
	}

	tbl.render()
	return nil
}

func appendTimings(tbl renderer, name string, calc *tachymeter.Metrics) {
	rate := int64(0)
	if calc.Time.Avg > 0 {
		rate = int64(time.Second / calc.Time.Avg)
	}
	tbl.row(
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
		humanize.Comma(rate),
	)
}
