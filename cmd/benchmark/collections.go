package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/jamiealquiza/tachymeter"
)

type workload struct {
	name string
	// setup builds the observed state and returns one timed mutation.
	setup func(rs *reactivity.System, size int) func(i int)
}

var workloads = []workload{
	{
		name: "record fan-out",
		setup: func(rs *reactivity.System, size int) func(int) {
			state := reactivity.Reactive(rs, reactivity.NewRecord(map[string]any{"n": 0})).(*reactivity.RecordProxy)
			for i := 0; i < size; i++ {
				reactivity.Effect(rs, func() error {
					state.Get("n")
					return nil
				})
			}
			return func(i int) {
				state.Set("n", i+1)
			}
		},
	},
	{
		name: "record keys",
		setup: func(rs *reactivity.System, size int) func(int) {
			state := reactivity.Reactive(rs, reactivity.NewRecord(nil)).(*reactivity.RecordProxy)
			for i := 0; i < size; i++ {
				state.Set(strconv.Itoa(i), i)
			}
			reactivity.Effect(rs, func() error {
				for _, k := range state.Keys() {
					state.Get(k)
				}
				return nil
			})
			return func(i int) {
				key := strconv.Itoa(size + i)
				state.Set(key, i)
				state.Delete(key)
			}
		},
	},
	{
		name: "list push/pop",
		setup: func(rs *reactivity.System, size int) func(int) {
			list := reactivity.Reactive(rs, reactivity.NewList()).(*reactivity.ListProxy)
			for i := 0; i < size; i++ {
				list.Push(i)
			}
			reactivity.Effect(rs, func() error {
				list.Len()
				return nil
			})
			return func(i int) {
				list.Push(i)
				list.Pop()
			}
		},
	},
	{
		name: "map set",
		setup: func(rs *reactivity.System, size int) func(int) {
			m := reactivity.Reactive(rs, reactivity.NewMap()).(*reactivity.MapProxy)
			for i := 0; i < size; i++ {
				m.Set(i, i)
			}
			reactivity.Effect(rs, func() error {
				m.Values()
				return nil
			})
			return func(i int) {
				m.Set(i%size, -i-1)
			}
		},
	},
	{
		name: "set add/delete",
		setup: func(rs *reactivity.System, size int) func(int) {
			set := reactivity.Reactive(rs, reactivity.NewSet()).(*reactivity.SetProxy)
			for i := 0; i < size; i++ {
				set.Add(i)
			}
			reactivity.Effect(rs, func() error {
				set.Size()
				return nil
			})
			return func(i int) {
				set.Add(-1)
				set.Delete(-1)
			}
		},
	},
	{
		name: "queued batch",
		setup: func(rs *reactivity.System, size int) func(int) {
			state := reactivity.Reactive(rs, reactivity.NewRecord(map[string]any{"n": 0})).(*reactivity.RecordProxy)
			for i := 0; i < size; i++ {
				reactivity.Effect(rs, func() error {
					state.Get("n")
					return nil
				}, reactivity.Queued())
			}
			return func(i int) {
				rs.Batch(func() {
					state.Set("n", -i-1)
					state.Set("n", i+1)
				})
			}
		},
	},
}

func runCollections(ctx context.Context, cfg *benchConfig, format string) error {
	tbl, err := newRenderer(format, "collections", os.Stdout)
	if err != nil {
		return err
	}
	tbl.header(timingColumns...)

	for _, wl := range workloads {
		for _, size := range cfg.Sizes {
			if size <= 0 {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rs := reactivity.New(reactivity.WithErrorHandler(func(d *reactivity.Diagnostic) {
				log.Panic(d)
			}))
			mutate := wl.setup(rs, size)

			tach := tachymeter.New(&tachymeter.Config{Size: cfg.Iterations})
			for i := 0; i < cfg.Iterations; i++ {
				start := time.Now()
				mutate(i)
				tach.AddTime(time.Since(start))
			}
			rs.Dispose()

			appendTimings(tbl, fmt.Sprintf("%s: %d", wl.name, size), tach.Calc())
		}
	}

	tbl.render()
	return nil
}
