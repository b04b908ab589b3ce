package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/dustin/go-humanize"
)

type graphResult struct {
	sum      int
	count    int64
	duration time.Duration
}

type benchmarkGraph struct {
	rs      *reactivity.System
	sources []*reactivity.Ref[int]
	layers  [][]intCell
}

func runGraph(ctx context.Context, cfg *benchConfig, format string) error {
	tbl, err := newRenderer(format, "graph", os.Stdout)
	if err != nil {
		return err
	}
	tbl.header("size", "nSources", "read%", "static%", "nTimes", "test", "time", "updateRate", "title")

	for _, gc := range cfg.Graph {
		if err := ctx.Err(); err != nil {
			return err
		}
		if gc.Width <= 0 || gc.TotalLayers < 2 || gc.NSources <= 0 {
			return fmt.Errorf("graph case %q: width, nSources and totalLayers >= 2 are required", gc.Name)
		}
		log.Printf("Running '%s' config", gc.Name)

		counter := new(int64)
		graph := makeGraph(gc, counter)

		iterations := gc.Iterations
		if cfg.Iterations > 0 && iterations <= 0 {
			iterations = cfg.Iterations
		}
		runOnce := func() int {
			return runGraphOnce(graph, iterations, gc.ReadFraction)
		}
		runOnce()

		best := graphResult{duration: time.Hour}
		for i := 0; i < max(cfg.Repeats, 1); i++ {
			*counter = 0
			start := time.Now()
			sum := runOnce()
			duration := time.Since(start)
			if duration < best.duration {
				best = graphResult{sum: sum, count: *counter, duration: duration}
			}
		}
		graph.rs.Dispose()

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		tbl.row(
			fmt.Sprintf("%dx%d", gc.Width, gc.TotalLayers),
			gc.NSources,
			gc.ReadFraction,
			gc.StaticFraction,
			humanize.Comma(int64(iterations)),
			gc.Name,
			best.duration,
			humanize.Comma(int64(updateRate)),
			graphTitle(gc),
		)
	}

	tbl.render()
	return nil
}

func graphTitle(gc graphCase) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d %d sources", gc.Width, gc.TotalLayers, gc.NSources)
	if gc.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if gc.ReadFraction < 1 {
		fmt.Fprintf(&sb, " read %0.2f%%", 100*gc.ReadFraction)
	}
	return sb.String()
}

func makeGraph(gc graphCase, counter *int64) *benchmarkGraph {
	rs := reactivity.New(reactivity.WithErrorHandler(func(d *reactivity.Diagnostic) {
		log.Panic(d)
	}))
	sources := make([]*reactivity.Ref[int], gc.Width)
	prevRow := make([]intCell, gc.Width)
	for i := range sources {
		sources[i] = reactivity.NewRef(rs, i)
		prevRow[i] = sources[i]
	}

	random := rand.New(rand.NewSource(0))
	layers := make([][]intCell, gc.TotalLayers-1)
	for l := range layers {
		layers[l] = makeRow(rs, prevRow, gc, counter, random)
		prevRow = layers[l]
	}
	return &benchmarkGraph{rs: rs, sources: sources, layers: layers}
}

func makeRow(rs *reactivity.System, sources []intCell, gc graphCase, counter *int64, random *rand.Rand) []intCell {
	row := make([]intCell, len(sources))
	for myDex := range sources {
		mySources := make([]intCell, 0, gc.NSources)
		for sourceDex := 0; sourceDex < gc.NSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		if random.Float64() < gc.StaticFraction {
			row[myDex] = reactivity.Computed(rs, func() int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source.Value()
				}
				return sum
			})
			continue
		}

		// Dynamic nodes skip one source depending on the parity of the first.
		first, tail := mySources[0], mySources[1:]
		row[myDex] = reactivity.Computed(rs, func() int {
			*counter++
			sum := first.Value()
			if len(tail) == 0 {
				return sum
			}
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i, source := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += source.Value()
			}
			return sum
		})
	}
	return row
}

// runGraphOnce writes one source per iteration and reads a fixed subset of
// the leaves, returning the sum of the leaves read.
func runGraphOnce(graph *benchmarkGraph, iterations int, readFraction float64) int {
	random := rand.New(rand.NewSource(0))
	leaves := graph.layers[len(graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < iterations; i++ {
		sourceDex := i % len(graph.sources)
		graph.sources[sourceDex].SetValue(i + sourceDex)

		for _, leaf := range readLeaves {
			leaf.Value()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount && len(out) > 0; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
