package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 7\nwidths: [2]\ngraph:\n  - name: tiny\n    width: 2\n    totalLayers: 3\n    nSources: 1\n    staticFraction: 1\n    readFraction: 1\n    iterations: 3\n"), 0o644))

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Iterations)
	assert.Equal(t, []int{2}, cfg.Widths)
	assert.Equal(t, defaultConfig().Heights, cfg.Heights)
	require.Len(t, cfg.Graph, 1)
	assert.Equal(t, "tiny", cfg.Graph[0].Name)

	require.NoError(t, os.WriteFile(path, []byte("iterations: 0\n"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRenderers(t *testing.T) {
	_, err := newRenderer("html", "x", &bytes.Buffer{})
	assert.Error(t, err)

	for _, format := range []string{formatPretty, formatPlain} {
		var buf bytes.Buffer
		tbl, err := newRenderer(format, "title", &buf)
		require.NoError(t, err)
		tbl.header("a", "b")
		tbl.row("x", 1)
		tbl.render()
		assert.Contains(t, buf.String(), "title")
		assert.Contains(t, buf.String(), "x")
	}
}

func TestGraphWorkload(t *testing.T) {
	gc := graphCase{Name: "tiny", Width: 3, TotalLayers: 3, StaticFraction: 0.5, NSources: 2, ReadFraction: 1, Iterations: 10}
	counter := new(int64)
	graph := makeGraph(gc, counter)
	defer graph.rs.Dispose()

	first := runGraphOnce(graph, gc.Iterations, gc.ReadFraction)
	assert.Positive(t, *counter)
	assert.Equal(t, first, runGraphOnce(graph, gc.Iterations, gc.ReadFraction))
}

func TestCollectionsWorkloads(t *testing.T) {
	cfg := defaultConfig()
	cfg.Iterations = 3
	cfg.Sizes = []int{2}
	assert.NoError(t, runCollections(context.Background(), cfg, formatPlain))
}
