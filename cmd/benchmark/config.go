package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type graphCase struct {
	Name           string  `yaml:"name"`
	Width          int     `yaml:"width"`
	TotalLayers    int     `yaml:"totalLayers"`
	StaticFraction float64 `yaml:"staticFraction"`
	NSources       int     `yaml:"nSources"`
	ReadFraction   float64 `yaml:"readFraction"`
	Iterations     int     `yaml:"iterations"`
}

type benchConfig struct {
	Iterations int         `yaml:"iterations"`
	Widths     []int       `yaml:"widths"`
	Heights    []int       `yaml:"heights"`
	Sizes      []int       `yaml:"sizes"`
	Repeats    int         `yaml:"repeats"`
	Graph      []graphCase `yaml:"graph"`
}

func defaultConfig() *benchConfig {
	return &benchConfig{
		Iterations: 100,
		Widths:     []int{1, 10, 100},
		Heights:    []int{1, 10, 100},
		Sizes:      []int{10, 100, 1_000},
		Repeats:    5,
		Graph: []graphCase{
			{Name: "simple component", Width: 10, TotalLayers: 5, StaticFraction: 1, NSources: 2, ReadFraction: 0.2, Iterations: 60_000},
			{Name: "dynamic component", Width: 10, TotalLayers: 10, StaticFraction: 0.75, NSources: 6, ReadFraction: 0.2, Iterations: 1_500},
			{Name: "large web app", Width: 1_000, TotalLayers: 12, StaticFraction: 0.95, NSources: 4, ReadFraction: 1, Iterations: 70},
			{Name: "wide dense", Width: 1_000, TotalLayers: 5, StaticFraction: 1, NSources: 25, ReadFraction: 1, Iterations: 30},
			{Name: "deep", Width: 5, TotalLayers: 500, StaticFraction: 1, NSources: 3, ReadFraction: 1, Iterations: 50},
			{Name: "very dynamic", Width: 100, TotalLayers: 15, StaticFraction: 0.5, NSources: 6, ReadFraction: 1, Iterations: 200},
		},
	}
}

// loadConfig overlays the YAML file at path, if any, on the defaults.
func loadConfig(path string) (*benchConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("parse config %s: iterations must be positive", path)
	}
	return cfg, nil
}
