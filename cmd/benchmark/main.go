package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v3"
)

const (
	itersKey      = "iters"
	configKey     = "config"
	formatKey     = "format"
	cpuProfileKey = "cpuprofile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Benchmark the proxyparty reactivity engine",
		Commands: []*cli.Command{
			{
				Name:   "propagate",
				Usage:  "Propagate a ref through w chains of h computeds",
				Flags:  commonFlags(),
				Action: withProfile(runPropagate),
			},
			{
				Name:   "collections",
				Usage:  "Mutate observed records, lists, sets and maps",
				Flags:  commonFlags(),
				Action: withProfile(runCollections),
			},
			{
				Name:   "graph",
				Usage:  "Run the layered dependency graph workloads",
				Flags:  commonFlags(),
				Action: withProfile(runGraph),
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.UintFlag{
			Name:  itersKey,
			Usage: "Timed iterations per case, overrides the config file",
		},
		&cli.StringFlag{
			Name:  configKey,
			Usage: "YAML file describing the benchmark matrix",
		},
		&cli.StringFlag{
			Name:  formatKey,
			Usage: "Table format: pretty or plain",
			Value: formatPretty,
		},
		&cli.StringFlag{
			Name:  cpuProfileKey,
			Usage: "Write a CPU profile to this file",
		},
	}
}

type runFunc func(ctx context.Context, cfg *benchConfig, format string) error

func withProfile(run runFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd.String(configKey))
		if err != nil {
			return err
		}
		if iters := cmd.Uint(itersKey); iters > 0 {
			cfg.Iterations = int(iters)
		}

		if path := cmd.String(cpuProfileKey); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create profile: %w", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("start profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return run(ctx, cfg, cmd.String(formatKey))
	}
}
