package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delaneyj/proxyparty/pkg/devtools"
	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
)

const addrKey = "addr"

func main() {
	cmd := &cli.Command{
		Name:  "inspect",
		Usage: "Serve the reactivity devtools API over a demo state record",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  addrKey,
				Usage: "Listen address",
				Value: "127.0.0.1:8080",
			},
		},
		Action: serve,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	hub := devtools.NewHub()
	defer hub.Close()

	loop := devtools.NewLoop(
		reactivity.WithMetrics(reactivity.NewMetrics(reactivity.WithRegistry(reg))),
		reactivity.WithObserver(hub.Broadcast),
	)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	state := reactivity.NewRecord(map[string]any{"count": 0.0, "step": 1.0})
	if err := loop.Do(ctx, func(rs *reactivity.System) {
		wireDemo(rs, state)
	}); err != nil {
		return fmt.Errorf("wire demo: %w", err)
	}

	srv := &http.Server{
		Addr:              cmd.String(addrKey),
		Handler:           devtools.NewServer(loop, hub, reg, state).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srvErr := make(chan error, 1)
	go func() {
		log.Printf("devtools listening on http://%s", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// wireDemo gives the graph something to show: a computed, a logging effect
// and a post-flush watcher over the state record.
func wireDemo(rs *reactivity.System, raw *reactivity.Record) {
	state := reactivity.Reactive(rs, raw).(*reactivity.RecordProxy)

	next := reactivity.Computed(rs, func() float64 {
		count, _ := state.Get("count").(float64)
		step, _ := state.Get("step").(float64)
		return count + step
	})

	reactivity.Effect(rs, func() error {
		log.Printf("count=%v next=%v", state.Get("count"), next.Value())
		return nil
	}, reactivity.Queued())

	reactivity.WatchProxy(rs, state, func(_, _ reactivity.Proxy, _ reactivity.OnCleanup) {
		log.Printf("state changed: keys=%v", state.Keys())
	}, reactivity.WithFlush(reactivity.FlushPost))
}
