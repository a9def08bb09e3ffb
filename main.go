package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func main() {
	config, err := loadConfig(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(2)
	}

	loop := initializeGame(config, os.Stderr)
	displayGameInfo(config, os.Stdout)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer stop()
		return runFrontend(ctx, config, loop, os.Stdout)
	})
	eg.Go(func() error {
		<-ctx.Done()
		loop.Stop()
		return nil
	})

	if err = eg.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap := loop.Snapshot()
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		snap.Generation, time.Since(start).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		snap.GenerationsPerSecond, snap.AveragePopulation)
}
