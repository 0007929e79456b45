package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"cubeview/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "cubeview:", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}

	if cfg.Headless {
		err = app.RunHeadless(ctx)
	} else {
		err = app.RunWindow()
	}
	if cerr := app.Close(); cerr != nil {
		log.Warn("closing transport", "err", cerr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("viewer stopped", "err", err)
		os.Exit(1)
	}
}
