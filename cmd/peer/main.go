// Package main runs a minimal sync peer that logs every position update it
// receives from a viewer, over UDP and WebSocket at once.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cubeview/config"
	"cubeview/transport"
)

func main() {
	fs := flag.NewFlagSet("peer", flag.ExitOnError)
	udpAddr := fs.String("udp", "127.0.0.1:34000", "UDP listen address (empty to disable)")
	wsAddr := fs.String("ws", "127.0.0.1:34001", "WebSocket listen address (empty to disable)")
	wsPath := fs.String("path", "/sync", "WebSocket endpoint path")
	level := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	_ = fs.Parse(os.Args[1:])

	lvl, err := config.ParseLevel(*level)
	if err != nil {
		slog.Error("parse flags", "err", err)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *udpAddr, *wsAddr, *wsPath, log); err != nil {
		log.Error("peer stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, udpAddr, wsAddr, wsPath string, log *slog.Logger) error {
	if udpAddr == "" && wsAddr == "" {
		return errors.New("nothing to listen on")
	}

	handle := func(u transport.PositionUpdate, from string) {
		log.Info("cube moved", "from", from, "seq", u.Seq, "x", u.X, "y", u.Y, "z", u.Z)
	}

	g, ctx := errgroup.WithContext(ctx)

	if udpAddr != "" {
		l, err := transport.ListenUDP(udpAddr, log)
		if err != nil {
			return err
		}
		log.Info("listening", "scheme", config.SchemeUDP, "addr", l.Addr().String())
		g.Go(func() error { return l.Serve(ctx, handle) })
	}

	if wsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle(wsPath, transport.NewWebSocketHandler(handle, log))
		srv := &http.Server{Addr: wsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		log.Info("listening", "scheme", config.SchemeWS, "addr", wsAddr, "path", wsPath)
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
