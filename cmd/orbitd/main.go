package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/orbit/internal/config"
	"github.com/zeusync/orbit/internal/core/frame"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML or JSON config file (defaults when empty).")
	addr := flag.String("addr", "", "Override stream.addr.")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Stream.Addr = addr
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	if err := app.LogEvents(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Loop.Run(ctx, cfg.Stream.TickInterval(), func(s frame.Snapshot) {
			if !cfg.Stream.Enabled {
				return
			}
			if err := app.Hub.Broadcast(s); err != nil {
				app.Logger.Debug("broadcast skipped", log.Error(err))
			}
		})
	})

	if cfg.Stream.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Stream.Path, app.Hub)
		srv := &http.Server{
			Addr:              cfg.Stream.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			app.Logger.Info("stream listening", log.String("addr", cfg.Stream.Addr), log.String("path", cfg.Stream.Path))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = app.Hub.Close()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		app.Logger.Info("shutting down")
		return nil
	}
	return err
}
