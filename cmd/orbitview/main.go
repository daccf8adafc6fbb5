//go:build cgo

package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/zeusync/orbit/internal/config"
	"github.com/zeusync/orbit/internal/core/frame"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/hostview"
	"github.com/zeusync/orbit/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML or JSON config file (defaults when empty).")
	width := flag.Int("width", 1280, "Window width.")
	height := flag.Int("height", 720, "Window height.")
	flag.Parse()

	if err := run(*configPath, *width, *height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, width, height int) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	if err := app.LogEvents(); err != nil {
		return err
	}

	var onFrame func(frame.Snapshot)
	if cfg.Stream.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Stream.Path, app.Hub)
		srv := &http.Server{Addr: cfg.Stream.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				app.Logger.Error("stream server stopped", log.Error(err))
			}
		}()
		defer func() { _ = srv.Close() }()
		onFrame = func(s frame.Snapshot) { _ = app.Hub.Broadcast(s) }
	}

	return hostview.Run(app.Loop, app.Input, hostview.Window{
		Title:   "orbit",
		Width:   width,
		Height:  height,
		TPS:     cfg.Stream.TickRate,
		Logger:  app.Logger,
		OnFrame: onFrame,
	})
}
