package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pmuzik/Ecosystem-Project/internal/app"
	"github.com/Pmuzik/Ecosystem-Project/internal/core"
	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
	"github.com/Pmuzik/Ecosystem-Project/internal/stream"
	"github.com/Pmuzik/Ecosystem-Project/internal/telemetry"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg, log); err != nil {
		if errors.Is(err, app.ErrNoGUI) {
			fmt.Fprintln(os.Stderr, "The GUI build requires the ebiten build tag.")
			fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/ecosim` or pass -headless.")
			os.Exit(2)
		}
		log.Error("ecosim failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, log *slog.Logger) error {
	simCfg, err := ecosystem.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if _, ok := core.Sims()[cfg.Sim]; !ok {
		return fmt.Errorf("unknown sim %q (available: %v)", cfg.Sim, core.Names())
	}
	world, err := ecosystem.NewPreset(cfg.Sim, simCfg)
	if err != nil {
		return err
	}
	world.SetLogger(log)
	world.Reset(cfg.Seed)

	rec, err := telemetry.NewRecorder(cfg.OutputDir)
	if err != nil {
		return err
	}
	defer rec.Close()
	if err := rec.WriteConfig(world.Config()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publish app.PublishFunc
	if cfg.Listen != "" {
		hub := stream.NewHub(log)
		defer hub.Close()
		srv := serveStream(cfg.Listen, hub, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		publish = hub.Publish
	}

	if !cfg.Headless {
		return runGUI(ctx, cfg, world, rec, publish, log)
	}
	r := &app.Runner{
		World:    world,
		Steps:    cfg.Steps,
		TPS:      cfg.TPS,
		Recorder: rec,
		Publish:  publish,
		Log:      log,
	}
	if _, err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveStream(addr string, hub *stream.Hub, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/census", hub.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("census stream listening", "addr", addr, "path", "/census")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("census stream stopped", "err", err)
		}
	}()
	return srv
}
