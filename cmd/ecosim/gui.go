//go:build ebiten

package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Pmuzik/Ecosystem-Project/internal/app"
	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
	"github.com/Pmuzik/Ecosystem-Project/internal/telemetry"
)

func runGUI(ctx context.Context, cfg *app.Config, world *ecosystem.World, rec *telemetry.Recorder, publish app.PublishFunc, log *slog.Logger) error {
	game := app.New(world, cfg.Scale, cfg.HUDWidth, cfg.Seed)
	game.SetLogger(log)
	game.SetCensusSink(func(c telemetry.Census) error {
		if err := rec.Record(c); err != nil {
			return err
		}
		if publish != nil {
			return publish(ctx, c)
		}
		return nil
	})

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("ecosim — " + world.Name())
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
