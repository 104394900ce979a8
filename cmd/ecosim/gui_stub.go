//go:build !ebiten

package main

import (
	"context"
	"log/slog"

	"github.com/Pmuzik/Ecosystem-Project/internal/app"
	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
	"github.com/Pmuzik/Ecosystem-Project/internal/telemetry"
)

func runGUI(context.Context, *app.Config, *ecosystem.World, *telemetry.Recorder, app.PublishFunc, *slog.Logger) error {
	return app.ErrNoGUI
}
