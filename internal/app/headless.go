package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
	"github.com/Pmuzik/Ecosystem-Project/internal/telemetry"
)

// ErrNoGUI is returned by builds without the ebiten tag wherever a window is
// needed.
var ErrNoGUI = errors.New("the GUI requires building with the 'ebiten' tag")

// CensusSink receives one census per completed tick.
type CensusSink func(telemetry.Census) error

// PublishFunc forwards a census to live subscribers.
type PublishFunc func(context.Context, telemetry.Census) error

// Runner drives a world without a window, recording and publishing one census
// per tick.
type Runner struct {
	World *ecosystem.World

	// Steps bounds the run; 0 runs until no organism is left or ctx ends.
	Steps int
	// TPS paces the loop; 0 runs as fast as possible.
	TPS int

	Recorder *telemetry.Recorder
	Publish  PublishFunc
	Log      *slog.Logger
}

// Run steps the world and returns the last census taken.
func (r *Runner) Run(ctx context.Context) (telemetry.Census, error) {
	log := r.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	timer := core.NewFixedStep(r.TPS)

	last := telemetry.Take(r.World)
	if err := r.emit(ctx, last); err != nil {
		return last, err
	}
	for i := 0; r.Steps == 0 || i < r.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		timer.Wait()
		if err := r.World.Step(); err != nil {
			return last, err
		}
		last = telemetry.Take(r.World)
		if err := r.emit(ctx, last); err != nil {
			return last, err
		}
		if last.Total() == 0 {
			log.Info("world empty", "tick", last.Tick)
			break
		}
	}
	log.Info("run finished",
		"tick", last.Tick,
		"deer", last.Deer,
		"trees", last.Trees,
		"grass", last.Grass,
		"wildfire", last.Wildfire,
	)
	return last, nil
}

func (r *Runner) emit(ctx context.Context, c telemetry.Census) error {
	if err := r.Recorder.Record(c); err != nil {
		return err
	}
	if r.Publish != nil {
		if err := r.Publish(ctx, c); err != nil {
			return fmt.Errorf("publishing tick %d: %w", c.Tick, err)
		}
	}
	return nil
}
