package ui

import (
	"fmt"
	"strconv"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
	"github.com/Pmuzik/Ecosystem-Project/internal/telemetry"
)

// StatusLines formats a census for the HUD status block.
func StatusLines(c telemetry.Census, paused bool) []string {
	state := "running"
	if paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("Tick %d (%s)", c.Tick, state),
		fmt.Sprintf("Deer %d  Trees %d", c.Deer, c.Trees),
		fmt.Sprintf("Grass %d  Fire %d", c.Grass, c.Wildfire),
		fmt.Sprintf("Born %d  Died %d", c.Births, c.Deaths),
	}
	if c.Deer > 0 {
		lines = append(lines, fmt.Sprintf("Deer hp %.1f±%.1f age %.0f", c.DeerHealthMean, c.DeerHealthStd, c.DeerAgeMean))
	}
	return lines
}

// formatFloat picks a precision from the control step.
func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// nudgeTarget returns the value a +/- click would set, and whether it differs
// from the current one.
func nudgeTarget(ctrl core.ParameterControl, current float64, dir int) (float64, bool) {
	step := ctrl.Step
	if step <= 0 {
		if ctrl.Type == core.ParamTypeInt {
			step = 1
		} else {
			step = 0.05
		}
	}
	target := ctrl.Clamp(current + float64(dir)*step)
	if ctrl.Type == core.ParamTypeInt {
		target = float64(int(target + 0.5*sign(target)))
	}
	diff := target - current
	return target, diff > 1e-9 || diff < -1e-9
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
