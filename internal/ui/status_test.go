package ui

import (
	"strings"
	"testing"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
	"github.com/Pmuzik/Ecosystem-Project/internal/telemetry"
)

func TestStatusLines(t *testing.T) {
	lines := StatusLines(telemetry.Census{Tick: 12, Deer: 3, Grass: 40, Births: 2, DeerHealthMean: 5.5}, true)
	if !strings.Contains(lines[0], "Tick 12") || !strings.Contains(lines[0], "paused") {
		t.Fatalf("first line = %q", lines[0])
	}
	if len(lines) != 5 || !strings.Contains(lines[4], "5.5") {
		t.Fatalf("lines = %q", lines)
	}

	noDeer := StatusLines(telemetry.Census{Tick: 1}, false)
	if len(noDeer) != 4 || !strings.Contains(noDeer[0], "running") {
		t.Fatalf("lines without deer = %q", noDeer)
	}
}

func TestNudgeTarget(t *testing.T) {
	prob := core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true}
	tests := []struct {
		name    string
		ctrl    core.ParameterControl
		current float64
		dir     int
		want    float64
		changed bool
	}{
		{"float up", prob, 0.5, 1, 0.51, true},
		{"float clamped at max", prob, 1, 1, 1, false},
		{"float clamped at min", prob, 0.005, -1, 0, true},
		{"int down", core.ParameterControl{Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true}, 3, -1, 2, true},
		{"int at min", core.ParameterControl{Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true}, 1, -1, 1, false},
		{"int default step", core.ParameterControl{Type: core.ParamTypeInt}, 4, 1, 5, true},
	}
	for _, tt := range tests {
		got, changed := nudgeTarget(tt.ctrl, tt.current, tt.dir)
		if changed != tt.changed || got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("%s: nudgeTarget = %v, %v; want %v, %v", tt.name, got, changed, tt.want, tt.changed)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	if got := formatFloat(core.ParameterControl{Step: 0.01}, 0.125); got != "0.13" && got != "0.12" {
		t.Fatalf("formatFloat = %q", got)
	}
	if got := formatFloat(core.ParameterControl{Step: 0.5}, 2); got != "2.0" {
		t.Fatalf("formatFloat = %q", got)
	}
}

func TestLegendEntriesCoverEveryKind(t *testing.T) {
	entries := LegendEntries()
	if len(entries) != 4 {
		t.Fatalf("entries = %v", entries)
	}
	seen := map[int]bool{}
	for _, e := range entries {
		if e.Index == 0 || seen[e.Index] {
			t.Fatalf("legend index %d reused or empty: %v", e.Index, entries)
		}
		seen[e.Index] = true
	}
	if entries[0].Label != "deer" {
		t.Fatalf("first entry = %+v", entries[0])
	}
}
