package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
)

func grazingWorld(t *testing.T) *ecosystem.World {
	t.Helper()
	cfg := ecosystem.DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Population = ecosystem.PopulationParams{}
	cfg.Tree.IgnitionProbability = 0
	cfg.Grass.IgnitionProbability = 0
	w := ecosystem.NewWithConfig(cfg)
	w.Reset(1)

	for _, s := range []struct {
		kind ecosystem.Kind
		loc  ecosystem.Location
	}{
		{ecosystem.KindDeer, ecosystem.Loc(0, 0)},
		{ecosystem.KindGrass, ecosystem.Loc(0, 1)},
		{ecosystem.KindDeer, ecosystem.Loc(4, 4)},
	} {
		if _, err := w.Spawn(s.kind, s.loc); err != nil {
			t.Fatalf("spawn %v: %v", s.kind, err)
		}
	}
	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	return w
}

func TestTakeCountsPopulationAndCauses(t *testing.T) {
	c := Take(grazingWorld(t))

	if c.Tick != 1 {
		t.Fatalf("tick = %d, want 1", c.Tick)
	}
	if c.Deer != 2 || c.Grass != 0 || c.Total() != 2 {
		t.Fatalf("population = %+v", c)
	}
	if c.Deaths != 1 || c.Eaten != 1 || c.Births != 0 {
		t.Fatalf("deaths=%d eaten=%d births=%d", c.Deaths, c.Eaten, c.Births)
	}
	if c.Count(ecosystem.KindDeer) != 2 {
		t.Fatalf("Count(deer) = %d", c.Count(ecosystem.KindDeer))
	}

	// One deer fed (8 - 1 + 1), the other did not (8 - 1).
	if c.DeerHealthMean != 7.5 {
		t.Fatalf("health mean = %f, want 7.5", c.DeerHealthMean)
	}
	if math.Abs(c.DeerHealthStd-math.Sqrt(0.5)) > 1e-9 {
		t.Fatalf("health std = %f, want %f", c.DeerHealthStd, math.Sqrt(0.5))
	}
	if c.DeerAgeMean != 1 || c.DeerAgeStd != 0 {
		t.Fatalf("age mean/std = %f/%f", c.DeerAgeMean, c.DeerAgeStd)
	}
}

func TestMeanStdSmallSamples(t *testing.T) {
	tests := []struct {
		values    []float64
		mean, std float64
	}{
		{nil, 0, 0},
		{[]float64{3}, 3, 0},
		{[]float64{2, 4}, 3, math.Sqrt2},
	}
	for _, tt := range tests {
		mean, std := meanStd(tt.values)
		if math.Abs(mean-tt.mean) > 1e-9 || math.Abs(std-tt.std) > 1e-9 {
			t.Errorf("meanStd(%v) = %f, %f; want %f, %f", tt.values, mean, std, tt.mean, tt.std)
		}
	}
}

func TestRecorderWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	w := grazingWorld(t)
	if err := r.WriteConfig(w.Config()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	first := Take(w)
	if err := r.Record(first); err != nil {
		t.Fatal(err)
	}
	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	if err := r.Record(Take(w)); err != nil {
		t.Fatal(err)
	}
	if r.Rows() != 2 {
		t.Fatalf("rows = %d", r.Rows())
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "census.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("census.csv has %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "tick,deer,trees,grass,wildfire") {
		t.Fatalf("header = %q", lines[0])
	}

	rows, err := ReadCensus(filepath.Join(dir, "census.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0] != first || rows[1].Tick != 2 {
		t.Fatalf("rows = %+v", rows)
	}

	cfg, err := ecosystem.LoadConfig(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml: %v", err)
	}
	if cfg.Width != 5 || cfg.Population.DeerProbability != 0 {
		t.Fatalf("config.yaml = %+v", cfg)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	r, err := NewRecorder("")
	if err != nil || r != nil {
		t.Fatalf("NewRecorder(\"\") = %v, %v", r, err)
	}
	if err := r.Record(Census{}); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteConfig(ecosystem.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if r.Rows() != 0 || r.Dir() != "" || r.Close() != nil {
		t.Fatal("nil recorder should report nothing")
	}
}
