package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not key=value", value)
	}
	*l = append(*l, value)
	return nil
}

// sweepRow is one line of sweep.csv.
type sweepRow struct {
	Seed              int64 `csv:"seed"`
	Ticks             int   `csv:"ticks"`
	Deer              int   `csv:"deer"`
	Trees             int   `csv:"trees"`
	Grass             int   `csv:"grass"`
	Wildfire          int   `csv:"wildfire"`
	DeerExtinctAt     int   `csv:"deer_extinct_at"`
	TreesExtinctAt    int   `csv:"trees_extinct_at"`
	GrassExtinctAt    int   `csv:"grass_extinct_at"`
	WildfireExtinctAt int   `csv:"wildfire_extinct_at"`
}

func main() {
	preset := flag.String("sim", "ecosystem", "preset to sweep (ecosystem, meadow)")
	configPath := flag.String("config", "", "YAML file overriding the default parameters")
	runs := flag.Int("runs", 16, "number of seeds to run")
	firstSeed := flag.Int64("seed", 1, "first seed; runs use seed, seed+1, ...")
	steps := flag.Int("steps", 500, "ticks to simulate per seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel worlds")
	output := flag.String("output", "", "optional path for a per-seed CSV")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := buildConfig(*configPath, overrides)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	seeds := make([]int64, *runs)
	for i := range seeds {
		seeds[i] = *firstSeed + int64(i)
	}
	log.Info("sweep started", "sim", *preset, "runs", *runs, "steps", *steps, "workers", *workers)
	results := ecosystem.Sweep(*preset, cfg, seeds, *steps, *workers)

	rows := make([]sweepRow, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			log.Error("run failed", "seed", res.Seed, "err", res.Err)
			failed++
			continue
		}
		pop := res.Final.Population
		fmt.Printf("seed %d: %d ticks, deer %d, trees %d, grass %d, wildfire %d\n",
			res.Seed, res.Ticks,
			pop[ecosystem.KindDeer], pop[ecosystem.KindTree], pop[ecosystem.KindGrass], pop[ecosystem.KindWildfire])
		rows = append(rows, sweepRow{
			Seed:              res.Seed,
			Ticks:             res.Ticks,
			Deer:              pop[ecosystem.KindDeer],
			Trees:             pop[ecosystem.KindTree],
			Grass:             pop[ecosystem.KindGrass],
			Wildfire:          pop[ecosystem.KindWildfire],
			DeerExtinctAt:     res.Extinct[ecosystem.KindDeer],
			TreesExtinctAt:    res.Extinct[ecosystem.KindTree],
			GrassExtinctAt:    res.Extinct[ecosystem.KindGrass],
			WildfireExtinctAt: res.Extinct[ecosystem.KindWildfire],
		})
	}

	fmt.Println()
	for _, k := range ecosystem.Kinds() {
		fmt.Println(summarize(k, results))
	}

	if *output != "" {
		if err := writeRows(*output, rows); err != nil {
			log.Error("writing sweep results", "err", err)
			os.Exit(1)
		}
		log.Info("sweep results written", "path", *output)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func buildConfig(path string, overrides kvList) (ecosystem.Config, error) {
	if len(overrides) == 0 {
		return ecosystem.LoadConfig(path)
	}
	if path != "" {
		return ecosystem.Config{}, fmt.Errorf("-config and -set cannot be combined")
	}
	m := make(map[string]string, len(overrides))
	for _, kv := range overrides {
		key, value, _ := strings.Cut(kv, "=")
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	cfg := ecosystem.FromMap(m)
	return cfg, cfg.Validate()
}

// summarize reports how often k survived and its mean extinction tick.
func summarize(k ecosystem.Kind, results []ecosystem.RunResult) string {
	var survived, present int
	var extinct []float64
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		switch {
		case res.Survived(k):
			survived++
			present++
		case res.Extinct[k] >= 0:
			extinct = append(extinct, float64(res.Extinct[k]))
			present++
		}
	}
	if present == 0 {
		return fmt.Sprintf("%-8s absent", k)
	}
	if len(extinct) == 0 {
		return fmt.Sprintf("%-8s survived %d/%d", k, survived, present)
	}
	return fmt.Sprintf("%-8s survived %d/%d, mean extinction tick %.1f", k, survived, present, stat.Mean(extinct, nil))
}

func writeRows(path string, rows []sweepRow) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
