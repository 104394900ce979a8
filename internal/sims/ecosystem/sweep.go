package ecosystem

import "sync"

// RunResult summarises one seeded run.
type RunResult struct {
	Seed  int64
	Ticks int
	Final TickStats

	// Extinct holds the tick each initially present kind died out, or -1.
	Extinct [kindCount]int
	Err     error
}

// Survived reports whether k was still alive at the end of the run.
func (r RunResult) Survived(k Kind) bool { return r.Final.Population[k] > 0 }

// RunSeed builds the named preset from cfg, resets it with seed and steps it
// until steps ticks have run or the world is empty.
func RunSeed(preset string, cfg Config, seed int64, steps int) RunResult {
	res := RunResult{Seed: seed}
	for i := range res.Extinct {
		res.Extinct[i] = -1
	}
	w, err := NewPreset(preset, cfg)
	if err != nil {
		res.Err = err
		return res
	}
	w.Reset(seed)
	present := w.Stats().Population

	for w.Tick() < steps {
		if err := w.Step(); err != nil {
			res.Err = err
			break
		}
		pop := w.Stats().Population
		total := 0
		for _, k := range Kinds() {
			total += pop[k]
			if present[k] > 0 && pop[k] == 0 && res.Extinct[k] < 0 {
				res.Extinct[k] = w.Tick()
			}
		}
		if total == 0 {
			break
		}
	}
	res.Ticks = w.Tick()
	res.Final = w.Stats()
	return res
}

// Sweep runs every seed with up to workers worlds in parallel. Results are
// returned in seed order.
func Sweep(preset string, cfg Config, seeds []int64, steps, workers int) []RunResult {
	if workers <= 0 {
		workers = 1
	}
	results := make([]RunResult, len(seeds))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for idx, seed := range seeds {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, s int64) {
			defer wg.Done()
			c := cfg
			c.Deer.Diet = append([]Kind(nil), cfg.Deer.Diet...)
			results[i] = RunSeed(preset, c, s, steps)
			<-sem
		}(idx, seed)
	}

	wg.Wait()
	return results
}
