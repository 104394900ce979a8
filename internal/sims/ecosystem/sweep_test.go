package ecosystem

import "testing"

func TestSweepMatchesSequentialRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 30, 20
	cfg.CheckInvariants = true
	seeds := []int64{1, 2, 3, 4, 5}

	parallel := Sweep("ecosystem", cfg, seeds, 40, 3)
	if len(parallel) != len(seeds) {
		t.Fatalf("got %d results", len(parallel))
	}
	for i, seed := range seeds {
		seq := RunSeed("ecosystem", cfg, seed, 40)
		got := parallel[i]
		if got.Err != nil || seq.Err != nil {
			t.Fatalf("seed %d: errors %v / %v", seed, got.Err, seq.Err)
		}
		if got.Seed != seed || got.Ticks != seq.Ticks || got.Final != seq.Final || got.Extinct != seq.Extinct {
			t.Fatalf("seed %d: parallel %+v != sequential %+v", seed, got, seq)
		}
	}
}

func TestRunSeedRecordsExtinction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 6, 6
	cfg.Population = PopulationParams{WildfireProbability: 1}
	cfg.Wildfire.BurnTime = 1

	res := RunSeed("ecosystem", cfg, 3, 50)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Ticks != 2 || res.Extinct[KindWildfire] != 2 {
		t.Fatalf("result = %+v", res)
	}
	if res.Extinct[KindDeer] != -1 || res.Survived(KindWildfire) {
		t.Fatalf("absent kinds must not be reported extinct: %+v", res)
	}
}

func TestRunSeedUnknownPreset(t *testing.T) {
	if res := RunSeed("tundra", DefaultConfig(), 1, 10); res.Err == nil {
		t.Fatal("unknown preset should be reported")
	}
}
