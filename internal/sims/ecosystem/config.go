package ecosystem

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// PopulationParams holds per-cell creation probabilities used by Reset.
type PopulationParams struct {
	DeerProbability     float64 `yaml:"deer_probability"`
	TreeProbability     float64 `yaml:"tree_probability"`
	GrassProbability    float64 `yaml:"grass_probability"`
	WildfireProbability float64 `yaml:"wildfire_probability"`
}

// HabitatParams shapes the moisture noise that biases initial flora.
type HabitatParams struct {
	NoiseScale     float64 `yaml:"noise_scale"`
	Octaves        int     `yaml:"octaves"`
	Persistence    float64 `yaml:"persistence"`
	MoistureWeight float64 `yaml:"moisture_weight"` // 0 = uniform flora, 1 = fully moisture driven
}

// DeerParams configures the consumer species.
type DeerParams struct {
	MaxAge              int     `yaml:"max_age"`
	BreedingAge         int     `yaml:"breeding_age"`
	MaxHealth           int     `yaml:"max_health"`
	BreedingHealth      int     `yaml:"breeding_health"`
	BreedingProbability float64 `yaml:"breeding_probability"`
	MaxLitter           int     `yaml:"max_litter"`
	FoodValue           int     `yaml:"food_value"`
	FireSurvival        float64 `yaml:"fire_survival"`
	Diet                []Kind  `yaml:"diet"`
}

// Eats reports whether k is part of the deer diet.
func (p DeerParams) Eats(k Kind) bool {
	for _, d := range p.Diet {
		if d == k {
			return true
		}
	}
	return false
}

// FloraParams configures a producer species (trees, grass).
type FloraParams struct {
	MaxAge               int     `yaml:"max_age"` // 0 = no senescence
	ReproductionInterval int     `yaml:"reproduction_interval"`
	MaxSeeds             int     `yaml:"max_seeds"`
	FireSurvival         float64 `yaml:"fire_survival"`
	IgnitionProbability  float64 `yaml:"ignition_probability"`
}

// WildfireParams configures the hazard species.
type WildfireParams struct {
	BurnTime          int     `yaml:"burn_time"`
	SpreadProbability float64 `yaml:"spread_probability"`
	MaxSpread         int     `yaml:"max_spread"`
}

// Config controls the ecosystem world.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	// CheckInvariants runs Verify after every reconciliation.
	CheckInvariants bool `yaml:"check_invariants"`

	Population PopulationParams `yaml:"population"`
	Habitat    HabitatParams    `yaml:"habitat"`
	Deer       DeerParams       `yaml:"deer"`
	Tree       FloraParams      `yaml:"tree"`
	Grass      FloraParams      `yaml:"grass"`
	Wildfire   WildfireParams   `yaml:"wildfire"`
}

var defaultConfig = mustDecodeDefaults()

func mustDecodeDefaults() Config {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		panic(fmt.Sprintf("ecosystem: parsing embedded defaults: %v", err))
	}
	return c
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	c := defaultConfig
	c.Deer.Diet = append([]Kind(nil), defaultConfig.Deer.Diet...)
	return c
}

// LoadConfig reads a YAML file over the defaults. Fields absent from the file
// keep their default values. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate reports every out-of-range value.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("dimensions %dx%d must be positive", c.Width, c.Height))
	}
	for _, f := range c.floatFields() {
		if f.probability && (*f.ptr < 0 || *f.ptr > 1) {
			errs = append(errs, fmt.Errorf("%s = %g outside [0,1]", f.key, *f.ptr))
		}
	}
	for _, f := range c.intFields() {
		if *f.ptr < 0 {
			errs = append(errs, fmt.Errorf("%s = %d must not be negative", f.key, *f.ptr))
		}
	}
	if c.Deer.MaxHealth <= 0 {
		errs = append(errs, errors.New("deer_max_health must be positive"))
	}
	return errors.Join(errs...)
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["check_invariants"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.CheckInvariants = parsed
		}
	}
	for _, f := range c.intFields() {
		if v, ok := cfg[f.key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= f.min {
				*f.ptr = parsed
			}
		}
	}
	for _, f := range c.floatFields() {
		if v, ok := cfg[f.key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && (!f.probability || parsed <= 1) {
				*f.ptr = parsed
			}
		}
	}
	return c
}

type intField struct {
	key, label, group string
	min               int
	ptr               *int
}

type floatField struct {
	key, label, group string
	probability       bool
	ptr               *float64
}

func (c *Config) intFields() []intField {
	return []intField{
		{"w", "Width", "World", 1, &c.Width},
		{"h", "Height", "World", 1, &c.Height},
		{"habitat_octaves", "Noise octaves", "Habitat", 1, &c.Habitat.Octaves},
		{"deer_max_age", "Max age", "Deer", 0, &c.Deer.MaxAge},
		{"deer_breeding_age", "Breeding age", "Deer", 0, &c.Deer.BreedingAge},
		{"deer_max_health", "Max health", "Deer", 1, &c.Deer.MaxHealth},
		{"deer_breeding_health", "Breeding health", "Deer", 0, &c.Deer.BreedingHealth},
		{"deer_max_litter", "Max litter", "Deer", 0, &c.Deer.MaxLitter},
		{"deer_food_value", "Food value", "Deer", 0, &c.Deer.FoodValue},
		{"tree_max_age", "Max age", "Tree", 0, &c.Tree.MaxAge},
		{"tree_reproduction_interval", "Reproduction interval", "Tree", 0, &c.Tree.ReproductionInterval},
		{"tree_max_seeds", "Max seeds", "Tree", 0, &c.Tree.MaxSeeds},
		{"grass_max_age", "Max age", "Grass", 0, &c.Grass.MaxAge},
		{"grass_reproduction_interval", "Reproduction interval", "Grass", 0, &c.Grass.ReproductionInterval},
		{"grass_max_seeds", "Max seeds", "Grass", 0, &c.Grass.MaxSeeds},
		{"wildfire_burn_time", "Burn time", "Wildfire", 0, &c.Wildfire.BurnTime},
		{"wildfire_max_spread", "Max spread", "Wildfire", 0, &c.Wildfire.MaxSpread},
	}
}

func (c *Config) floatFields() []floatField {
	return []floatField{
		{"deer_probability", "Deer density", "Population", true, &c.Population.DeerProbability},
		{"tree_probability", "Tree density", "Population", true, &c.Population.TreeProbability},
		{"grass_probability", "Grass density", "Population", true, &c.Population.GrassProbability},
		{"wildfire_probability", "Wildfire density", "Population", true, &c.Population.WildfireProbability},
		{"habitat_noise_scale", "Noise scale", "Habitat", false, &c.Habitat.NoiseScale},
		{"habitat_persistence", "Noise persistence", "Habitat", false, &c.Habitat.Persistence},
		{"habitat_moisture_weight", "Moisture weight", "Habitat", true, &c.Habitat.MoistureWeight},
		{"deer_breeding_probability", "Breeding probability", "Deer", true, &c.Deer.BreedingProbability},
		{"deer_fire_survival", "Fire survival", "Deer", true, &c.Deer.FireSurvival},
		{"tree_fire_survival", "Fire survival", "Tree", true, &c.Tree.FireSurvival},
		{"tree_ignition_probability", "Ignition probability", "Tree", true, &c.Tree.IgnitionProbability},
		{"grass_fire_survival", "Fire survival", "Grass", true, &c.Grass.FireSurvival},
		{"grass_ignition_probability", "Ignition probability", "Grass", true, &c.Grass.IgnitionProbability},
		{"wildfire_spread_probability", "Spread probability", "Wildfire", true, &c.Wildfire.SpreadProbability},
	}
}

// MarshalYAML encodes a Kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("unknown kind %d", k)
	}
	return k.String(), nil
}

// UnmarshalYAML decodes a Kind from its name.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, ok := ParseKind(name)
	if !ok {
		return fmt.Errorf("line %d: unknown kind %q", value.Line, name)
	}
	*k = parsed
	return nil
}
