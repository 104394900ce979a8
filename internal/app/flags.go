package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim        string
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
	HUDWidth   int

	Headless  bool
	Steps     int
	OutputDir string
	Listen    string

	LogLevel  string
	LogFormat string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       "ecosystem",
		Scale:     4,
		TPS:       30,
		HUDWidth:  300,
		Steps:     1000,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (ecosystem, meadow)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file overriding the default parameters")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 = unpaced in headless mode)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 = use the configured seed)")
	fs.IntVar(&c.HUDWidth, "hud-width", c.HUDWidth, "width of the HUD panel in pixels (0 hides it)")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "run without a window")
	fs.IntVar(&c.Steps, "steps", c.Steps, "ticks to run in headless mode (0 = until every species is extinct)")
	fs.StringVar(&c.OutputDir, "output-dir", c.OutputDir, "directory for census.csv and config.yaml")
	fs.StringVar(&c.Listen, "listen", c.Listen, "address serving the websocket census stream, e.g. :8080")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
}

// Logger builds the slog logger described by the log flags.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
}
