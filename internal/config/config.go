package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. One immutable object is built
// at startup and passed by reference into every component; nothing threads
// positional parameter lists around.
type Config struct {
	Symbol string `yaml:"symbol"`
	Input  struct {
		File   string `yaml:"file"`
		Format string `yaml:"format"` // "json", "csv", or "" to infer from extension
	} `yaml:"input"`
	Bands struct {
		Window    int     `yaml:"window"`
		WidthMult float64 `yaml:"width_mult"`
		Transform string  `yaml:"transform"` // "log" or "linear"
	} `yaml:"bands"`
	Breaks struct {
		RatioHi float64 `yaml:"ratio_hi"`
		RatioLo float64 `yaml:"ratio_lo"`
	} `yaml:"breaks"`
	Analysis struct {
		Horizons              []int     `yaml:"horizons"`
		MinNRequired          int       `yaml:"min_n_required"`
		PosThresholds         []float64 `yaml:"pos_thresholds"`
		DistToUpperThresholds []float64 `yaml:"dist_to_upper_thresholds"`
	} `yaml:"analysis"`
	Output struct {
		File string `yaml:"file"` // "" writes to stdout
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // "" disables the recorder
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("INPUT_FILE"); v != "" {
		cfg.Input.File = v
	}
	if v := os.Getenv("OUTPUT_FILE"); v != "" {
		cfg.Output.File = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("BAND_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bands.Window = n
		}
	}
	if v := os.Getenv("BAND_TRANSFORM"); v != "" {
		cfg.Bands.Transform = v
	}

	// Defaults
	if cfg.Symbol == "" {
		cfg.Symbol = "SPX500"
	}
	if cfg.Bands.Window == 0 {
		cfg.Bands.Window = 20
	}
	if cfg.Bands.WidthMult == 0 {
		cfg.Bands.WidthMult = 2.0
	}
	if cfg.Bands.Transform == "" {
		cfg.Bands.Transform = "log"
	}
	if cfg.Breaks.RatioHi == 0 {
		cfg.Breaks.RatioHi = 1.8
	}
	if cfg.Breaks.RatioLo == 0 {
		cfg.Breaks.RatioLo = 1.0 / cfg.Breaks.RatioHi
	}
	if len(cfg.Analysis.Horizons) == 0 {
		cfg.Analysis.Horizons = []int{10, 20}
	}
	if cfg.Analysis.MinNRequired == 0 {
		cfg.Analysis.MinNRequired = 60
	}
	if len(cfg.Analysis.PosThresholds) == 0 {
		cfg.Analysis.PosThresholds = []float64{0.8, 0.9}
	}
	if len(cfg.Analysis.DistToUpperThresholds) == 0 {
		cfg.Analysis.DistToUpperThresholds = []float64{0.02, 0.05}
	}

	return cfg, nil
}

// Validate checks every parameter the core depends on. A violation here is a
// caller bug, not a data condition, and must abort the run before any
// computation happens.
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return fmt.Errorf("input.file is required")
	}
	if c.Bands.Window <= 1 {
		return fmt.Errorf("bands.window must be > 1, got %d", c.Bands.Window)
	}
	if c.Bands.WidthMult <= 0 {
		return fmt.Errorf("bands.width_mult must be positive, got %g", c.Bands.WidthMult)
	}
	if c.Bands.Transform != "log" && c.Bands.Transform != "linear" {
		return fmt.Errorf("bands.transform must be \"log\" or \"linear\", got %q", c.Bands.Transform)
	}
	if c.Breaks.RatioHi <= 1 {
		return fmt.Errorf("breaks.ratio_hi must be > 1, got %g", c.Breaks.RatioHi)
	}
	if c.Breaks.RatioLo <= 0 || c.Breaks.RatioLo >= 1 {
		return fmt.Errorf("breaks.ratio_lo must be in (0, 1), got %g", c.Breaks.RatioLo)
	}
	if c.Breaks.RatioLo >= c.Breaks.RatioHi {
		return fmt.Errorf("breaks.ratio_lo (%g) must be < breaks.ratio_hi (%g)", c.Breaks.RatioLo, c.Breaks.RatioHi)
	}
	if len(c.Analysis.Horizons) == 0 {
		return fmt.Errorf("analysis.horizons must not be empty")
	}
	for _, h := range c.Analysis.Horizons {
		if h <= 0 {
			return fmt.Errorf("analysis.horizons entries must be positive, got %d", h)
		}
	}
	if c.Analysis.MinNRequired < 1 {
		return fmt.Errorf("analysis.min_n_required must be >= 1, got %d", c.Analysis.MinNRequired)
	}
	for _, tau := range c.Analysis.PosThresholds {
		if tau < 0 || tau > 1 {
			return fmt.Errorf("analysis.pos_thresholds entries must be in [0, 1], got %g", tau)
		}
	}
	for _, tau := range c.Analysis.DistToUpperThresholds {
		if tau < 0 {
			return fmt.Errorf("analysis.dist_to_upper_thresholds entries must be >= 0, got %g", tau)
		}
	}
	return nil
}
