package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"PriceChart/internal/model"
)

// DefaultPath is used when neither -config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// Data selects and parameterizes the price source.
type Data struct {
	Source  string `yaml:"source"` // csv | sqlite | yahoo | vstrader | mock
	Path    string `yaml:"path"`
	Table   string `yaml:"table"`
	Symbol  string `yaml:"symbol"`
	Range   string `yaml:"range"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Limit   int    `yaml:"limit"`
	Sort    bool   `yaml:"sort"`
}

// Chart holds the drawing surface and output settings.
type Chart struct {
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Margin *float64 `yaml:"margin"`
	NiceY  *bool    `yaml:"nice_y"`
	Format string   `yaml:"format"`
	Output string   `yaml:"output"`
}

// Dimensions returns the configured surface as a model value.
func (c Chart) Dimensions() model.Dimensions {
	d := model.Dimensions{Width: c.Width, Height: c.Height}
	if c.Margin != nil {
		d.Margin = *c.Margin
	}
	return d
}

// Nice reports whether the y domain is rounded outward.
func (c Chart) Nice() bool { return c.NiceY == nil || *c.NiceY }

// Config holds all application configuration.
type Config struct {
	Data  Data  `yaml:"data"`
	Chart Chart `yaml:"chart"`
	Hover struct {
		Snap string `yaml:"snap"`
	} `yaml:"hover"`
	Schedule struct {
		RenderCron string `yaml:"render_cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// LoadDotEnv loads .env style files into the process environment. Missing files are
// ignored and variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
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
	if v := os.Getenv("PRICECHART_DATA_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("PRICECHART_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("PRICECHART_SYMBOL"); v != "" {
		cfg.Data.Symbol = v
	}
	if v := os.Getenv("VSTRADER_BASE_URL"); v != "" {
		cfg.Data.BaseURL = v
	}
	if v := os.Getenv("VSTRADER_API_KEY"); v != "" {
		cfg.Data.APIKey = v
	}
	if v := os.Getenv("PRICECHART_OUTPUT"); v != "" {
		cfg.Chart.Output = v
	}
	if v := os.Getenv("PRICECHART_FORMAT"); v != "" {
		cfg.Chart.Format = v
	}
	if v := os.Getenv("PRICECHART_SNAP"); v != "" {
		cfg.Hover.Snap = v
	}
	if v := os.Getenv("CRON_RENDER"); v != "" {
		cfg.Schedule.RenderCron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Schedule.RunOnStart = b
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	def := model.DefaultDimensions()
	if cfg.Data.Source == "" {
		cfg.Data.Source = "csv"
	}
	if cfg.Data.Path == "" && cfg.Data.Source == "csv" {
		cfg.Data.Path = "data.csv"
	}
	if cfg.Data.Table == "" {
		cfg.Data.Table = "prices"
	}
	if cfg.Data.Range == "" {
		cfg.Data.Range = "1y"
	}
	if cfg.Data.Limit == 0 {
		cfg.Data.Limit = 365
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = def.Width
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = def.Height
	}
	if cfg.Chart.Margin == nil {
		m := def.Margin
		cfg.Chart.Margin = &m
	}
	if cfg.Chart.Format == "" {
		cfg.Chart.Format = "svg"
	}
	if cfg.Chart.Output == "" {
		cfg.Chart.Output = "chart." + cfg.Chart.Format
	}
	if cfg.Hover.Snap == "" {
		cfg.Hover.Snap = "before"
	}
	if cfg.Schedule.RenderCron == "" {
		cfg.Schedule.RenderCron = "0 */15 * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that the selected source has what it needs and that the chart
// settings are usable.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case "csv", "sqlite":
		if c.Data.Path == "" {
			return fmt.Errorf("data.path is required for source %q", c.Data.Source)
		}
	case "yahoo":
		if c.Data.Symbol == "" {
			return fmt.Errorf("data.symbol is required for source yahoo")
		}
	case "vstrader":
		if c.Data.BaseURL == "" {
			return fmt.Errorf("data.base_url is required for source vstrader")
		}
		if c.Data.Symbol == "" {
			return fmt.Errorf("data.symbol is required for source vstrader")
		}
	case "mock":
	default:
		return fmt.Errorf("data.source %q is not supported", c.Data.Source)
	}
	if err := c.Chart.Dimensions().Validate(); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if c.Chart.Format != "svg" && c.Chart.Format != "png" {
		return fmt.Errorf("chart.format must be svg or png, got %q", c.Chart.Format)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(c.Chart.Output), "."))
	if (ext == "svg" || ext == "png") && ext != c.Chart.Format {
		return fmt.Errorf("chart.output %q does not match chart.format %q", c.Chart.Output, c.Chart.Format)
	}
	if c.Hover.Snap != "before" && c.Hover.Snap != "nearest" {
		return fmt.Errorf("hover.snap must be before or nearest, got %q", c.Hover.Snap)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
