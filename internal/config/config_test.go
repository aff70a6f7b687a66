package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Data.Source)
	assert.Equal(t, "data.csv", cfg.Data.Path)
	assert.Equal(t, "prices", cfg.Data.Table)
	assert.Equal(t, 1000.0, cfg.Chart.Width)
	assert.Equal(t, 500.0, cfg.Chart.Height)
	assert.Equal(t, 50.0, cfg.Chart.Dimensions().Margin)
	assert.True(t, cfg.Chart.Nice())
	assert.Equal(t, "svg", cfg.Chart.Format)
	assert.Equal(t, "chart.svg", cfg.Chart.Output)
	assert.Equal(t, "before", cfg.Hover.Snap)
	assert.Equal(t, "0 */15 * * * *", cfg.Schedule.RenderCron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, "config.yaml", `
data:
  source: sqlite
  path: prices.db
  table: closes
chart:
  width: 800
  height: 400
  margin: 0
  nice_y: false
  format: png
hover:
  snap: nearest
log:
  level: debug
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Data.Source)
	assert.Equal(t, "closes", cfg.Data.Table)
	d := cfg.Chart.Dimensions()
	assert.Equal(t, 800.0, d.Width)
	assert.Equal(t, 0.0, d.Margin, "explicit zero margin is kept")
	assert.False(t, cfg.Chart.Nice())
	assert.Equal(t, "chart.png", cfg.Chart.Output)
	assert.Equal(t, "nearest", cfg.Hover.Snap)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeFile(t, "config.yaml", "data: [unclosed")
	_, err := Load(p)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeFile(t, "config.yaml", "data:\n  source: csv\n  path: a.csv\n")
	t.Setenv("PRICECHART_DATA_SOURCE", "yahoo")
	t.Setenv("PRICECHART_SYMBOL", "MSFT")
	t.Setenv("PRICECHART_OUTPUT", "out/msft.png")
	t.Setenv("PRICECHART_FORMAT", "png")
	t.Setenv("PRICECHART_SNAP", "nearest")
	t.Setenv("CRON_RENDER", "0 0 * * * *")
	t.Setenv("RUN_ON_START", "true")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTPS_PROXY", "http://127.0.0.1:8080")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.Data.Source)
	assert.Equal(t, "MSFT", cfg.Data.Symbol)
	assert.Equal(t, "out/msft.png", cfg.Chart.Output)
	assert.Equal(t, "png", cfg.Chart.Format)
	assert.Equal(t, "nearest", cfg.Hover.Snap)
	assert.Equal(t, "0 0 * * * *", cfg.Schedule.RenderCron)
	assert.True(t, cfg.Schedule.RunOnStart)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Proxy)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown source", func(c *Config) { c.Data.Source = "ftp" }, "data.source"},
		{"csv without path", func(c *Config) { c.Data.Path = "" }, "data.path"},
		{"yahoo without symbol", func(c *Config) { c.Data.Source = "yahoo" }, "data.symbol"},
		{"vstrader without url", func(c *Config) { c.Data.Source = "vstrader"; c.Data.Symbol = "X" }, "data.base_url"},
		{"zero drawable area", func(c *Config) { m := 500.0; c.Chart.Margin = &m }, "chart"},
		{"bad format", func(c *Config) { c.Chart.Format = "gif" }, "chart.format"},
		{"format disagrees with output", func(c *Config) { c.Chart.Format = "png" }, "does not match"},
		{"bad snap", func(c *Config) { c.Hover.Snap = "center" }, "hover.snap"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	p := writeFile(t, ".env", "PRICECHART_TEST_DOTENV=from-file\n")
	t.Setenv("PRICECHART_TEST_DOTENV", "")
	os.Unsetenv("PRICECHART_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(p, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("PRICECHART_TEST_DOTENV"))
}

func TestValidate_OutputWithoutKnownExtension(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	cfg.Chart.Format = "png"
	cfg.Chart.Output = "charts/latest"
	assert.NoError(t, cfg.Validate())
}
