package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/charttrend/internal/analyzer"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charttrend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Equal(t, "edge-slope", c.Strategy)
	require.Equal(t, defaultWorkers(runtime.NumCPU()), c.Workers)
	require.Equal(t, 150, c.PDFDPI)
	require.Equal(t, "warn", c.Log.Level)
	require.Equal(t, "console", c.Log.Format)
	require.Equal(t, analyzer.DefaultParams(), c.Analyzer)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
strategy: region-contrast
workers: 2
log:
  level: debug
analyzer:
  deadband: 1.1
  high_threshold: 120
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Equal(t, "region-contrast", c.Strategy)
	require.Equal(t, 2, c.Workers)
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, "console", c.Log.Format)
	require.Equal(t, 1.1, c.Analyzer.Deadband)
	require.Equal(t, 120.0, c.Analyzer.HighThreshold)
	// Untouched keys keep their defaults
	require.Equal(t, float64(analyzer.DefaultLowThreshold), c.Analyzer.LowThreshold)
	require.Equal(t, analyzer.DefaultCanonicalWidth, c.Analyzer.CanonicalWidth)
}

func TestLoadEmptyFile(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, "edge-slope", c.Strategy)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "strategy: [unclosed"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "analyzer:\n  deadbnad: 1.2\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown strategy", func(c *Config) { c.Strategy = "ml" }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"even blur kernel", func(c *Config) { c.Analyzer.BlurKernel = 4 }},
		{"inverted thresholds", func(c *Config) { c.Analyzer.HighThreshold = 10 }},
		{"inverted band", func(c *Config) { c.Analyzer.BandBottom = 0.1 }},
		{"deadband below one", func(c *Config) { c.Analyzer.Deadband = 0.9 }},
		{"confidence above one", func(c *Config) { c.Analyzer.MaxConfidence = 1.5 }},
		{"zero canvas", func(c *Config) { c.Analyzer.CanonicalWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Default()
			require.NoError(t, err)
			tt.mutate(c)
			require.Error(t, c.Validate())
		})
	}
}

func TestDefaultWorkers(t *testing.T) {
	require.Equal(t, 8, defaultWorkers(8))
	require.Equal(t, MaxWorkers, defaultWorkers(MaxWorkers))
	require.Equal(t, MaxWorkers, defaultWorkers(512))
	require.Equal(t, 1, defaultWorkers(0))

	c, err := Default()
	require.NoError(t, err)
	c.Workers = defaultWorkers(1024)
	require.NoError(t, c.Validate())
}
