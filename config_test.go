package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZephyrDeng/hplc-analyzer-mcp/analyzer"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.InDelta(t, analyzer.DefaultThreshold, cfg.Threshold, 1e-9)
	assert.Equal(t, analyzer.BaselineMin, cfg.Baseline)
	assert.Equal(t, analyzer.FormatText, cfg.OutputFormat)
	assert.False(t, cfg.Smooth)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chromalyzer.yaml")
	content := "threshold: 50.0\nmin_distance: 5\nbaseline_mode: median\nsmooth: true\nsmooth_cutoff: 0.2\noutput_format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, cfg.Threshold, 1e-9)
	assert.Equal(t, 5, cfg.MinDistance)
	assert.Equal(t, analyzer.BaselineMedian, cfg.Baseline)
	assert.True(t, cfg.Smooth)
	assert.InDelta(t, 0.2, cfg.SmoothCutoff, 1e-9)
	assert.Equal(t, analyzer.FormatJSON, cfg.OutputFormat)

	opts := cfg.Options()
	assert.InDelta(t, 50.0, opts.Threshold, 1e-9)
	assert.Equal(t, analyzer.BaselineMedian, opts.BaselineMode)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Run("bad baseline mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chromalyzer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("baseline_mode: average\n"), 0644))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("bad output format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chromalyzer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output_format: xml\n"), 0644))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chromalyzer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("threshold: [not a number\n"), 0644))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}

func TestLoadConfig_EnvThresholdOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chromalyzer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 25.0\n"), 0644))

	t.Run("valid override wins", func(t *testing.T) {
		t.Setenv("CHROMALYZER_THRESHOLD", "75.5")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.InDelta(t, 75.5, cfg.Threshold, 1e-9)
	})

	t.Run("invalid override ignored", func(t *testing.T) {
		t.Setenv("CHROMALYZER_THRESHOLD", "high")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.InDelta(t, 25.0, cfg.Threshold, 1e-9)
	})
}
