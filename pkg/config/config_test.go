package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acirc/acsolver/pkg/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.InDelta(t, 1.380649e-23, cfg.Constants.KB, 1e-30)
	require.InDelta(t, 298.15, cfg.Constants.T, 1e-9)
	require.InDelta(t, 50, cfg.Analysis.DefaultInputImpedance, 1e-9)
	require.True(t, cfg.Analysis.PrintProgress)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := []byte("constants:\n  T: 300\nanalysis:\n  default_input_impedance: 75\n")
	require.NoError(t, writeFile(path, data))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.InDelta(t, 300, cfg.Constants.T, 1e-9)
	require.InDelta(t, 75, cfg.Analysis.DefaultInputImpedance, 1e-9)
	// Unspecified fields keep their default value.
	require.InDelta(t, 1.380649e-23, cfg.Constants.KB, 1e-30)
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
