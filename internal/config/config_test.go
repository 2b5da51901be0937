package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWithNoFlagsOrFile(t *testing.T) {
	cfg, err := New("", nil)
	require.NoError(t, err)

	assert.Equal(t, uint8(8), cfg.Depth())
	assert.Equal(t, time.Duration(0), cfg.Goal())
	assert.Equal(t, 4.0, cfg.BranchingFactor())
	assert.Equal(t, "info", cfg.LogLevel())
	assert.Equal(t, "text", cfg.OutputFormat())
}

func TestFlagsOverrideDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--depth=12", "--output-format=yaml"}))

	cfg, err := New("", fs)
	require.NoError(t, err)

	assert.Equal(t, uint8(12), cfg.Depth())
	assert.Equal(t, "yaml", cfg.OutputFormat())
}

func TestMissingConfigFileIsNotAnError(t *testing.T) {
	_, err := New("/nonexistent/pvsearch.yaml", nil)
	assert.NoError(t, err)
}
