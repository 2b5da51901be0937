// Package config resolves search tunables from flags, environment
// variables, and an optional YAML file, the way the teacher's own
// config.Config layers turnplayer settings: github.com/spf13/viper with
// defaults set first so every key always resolves to something.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable the engine's CLI and worker surfaces expose.
type Config struct {
	v *viper.Viper
}

const (
	keyDepth           = "depth"
	keyGoal            = "goal"
	keyBranchingFactor = "branching-factor"
	keyTTMemFraction   = "tt-memory-fraction"
	keyLogLevel        = "log-level"
	keyOutputFormat    = "output-format"
	keyNATSURL         = "nats-url"
)

// New builds a Config from (in increasing priority order) built-in
// defaults, an optional YAML file at path (ignored if empty or missing),
// environment variables prefixed PVSEARCH_, and flags already parsed into
// fs.
func New(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyDepth, 8)
	v.SetDefault(keyGoal, 0)
	v.SetDefault(keyBranchingFactor, 4.0)
	v.SetDefault(keyTTMemFraction, 0.25)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyOutputFormat, "text")
	v.SetDefault(keyNATSURL, "nats://127.0.0.1:4222")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix("pvsearch")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	return &Config{v: v}, nil
}

// RegisterFlags declares every tunable on fs with its default value, so
// New can bind them afterward.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Uint8(keyDepth, 8, "maximum iterative-deepening depth (0 = unbounded)")
	fs.Duration(keyGoal, 0, "wall-clock search budget (0 = no budget)")
	fs.Float64(keyBranchingFactor, 4.0, "branching factor used to estimate whether another depth fits the budget")
	fs.Float64(keyTTMemFraction, 0.25, "fraction of system memory to size the transposition table for")
	fs.String(keyLogLevel, "info", "zerolog level: debug, info, warn, error")
	fs.String(keyOutputFormat, "text", "analysis output format: text or yaml")
	fs.String(keyNATSURL, "nats://127.0.0.1:4222", "NATS server URL for cmd/worker")
}

func (c *Config) Depth() uint8                { return uint8(c.v.GetUint32(keyDepth)) }
func (c *Config) Goal() time.Duration         { return c.v.GetDuration(keyGoal) }
func (c *Config) BranchingFactor() float64    { return c.v.GetFloat64(keyBranchingFactor) }
func (c *Config) TTMemoryFraction() float64   { return c.v.GetFloat64(keyTTMemFraction) }
func (c *Config) LogLevel() string            { return c.v.GetString(keyLogLevel) }
func (c *Config) OutputFormat() string        { return c.v.GetString(keyOutputFormat) }
func (c *Config) NATSURL() string             { return c.v.GetString(keyNATSURL) }
