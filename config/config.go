// Package config loads engine settings from defaults, an optional YAML file,
// BBCHESS_ environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigHash         = "hash"
	ConfigHashFraction = "hash-fraction"
	ConfigThreads      = "threads"
	ConfigDepth        = "depth"
	ConfigLogLevel     = "log-level"
	ConfigShell        = "shell"
	ConfigMoveOverhead = "move-overhead"
	ConfigOwnBook      = "own-book"
	ConfigFile         = "config"
)

const envPrefix = "BBCHESS"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	*viper.Viper
}

func New() *Config {
	v := viper.New()
	v.SetDefault(ConfigHash, 64)
	v.SetDefault(ConfigHashFraction, 0.0)
	v.SetDefault(ConfigThreads, 1)
	v.SetDefault(ConfigDepth, 0)
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigShell, false)
	v.SetDefault(ConfigMoveOverhead, 30)
	v.SetDefault(ConfigOwnBook, false)
	return &Config{Viper: v}
}

// Load parses args, binds them over the environment and the config file, and
// validates the result.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("bbchess", pflag.ContinueOnError)
	fs.Int(ConfigHash, c.GetInt(ConfigHash), "transposition table size in MB")
	fs.Float64(ConfigHashFraction, c.GetFloat64(ConfigHashFraction), "size the transposition table as a fraction of physical memory; overrides --hash when > 0")
	fs.Int(ConfigThreads, c.GetInt(ConfigThreads), "search threads")
	fs.Int(ConfigDepth, c.GetInt(ConfigDepth), "default search depth when go carries no limit (0 = unlimited)")
	fs.String(ConfigLogLevel, c.GetString(ConfigLogLevel), "log level: trace, debug, info, warn, error or disabled")
	fs.Bool(ConfigShell, c.GetBool(ConfigShell), "start the interactive shell instead of the UCI loop")
	fs.Int(ConfigMoveOverhead, c.GetInt(ConfigMoveOverhead), "milliseconds reserved per move for communication lag")
	fs.Bool(ConfigOwnBook, c.GetBool(ConfigOwnBook), "play from the built-in opening book")
	fs.String(ConfigFile, "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.GetInt(ConfigHash) < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalidConfig, ConfigHash)
	}
	if f := c.GetFloat64(ConfigHashFraction); f < 0 || f > 0.9 {
		return fmt.Errorf("%w: %s must be within [0, 0.9]", ErrInvalidConfig, ConfigHashFraction)
	}
	if c.GetInt(ConfigThreads) < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalidConfig, ConfigThreads)
	}
	if c.GetInt(ConfigDepth) < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, ConfigDepth)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	s := strings.ToLower(c.GetString(ConfigLogLevel))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %s %q", ErrInvalidConfig, ConfigLogLevel, s)
	}
	return lvl, nil
}
