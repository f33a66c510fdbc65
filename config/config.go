package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"stratego/game"
)

// Config is the application's runtime knobs. Everything has a sensible
// default; a stratego.yaml next to the binary or STRATEGO_* environment
// variables override it.
type Config struct {
	Mode        string `mapstructure:"mode"` // selfplay | serve | experiment
	ListenAddr  string `mapstructure:"listen_addr"`
	LogLevel    string `mapstructure:"log_level"`
	TimeLimitMs int    `mapstructure:"time_limit_ms"`
	RedPlayer   string `mapstructure:"red_player"`  // human | easy | medium | hard
	BluePlayer  string `mapstructure:"blue_player"` // human | easy | medium | hard
	Games       int    `mapstructure:"games"`       // experiment games per matchup
}

// Load reads the configuration. An explicit path must exist; otherwise a
// missing config file just means defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("mode", "selfplay")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("time_limit_ms", 950)
	v.SetDefault("red_player", "medium")
	v.SetDefault("blue_player", "medium")
	v.SetDefault("games", 10)

	v.SetEnvPrefix("STRATEGO")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("stratego")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// TimeLimit is the per-move AI search budget.
func (c *Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// PlayerTypeFor maps a configured player name to its type.
func PlayerTypeFor(name string) (game.PlayerType, error) {
	switch strings.ToLower(name) {
	case "human":
		return game.Human, nil
	case "easy":
		return game.AIEasy, nil
	case "medium":
		return game.AIMedium, nil
	case "hard":
		return game.AIHard, nil
	default:
		return game.Human, fmt.Errorf("unknown player type %q", name)
	}
}
