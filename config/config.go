// Package config loads experiment definitions from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"catan/board"
)

// PlayerConfig selects and tunes one agent.
type PlayerConfig struct {
	// Strategy is one of "random", "value" or "mcts".
	Strategy    string  `yaml:"strategy"`
	Simulations int     `yaml:"simulations"`
	Epsilon     float64 `yaml:"epsilon"`
	Pruning     *bool   `yaml:"pruning"`
}

// Config is one experiment definition.
type Config struct {
	Games    int            `yaml:"games"`
	Workers  int            `yaml:"workers"`
	Map      string         `yaml:"map"`
	VpsToWin int            `yaml:"vps_to_win"`
	Seed     uint64         `yaml:"seed"`
	Output   string         `yaml:"output"`
	// FeaturesOutput enables terminal-state observation dumps when
	// set.
	FeaturesOutput string         `yaml:"features_output"`
	Players        []PlayerConfig `yaml:"players"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Games == 0 {
		c.Games = 100
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Map == "" {
		c.Map = "base"
	}
	if c.Output == "" {
		c.Output = "results.csv"
	}
	for i := range c.Players {
		p := &c.Players[i]
		if p.Strategy == "" {
			p.Strategy = "random"
		}
		if p.Simulations == 0 {
			p.Simulations = 100
		}
	}
}

func (c *Config) validate() error {
	if len(c.Players) < 2 || len(c.Players) > 4 {
		return fmt.Errorf("need 2 to 4 players, got %d", len(c.Players))
	}
	if _, err := c.MapType(); err != nil {
		return err
	}
	for i, p := range c.Players {
		switch p.Strategy {
		case "random", "value", "mcts":
		default:
			return fmt.Errorf("player %d: unknown strategy %q", i, p.Strategy)
		}
	}
	return nil
}

// MapType resolves the map name.
func (c *Config) MapType() (board.MapType, error) {
	switch c.Map {
	case "base":
		return board.Base, nil
	case "tournament":
		return board.Tournament, nil
	case "mini":
		return board.Mini, nil
	}
	return board.Base, fmt.Errorf("unknown map %q", c.Map)
}
