// Package config loads the HCL file describing which game definitions the
// command line tools build and how they log.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
)

// Config represents the complete configuration file.
type Config struct {
	Log   *LogSettings `hcl:"log,block"`
	Kuhn  *KuhnConfig  `hcl:"kuhn,block"`
	Leduc *LeducConfig `hcl:"leduc,block"`
}

// LogSettings controls CLI logging.
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// KuhnConfig defines the Kuhn poker game.
type KuhnConfig struct {
	DeckSize int `hcl:"deck_size,optional"`
}

// LeducConfig defines the Leduc poker game.
type LeducConfig struct {
	DeckSize     int   `hcl:"deck_size,optional"`
	CommunityPot []int `hcl:"community_pot,optional"`
	Stack        []int `hcl:"stack,optional"`
	BetSizes     []int `hcl:"bet_sizes,optional"`
}

const (
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultKuhnDeckSize  = 3
	defaultLeducDeckSize = 6
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}

	if c.Kuhn == nil {
		c.Kuhn = &KuhnConfig{}
	}
	if c.Kuhn.DeckSize == 0 {
		c.Kuhn.DeckSize = defaultKuhnDeckSize
	}

	def := leduc.DefaultConfig()
	if c.Leduc == nil {
		c.Leduc = &LeducConfig{}
	}
	if c.Leduc.DeckSize == 0 {
		c.Leduc.DeckSize = defaultLeducDeckSize
	}
	if c.Leduc.CommunityPot == nil {
		c.Leduc.CommunityPot = def.CommunityPot[:]
	}
	if c.Leduc.Stack == nil {
		c.Leduc.Stack = def.Stack[:]
	}
	if c.Leduc.BetSizes == nil {
		c.Leduc.BetSizes = def.BetSizes[:]
	}
}

// Validate checks log settings and that both games can be built.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	if _, err := c.KuhnGame(); err != nil {
		return err
	}
	if _, err := c.LeducGame(); err != nil {
		return err
	}
	return nil
}

// KuhnGame builds the configured Kuhn poker game.
func (c *Config) KuhnGame() (kuhn.Game, error) {
	return kuhn.New(c.Kuhn.DeckSize)
}

// LeducGame builds the configured Leduc poker game.
func (c *Config) LeducGame() (leduc.Game, error) {
	cfg, err := c.Leduc.gameConfig()
	if err != nil {
		return leduc.Game{}, err
	}
	return leduc.New(cfg)
}

func (l *LeducConfig) gameConfig() (leduc.Config, error) {
	cfg := leduc.Config{DeckSize: l.DeckSize}
	pairs := []struct {
		name string
		src  []int
		dst  *[2]int
	}{
		{"community_pot", l.CommunityPot, &cfg.CommunityPot},
		{"stack", l.Stack, &cfg.Stack},
		{"bet_sizes", l.BetSizes, &cfg.BetSizes},
	}
	for _, p := range pairs {
		if len(p.src) != 2 {
			return leduc.Config{}, fmt.Errorf("leduc: %s must have exactly two values, got %d", p.name, len(p.src))
		}
		copy(p.dst[:], p.src)
	}
	return cfg, nil
}
