package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	g, err := cfg.LeducGame()
	require.NoError(t, err)
	assert.Equal(t, leduc.DefaultConfig(), g.Config())

	k, err := cfg.KuhnGame()
	require.NoError(t, err)
	assert.Equal(t, 3, k.DeckSize())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log {
  level  = "debug"
  format = "json"
}

kuhn {
  deck_size = 4
}

leduc {
  deck_size     = 8
  community_pot = [2, 2]
  stack         = [20, 20]
  bet_sizes     = [2, 4]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	k, err := cfg.KuhnGame()
	require.NoError(t, err)
	assert.Equal(t, 4, k.DeckSize())

	g, err := cfg.LeducGame()
	require.NoError(t, err)
	assert.Equal(t, leduc.Config{
		DeckSize:     8,
		CommunityPot: [2]int{2, 2},
		Stack:        [2]int{20, 20},
		BetSizes:     [2]int{2, 4},
	}, g.Config())
}

func TestLoadPartialFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
leduc {
  stack = [12, 12]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 3, cfg.Kuhn.DeckSize)
	assert.Equal(t, 6, cfg.Leduc.DeckSize)
	assert.Equal(t, []int{1, 1}, cfg.Leduc.CommunityPot)
	assert.Equal(t, []int{12, 12}, cfg.Leduc.Stack)
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := writeConfig(t, `leduc { deck_size = }`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse HCL")
}

func TestLoadRejectsUnknownAttribute(t *testing.T) {
	path := writeConfig(t, `kuhn { ante = 2 }`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"kuhn deck", func(c *Config) { c.Kuhn.DeckSize = 1 }, "deck size"},
		{"leduc pair length", func(c *Config) { c.Leduc.Stack = []int{10} }, "exactly two values"},
		{"leduc short stack", func(c *Config) { c.Leduc.Stack = []int{2, 2} }, "must cover"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
