package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CornellDataScience/PokerBot/internal/randutil"
	"github.com/CornellDataScience/PokerBot/internal/strategy"
	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
)

func newKuhn(t *testing.T) kuhn.Game {
	t.Helper()
	g, err := kuhn.New(3)
	require.NoError(t, err)
	return g
}

func newLeduc(t *testing.T) leduc.Game {
	t.Helper()
	g, err := leduc.New(leduc.DefaultConfig())
	require.NoError(t, err)
	return g
}

func TestPlayoutScript(t *testing.T) {
	g := newKuhn(t)
	s, line, err := playout[kuhn.State, kuhn.Action](context.Background(), g, kuhn.ParseAction,
		[]string{"check", "bet", "call"}, nil, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []kuhn.Action{kuhn.Check, kuhn.Raise, kuhn.Call}, line)
	assert.True(t, g.IsTerminal(s))
	assert.Equal(t, 2.0, g.RelativePot(s))
}

func TestPlayoutLeducShowdown(t *testing.T) {
	g := newLeduc(t)
	s, line, err := playout[leduc.State, leduc.Action](context.Background(), g, leduc.ParseAction,
		[]string{"bet", "call", "check", "check"}, nil, zerolog.Nop())
	require.NoError(t, err)

	assert.Len(t, line, 4)
	assert.True(t, g.IsTerminal(s))
	assert.Equal(t, leduc.PhaseShowdown, g.Phase(s))
}

func TestPlayoutErrors(t *testing.T) {
	g := newKuhn(t)
	tests := []struct {
		name   string
		script []string
		target error
		errMsg string
	}{
		{"illegal", []string{"check", "fold"}, errIllegalAction, "action 1"},
		{"hand over", []string{"check", "check", "check"}, errHandOver, "action 2"},
		{"unknown name", []string{"jump"}, nil, "action 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := playout[kuhn.State, kuhn.Action](context.Background(), g, kuhn.ParseAction,
				tt.script, nil, zerolog.Nop())
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPlayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, line, err := playout[kuhn.State, kuhn.Action](ctx, newKuhn(t), kuhn.ParseAction,
		[]string{"check"}, nil, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, line)
}

func uniformKuhn(g kuhn.Game, seed int64) func(kuhn.State) kuhn.Action {
	rng := randutil.New(seed)
	pol := strategy.Uniform[kuhn.State, kuhn.Action]{Game: g}
	return policyChooser[kuhn.State, kuhn.Action](g, pol, rng, randutil.Deal(rng, g.NumHands(), 2))
}

func TestPlayoutRandomIsReproducible(t *testing.T) {
	g := newLeduc(t)
	pol := strategy.Uniform[leduc.State, leduc.Action]{Game: g}
	run := func(seed int64) (leduc.State, []leduc.Action) {
		rng := randutil.New(seed)
		choose := policyChooser[leduc.State, leduc.Action](g, pol, rng, randutil.Deal(rng, g.NumHands(), 2))
		s, line, err := playout[leduc.State, leduc.Action](context.Background(), g, leduc.ParseAction,
			nil, choose, zerolog.Nop())
		require.NoError(t, err)
		return s, line
	}

	for seed := int64(0); seed < 20; seed++ {
		s1, line1 := run(seed)
		s2, line2 := run(seed)

		assert.True(t, g.IsTerminal(s1))
		assert.Equal(t, s1, s2)
		assert.Equal(t, line1, line2)
		assert.LessOrEqual(t, len(line1), g.MaxDepth())
	}
}

func TestPlayoutRandomContinuesScript(t *testing.T) {
	g := newKuhn(t)
	s, line, err := playout[kuhn.State, kuhn.Action](context.Background(), g, kuhn.ParseAction,
		[]string{"raise"}, uniformKuhn(g, 7), zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, line, 2)
	assert.Equal(t, kuhn.Raise, line[0])
	assert.Contains(t, []kuhn.Action{kuhn.Fold, kuhn.Call}, line[1])
	assert.True(t, g.IsTerminal(s))
}

func TestPlayoutRejectsIllegalChoice(t *testing.T) {
	g := newKuhn(t)
	alwaysFold := func(kuhn.State) kuhn.Action { return kuhn.Fold }

	_, line, err := playout[kuhn.State, kuhn.Action](context.Background(), g, kuhn.ParseAction,
		nil, alwaysFold, zerolog.Nop())
	assert.ErrorIs(t, err, errIllegalAction)
	assert.Empty(t, line)
}

const aggressiveKuhn = `aggressive kuhn
node=	| hand=0 0 1 | hand=1 0 1 | hand=2 0 1
node=check	| hand=0 0 1 | hand=1 0 1 | hand=2 0 1
node=raise	| hand=0 0 1 | hand=1 0 1 | hand=2 0 1
`

func writeStrategy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestWalkChooser(t *testing.T) {
	g := newKuhn(t)
	ctx := context.Background()

	t.Run("script only", func(t *testing.T) {
		choose, err := walkChooser[kuhn.State, kuhn.Action](ctx, &WalkCmd{}, g, g.NumHands(), kuhn.ParseAction, zerolog.Nop())
		require.NoError(t, err)
		assert.Nil(t, choose)
	})

	t.Run("strategy file", func(t *testing.T) {
		cmd := &WalkCmd{Strategy: writeStrategy(t, aggressiveKuhn), Seed: 3}
		choose, err := walkChooser[kuhn.State, kuhn.Action](ctx, cmd, g, g.NumHands(), kuhn.ParseAction, zerolog.Nop())
		require.NoError(t, err)
		require.NotNil(t, choose)

		s, line, err := playout[kuhn.State, kuhn.Action](ctx, g, kuhn.ParseAction, nil, choose, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, []kuhn.Action{kuhn.Raise, kuhn.Call}, line)
		assert.Equal(t, 2.0, g.RelativePot(s))
	})

	t.Run("strategy after script", func(t *testing.T) {
		cmd := &WalkCmd{Strategy: writeStrategy(t, aggressiveKuhn), Seed: 3}
		choose, err := walkChooser[kuhn.State, kuhn.Action](ctx, cmd, g, g.NumHands(), kuhn.ParseAction, zerolog.Nop())
		require.NoError(t, err)

		_, line, err := playout[kuhn.State, kuhn.Action](ctx, g, kuhn.ParseAction, []string{"check"}, choose, zerolog.Nop())
		require.NoError(t, err)
		require.Len(t, line, 3)
		assert.Equal(t, []kuhn.Action{kuhn.Check, kuhn.Raise}, line[:2])
		assert.Contains(t, []kuhn.Action{kuhn.Fold, kuhn.Call}, line[2])
	})

	t.Run("bad strategy file", func(t *testing.T) {
		cmd := &WalkCmd{Strategy: writeStrategy(t, "h\nnode=2 | hand=0 1 0\n")}
		_, err := walkChooser[kuhn.State, kuhn.Action](ctx, cmd, g, g.NumHands(), kuhn.ParseAction, zerolog.Nop())
		require.Error(t, err)
		assert.ErrorIs(t, err, strategy.ErrTerminalNode)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("game", "kuhn").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"game":"kuhn"`)
	assert.Contains(t, out, `"message":"shown"`)

	_, err = newLogger(&buf, "loud", "console")
	assert.Error(t, err)
}
