package kuhn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) Game {
	t.Helper()
	g, err := New(3)
	require.NoError(t, err)
	return g
}

func TestNewRejectsTinyDeck(t *testing.T) {
	_, err := New(1)
	require.Error(t, err)

	g, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, g.DeckSize())
	assert.Equal(t, 3, g.NumHands())
	assert.Equal(t, 4, g.NumActions())
	assert.Equal(t, 3, g.MaxDepth())
}

func TestRoot(t *testing.T) {
	g := newTestGame(t)
	root := g.InitialState()

	assert.Equal(t, 0, root.PlayerID)
	assert.Equal(t, 0, root.StartingPlayer)
	assert.Equal(t, NoAction, root.LastAction)
	assert.False(t, g.IsTerminal(root))

	first, second := g.ActionList(root)
	assert.Equal(t, Check, first)
	assert.Equal(t, Raise, second)

	t.Run("check keeps check or raise open", func(t *testing.T) {
		first, second := g.ActionList(g.Act(root, Check))
		assert.Equal(t, Action(1), first)
		assert.Equal(t, Action(3), second)
	})

	t.Run("raise leaves fold or call", func(t *testing.T) {
		first, second := g.ActionList(g.Act(root, Raise))
		assert.Equal(t, Action(0), first)
		assert.Equal(t, Action(2), second)
	})

	t.Run("check then raise leaves fold or call", func(t *testing.T) {
		s := g.Act(g.Act(root, Check), Raise)
		first, second := g.ActionList(s)
		assert.Equal(t, Fold, first)
		assert.Equal(t, Call, second)
	})
}

func TestTerminalStates(t *testing.T) {
	g := newTestGame(t)
	root := g.InitialState()

	tests := []struct {
		name     string
		actions  []Action
		terminal bool
		pot      [2]int
	}{
		{"root", nil, false, [2]int{1, 1}},
		{"check", []Action{Check}, false, [2]int{1, 1}},
		{"check check", []Action{Check, Check}, true, [2]int{1, 1}},
		{"raise", []Action{Raise}, false, [2]int{2, 1}},
		{"raise fold", []Action{Raise, Fold}, true, [2]int{2, 1}},
		{"raise call", []Action{Raise, Call}, true, [2]int{2, 2}},
		{"check raise", []Action{Check, Raise}, false, [2]int{1, 2}},
		{"check raise fold", []Action{Check, Raise, Fold}, true, [2]int{1, 2}},
		{"check raise call", []Action{Check, Raise, Call}, true, [2]int{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := root
			for _, a := range tt.actions {
				s = g.Act(s, a)
			}
			assert.Equal(t, tt.terminal, g.IsTerminal(s))
			assert.Equal(t, tt.pot, s.Pot)
			assert.Equal(t, 0, s.StartingPlayer)
			if tt.terminal {
				assert.Empty(t, g.LegalActions(s))
				first, second := g.ActionList(s)
				assert.Equal(t, first, second)
			} else {
				assert.Len(t, g.LegalActions(s), 2)
			}
		})
	}
}

func TestActAlternatesPlayers(t *testing.T) {
	g := newTestGame(t)

	var walk func(s State)
	walk = func(s State) {
		if g.IsTerminal(s) {
			return
		}
		first, second := g.ActionList(s)
		require.Less(t, first, second)
		for _, a := range g.LegalActions(s) {
			assert.GreaterOrEqual(t, int(a), -1)
			assert.LessOrEqual(t, int(a), 4)
			next := g.Act(s, a)
			assert.Equal(t, 1-s.PlayerID, next.PlayerID)
			assert.Equal(t, a, next.LastAction)
			walk(next)
		}
	}
	walk(g.InitialState())
}

func TestActPanicsOnIllegalAction(t *testing.T) {
	g := newTestGame(t)
	root := g.InitialState()

	assert.Panics(t, func() { g.Act(root, Fold) })
	assert.Panics(t, func() { g.Act(root, Call) })
	assert.Panics(t, func() { g.Act(g.Act(root, Raise), Check) })

	terminal := g.Act(g.Act(root, Raise), Call)
	assert.Panics(t, func() { g.Act(terminal, Check) })
}

func TestStrings(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, "fold", g.ActionString(Fold))
	assert.Equal(t, "check", g.ActionString(Check))
	assert.Equal(t, "call", g.ActionString(Call))
	assert.Equal(t, "raise", g.ActionString(Raise))
	assert.Panics(t, func() { _ = g.ActionString(Action(7)) })

	root := g.InitialState()
	assert.Equal(t, "(pid=0,last=start,pot=1/1)", g.StateString(root))
	assert.Equal(t, g.StateString(root), g.StateString(root))
	assert.Equal(t, "(pid=1,last=raise,pot=2/1)", g.StateString(g.Act(root, Raise)))
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{Fold, Check, Call, Raise} {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := ParseAction(" Bet ")
	require.NoError(t, err)
	assert.Equal(t, Raise, got)

	_, err = ParseAction("start")
	assert.Error(t, err)
}

func TestRelativePot(t *testing.T) {
	g := newTestGame(t)
	root := g.InitialState()

	assert.Equal(t, 1.0, g.RelativePot(root))
	assert.Equal(t, 1.5, g.RelativePot(g.Act(root, Raise)))
	assert.Equal(t, 2.0, g.RelativePot(g.Act(g.Act(root, Raise), Call)))
}

func TestQueriesArePure(t *testing.T) {
	g := newTestGame(t)
	s := g.Act(g.InitialState(), Check)
	before := s

	f1, s1 := g.ActionList(s)
	f2, s2 := g.ActionList(s)
	assert.Equal(t, f1, f2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, g.IsTerminal(s), g.IsTerminal(s))
	assert.Equal(t, before, s)
}
