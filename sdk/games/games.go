// Package games defines the contract shared by the public-state game
// abstractions in this module.
//
// A game is an immutable configuration value. All per-hand information lives
// in comparable state values that the game derives from one another:
//
//	g, _ := kuhn.New(3)
//	s := g.InitialState()
//	for !g.IsTerminal(s) {
//	    s = g.Act(s, g.LegalActions(s)[0])
//	}
//
// States omit private cards. They track only the betting history and chip
// bookkeeping both players can observe, so equal states may be shared or
// deduplicated by a caller building a game tree (see package tree).
//
// Games never return errors from their transition methods. Passing an action
// that is not legal in the given state is a programming error and panics.
package games

// Game is the set of operations a tree walker or solver needs from a game
// definition. S is the public state type and A the game's action alphabet.
type Game[S comparable, A ~int] interface {
	// InitialState returns the root of the game tree.
	InitialState() S
	// LegalActions lists the actions available in s, in ascending order.
	// It returns an empty slice exactly when s is terminal.
	LegalActions(s S) []A
	// IsTerminal reports whether the hand is over in s.
	IsTerminal(s S) bool
	// Act returns the state reached by playing a in s. It panics if a is not
	// legal in s.
	Act(s S, a A) S
	// PlayerID returns the player to act next in s.
	PlayerID(s S) int
	ActionString(a A) string
	StateString(s S) string
	// MaxDepth is an upper bound on the number of actions in any hand.
	MaxDepth() int
}

// Players is the number of players in every game in this module.
const Players = 2

// Other returns the opponent of player.
func Other(player int) int {
	return 1 - player
}
