// Package leduc implements the public-state transition system of a two-round
// Leduc-style poker game with explicit pot and stack accounting.
//
// Each round allows at most one bet and one raise. A round closes on a call,
// or when the player who did not open it checks behind. Closing the first
// round deals the board card: the next state has River set, LastAction reset
// to NoAction and RoundOpener set to the player who acts next. Closing the
// river round ends the hand.
package leduc

import (
	"fmt"
	"math"
	"strings"

	"github.com/CornellDataScience/PokerBot/sdk/games"
)

// Action is a move in Leduc poker.
type Action int

const (
	// NoAction marks the start of a betting round.
	NoAction Action = math.MinInt32

	Raise Action = -1
	Fold  Action = 0
	Call  Action = 1
	Check Action = 2
	Bet   Action = 3
)

func (a Action) String() string {
	switch a {
	case NoAction:
		return "start"
	case Raise:
		return "raise"
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Check:
		return "check"
	case Bet:
		return "bet"
	default:
		panic(fmt.Sprintf("leduc: unknown action %d", int(a)))
	}
}

// ParseAction converts the name printed by Action.String back to an Action.
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "raise":
		return Raise, nil
	case "fold":
		return Fold, nil
	case "call":
		return Call, nil
	case "check":
		return Check, nil
	case "bet":
		return Bet, nil
	default:
		return NoAction, fmt.Errorf("leduc: unknown action %q", name)
	}
}

// Range is a half-open interval [Min, Max) of actions.
type Range struct {
	Min, Max Action
}

// Empty reports whether the range holds no action.
func (r Range) Empty() bool { return r.Min >= r.Max }

// Len is the number of actions in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return int(r.Max - r.Min)
}

// Contains reports whether a lies in the range.
func (r Range) Contains(a Action) bool {
	return a >= r.Min && a < r.Max
}

// Actions lists the range in ascending order.
func (r Range) Actions() []Action {
	if r.Empty() {
		return nil
	}
	out := make([]Action, 0, r.Len())
	for a := r.Min; a < r.Max; a++ {
		out = append(out, a)
	}
	return out
}

// State is the public state of a hand.
type State struct {
	// LastAction is the previous move in the current round, or NoAction when
	// the round has just started.
	LastAction Action
	// PlayerID is the player to act next.
	PlayerID int
	// StartingPlayer acted first this hand.
	StartingPlayer int
	// RoundOpener acts first in the current round.
	RoundOpener int
	// River is set once the board card is out and the second round is underway.
	River bool
	// CommunityPot holds each player's contribution.
	CommunityPot [2]int
	// Stack holds each player's remaining chips.
	Stack [2]int
}

// Phase names where a hand stands.
type Phase uint8

const (
	PhasePreflop Phase = iota
	PhaseRiver
	PhaseShowdown
	PhaseFolded
)

func (p Phase) String() string {
	switch p {
	case PhasePreflop:
		return "preflop"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseFolded:
		return "folded"
	default:
		return "unknown"
	}
}

// Game is an immutable Leduc poker definition.
type Game struct {
	cfg Config
}

// New validates cfg and returns the game it describes.
func New(cfg Config) (Game, error) {
	if err := cfg.Validate(); err != nil {
		return Game{}, fmt.Errorf("leduc: %w", err)
	}
	return Game{cfg: cfg}, nil
}

// Config returns a copy of the game's configuration.
func (g Game) Config() Config { return g.cfg }

// DeckSize is the number of cards in the deck.
func (g Game) DeckSize() int { return g.cfg.DeckSize }

// NumHands is the number of distinct private hands a player can hold.
func (g Game) NumHands() int { return g.cfg.DeckSize }

// NumActions is the size of the action alphabet, excluding NoAction.
func (g Game) NumActions() int { return 5 }

// MaxDepth bounds the number of actions in a hand: check, bet, raise, call in
// each round.
func (g Game) MaxDepth() int { return 8 }

// InitialState returns the root state with the configured antes and stacks.
func (g Game) InitialState() State {
	return State{
		LastAction:     NoAction,
		PlayerID:       0,
		StartingPlayer: 0,
		RoundOpener:    0,
		River:          false,
		CommunityPot:   g.cfg.CommunityPot,
		Stack:          g.cfg.Stack,
	}
}

// ActionList returns the legal actions in s as a half-open range. The range
// is empty when s is terminal.
func (g Game) ActionList(s State) Range {
	if g.IsTerminal(s) {
		return Range{}
	}
	switch s.LastAction {
	case NoAction:
		return Range{Check, Bet + 1}
	case Check:
		// Only the opener's check reaches here; a check behind closes the round.
		return Range{Check, Bet + 1}
	case Bet:
		return Range{Raise, Call + 1}
	case Call:
		// A call closes the round. Act resets LastAction when the board is
		// dealt, so this is only reached for states built by hand.
		return Range{Check, Bet + 1}
	case Raise:
		return Range{Fold, Call + 1}
	default:
		panic(fmt.Sprintf("leduc: no action list after %v", s.LastAction))
	}
}

// LegalActions implements games.Game.
func (g Game) LegalActions(s State) []Action {
	return g.ActionList(s).Actions()
}

// IsLegal reports whether a may be played in s.
func (g Game) IsLegal(s State, a Action) bool {
	return g.ActionList(s).Contains(a)
}

// IsTerminal reports whether the hand is over: a fold at any time, or the
// river round closing on a call or a check behind.
func (g Game) IsTerminal(s State) bool {
	return (s.LastAction == Fold) ||
		(s.River && s.LastAction == Call) ||
		(s.River && s.LastAction == Check && s.PlayerID == s.RoundOpener)
}

// Phase classifies s.
func (g Game) Phase(s State) Phase {
	switch {
	case s.LastAction == Fold:
		return PhaseFolded
	case g.IsTerminal(s):
		return PhaseShowdown
	case s.River:
		return PhaseRiver
	default:
		return PhasePreflop
	}
}

// BetSize is the bet size of the round s is in.
func (g Game) BetSize(s State) int {
	if s.River {
		return g.cfg.BetSizes[1]
	}
	return g.cfg.BetSizes[0]
}

// Act returns the state after the player to act plays a.
func (g Game) Act(s State, a Action) State {
	if !g.IsLegal(s, a) {
		panic(fmt.Sprintf("leduc: illegal action %v in %s", a, g.StateString(s)))
	}

	me, opp := s.PlayerID, games.Other(s.PlayerID)
	owed := s.CommunityPot[opp] - s.CommunityPot[me]

	var chips int
	switch a {
	case Bet:
		chips = g.BetSize(s)
	case Call:
		chips = owed
	case Raise:
		chips = owed + g.BetSize(s)
	}
	if chips > s.Stack[me] {
		panic(fmt.Sprintf("leduc: player %d cannot cover %d chips in %s", me, chips, g.StateString(s)))
	}

	next := s
	next.LastAction = a
	next.PlayerID = opp
	next.CommunityPot[me] += chips
	next.Stack[me] -= chips

	if !s.River && closesRound(s, a) {
		next.River = true
		next.LastAction = NoAction
		next.RoundOpener = next.PlayerID
	}
	return next
}

func closesRound(s State, a Action) bool {
	return a == Call || (a == Check && s.PlayerID != s.RoundOpener)
}

// PlayerID implements games.Game.
func (g Game) PlayerID(s State) int { return s.PlayerID }

// RelativePot is the current pot as a multiple of the antes. It is zero when
// the game is configured without antes.
func (g Game) RelativePot(s State) float64 {
	start := g.cfg.CommunityPot[0] + g.cfg.CommunityPot[1]
	if start == 0 {
		return 0
	}
	return float64(s.CommunityPot[0]+s.CommunityPot[1]) / float64(start)
}

var _ games.Game[State, Action] = Game{}
