// Package kuhn implements the public-state transition system of two-player
// Kuhn poker: one betting round, an ante of one chip each and a single bet of
// one chip.
package kuhn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CornellDataScience/PokerBot/sdk/games"
)

const (
	// Ante is the chip each player puts in before the cards are dealt.
	Ante = 1
	// BetSize is the size of the only bet allowed in the hand.
	BetSize = 1
)

// Action is a move in Kuhn poker.
type Action int

const (
	// NoAction marks the root of the tree, before anyone has acted.
	NoAction Action = -1

	Fold  Action = 0
	Check Action = 1
	Call  Action = 2
	// Raise opens the betting. Kuhn allows one bet per hand.
	Raise Action = 3
)

func (a Action) String() string {
	switch a {
	case NoAction:
		return "start"
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		panic(fmt.Sprintf("kuhn: unknown action %d", int(a)))
	}
}

// ParseAction converts the name printed by Action.String back to an Action.
// The sentinel "start" is not accepted.
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise", "bet":
		return Raise, nil
	default:
		return NoAction, fmt.Errorf("kuhn: unknown action %q", name)
	}
}

// State is the public state of a hand. It is a plain value and may be used as
// a map key.
type State struct {
	// LastAction is the previous move, or NoAction at the root.
	LastAction Action
	// PlayerID is the player to act next.
	PlayerID int
	// StartingPlayer acted first this hand.
	StartingPlayer int
	// Pot holds each player's contribution.
	Pot [2]int
}

// Game is an immutable Kuhn poker definition.
type Game struct {
	deckSize int
}

// New returns a Kuhn poker game dealt from deckSize distinct ranks.
func New(deckSize int) (Game, error) {
	if deckSize < games.Players {
		return Game{}, errors.New("kuhn: deck size must allow one card per player")
	}
	return Game{deckSize: deckSize}, nil
}

// DeckSize is the number of distinct ranks available for private dealing.
func (g Game) DeckSize() int { return g.deckSize }

// NumHands is the number of distinct private hands a player can hold.
func (g Game) NumHands() int { return g.deckSize }

// NumActions is the size of the action alphabet.
func (g Game) NumActions() int { return 4 }

// MaxDepth bounds the number of actions in a hand (check, raise, call).
func (g Game) MaxDepth() int { return 3 }

// InitialState returns the root state with both antes in the pot.
func (g Game) InitialState() State {
	return State{
		LastAction:     NoAction,
		PlayerID:       0,
		StartingPlayer: 0,
		Pot:            [2]int{Ante, Ante},
	}
}

// ActionList returns the two choices available in s. Every Kuhn decision is
// binary: check or raise with no bet outstanding, fold or call facing one.
// Both values are NoAction when s is terminal.
func (g Game) ActionList(s State) (Action, Action) {
	if g.IsTerminal(s) {
		return NoAction, NoAction
	}
	switch s.LastAction {
	case NoAction, Check:
		return Check, Raise
	case Raise:
		return Fold, Call
	default:
		panic(fmt.Sprintf("kuhn: no action list after %v", s.LastAction))
	}
}

// LegalActions implements games.Game.
func (g Game) LegalActions(s State) []Action {
	first, second := g.ActionList(s)
	if first == second {
		return nil
	}
	return []Action{first, second}
}

// IsLegal reports whether a may be played in s.
func (g Game) IsLegal(s State, a Action) bool {
	first, second := g.ActionList(s)
	return first != second && (a == first || a == second)
}

// IsTerminal reports whether the hand is over: someone folded, a bet was
// called, or both players checked.
func (g Game) IsTerminal(s State) bool {
	return s.LastAction == Fold ||
		s.LastAction == Call ||
		(s.LastAction == Check && s.PlayerID == s.StartingPlayer)
}

// Act returns the state after the player to act plays a.
func (g Game) Act(s State, a Action) State {
	if !g.IsLegal(s, a) {
		panic(fmt.Sprintf("kuhn: illegal action %v in %s", a, g.StateString(s)))
	}
	next := s
	next.LastAction = a
	next.PlayerID = games.Other(s.PlayerID)

	me, opp := s.PlayerID, games.Other(s.PlayerID)
	switch a {
	case Raise:
		next.Pot[me] += BetSize
	case Call:
		next.Pot[me] = s.Pot[opp]
	}
	return next
}

// PlayerID implements games.Game.
func (g Game) PlayerID(s State) int { return s.PlayerID }

// RelativePot is the current pot as a multiple of the antes.
func (g Game) RelativePot(s State) float64 {
	return float64(s.Pot[0]+s.Pot[1]) / float64(games.Players*Ante)
}

var _ games.Game[State, Action] = Game{}
