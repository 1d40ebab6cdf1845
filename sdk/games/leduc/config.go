package leduc

import (
	"errors"
	"fmt"
)

// Config parameterises a Leduc game. Values are copied into the Game, so a
// Config may be reused after New returns.
type Config struct {
	// DeckSize is the number of cards private and board cards are dealt from.
	DeckSize int

	// CommunityPot is each player's ante at the start of the hand.
	CommunityPot [2]int

	// Stack is each player's remaining chips at the start of the hand.
	Stack [2]int

	// BetSizes holds the bet size of the first and second betting rounds.
	BetSizes [2]int
}

// DefaultConfig returns a six card deck, antes of one, stacks of ten and
// single-chip bets in both rounds.
func DefaultConfig() Config {
	return Config{
		DeckSize:     6,
		CommunityPot: [2]int{1, 1},
		Stack:        [2]int{10, 10},
		BetSizes:     [2]int{1, 1},
	}
}

// MaxCommitment is the most a player can add to the pot over a hand: a bet
// and a raise in each round.
func (c Config) MaxCommitment() int {
	return 2 * (c.BetSizes[0] + c.BetSizes[1])
}

// Validate ensures the configuration describes a playable hand.
func (c Config) Validate() error {
	if c.DeckSize < 3 {
		return errors.New("deck size must allow two private cards and a board card")
	}
	for i, b := range c.BetSizes {
		if b <= 0 {
			return fmt.Errorf("bet size for round %d must be > 0", i+1)
		}
	}
	for p := range c.CommunityPot {
		if c.CommunityPot[p] < 0 {
			return fmt.Errorf("community pot for player %d cannot be negative", p)
		}
		if c.Stack[p] < 0 {
			return fmt.Errorf("stack for player %d cannot be negative", p)
		}
		if c.Stack[p] < c.MaxCommitment() {
			return fmt.Errorf("stack for player %d must cover %d chips of betting", p, c.MaxCommitment())
		}
	}
	if c.CommunityPot[0] != c.CommunityPot[1] {
		return errors.New("antes must be equal")
	}
	return nil
}
