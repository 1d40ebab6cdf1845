package main

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/CornellDataScience/PokerBot/internal/config"
	"github.com/CornellDataScience/PokerBot/internal/randutil"
	"github.com/CornellDataScience/PokerBot/internal/strategy"
	"github.com/CornellDataScience/PokerBot/sdk/games"
	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
)

var (
	errIllegalAction = errors.New("illegal action")
	errHandOver      = errors.New("hand already finished")
)

type WalkCmd struct {
	Game     string `help:"game to play (kuhn|leduc)" enum:"kuhn,leduc" default:"kuhn"`
	Actions  string `help:"comma separated actions to play from the root"`
	Random   bool   `help:"finish the hand with uniformly random legal actions"`
	Strategy string `help:"finish the hand by sampling both players from this strategy file" type:"existingfile"`
	Seed     int64  `help:"seed for dealing and random playouts" default:"1"`
}

func (cmd *WalkCmd) Run(ctx context.Context, cfg *config.Config) error {
	script := strategy.SplitPath(cmd.Actions)
	logger := log.With().Str("game", cmd.Game).Logger()

	switch cmd.Game {
	case "kuhn":
		g, err := cfg.KuhnGame()
		if err != nil {
			return err
		}
		choose, err := walkChooser[kuhn.State, kuhn.Action](ctx, cmd, g, g.NumHands(), kuhn.ParseAction, logger)
		if err != nil {
			return err
		}
		s, _, err := playout[kuhn.State, kuhn.Action](ctx, g, kuhn.ParseAction, script, choose, logger)
		if err != nil {
			return err
		}
		logger.Info().
			Str("state", g.StateString(s)).
			Bool("terminal", g.IsTerminal(s)).
			Float64("relative_pot", g.RelativePot(s)).
			Msg("walk finished")
	case "leduc":
		g, err := cfg.LeducGame()
		if err != nil {
			return err
		}
		choose, err := walkChooser[leduc.State, leduc.Action](ctx, cmd, g, g.NumHands(), leduc.ParseAction, logger)
		if err != nil {
			return err
		}
		s, _, err := playout[leduc.State, leduc.Action](ctx, g, leduc.ParseAction, script, choose, logger)
		if err != nil {
			return err
		}
		logger.Info().
			Str("state", g.StateString(s)).
			Stringer("phase", g.Phase(s)).
			Float64("relative_pot", g.RelativePot(s)).
			Msg("walk finished")
	default:
		return fmt.Errorf("unknown game %q", cmd.Game)
	}
	return nil
}

// walkChooser returns nil when the walk stops after the scripted actions.
// Otherwise both players are dealt a private hand and play the rest of the
// hand from the strategy file, or uniformly without one.
func walkChooser[S comparable, A ~int](
	ctx context.Context,
	cmd *WalkCmd,
	g games.Game[S, A],
	numHands int,
	parse func(string) (A, error),
	logger zerolog.Logger,
) (func(S) A, error) {
	if !cmd.Random && cmd.Strategy == "" {
		return nil, nil
	}
	pol, err := loadPolicy(ctx, cmd.Strategy, g, numHands, parse)
	if err != nil {
		return nil, err
	}
	rng := randutil.New(cmd.Seed)
	hands := randutil.Deal(rng, numHands, games.Players)
	logger.Debug().Ints("hands", hands).Int64("seed", cmd.Seed).Msg("dealt")
	return policyChooser(g, pol, rng, hands), nil
}

// loadPolicy reads the strategy at path, or plays uniformly when path is
// empty.
func loadPolicy[S comparable, A ~int](
	ctx context.Context,
	path string,
	g games.Game[S, A],
	numHands int,
	parse func(string) (A, error),
) (strategy.Policy[S, A], error) {
	if path == "" {
		return strategy.Uniform[S, A]{Game: g}, nil
	}
	st, err := strategy.LoadFile(ctx, path, g, numHands, parse)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("nodes", st.Len()).Msg("strategy loaded")
	return st, nil
}

func policyChooser[S comparable, A ~int](g games.Game[S, A], pol strategy.Policy[S, A], rng *rand.Rand, hands []int) func(S) A {
	return func(s S) A {
		return pol.Choose(rng, s, hands[g.PlayerID(s)])
	}
}

// playout applies script from the initial state and, when choose is non-nil,
// keeps asking it for actions until the hand ends.
func playout[S comparable, A ~int](
	ctx context.Context,
	g games.Game[S, A],
	parse func(string) (A, error),
	script []string,
	choose func(S) A,
	logger zerolog.Logger,
) (S, []A, error) {
	s := g.InitialState()
	var line []A

	step := func(a A) {
		next := g.Act(s, a)
		logger.Debug().
			Int("player", g.PlayerID(s)).
			Str("action", g.ActionString(a)).
			Str("state", g.StateString(next)).
			Msg("act")
		s = next
		line = append(line, a)
	}

	for i, name := range script {
		if err := ctx.Err(); err != nil {
			return s, line, err
		}
		a, err := parse(name)
		if err != nil {
			return s, line, fmt.Errorf("action %d: %w", i, err)
		}
		if g.IsTerminal(s) {
			return s, line, fmt.Errorf("action %d %q: %w", i, name, errHandOver)
		}
		if !slices.Contains(g.LegalActions(s), a) {
			return s, line, fmt.Errorf("action %d %q in %s: %w", i, name, g.StateString(s), errIllegalAction)
		}
		step(a)
	}

	if choose == nil {
		return s, line, nil
	}
	for !g.IsTerminal(s) {
		if err := ctx.Err(); err != nil {
			return s, line, err
		}
		a := choose(s)
		if !slices.Contains(g.LegalActions(s), a) {
			return s, line, fmt.Errorf("chosen action %s in %s: %w", g.ActionString(a), g.StateString(s), errIllegalAction)
		}
		step(a)
	}
	return s, line, nil
}
