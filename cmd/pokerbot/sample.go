package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/CornellDataScience/PokerBot/internal/config"
	"github.com/CornellDataScience/PokerBot/internal/randutil"
	"github.com/CornellDataScience/PokerBot/internal/statistics"
	"github.com/CornellDataScience/PokerBot/internal/strategy"
	"github.com/CornellDataScience/PokerBot/sdk/games"
	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
)

type SampleCmd struct {
	Game    string `help:"game to sample (kuhn|leduc)" enum:"kuhn,leduc" default:"leduc"`
	Hands   int    `help:"number of random hands" default:"10000"`
	Seed    int64  `help:"seed of the first hand; hand i uses seed+i" default:"1"`
	Workers int    `help:"concurrent workers" default:"4"`

	Strategy string `help:"sample both players from this strategy file instead of uniformly" type:"existingfile"`
}

func (cmd *SampleCmd) Run(ctx context.Context, cfg *config.Config) error {
	if cmd.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", cmd.Hands)
	}

	var (
		stats *statistics.Statistics
		err   error
	)
	switch cmd.Game {
	case "kuhn":
		g, gerr := cfg.KuhnGame()
		if gerr != nil {
			return gerr
		}
		pol, perr := loadPolicy[kuhn.State, kuhn.Action](ctx, cmd.Strategy, g, g.NumHands(), kuhn.ParseAction)
		if perr != nil {
			return perr
		}
		showdown := func(s kuhn.State) bool { return s.LastAction != kuhn.Fold }
		stats, err = sample[kuhn.State, kuhn.Action](ctx, g, pol, g.NumHands(), cmd.Hands, cmd.Seed, cmd.Workers, showdown, g.RelativePot)
	case "leduc":
		g, gerr := cfg.LeducGame()
		if gerr != nil {
			return gerr
		}
		pol, perr := loadPolicy[leduc.State, leduc.Action](ctx, cmd.Strategy, g, g.NumHands(), leduc.ParseAction)
		if perr != nil {
			return perr
		}
		showdown := func(s leduc.State) bool { return g.Phase(s) == leduc.PhaseShowdown }
		stats, err = sample[leduc.State, leduc.Action](ctx, g, pol, g.NumHands(), cmd.Hands, cmd.Seed, cmd.Workers, showdown, g.RelativePot)
	default:
		return fmt.Errorf("unknown game %q", cmd.Game)
	}
	if err != nil {
		return err
	}
	if err := stats.Validate(); err != nil {
		return fmt.Errorf("sample statistics: %w", err)
	}

	lo, hi := stats.ConfidenceInterval95()
	log.Info().
		Str("game", cmd.Game).
		Bool("strategy", cmd.Strategy != "").
		Int("hands", stats.Hands).
		Float64("mean_pot", stats.Mean()).
		Float64("stddev", stats.StdDev()).
		Float64("ci95_low", lo).
		Float64("ci95_high", hi).
		Float64("median_pot", stats.Median()).
		Float64("p90_pot", stats.Percentile(0.9)).
		Float64("max_pot", stats.MaxPot).
		Float64("showdown_rate", stats.ShowdownRate()).
		Int("max_depth", stats.MaxDepth).
		Msg("random playouts")
	return nil
}

// sample plays hands seeded playouts split across workers and merges their
// statistics. Each hand deals private hands to both players and lets pol
// choose every action.
func sample[S comparable, A ~int](
	ctx context.Context,
	g games.Game[S, A],
	pol strategy.Policy[S, A],
	numHands int,
	hands int,
	seed int64,
	workers int,
	showdown func(S) bool,
	pot func(S) float64,
) (*statistics.Statistics, error) {
	workers = max(1, min(workers, hands))
	parts := make([]statistics.Statistics, workers)
	starter := g.PlayerID(g.InitialState())

	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		eg.Go(func() error {
			for i := w; i < hands; i += workers {
				handSeed := seed + int64(i)
				rng := randutil.New(handSeed)
				choose := policyChooser(g, pol, rng, randutil.Deal(rng, numHands, games.Players))
				s, line, err := playout[S, A](ctx, g, nil, nil, choose, zerolog.Nop())
				if err != nil {
					return fmt.Errorf("hand %d: %w", i, err)
				}
				parts[w].Add(statistics.Playout{
					Seed:           handSeed,
					StartingPlayer: starter,
					Depth:          len(line),
					RelativePot:    pot(s),
					Showdown:       showdown(s),
				})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for i := range parts {
		total.Merge(&parts[i])
	}
	return total, nil
}
