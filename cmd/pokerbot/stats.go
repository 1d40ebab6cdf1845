package main

import (
	"context"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/CornellDataScience/PokerBot/internal/config"
	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
	"github.com/CornellDataScience/PokerBot/sdk/games/tree"
)

type StatsCmd struct{}

func (cmd *StatsCmd) Run(ctx context.Context, cfg *config.Config) error {
	kg, err := cfg.KuhnGame()
	if err != nil {
		return err
	}
	lg, err := cfg.LeducGame()
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	var kuhnStats, leducStats tree.Stats

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		kuhnStats, err = tree.Collect[kuhn.State, kuhn.Action](ctx, kg, clock)
		return err
	})
	eg.Go(func() error {
		var err error
		leducStats, err = tree.Collect[leduc.State, leduc.Action](ctx, lg, clock)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	logStats("kuhn", kg.MaxDepth(), kuhnStats)
	logStats("leduc", lg.MaxDepth(), leducStats)
	return nil
}

func logStats(game string, declaredDepth int, s tree.Stats) {
	log.Info().
		Str("game", game).
		Int("nodes", s.Nodes).
		Int("terminals", s.Terminals).
		Int("states", s.States).
		Int("max_depth", s.MaxDepth).
		Int("declared_max_depth", declaredDepth).
		Dur("elapsed", s.Elapsed).
		Msg("game tree")
}
