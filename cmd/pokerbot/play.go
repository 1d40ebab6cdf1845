package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CornellDataScience/PokerBot/internal/config"
	"github.com/CornellDataScience/PokerBot/internal/tui"
	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
)

type PlayCmd struct {
	Game     string `help:"game to play (kuhn|leduc)" enum:"kuhn,leduc" default:"kuhn"`
	Seat     int    `help:"your player id (0 acts first)" default:"0"`
	Strategy string `help:"strategy file for the opponent; uniform random without one" type:"existingfile"`
	Seed     int64  `help:"seed of the first hand; hand i uses seed+i" default:"1"`
}

func (cmd *PlayCmd) Run(ctx context.Context, cfg *config.Config) error {
	logger := log.With().Str("game", cmd.Game).Logger()

	var model tea.Model
	switch cmd.Game {
	case "kuhn":
		g, err := cfg.KuhnGame()
		if err != nil {
			return err
		}
		pol, err := loadPolicy[kuhn.State, kuhn.Action](ctx, cmd.Strategy, g, g.NumHands(), kuhn.ParseAction)
		if err != nil {
			return err
		}
		model, err = tui.New(tui.Options[kuhn.State, kuhn.Action]{
			Game: g, Parse: kuhn.ParseAction, Policy: pol,
			NumHands: g.NumHands(), Seat: cmd.Seat, Seed: cmd.Seed,
			Pot: g.RelativePot, Logger: logger,
		})
		if err != nil {
			return err
		}
	case "leduc":
		g, err := cfg.LeducGame()
		if err != nil {
			return err
		}
		pol, err := loadPolicy[leduc.State, leduc.Action](ctx, cmd.Strategy, g, g.NumHands(), leduc.ParseAction)
		if err != nil {
			return err
		}
		model, err = tui.New(tui.Options[leduc.State, leduc.Action]{
			Game: g, Parse: leduc.ParseAction, Policy: pol,
			NumHands: g.NumHands(), Seat: cmd.Seat, Seed: cmd.Seed,
			Pot: g.RelativePot, Logger: logger,
		})
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown game %q", cmd.Game)
	}

	logger.Debug().Int("seat", cmd.Seat).Bool("strategy", cmd.Strategy != "").Msg("starting table")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run table: %w", err)
	}
	return nil
}
