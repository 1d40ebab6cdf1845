package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/CornellDataScience/PokerBot/internal/config"
	"github.com/CornellDataScience/PokerBot/internal/fileutil"
	"github.com/CornellDataScience/PokerBot/internal/render"
	"github.com/CornellDataScience/PokerBot/sdk/games"
	"github.com/CornellDataScience/PokerBot/sdk/games/kuhn"
	"github.com/CornellDataScience/PokerBot/sdk/games/leduc"
	"github.com/CornellDataScience/PokerBot/sdk/games/tree"
)

type TreeCmd struct {
	Game  string `help:"game to render (kuhn|leduc)" enum:"kuhn,leduc" default:"kuhn"`
	Dedup bool   `help:"share one node between equal public states"`
	Color bool   `help:"colour the output"`
	Out   string `help:"write the tree to this file instead of stdout" type:"path"`
}

func (cmd *TreeCmd) Run(ctx context.Context, cfg *config.Config) error {
	switch cmd.Game {
	case "kuhn":
		g, err := cfg.KuhnGame()
		if err != nil {
			return err
		}
		return renderTree[kuhn.State, kuhn.Action](ctx, g, cmd)
	case "leduc":
		g, err := cfg.LeducGame()
		if err != nil {
			return err
		}
		return renderTree[leduc.State, leduc.Action](ctx, g, cmd)
	default:
		return fmt.Errorf("unknown game %q", cmd.Game)
	}
}

func renderTree[S comparable, A ~int](ctx context.Context, g games.Game[S, A], cmd *TreeCmd) error {
	t, err := tree.Build(ctx, g, tree.Options{Dedup: cmd.Dedup})
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}
	log.Info().
		Str("game", cmd.Game).
		Int("nodes", t.Len()).
		Int("terminals", t.Terminals()).
		Bool("dedup", cmd.Dedup).
		Msg("tree built")

	opts := render.Options{Styled: cmd.Color}
	write := func(w io.Writer) error {
		return render.Tree(w, g, t, opts)
	}

	if cmd.Out == "" {
		return write(os.Stdout)
	}
	if err := fileutil.WriteAtomic(cmd.Out, 0o644, write); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	log.Info().Str("path", cmd.Out).Msg("tree written")
	return nil
}
