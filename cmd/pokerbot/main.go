package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/CornellDataScience/PokerBot/internal/config"
)

var cli struct {
	Debug  bool   `help:"enable debug logging"`
	Config string `help:"path to the HCL game configuration" default:"pokerbot.hcl" type:"path"`

	Tree   TreeCmd   `cmd:"" help:"render the public game tree of a game"`
	Stats  StatsCmd  `cmd:"" help:"count nodes, terminals and distinct states of every game"`
	Walk   WalkCmd   `cmd:"" help:"play a line of actions from the root and log each state"`
	Sample SampleCmd `cmd:"" help:"summarise pot sizes over many seeded random playouts"`
	Play   PlayCmd   `cmd:"" help:"play hands against a strategy in the terminal"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("pokerbot"),
		kong.Description("Public-state Kuhn and Leduc poker game trees"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Str("path", cli.Config).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Str("path", cli.Config).Msg("invalid config")
	}

	level := cfg.Log.Level
	if cli.Debug {
		level = "debug"
	}
	logger, err := setupLogger(level, cfg.Log.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	log.Logger = logger

	runCtx, stop := setupSignalHandler(context.Background(), logger)
	defer stop()

	switch ctx.Command() {
	case "tree":
		err = cli.Tree.Run(runCtx, cfg)
	case "stats":
		err = cli.Stats.Run(runCtx, cfg)
	case "walk":
		err = cli.Walk.Run(runCtx, cfg)
	case "sample":
		err = cli.Sample.Run(runCtx, cfg)
	case "play":
		err = cli.Play.Run(runCtx, cfg)
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		stop()
		log.Fatal().Err(err).Str("command", ctx.Command()).Msg("command failed")
	}
}
