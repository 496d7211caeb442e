package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"scratchcard/internal/client"
	"scratchcard/internal/config"
	"scratchcard/internal/config/env"
	"scratchcard/internal/host"
	"scratchcard/internal/scratch"
	"scratchcard/internal/ui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "engine config")
	background := flag.String("background", "", "cover image (png/jpeg)")
	debug := flag.Bool("debug", false, "log engine events")
	flag.Parse()

	if err := config.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	if *debug {
		scratch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	apiCfg, err := env.NewClientConfig()
	if err != nil {
		log.Fatal(err)
	}
	engine, err := env.NewEngineConfigFromYAML(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var game *ui.Game
	group := host.NewGroup(ctx, host.Options{
		Backend:    client.New(apiCfg.BaseURL(), apiCfg.Token(), apiCfg.Timeout()),
		Scratch:    engine.Scratch(),
		Audio:      engine.Audio(),
		Background: *background,
		Hooks: scratch.Hooks{
			OnCards: func(cards []*scratch.Card) { game.SetCards(cards) },
			OnCommit: func(res scratch.Result) {
				if res.Err != nil {
					log.Printf("card %s: commit failed: %v", res.CardID, res.Err)
				}
			},
		},
	})
	defer group.Close()

	cfg := group.Config()
	game = ui.NewGame(group, ui.GridFor(scratch.Box{W: cfg.DefaultWidth, H: cfg.DefaultHeight}))

	if err := ui.Run(game, 4); err != nil {
		log.Fatal(err)
	}
}
