package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"scratchcard/internal/client"
	"scratchcard/internal/config"
	"scratchcard/internal/config/env"
	"scratchcard/internal/host"
	"scratchcard/internal/scratch"
	"scratchcard/internal/term"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "engine config")
	logPath := flag.String("log", "", "write engine logs to this file")
	flag.Parse()

	if err := config.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	// терминал занят экраном, поэтому лог только в файл
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		scratch.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	apiCfg, err := env.NewClientConfig()
	if err != nil {
		log.Fatal(err)
	}
	engine, err := env.NewEngineConfigFromYAML(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to init screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var view *term.View
	group := host.NewGroup(ctx, host.Options{
		Backend: client.New(apiCfg.BaseURL(), apiCfg.Token(), apiCfg.Timeout()),
		Scratch: engine.Scratch(),
		Audio:   engine.Audio(),
		Hooks: scratch.Hooks{
			OnCards: func(cards []*scratch.Card) { view.SetCards(cards) },
		},
	})
	defer group.Close()

	cfg := group.Config()
	view = term.New(screen, group, term.Grid(scratch.Box{W: cfg.DefaultWidth, H: cfg.DefaultHeight}))

	if err := view.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		log.Fatal(err)
	}
}
