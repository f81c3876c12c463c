package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"winter/internal/config"
	"winter/internal/term"
	"winter/pkg/core"
	"winter/pkg/snow"
	"winter/pkg/sprite"

	"github.com/gdamore/tcell/v2"
)

func main() {
	var overrides config.Overrides
	overrides.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "append lifecycle logs to this file (stderr is owned by the terminal)")
	flag.Parse()

	if err := run(&overrides, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "snowterm: %v\n", err)
		os.Exit(1)
	}
}

func run(overrides *config.Overrides, logPath string) error {
	cfg, err := overrides.Resolve(flag.CommandLine)
	if err != nil {
		return err
	}

	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	img, err := sprite.Load(cfg.Sprite)
	if err != nil {
		return err
	}

	clock := core.NewFrameClock(0)
	field, err := snow.NewField(cfg.TerminalParams(), clock, core.NewRNG(cfg.Seed))
	if err != nil {
		return err
	}
	if cfg.Verbose {
		field.SetLogger(log.Default())
	}
	if err := field.SetSprite(img); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	a, err := term.New(screen, field, clock, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, cfg.TPS)
	if err != nil {
		return err
	}
	field.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
