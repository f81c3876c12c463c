//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"winter/internal/app"
	"winter/internal/config"
	"winter/pkg/core"
	"winter/pkg/snow"
	"winter/pkg/sprite"

	"github.com/hajimehoshi/ebiten/v2"
)

const hudWidth = 240

func main() {
	var overrides config.Overrides
	overrides.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := overrides.Resolve(flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}

	img, err := sprite.Load(cfg.Sprite)
	if err != nil {
		log.Fatal(err)
	}

	clock := core.NewFrameClock(cfg.TPS)
	field, err := snow.NewField(cfg.Snow, clock, core.NewRNG(cfg.Seed))
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbose {
		field.SetLogger(log.Default())
	}
	if err := field.SetSprite(img); err != nil {
		log.Fatal(err)
	}
	field.SetOnDrained(func() { log.Printf("[winter] snow stopped") })

	game := app.New(field, clock, hudWidth)

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
