package beanfall

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window Run opens.
type RunConfig struct {
	Title         string
	Width, Height int
	// TPS is the update rate. Zero keeps Ebitengine's default of 60.
	TPS int
	// Transparent makes the window background see-through, for a SceneHost
	// run on its own.
	Transparent bool
}

// RunConfig returns the window settings of c.
func (c Config) RunConfig() RunConfig {
	return RunConfig{
		Title:  c.Window.Title,
		Width:  c.Window.Width,
		Height: c.Window.Height,
		TPS:    c.Window.TPS,
	}
}

// Run opens a window and runs game until it is closed or Update returns
// ebiten.Termination.
func Run(game ebiten.Game, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{
		ScreenTransparent: cfg.Transparent,
	})
	if err != nil {
		return fmt.Errorf("run %q: %w", cfg.Title, err)
	}
	return nil
}
