package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"cubeview/platform"
)

// Game implements ebiten.Game interface.
type Game struct {
	app     *App
	painter *platform.Painter
}

// NewGame creates a game around a windowed app
func NewGame(app *App) *Game {
	return &Game{
		app:     app,
		painter: platform.NewPainter(app.messages),
	}
}

// Update runs one frame of the loop: poll, dispatch, record, sync.
func (g *Game) Update() error {
	if !g.app.loop.Step() {
		return ebiten.Termination
	}
	return nil
}

// Draw paints the most recently presented frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.app.recorder.Presented(), g.app.status())
}

// Layout implements ebiten.Game's Layout. The framebuffer follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.app.input.SetFramebufferSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// RunWindow opens the window and blocks until it closes
func (a *App) RunWindow() error {
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetWindowTitle(a.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(a.cfg.TPS)

	return ebiten.RunGame(NewGame(a))
}
