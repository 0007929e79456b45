// Package platform binds the viewer to ebiten: it turns ebiten's input
// state into events once per tick and paints recorded frames.
package platform

import (
	"iter"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"cubeview/systems"
)

// Input implements engine.EventSource on top of ebiten's polled input state
type Input struct {
	// Map of ebiten keys to viewer keys
	keys []keyBinding

	width, height int
	resized       bool
	closeSent     bool
}

type keyBinding struct {
	ebiten ebiten.Key
	key    systems.Key
}

// NewInput creates an input source for a window of the given size
func NewInput(width, height int) *Input {
	return &Input{
		keys: []keyBinding{
			// Arrow keys
			{ebiten.KeyArrowUp, systems.KeyUp},
			{ebiten.KeyArrowDown, systems.KeyDown},
			{ebiten.KeyArrowLeft, systems.KeyLeft},
			{ebiten.KeyArrowRight, systems.KeyRight},

			{ebiten.KeyEscape, systems.KeyEscape},

			{ebiten.KeyW, systems.KeyW},
			{ebiten.KeyA, systems.KeyA},
			{ebiten.KeyS, systems.KeyS},
			{ebiten.KeyD, systems.KeyD},
		},
		width:  width,
		height: height,
	}
}

// SetFramebufferSize records the size reported by Layout. A change is
// delivered as a ResizeEvent on the next poll.
func (in *Input) SetFramebufferSize(width, height int) {
	if width == in.width && height == in.height {
		return
	}
	in.width, in.height = width, height
	in.resized = true
}

// Poll yields this tick's events: a pending resize, a close request, then
// key press and release edges. Must be called from ebiten's Update.
func (in *Input) Poll() iter.Seq[systems.Event] {
	return func(yield func(systems.Event) bool) {
		if in.resized {
			in.resized = false
			if !yield(systems.ResizeEvent{Width: in.width, Height: in.height}) {
				return
			}
		}

		if ebiten.IsWindowBeingClosed() && !in.closeSent {
			in.closeSent = true
			if !yield(systems.CloseRequestedEvent{}) {
				return
			}
		}

		for _, b := range in.keys {
			if inpututil.IsKeyJustPressed(b.ebiten) {
				if !yield(systems.KeyPressEvent{Key: b.key}) {
					return
				}
			}
			if inpututil.IsKeyJustReleased(b.ebiten) {
				if !yield(systems.KeyReleaseEvent{Key: b.key}) {
					return
				}
			}
		}
	}
}
