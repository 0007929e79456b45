package systems

import (
	"fmt"

	"cubeview/events"
)

// Event is an input event produced by the windowing layer
type Event = events.Event

// Event type constants
const (
	EventResize         events.Type = "resize"
	EventKeyPress       events.Type = "key_press"
	EventKeyRelease     events.Type = "key_release"
	EventCloseRequested events.Type = "close_requested"
)

// Key is a platform independent key identifier
type Key uint16

// Keys the viewer reacts to
const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyEscape:  "escape",
	KeyW:       "w",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
}

// String returns the lower-case key name
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// ParseKey maps a key name back onto its Key
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name && k != KeyUnknown {
			return k, true
		}
	}
	return KeyUnknown, false
}

// ResizeEvent is emitted when the framebuffer size changes
type ResizeEvent struct {
	Width  int
	Height int
}

// Type returns the event type
func (e ResizeEvent) Type() events.Type {
	return EventResize
}

// KeyPressEvent is emitted on the press edge of a key. Repeat is set for
// auto-repeat presses generated while the key is held down.
type KeyPressEvent struct {
	Key    Key
	Repeat bool
}

// Type returns the event type
func (e KeyPressEvent) Type() events.Type {
	return EventKeyPress
}

// KeyReleaseEvent is emitted when a key is released
type KeyReleaseEvent struct {
	Key Key
}

// Type returns the event type
func (e KeyReleaseEvent) Type() events.Type {
	return EventKeyRelease
}

// CloseRequestedEvent is emitted when the window is asked to close
type CloseRequestedEvent struct{}

// Type returns the event type
func (e CloseRequestedEvent) Type() events.Type {
	return EventCloseRequested
}
