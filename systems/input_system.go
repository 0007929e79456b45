package systems

import (
	"errors"
	"log/slog"

	"cubeview/config"
	"cubeview/events"
)

// Direction constants for movement
const (
	DirUp = iota + 1
	DirDown
	DirLeft
	DirRight
)

// InputSystem dispatches input events to the transform and projection
// systems, in the order they were received.
type InputSystem struct {
	manager    *events.Manager
	transform  *TransformSystem
	projection *ProjectionSystem
	log        *slog.Logger

	// Map of keys to movement directions
	movementKeys map[Key]int
	closeKeys    map[Key]bool

	closeRequested bool
}

// NewInputSystem creates an input system with the arrow keys bound to movement
// and Escape bound to close.
func NewInputSystem(transform *TransformSystem, projection *ProjectionSystem, log *slog.Logger) *InputSystem {
	if log == nil {
		log = slog.Default()
	}
	s := &InputSystem{
		manager:      events.NewManager(),
		transform:    transform,
		projection:   projection,
		log:          log,
		movementKeys: make(map[Key]int),
		closeKeys:    map[Key]bool{KeyEscape: true},
	}

	// Arrow keys
	s.movementKeys[KeyUp] = DirUp
	s.movementKeys[KeyDown] = DirDown
	s.movementKeys[KeyLeft] = DirLeft
	s.movementKeys[KeyRight] = DirRight

	s.manager.Subscribe(EventResize, s.handleResize)
	s.manager.Subscribe(EventKeyPress, s.handleKeyPress)
	s.manager.Subscribe(EventCloseRequested, s.handleClose)

	return s
}

// EnableWASD binds W, A, S and D in addition to the arrow keys
func (s *InputSystem) EnableWASD() {
	s.movementKeys[KeyW] = DirUp
	s.movementKeys[KeyS] = DirDown
	s.movementKeys[KeyA] = DirLeft
	s.movementKeys[KeyD] = DirRight
}

// Dispatch applies a single event. Events nobody handles are ignored.
func (s *InputSystem) Dispatch(event Event) {
	if !s.manager.Emit(event) && event != nil {
		s.log.Debug("ignoring event", "type", event.Type())
	}
}

// CloseRequested reports whether a close request has been dispatched
func (s *InputSystem) CloseRequested() bool {
	return s.closeRequested
}

func (s *InputSystem) handleResize(e events.Event) {
	resize := e.(ResizeEvent)
	err := s.projection.OnResize(resize.Width, resize.Height)
	if errors.Is(err, ErrDegenerateViewport) {
		s.log.Debug("skipping projection update", "width", resize.Width, "height", resize.Height)
		return
	}
	s.log.Debug("projection updated", "width", resize.Width, "height", resize.Height, "aspect", s.projection.Aspect())
}

func (s *InputSystem) handleKeyPress(e events.Event) {
	press := e.(KeyPressEvent)

	// One step per press: held keys do not move the cube again
	if press.Repeat {
		return
	}

	if s.closeKeys[press.Key] {
		s.closeRequested = true
		return
	}

	dir, ok := s.movementKeys[press.Key]
	if !ok {
		return
	}
	dx, dy := getDeltaFromDirection(dir)
	s.transform.ApplyTranslation(dx, dy)
}

func (s *InputSystem) handleClose(events.Event) {
	s.closeRequested = true
}

// getDeltaFromDirection converts a direction to a step along the two movable axes
func getDeltaFromDirection(dir int) (dx, dy float32) {
	switch dir {
	case DirUp:
		dy = config.StepSize
	case DirDown:
		dy = -config.StepSize
	case DirLeft:
		dx = -config.StepSize
	case DirRight:
		dx = config.StepSize
	}
	return dx, dy
}
