package systems

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"cubeview/config"
)

// ErrDegenerateViewport is returned for a framebuffer with no area, such as
// a minimized window. The projection is left untouched.
var ErrDegenerateViewport = errors.New("degenerate viewport")

// ProjectionTarget receives the projection matrix whenever it is rebuilt
type ProjectionTarget interface {
	SetProjection(projection mgl32.Mat4)
}

// ProjectionSystem owns the perspective projection. Field of view and
// clip planes are constant; only the aspect ratio follows the framebuffer.
type ProjectionSystem struct {
	fovY, near, far float32

	width, height int
	aspect        float32
	matrix        mgl32.Mat4
	recomputes    int

	target ProjectionTarget
}

// NewProjectionSystem creates a projection for the given framebuffer size.
// A degenerate size falls back to the default window aspect ratio.
func NewProjectionSystem(width, height int) *ProjectionSystem {
	s := &ProjectionSystem{
		fovY: mgl32.DegToRad(config.FieldOfViewDeg),
		near: config.NearPlane,
		far:  config.FarPlane,
	}
	if width <= 0 || height <= 0 {
		width, height = config.GetWindowSize()
	}
	s.rebuild(width, height)
	s.recomputes = 0
	return s
}

// SetTarget sets the transform that is told about projection changes
func (s *ProjectionSystem) SetTarget(target ProjectionTarget) {
	s.target = target
	if target != nil {
		target.SetProjection(s.matrix)
	}
}

// OnResize rebuilds the projection for a new framebuffer size. The
// matrix is recomputed on every valid resize, even when the aspect ratio
// does not change.
func (s *ProjectionSystem) OnResize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, ErrDegenerateViewport)
	}

	s.rebuild(width, height)
	if s.target != nil {
		s.target.SetProjection(s.matrix)
	}
	return nil
}

func (s *ProjectionSystem) rebuild(width, height int) {
	s.width, s.height = width, height
	s.aspect = float32(width) / float32(height)
	s.matrix = mgl32.Perspective(s.fovY, s.aspect, s.near, s.far)
	s.recomputes++
}

// Matrix returns the current projection matrix
func (s *ProjectionSystem) Matrix() mgl32.Mat4 {
	return s.matrix
}

// Aspect returns the aspect ratio the projection was built with
func (s *ProjectionSystem) Aspect() float32 {
	return s.aspect
}

// Viewport returns the last valid framebuffer size
func (s *ProjectionSystem) Viewport() (width, height int) {
	return s.width, s.height
}

// Recomputes returns how many times the projection was rebuilt after construction
func (s *ProjectionSystem) Recomputes() int {
	return s.recomputes
}
