package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"cubeview/components"
)

// TransformSystem owns the cube's transform and the per-frame dirty flag.
// It is driven from the frame loop's goroutine only.
type TransformSystem struct {
	transform *components.TransformComponent
	dirty     bool
}

// NewTransformSystem creates a transform system with the cube at the origin
func NewTransformSystem(view, projection mgl32.Mat4) *TransformSystem {
	return &TransformSystem{
		transform: components.NewTransformComponent(view, projection),
	}
}

// ApplyTranslation moves the cube by the given deltas. Movement is
// unbounded. The combined transform is rebuilt and the frame marked dirty.
func (s *TransformSystem) ApplyTranslation(dx, dy float32) {
	t := s.transform
	t.Position = mgl32.Vec3{t.Position.X() + dx, t.Position.Y() + dy, t.Position.Z()}
	t.Rebuild()
	s.dirty = true
}

// SetProjection replaces the projection term and rebuilds the combined
// transform. It does not mark the frame dirty: the position is unchanged.
func (s *TransformSystem) SetProjection(projection mgl32.Mat4) {
	s.transform.Projection = projection
	s.transform.Rebuild()
}

// CurrentTransform returns the latest projection * view * model matrix
func (s *TransformSystem) CurrentTransform() mgl32.Mat4 {
	return s.transform.Combined
}

// Position returns the cube's current position
func (s *TransformSystem) Position() mgl32.Vec3 {
	return s.transform.Position
}

// BeginFrame resets the dirty flag
func (s *TransformSystem) BeginFrame() {
	s.dirty = false
}

// Dirty reports whether the position changed during the current frame
func (s *TransformSystem) Dirty() bool {
	return s.dirty
}

// TakeDirty returns the dirty flag and clears it
func (s *TransformSystem) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}
