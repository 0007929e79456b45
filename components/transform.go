package components

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent stores the cube's position together with the matrices
// derived from it. Model and Combined are never edited directly; they are
// rebuilt from Position, View and Projection whenever one of those changes.
type TransformComponent struct {
	Position   mgl32.Vec3 // z is held at 0
	View       mgl32.Mat4 // fixed at startup
	Projection mgl32.Mat4

	Model    mgl32.Mat4 // derived from Position
	Combined mgl32.Mat4 // Projection * View * Model
}

// NewTransformComponent creates a transform at the origin
func NewTransformComponent(view, projection mgl32.Mat4) *TransformComponent {
	t := &TransformComponent{
		View:       view,
		Projection: projection,
	}
	t.Rebuild()
	return t
}

// Rebuild recomputes Model and Combined from the authoritative inputs
func (t *TransformComponent) Rebuild() {
	t.Model = ModelMatrix(t.Position)
	t.Combined = CombinedMatrix(t.Projection, t.View, t.Model)
}

// ModelMatrix returns the translation for a position. The scene is Z-up:
// the position's second axis is placed on world Z and its third on world Y.
func ModelMatrix(p mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(p.X(), p.Z(), p.Y())
}

// CombinedMatrix returns projection * view * model
func CombinedMatrix(projection, view, model mgl32.Mat4) mgl32.Mat4 {
	return projection.Mul4(view).Mul4(model)
}

// ViewMatrix builds the camera matrix from an eye point, a target and an up vector
func ViewMatrix(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, target, up)
}
