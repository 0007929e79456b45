package systems

import (
	"errors"
	"io"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"cubeview/components"
	"cubeview/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestSystems wires transform, projection and input the way the frame loop does
func newTestSystems() (*TransformSystem, *ProjectionSystem, *InputSystem) {
	projection := NewProjectionSystem(config.WindowWidth, config.WindowHeight)
	view := components.ViewMatrix(config.CameraEye, config.CameraTarget, config.CameraUp)
	transform := NewTransformSystem(view, projection.Matrix())
	projection.SetTarget(transform)
	input := NewInputSystem(transform, projection, discardLogger())
	return transform, projection, input
}

type sentUpdate struct {
	X, Y, Z float32
}

// recordingSender records every update and optionally fails
type recordingSender struct {
	updates []sentUpdate
	err     error
}

func (r *recordingSender) SendPositionUpdate(x, y, z float32) error {
	r.updates = append(r.updates, sentUpdate{x, y, z})
	return r.err
}

type recordingReporter struct {
	errs []error
}

func (r *recordingReporter) Report(err error) {
	r.errs = append(r.errs, err)
}

var errPeerUnreachable = errors.New("peer unreachable")

func vec(x, y, z float32) mgl32.Vec3 {
	return mgl32.Vec3{x, y, z}
}
