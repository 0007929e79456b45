// Package engine drives the viewer: one frame is poll, dispatch, render,
// then sync. Everything here runs on a single goroutine.
package engine

import (
	"context"
	"iter"
	"log/slog"

	"cubeview/components"
	"cubeview/config"
	"cubeview/render"
	"cubeview/systems"
)

// State of the frame loop
type State int

const (
	Running State = iota
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// EventSource yields the input events queued since the previous poll.
// Poll must not block; each call returns a fresh, finite sequence.
type EventSource interface {
	Poll() iter.Seq[systems.Event]
}

// Renderer receives the frame's draw calls. Return values are not inspected.
type Renderer interface {
	Clear()
	Draw(params render.Params)
	Present()
}

// Options configure a frame loop
type Options struct {
	Width, Height int
	WASD          bool

	Events   EventSource
	Renderer Renderer
	// Sender defaults to one that drops every update
	Sender   systems.PositionSender
	Reporter systems.ErrorReporter
	Logger   *slog.Logger
}

// FrameLoop owns the transform, projection, input and sync systems
type FrameLoop struct {
	state State
	frame uint64

	events   EventSource
	renderer Renderer
	log      *slog.Logger

	transform  *systems.TransformSystem
	projection *systems.ProjectionSystem
	input      *systems.InputSystem
	sync       *systems.SyncSystem
}

// NewFrameLoop wires the systems together. The cube starts at the origin.
func NewFrameLoop(opts Options) *FrameLoop {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	sender := opts.Sender
	if sender == nil {
		sender = discardSender{}
	}

	projection := systems.NewProjectionSystem(opts.Width, opts.Height)
	view := components.ViewMatrix(config.CameraEye, config.CameraTarget, config.CameraUp)
	transform := systems.NewTransformSystem(view, projection.Matrix())
	projection.SetTarget(transform)

	input := systems.NewInputSystem(transform, projection, log)
	if opts.WASD {
		input.EnableWASD()
	}

	return &FrameLoop{
		state:      Running,
		events:     opts.Events,
		renderer:   opts.Renderer,
		log:        log,
		transform:  transform,
		projection: projection,
		input:      input,
		sync:       systems.NewSyncSystem(transform, sender, opts.Reporter, log),
	}
}

// Step runs one frame and reports whether the loop is still running.
// A close request finishes the current frame, so moves made before it are
// still drawn and sent, then the loop stops for good.
func (l *FrameLoop) Step() bool {
	if l.state != Running {
		return false
	}
	l.frame++
	l.transform.BeginFrame()

	if l.events != nil {
		for ev := range l.events.Poll() {
			l.input.Dispatch(ev)
			if l.input.CloseRequested() {
				// Nothing after a close request is applied
				break
			}
		}
	}

	if l.renderer != nil {
		width, height := l.projection.Viewport()
		l.renderer.Clear()
		l.renderer.Draw(render.Params{
			Transform: l.transform.CurrentTransform(),
			Width:     width,
			Height:    height,
		})
		l.renderer.Present()
	}

	l.sync.Sync()

	if l.input.CloseRequested() {
		l.state = Closing
		l.log.Info("close requested", "frame", l.frame)
		return false
	}
	return true
}

// Finish moves a closing loop to Closed once its owner has released
// the window and transport.
func (l *FrameLoop) Finish() {
	if l.state == Closing {
		l.state = Closed
	}
}

// Run steps until the loop closes or the context is done. No frame starts
// once ctx is done.
func (l *FrameLoop) Run(ctx context.Context) error {
	defer l.Finish()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.Step() {
			return nil
		}
	}
}

// discardSender drops updates for loops built without a transport
type discardSender struct{}

func (discardSender) SendPositionUpdate(x, y, z float32) error { return nil }

// State returns the loop state
func (l *FrameLoop) State() State {
	return l.state
}

// Frames returns how many frames have been stepped
func (l *FrameLoop) Frames() uint64 {
	return l.frame
}

// Position returns the cube's current position
func (l *FrameLoop) Position() (x, y, z float32) {
	p := l.transform.Position()
	return p.X(), p.Y(), p.Z()
}

// Sync returns the sync system
func (l *FrameLoop) Sync() *systems.SyncSystem {
	return l.sync
}
