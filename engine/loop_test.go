package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubeview/components"
	"cubeview/config"
	"cubeview/render"
	"cubeview/systems"
)

type update struct{ X, Y, Z float32 }

type fakeSender struct {
	updates []update
	err     error
}

func (f *fakeSender) SendPositionUpdate(x, y, z float32) error {
	f.updates = append(f.updates, update{x, y, z})
	return f.err
}

// fakeRenderer records the call sequence and every transform drawn
type fakeRenderer struct {
	calls  []string
	params []render.Params
}

func (f *fakeRenderer) Clear() { f.calls = append(f.calls, "clear") }

func (f *fakeRenderer) Draw(p render.Params) {
	f.calls = append(f.calls, "draw")
	f.params = append(f.params, p)
}

func (f *fakeRenderer) Present() { f.calls = append(f.calls, "present") }

type reporter struct{ errs []error }

func (r *reporter) Report(err error) { r.errs = append(r.errs, err) }

func newTestLoop() (*FrameLoop, *QueueSource, *fakeRenderer, *fakeSender, *reporter) {
	source := &QueueSource{}
	renderer := &fakeRenderer{}
	sender := &fakeSender{}
	rep := &reporter{}
	loop := NewFrameLoop(Options{
		Width:    config.WindowWidth,
		Height:   config.WindowHeight,
		Events:   source,
		Renderer: renderer,
		Sender:   sender,
		Reporter: rep,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return loop, source, renderer, sender, rep
}

func press(k systems.Key) systems.Event { return systems.KeyPressEvent{Key: k} }

func expectedTransform(x, y float32, width, height int) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(config.FieldOfViewDeg), float32(width)/float32(height), config.NearPlane, config.FarPlane)
	view := components.ViewMatrix(config.CameraEye, config.CameraTarget, config.CameraUp)
	return components.CombinedMatrix(proj, view, components.ModelMatrix(mgl32.Vec3{x, y, 0}))
}

func TestStepRightRightUpSendsOnce(t *testing.T) {
	loop, source, renderer, sender, _ := newTestLoop()

	source.Push(press(systems.KeyRight), press(systems.KeyRight), press(systems.KeyUp))
	require.True(t, loop.Step())

	x, y, z := loop.Position()
	assert.Equal(t, [3]float32{2, 1, 0}, [3]float32{x, y, z})
	assert.Equal(t, []update{{2, 1, 0}}, sender.updates)
	assert.Equal(t, []string{"clear", "draw", "present"}, renderer.calls)
}

func TestStepIdleFrameSendsNothing(t *testing.T) {
	loop, source, _, sender, _ := newTestLoop()

	require.True(t, loop.Step())
	source.Push(systems.ResizeEvent{Width: 640, Height: 480}, systems.KeyReleaseEvent{Key: systems.KeyLeft})
	require.True(t, loop.Step())

	assert.Empty(t, sender.updates)
	assert.Equal(t, uint64(2), loop.Frames())
}

func TestStepDrawsCurrentTransform(t *testing.T) {
	loop, source, renderer, _, _ := newTestLoop()

	source.Push(press(systems.KeyLeft), systems.ResizeEvent{Width: 1000, Height: 500}, press(systems.KeyUp))
	require.True(t, loop.Step())

	require.Len(t, renderer.params, 1)
	drawn := renderer.params[0]
	assert.True(t, drawn.Transform.ApproxEqual(expectedTransform(-1, 1, 1000, 500)))
	assert.Equal(t, 1000, drawn.Width)
	assert.Equal(t, 500, drawn.Height)
}

func TestStepIgnoresDegenerateResize(t *testing.T) {
	loop, source, renderer, _, _ := newTestLoop()

	source.Push(systems.ResizeEvent{Width: 800, Height: 0})
	require.True(t, loop.Step())

	assert.True(t, renderer.params[0].Transform.ApproxEqual(expectedTransform(0, 0, 800, 600)))
	assert.Equal(t, 600, renderer.params[0].Height)
}

func TestMovesSplitAcrossFramesSendPerFrame(t *testing.T) {
	loop, source, _, sender, _ := newTestLoop()

	source.Push(press(systems.KeyRight))
	loop.Step()
	loop.Step()
	source.Push(press(systems.KeyRight), press(systems.KeyUp))
	loop.Step()

	assert.Equal(t, []update{{1, 0, 0}, {2, 1, 0}}, sender.updates)
}

func TestCloseFinishesFrameThenStops(t *testing.T) {
	loop, source, renderer, sender, _ := newTestLoop()

	source.Push(press(systems.KeyUp), press(systems.KeyEscape), press(systems.KeyUp))
	assert.False(t, loop.Step())
	assert.Equal(t, Closing, loop.State())

	// The move before the close request is drawn and sent, the one after is dropped
	assert.Equal(t, []update{{0, 1, 0}}, sender.updates)
	assert.Len(t, renderer.params, 1)

	source.Push(press(systems.KeyUp))
	assert.False(t, loop.Step())
	assert.Len(t, renderer.params, 1, "no frame after close")
	assert.Equal(t, uint64(1), loop.Frames())

	loop.Finish()
	assert.Equal(t, Closed, loop.State())
}

func TestWindowCloseRequest(t *testing.T) {
	loop, source, _, _, _ := newTestLoop()

	source.Push(systems.CloseRequestedEvent{})
	assert.False(t, loop.Step())
	assert.Equal(t, Closing, loop.State())
}

func TestSendFailureKeepsLoopRunning(t *testing.T) {
	loop, source, _, sender, rep := newTestLoop()
	sender.err = errors.New("write: connection refused")

	source.Push(press(systems.KeyDown))
	assert.True(t, loop.Step())
	source.Push(press(systems.KeyDown))
	assert.True(t, loop.Step())

	assert.Len(t, sender.updates, 2)
	assert.Len(t, rep.errs, 2)
	assert.Equal(t, Running, loop.State())
	assert.Equal(t, uint64(2), loop.Sync().Failed())
}

func TestWASDOption(t *testing.T) {
	source := &QueueSource{}
	sender := &fakeSender{}
	loop := NewFrameLoop(Options{Width: 800, Height: 600, WASD: true, Events: source, Sender: sender})

	source.Push(press(systems.KeyD), press(systems.KeyW))
	loop.Step()
	assert.Equal(t, []update{{1, 1, 0}}, sender.updates)
}

func TestRunStopsOnClose(t *testing.T) {
	frames, err := ParseScript("right;;up,up;escape")
	require.NoError(t, err)

	sender := &fakeSender{}
	loop := NewFrameLoop(Options{
		Width:    800,
		Height:   600,
		Events:   NewScriptSource(frames),
		Renderer: &fakeRenderer{},
		Sender:   sender,
	})

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, Closed, loop.State())
	assert.Equal(t, uint64(4), loop.Frames())
	assert.Equal(t, []update{{1, 0, 0}, {1, 2, 0}}, sender.updates)
}

func TestRunHonoursContext(t *testing.T) {
	loop, source, renderer, sender, _ := newTestLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source.Push(press(systems.KeyUp))
	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Running, loop.State())

	// A cancelled context starts no frame at all
	assert.Zero(t, loop.Frames())
	assert.Empty(t, renderer.calls)
	assert.Empty(t, sender.updates)
}

func TestLoopWithoutSender(t *testing.T) {
	source := &QueueSource{}
	loop := NewFrameLoop(Options{Width: 800, Height: 600, Events: source})

	source.Push(press(systems.KeyUp))
	require.NotPanics(t, func() { loop.Step() })

	x, y, _ := loop.Position()
	assert.Equal(t, [2]float32{0, 1}, [2]float32{x, y})
	assert.Equal(t, uint64(1), loop.Sync().Sent())
}

func TestRunHeadless(t *testing.T) {
	frames, err := ParseScript("left;left;close")
	require.NoError(t, err)

	sender := &fakeSender{}
	loop := NewFrameLoop(Options{Width: 800, Height: 600, Events: NewScriptSource(frames), Sender: sender})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, RunHeadless(ctx, loop, HeadlessConfig{Hz: 1000}))

	assert.Equal(t, Closed, loop.State())
	assert.Equal(t, []update{{-1, 0, 0}, {-2, 0, 0}}, sender.updates)
}

func TestRunHeadlessFrameBudget(t *testing.T) {
	loop, _, _, _, _ := newTestLoop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, RunHeadless(ctx, loop, HeadlessConfig{Hz: 1000, Frames: 3}))

	assert.Equal(t, uint64(3), loop.Frames())
	assert.Equal(t, Running, loop.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "closing", Closing.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "unknown", State(9).String())
}
