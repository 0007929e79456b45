package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func press(k Key) KeyPressEvent { return KeyPressEvent{Key: k} }

func TestDirectionalPressesMoveOneStep(t *testing.T) {
	tests := []struct {
		key  Key
		want [3]float32
	}{
		{KeyUp, [3]float32{0, 1, 0}},
		{KeyDown, [3]float32{0, -1, 0}},
		{KeyLeft, [3]float32{-1, 0, 0}},
		{KeyRight, [3]float32{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			transform, _, input := newTestSystems()
			input.Dispatch(press(tt.key))
			assert.Equal(t, vec(tt.want[0], tt.want[1], tt.want[2]), transform.Position())
			assert.True(t, transform.Dirty())
		})
	}
}

func TestRepeatAndReleaseAreIgnored(t *testing.T) {
	transform, _, input := newTestSystems()

	input.Dispatch(KeyPressEvent{Key: KeyRight, Repeat: true})
	input.Dispatch(KeyReleaseEvent{Key: KeyRight})
	input.Dispatch(KeyReleaseEvent{Key: KeyUp})

	assert.Equal(t, vec(0, 0, 0), transform.Position())
	assert.False(t, transform.Dirty())
}

func TestUnrecognizedEventsAreNoOps(t *testing.T) {
	transform, projection, input := newTestSystems()
	recomputes := projection.Recomputes()

	input.Dispatch(press(KeyUnknown))
	input.Dispatch(press(KeyW)) // not bound unless WASD is enabled
	input.Dispatch(nil)

	assert.Equal(t, vec(0, 0, 0), transform.Position())
	assert.False(t, transform.Dirty())
	assert.False(t, input.CloseRequested())
	assert.Equal(t, recomputes, projection.Recomputes())
}

func TestWASDBindings(t *testing.T) {
	transform, _, input := newTestSystems()
	input.EnableWASD()

	for _, k := range []Key{KeyW, KeyW, KeyA, KeyS, KeyD, KeyD} {
		input.Dispatch(press(k))
	}
	assert.Equal(t, vec(1, 1, 0), transform.Position())
}

func TestCloseRequests(t *testing.T) {
	_, _, input := newTestSystems()
	input.Dispatch(press(KeyEscape))
	assert.True(t, input.CloseRequested())

	_, _, input = newTestSystems()
	input.Dispatch(KeyPressEvent{Key: KeyEscape, Repeat: true})
	assert.False(t, input.CloseRequested())
	input.Dispatch(CloseRequestedEvent{})
	assert.True(t, input.CloseRequested())
}

func TestResizeDispatchesToProjection(t *testing.T) {
	transform, projection, input := newTestSystems()
	before := transform.CurrentTransform()

	input.Dispatch(ResizeEvent{Width: 1000, Height: 500})
	assert.Equal(t, float32(2), projection.Aspect())
	assert.NotEqual(t, before, transform.CurrentTransform())
	assert.False(t, transform.Dirty(), "resizing does not move the cube")

	matrix := projection.Matrix()
	input.Dispatch(ResizeEvent{Width: 1000, Height: 0})
	assert.Equal(t, matrix, projection.Matrix())
}

func TestFinalPositionIsSumOfSteps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	keys := []Key{KeyUp, KeyDown, KeyLeft, KeyRight}

	for trial := 0; trial < 50; trial++ {
		transform, _, input := newTestSystems()
		var wantX, wantY float32

		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			k := keys[rng.Intn(len(keys))]
			switch k {
			case KeyUp:
				wantY++
			case KeyDown:
				wantY--
			case KeyLeft:
				wantX--
			case KeyRight:
				wantX++
			}
			// Split the presses over frames at random
			if rng.Intn(3) == 0 {
				transform.BeginFrame()
			}
			input.Dispatch(press(k))
		}

		assert.Equal(t, vec(wantX, wantY, 0), transform.Position(), "trial %d", trial)
	}
}

func TestParseKey(t *testing.T) {
	k, ok := ParseKey("left")
	assert.True(t, ok)
	assert.Equal(t, KeyLeft, k)

	_, ok = ParseKey("unknown")
	assert.False(t, ok)
	_, ok = ParseKey("space")
	assert.False(t, ok)

	assert.Equal(t, "key(99)", Key(99).String())
}
