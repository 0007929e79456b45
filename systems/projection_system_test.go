package systems

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnResizeSetsAspectExactly(t *testing.T) {
	_, projection, _ := newTestSystems()

	sizes := [][2]int{{1024, 768}, {1920, 1080}, {333, 777}, {1, 1}, {7, 3}}
	for _, size := range sizes {
		require.NoError(t, projection.OnResize(size[0], size[1]))

		want := float32(size[0]) / float32(size[1])
		assert.Equal(t, want, projection.Aspect())

		m := projection.Matrix()
		assert.InDelta(t, want, m.At(1, 1)/m.At(0, 0), 1e-5)
		w, h := projection.Viewport()
		assert.Equal(t, size[0], w)
		assert.Equal(t, size[1], h)
	}
}

func TestOnResizeRecomputesForSameAspect(t *testing.T) {
	_, projection, _ := newTestSystems()
	require.NoError(t, projection.OnResize(800, 600))
	before := projection.Recomputes()
	aspect := projection.Aspect()

	require.NoError(t, projection.OnResize(640, 480))

	assert.Equal(t, before+1, projection.Recomputes())
	assert.Equal(t, aspect, projection.Aspect())
}

func TestOnResizeZeroHeightKeepsMatrix(t *testing.T) {
	transform, projection, _ := newTestSystems()
	require.NoError(t, projection.OnResize(1024, 512))
	matrix := projection.Matrix()
	combined := transform.CurrentTransform()
	recomputes := projection.Recomputes()

	for _, size := range [][2]int{{1024, 0}, {0, 0}, {1024, -5}, {0, 600}} {
		err := projection.OnResize(size[0], size[1])
		assert.True(t, errors.Is(err, ErrDegenerateViewport), "size %v", size)
	}

	assert.Equal(t, matrix, projection.Matrix())
	assert.Equal(t, combined, transform.CurrentTransform())
	assert.Equal(t, recomputes, projection.Recomputes())
	assert.Equal(t, float32(2), projection.Aspect())
	for _, v := range projection.Matrix() {
		assert.False(t, v != v, "NaN in projection")
	}
}

func TestOnResizeUpdatesTarget(t *testing.T) {
	transform, projection, _ := newTestSystems()
	transform.ApplyTranslation(3, 0)

	require.NoError(t, projection.OnResize(400, 800))

	want := projection.Matrix().Mul4(transform.transform.View).Mul4(transform.transform.Model)
	assert.True(t, transform.CurrentTransform().ApproxEqual(want))
}

func TestNewProjectionSystemFallsBackOnDegenerateSize(t *testing.T) {
	projection := NewProjectionSystem(0, 0)

	assert.Equal(t, float32(800)/float32(600), projection.Aspect())
	assert.Zero(t, projection.Recomputes())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), float32(800)/float32(600), 1, 40), projection.Matrix())
}
