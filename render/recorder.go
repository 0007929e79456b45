package render

import (
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything needed to paint one frame
type Frame struct {
	Clear     color.RGBA
	Color     color.RGBA
	Triangles []Triangle
	Transform mgl32.Mat4
	Width     int
	Height    int
	Number    uint64
}

// Recorder collects the clear, draw and present calls of a frame. Present
// publishes the frame for the painter, which may run on another goroutine.
type Recorder struct {
	batch      *Batch
	clearColor color.RGBA

	pending Frame
	count   uint64

	mu        sync.Mutex
	presented Frame
}

// NewRecorder creates a recorder drawing the given batch
func NewRecorder(batch *Batch, clearColor color.RGBA) *Recorder {
	return &Recorder{
		batch:      batch,
		clearColor: clearColor,
	}
}

// Clear starts a new frame
func (r *Recorder) Clear() {
	r.pending = Frame{Clear: r.clearColor, Color: r.batch.Color}
}

// Draw projects the batch with the given parameters into the pending frame
func (r *Recorder) Draw(p Params) {
	r.pending.Transform = p.Transform
	r.pending.Width, r.pending.Height = p.Width, p.Height
	r.pending.Triangles = append(r.pending.Triangles, r.batch.Project(p)...)
}

// Present publishes the pending frame
func (r *Recorder) Present() {
	r.count++
	r.pending.Number = r.count

	r.mu.Lock()
	r.presented = r.pending
	r.mu.Unlock()

	r.pending = Frame{}
}

// Presented returns the most recently presented frame
func (r *Recorder) Presented() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presented
}
