// Package render turns the cube batch and a combined transform into
// screen-space triangles. Rasterization is left to the platform layer.
package render

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"cubeview/data"
)

// Params are the per-draw shader inputs
type Params struct {
	Transform mgl32.Mat4 // projection * view * model
	Width     int
	Height    int
}

// Batch is a mesh, its index list and the colour of its 1x1 texture
type Batch struct {
	Vertices []data.Vertex
	Indices  []uint16
	Color    color.RGBA
}

// NewCubeBatch returns the textured cube
func NewCubeBatch(c color.RGBA) *Batch {
	return &Batch{
		Vertices: data.CubeVertices,
		Indices:  data.CubeIndices,
		Color:    c,
	}
}

// ScreenVertex is a projected vertex in framebuffer pixels
type ScreenVertex struct {
	X, Y  float32
	Depth float32 // normalized device depth, -1 near to 1 far
	Shade float32 // vignette factor applied to the texture colour
}

// Triangle is a projected triangle ready to be filled
type Triangle struct {
	V     [3]ScreenVertex
	Depth float32 // mean depth, used for ordering
}

// Project runs the batch through the transform and returns its triangles
// sorted back to front. Each mesh triangle is split in two at the midpoint
// of its longest texture edge, which on a quad is the texture centre, so the
// vignette is brightest in the middle of a face. Triangles with a vertex
// behind the eye are dropped.
func (b *Batch) Project(p Params) []Triangle {
	if p.Width <= 0 || p.Height <= 0 {
		return nil
	}

	tris := make([]Triangle, 0, len(b.Indices)/3*2)
	for i := 0; i+2 < len(b.Indices); i += 3 {
		var c [3]corner
		ok := true
		for k := range c {
			idx := int(b.Indices[i+k])
			if idx >= len(b.Vertices) {
				ok = false
				break
			}
			c[k] = newCorner(b.Vertices[idx])
		}
		if !ok {
			continue
		}

		for _, half := range split(c) {
			t, visible := projectTriangle(p, half)
			if visible {
				tris = append(tris, t)
			}
		}
	}

	// Painter's order: farthest first
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].Depth > tris[j].Depth
	})
	return tris
}

// corner is a mesh vertex in float form so it can be subdivided
type corner struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}

func newCorner(v data.Vertex) corner {
	return corner{
		pos: mgl32.Vec3{float32(v.Pos[0]), float32(v.Pos[1]), float32(v.Pos[2])},
		uv:  mgl32.Vec2{float32(v.TexCoord[0]), float32(v.TexCoord[1])},
	}
}

// split cuts a triangle in two at the midpoint of its longest texture edge
func split(c [3]corner) [2][3]corner {
	longest, best := 0, float32(-1)
	for k := range c {
		d := c[(k+1)%3].uv.Sub(c[k].uv)
		if l := d.Dot(d); l > best {
			longest, best = k, l
		}
	}

	a, b, o := c[longest], c[(longest+1)%3], c[(longest+2)%3]
	mid := corner{
		pos: a.pos.Add(b.pos).Mul(0.5),
		uv:  a.uv.Add(b.uv).Mul(0.5),
	}
	return [2][3]corner{{a, mid, o}, {mid, b, o}}
}

func projectTriangle(p Params, c [3]corner) (Triangle, bool) {
	var t Triangle
	for k := range c {
		v, ok := projectVertex(p, c[k])
		if !ok {
			return Triangle{}, false
		}
		t.V[k] = v
	}
	t.Depth = (t.V[0].Depth + t.V[1].Depth + t.V[2].Depth) / 3
	return t, true
}

func projectVertex(p Params, c corner) (ScreenVertex, bool) {
	clip := p.Transform.Mul4x1(c.pos.Vec4(1))
	if clip.W() <= 1e-6 {
		return ScreenVertex{}, false
	}

	ndc := clip.Vec3().Mul(1 / clip.W())
	return ScreenVertex{
		X:     (ndc.X() + 1) / 2 * float32(p.Width),
		Y:     (1 - ndc.Y()) / 2 * float32(p.Height),
		Depth: ndc.Z(),
		Shade: vignette(c.uv),
	}, true
}

// vignette darkens towards the texture's corners: 1 - |uv - 0.5|^2
func vignette(uv mgl32.Vec2) float32 {
	d := uv.Sub(mgl32.Vec2{0.5, 0.5})
	return 1 - d.Dot(d)
}
