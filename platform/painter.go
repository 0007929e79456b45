package platform

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"cubeview/render"
	"cubeview/systems"
)

// hudLines is how many status messages are drawn on screen
const hudLines = 4

// Painter draws recorded frames onto the ebiten screen
type Painter struct {
	// 1x1 white texel taken from the middle of a 3x3 image so sampling
	// never bleeds past its edges
	white *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16

	messages *systems.MessageLog
}

// NewPainter creates a painter. messages may be nil.
func NewPainter(messages *systems.MessageLog) *Painter {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Painter{
		white:    img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		messages: messages,
	}
}

// Draw paints a frame: clear, the cube's triangles back to front, then the HUD
func (p *Painter) Draw(screen *ebiten.Image, frame render.Frame, status string) {
	// Clear the screen
	screen.Fill(frame.Clear)

	p.drawTriangles(screen, frame)
	p.drawHUD(screen, status)
}

func (p *Painter) drawTriangles(screen *ebiten.Image, frame render.Frame) {
	if len(frame.Triangles) == 0 {
		return
	}

	// Scale recorded coordinates if the screen changed size since recording
	sx, sy := float32(1), float32(1)
	b := screen.Bounds()
	if frame.Width > 0 && frame.Height > 0 {
		sx = float32(b.Dx()) / float32(frame.Width)
		sy = float32(b.Dy()) / float32(frame.Height)
	}

	r := float32(frame.Color.R) / 255
	g := float32(frame.Color.G) / 255
	bl := float32(frame.Color.B) / 255

	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
	for _, tri := range frame.Triangles {
		for _, v := range tri.V {
			p.indices = append(p.indices, uint16(len(p.vertices)))
			p.vertices = append(p.vertices, ebiten.Vertex{
				DstX:   v.X * sx,
				DstY:   v.Y * sy,
				SrcX:   1,
				SrcY:   1,
				ColorR: r * v.Shade,
				ColorG: g * v.Shade,
				ColorB: bl * v.Shade,
				ColorA: 1,
			})
		}
	}

	screen.DrawTriangles(p.vertices, p.indices, p.white, &ebiten.DrawTrianglesOptions{})
}

func (p *Painter) drawHUD(screen *ebiten.Image, status string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS: %.1f\n", ebiten.ActualFPS())
	sb.WriteString(status)
	sb.WriteString("\n")

	if p.messages != nil {
		for _, m := range p.messages.RecentMessages(hudLines) {
			sb.WriteString(m.Text)
			sb.WriteString("\n")
		}
	}

	ebitenutil.DebugPrint(screen, sb.String())
}
