package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/nightsky/internal/render"
)

// ellipseSegments is the rim resolution of filled ellipses.
const ellipseSegments = 32

// debugLineHeight is the line height of ebitenutil's debug font.
const debugLineHeight = 16

// surface draws sprites on an ebiten image using vector shapes.
type surface struct {
	dst     *ebiten.Image
	palette render.Palette
	white   *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

func newSurface(palette render.Palette) *surface {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &surface{
		palette: palette,
		white:   img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

var _ render.Surface = (*surface)(nil)

func (s *surface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *surface) LineHeight() float64 {
	return debugLineHeight
}

func (s *surface) Clear(c color.Color) {
	s.dst.Fill(c)
}

// DrawText uses the debug font, which is always white.
func (s *surface) DrawText(x, y float64, text string, _ color.Color) {
	ebitenutil.DebugPrintAt(s.dst, text, int(x), int(y))
}

func (s *surface) DrawSprite(sp render.Sprite) {
	look, ok := s.palette[sp.ID]
	if !ok || sp.W <= 0 || sp.H <= 0 {
		return
	}
	cx, cy := sp.Center()
	col := withAlpha(look.Color, look.Alpha())

	switch look.Shape {
	case render.ShapeDot:
		r := math.Max(sp.W/2, 0.5)
		vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), col, true)
	case render.ShapeEllipse:
		s.fillEllipse(cx, cy, sp.W/2, sp.H/2*look.HeightScale(), col)
	case render.ShapeRect:
		vector.DrawFilledRect(s.dst, float32(sp.X), float32(sp.Y), float32(sp.W), float32(sp.H), col, true)
	case render.ShapeTriangle:
		pts := render.TriangleVertices(cx, cy, sp.W, sp.H, sp.Angle)
		s.vertices = s.vertices[:0]
		for _, p := range pts {
			s.vertices = append(s.vertices, vertex(p.X, p.Y, col))
		}
		s.indices = append(s.indices[:0], 0, 1, 2)
		s.dst.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}

// fillEllipse draws a triangle fan around (cx, cy).
func (s *surface) fillEllipse(cx, cy, rx, ry float64, col color.NRGBA) {
	s.vertices = append(s.vertices[:0], vertex(cx, cy, col))
	s.indices = s.indices[:0]
	for i := 0; i <= ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		s.vertices = append(s.vertices, vertex(cx+rx*math.Cos(a), cy+ry*math.Sin(a), col))
		if i > 0 {
			s.indices = append(s.indices, 0, uint16(i), uint16(i+1))
		}
	}
	s.dst.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func vertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}

func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}
