// Package render defines the drawing surface scenes paint on and the
// terminal implementation of it.
package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// SpriteID selects one of the fixed sprite images.
type SpriteID int

const (
	SpriteStar SpriteID = iota
	SpriteShootingStar
	SpriteCloudA
	SpriteCloudC
	SpriteCloudFaded
	SpriteMoon
	SpriteGround
	SpriteCar
)

// Sprite is one draw call. X and Y are the top-left corner in viewport
// coordinates; Angle rotates the sprite around its centre (radians, 0 = upright).
type Sprite struct {
	ID    SpriteID
	X, Y  float64
	W, H  float64
	Angle float64
}

// Center returns the centre point of the sprite's box.
func (s Sprite) Center() (float64, float64) {
	return s.X + s.W/2, s.Y + s.H/2
}

// Surface is what scenes draw on.
type Surface interface {
	// Size returns the viewport dimensions in drawing units.
	Size() (width, height float64)
	// Clear fills the whole surface.
	Clear(c color.Color)
	// DrawSprite draws one sprite.
	DrawSprite(s Sprite)
	// DrawText writes a single line of text with its top-left at (x, y).
	DrawText(x, y float64, text string, c color.Color)
	// LineHeight is the vertical distance between text lines.
	LineHeight() float64
}

// SizeFunc reports the current terminal dimensions in cells.
type SizeFunc func() (cols, rows int, err error)

// Hex parses a "#rrggbb" colour. It panics on malformed input and is meant
// for package-level colour constants.
func Hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// toColorful converts any color.Color; fully transparent colours become black.
func toColorful(c color.Color) colorful.Color {
	if cc, ok := c.(colorful.Color); ok {
		return cc
	}
	cc, _ := colorful.MakeColor(c)
	return cc
}

// rgb is a colour quantized for terminal output and equality checks.
type rgb struct {
	r, g, b uint8
}

func quantize(c colorful.Color) rgb {
	r, g, b := c.Clamped().RGB255()
	return rgb{r, g, b}
}
