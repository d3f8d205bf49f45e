package render

import "github.com/lucasb-eyer/go-colorful"

// Shape is how a sprite is approximated on a pixel canvas.
type Shape int

const (
	ShapeDot      Shape = iota // Single blended pixel for sub-pixel sprites, disc otherwise
	ShapeEllipse               // Filled ellipse inscribed in the sprite box
	ShapeRect                  // Filled box
	ShapeTriangle              // Filled isosceles triangle pointing up before rotation
)

// Look describes how a sprite is drawn on the canvas.
type Look struct {
	Shape   Shape
	Color   colorful.Color
	Squash  float64 // Height multiplier for ellipses; 0 means 1
	Opacity float64 // 0 means opaque
}

// HeightScale returns Squash with the zero default applied.
func (l Look) HeightScale() float64 {
	if l.Squash == 0 {
		return 1
	}
	return l.Squash
}

// Alpha returns Opacity with the zero default applied.
func (l Look) Alpha() float64 {
	if l.Opacity == 0 {
		return 1
	}
	return l.Opacity
}

// Palette maps sprite ids to looks.
type Palette map[SpriteID]Look

// DefaultPalette is the terminal stand-in for the sprite images.
func DefaultPalette() Palette {
	return Palette{
		SpriteStar:         {Shape: ShapeDot, Color: Hex("#fff6d8")},
		SpriteShootingStar: {Shape: ShapeDot, Color: Hex("#ffffff")},
		SpriteCloudA:       {Shape: ShapeEllipse, Color: Hex("#8a96a8"), Squash: 0.55, Opacity: 0.85},
		SpriteCloudC:       {Shape: ShapeEllipse, Color: Hex("#6c7890"), Squash: 0.45, Opacity: 0.8},
		SpriteCloudFaded:   {Shape: ShapeEllipse, Color: Hex("#3c4658"), Squash: 0.6, Opacity: 0.35},
		SpriteMoon:         {Shape: ShapeEllipse, Color: Hex("#f2ecd0")},
		SpriteGround:       {Shape: ShapeRect, Color: Hex("#0b1d12")},
		SpriteCar:          {Shape: ShapeTriangle, Color: Hex("#e04848")},
	}
}
