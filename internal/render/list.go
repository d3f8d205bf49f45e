package render

import (
	"image/color"
)

// OpKind is the type of a recorded draw call.
type OpKind int

const (
	OpClear OpKind = iota
	OpSprite
	OpText
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	Color  color.Color // OpClear, OpText
	Sprite Sprite      // OpSprite
	X, Y   float64     // OpText
	Text   string      // OpText
}

// List is a Surface that records draw calls so a frame can be built on one
// goroutine and replayed on another surface later.
type List struct {
	width, height float64
	lineHeight    float64
	ops           []Op
}

var _ Surface = (*List)(nil)

// NewList creates an empty list with the given viewport size.
func NewList(width, height, lineHeight float64) *List {
	return &List{width: width, height: height, lineHeight: lineHeight}
}

// SetSize changes the size reported to scenes.
func (l *List) SetSize(width, height float64) {
	l.width, l.height = width, height
}

// Reset drops every recorded call.
func (l *List) Reset() {
	l.ops = l.ops[:0]
}

// Ops returns the recorded calls.
func (l *List) Ops() []Op {
	return l.ops
}

// Sprites returns the recorded sprites in draw order.
func (l *List) Sprites() []Sprite {
	var out []Sprite
	for _, op := range l.ops {
		if op.Kind == OpSprite {
			out = append(out, op.Sprite)
		}
	}
	return out
}

// Texts returns the recorded text lines in draw order.
func (l *List) Texts() []string {
	var out []string
	for _, op := range l.ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Replay draws the recorded calls onto dst.
func (l *List) Replay(dst Surface) {
	for _, op := range l.ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Color)
		case OpSprite:
			dst.DrawSprite(op.Sprite)
		case OpText:
			dst.DrawText(op.X, op.Y, op.Text, op.Color)
		}
	}
}

func (l *List) Size() (float64, float64) {
	return l.width, l.height
}

func (l *List) LineHeight() float64 {
	return l.lineHeight
}

func (l *List) Clear(c color.Color) {
	l.ops = append(l.ops, Op{Kind: OpClear, Color: c})
}

func (l *List) DrawSprite(s Sprite) {
	l.ops = append(l.ops, Op{Kind: OpSprite, Sprite: s})
}

func (l *List) DrawText(x, y float64, text string, c color.Color) {
	l.ops = append(l.ops, Op{Kind: OpText, X: x, Y: y, Text: text, Color: c})
}
