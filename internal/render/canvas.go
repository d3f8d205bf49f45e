package render

import (
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a colour pixel buffer with 2x vertical resolution: every terminal
// cell holds two pixels drawn with the upper-half block character.
// Viewport coordinates map 1:1 to pixels.
type Canvas struct {
	cols   int              // Terminal columns
	rows   int              // Terminal rows
	height int              // rows * 2
	pixels []colorful.Color // Flat slice: [y * cols + x]
	bg     colorful.Color   // Colour of the last Clear
	texts  []Text           // Overlays written after the pixels

	palette Palette

	// Offset for centering the render area when the terminal is larger than
	// the render area. 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	intersectionBuf []float64
	polygonBuf      []Point
}

// Text is a line of overlay text at a 0-based cell position.
type Text struct {
	Col, Row int
	Value    string
	Color    colorful.Color
}

// Cell is the pair of pixels shown in one terminal cell.
type Cell struct {
	Top, Bottom colorful.Color
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Compile-time check that Canvas implements Surface.
var _ Surface = (*Canvas)(nil)

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{palette: DefaultPalette()}
	c.Resize(cols, rows)
	return c
}

// SetPalette replaces the sprite looks.
func (c *Canvas) SetPalette(p Palette) {
	c.palette = p
}

// Resize reallocates the pixel buffer when the terminal dimensions change.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols = cols
	c.rows = rows
	c.height = rows * 2
	c.pixels = make([]colorful.Color, cols*c.height)
	for i := range c.pixels {
		c.pixels[i] = c.bg
	}
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Columns returns the terminal column count.
func (c *Canvas) Columns() int {
	return c.cols
}

// Rows returns the terminal row count.
func (c *Canvas) Rows() int {
	return c.rows
}

// Size returns the pixel dimensions.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols), float64(c.height)
}

// LineHeight is one terminal row.
func (c *Canvas) LineHeight() float64 {
	return 2
}

// Clear fills every pixel and drops text overlays.
func (c *Canvas) Clear(col color.Color) {
	c.bg = toColorful(col)
	for i := range c.pixels {
		c.pixels[i] = c.bg
	}
	c.texts = c.texts[:0]
}

// Pixel returns the colour at pixel (x, y); out-of-range reads return the background.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x < 0 || x >= c.cols || y < 0 || y >= c.height {
		return c.bg
	}
	return c.pixels[y*c.cols+x]
}

// Cell returns the two pixels behind a 0-based terminal cell.
func (c *Canvas) Cell(col, row int) Cell {
	return Cell{Top: c.Pixel(col, row*2), Bottom: c.Pixel(col, row*2+1)}
}

// Texts returns the overlays queued since the last Clear.
func (c *Canvas) Texts() []Text {
	return c.texts
}

// Background returns the colour of the last Clear.
func (c *Canvas) Background() colorful.Color {
	return c.bg
}

// DrawText queues a text overlay at the cell containing (x, y).
func (c *Canvas) DrawText(x, y float64, text string, col color.Color) {
	if text == "" {
		return
	}
	cellCol, cellRow := c.LogicalToTerminal(x, y)
	c.texts = append(c.texts, Text{
		Col:   cellCol - 1,
		Row:   cellRow - 1,
		Value: text,
		Color: toColorful(col),
	})
}

// LogicalToTerminal converts pixel coordinates to a 1-based terminal position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x))
	py := int(math.Floor(y))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal position, as reported by
// mouse events, to the pixel coordinates of the cell's upper half.
// The centering offset is removed.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	col -= c.offsetCol
	row -= c.offsetRow
	return float64(col - 1), float64((row - 1) * 2)
}

// DrawSprite draws a sprite using its palette look. Unknown ids are skipped.
func (c *Canvas) DrawSprite(s Sprite) {
	look, ok := c.palette[s.ID]
	if !ok || s.W <= 0 || s.H <= 0 {
		return
	}
	cx, cy := s.Center()

	switch look.Shape {
	case ShapeDot:
		if s.W < 1 && s.H < 1 {
			c.blendPixel(int(math.Floor(cx)), int(math.Floor(cy)), look.Color, s.W*s.H*look.Alpha())
			return
		}
		c.fillEllipse(cx, cy, s.W/2, s.H/2, look.Color, look.Alpha())
	case ShapeEllipse:
		c.fillEllipse(cx, cy, s.W/2, s.H/2*look.HeightScale(), look.Color, look.Alpha())
	case ShapeRect:
		c.fillRect(s.X, s.Y, s.W, s.H, look.Color, look.Alpha())
	case ShapeTriangle:
		c.drawTriangle(cx, cy, s.W, s.H, s.Angle, look.Color)
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas using upper-half blocks in 24-bit colour.
// Colour escapes are only emitted when the colour changes, so flat sky
// costs one escape per row.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.rows * 4)

	for row := 0; row < c.rows; row++ {
		c.moveCursor(1, row+1)

		var fg, bg rgb
		haveFg, haveBg := false, false
		for col := 0; col < c.cols; col++ {
			cell := c.Cell(col, row)
			top, bottom := quantize(cell.Top), quantize(cell.Bottom)

			if !haveBg || bg != bottom {
				c.writeSGR(48, bottom)
				bg, haveBg = bottom, true
			}
			if top == bottom {
				c.renderBuf.WriteByte(' ')
				continue
			}
			if !haveFg || fg != top {
				c.writeSGR(38, top)
				fg, haveFg = top, true
			}
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}

	for _, t := range c.texts {
		if t.Row < 0 || t.Row >= c.rows || t.Col >= c.cols {
			continue
		}
		value := t.Value
		col := t.Col
		if col < 0 {
			if -col >= len(value) {
				continue
			}
			value = value[-col:]
			col = 0
		}
		if room := c.cols - col; len(value) > room {
			value = value[:room]
		}
		c.moveCursor(col+1, t.Row+1)
		c.writeSGR(48, quantize(c.Cell(col, t.Row).Bottom))
		c.writeSGR(38, quantize(t.Color))
		c.renderBuf.WriteString(value)
	}
	c.renderBuf.WriteString(sgrReset)

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// moveCursor appends a cursor position sequence; col and row are 1-based
// canvas coordinates and the centering offset is applied.
func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// writeSGR appends a truecolor foreground (38) or background (48) sequence.
func (c *Canvas) writeSGR(layer int, col rgb) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.b), 10))
	c.renderBuf.WriteByte('m')
}
