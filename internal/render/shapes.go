package render

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// setPixel sets a pixel at canvas coordinates; out-of-range writes are dropped.
func (c *Canvas) setPixel(x, y int, col colorful.Color) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.height {
		c.pixels[y*c.cols+x] = col
	}
}

// blendPixel mixes col into the pixel with the given coverage in [0, 1].
func (c *Canvas) blendPixel(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.height || alpha <= 0 {
		return
	}
	i := y*c.cols + x
	if alpha >= 1 {
		c.pixels[i] = col
		return
	}
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// fillEllipse fills the ellipse centred on (cx, cy), sampling pixel centres.
// Ellipses smaller than a pixel still light the pixel they sit on.
func (c *Canvas) fillEllipse(cx, cy, rx, ry float64, col colorful.Color, alpha float64) {
	if rx < 0.5 && ry < 0.5 {
		c.blendPixel(int(math.Floor(cx)), int(math.Floor(cy)), col, alpha)
		return
	}
	rx = math.Max(rx, 0.5)
	ry = math.Max(ry, 0.5)

	yStart := int(math.Floor(cy - ry))
	yEnd := int(math.Ceil(cy + ry))
	xStart := int(math.Floor(cx - rx))
	xEnd := int(math.Ceil(cx + rx))

	for y := max(yStart, 0); y <= yEnd && y < c.height; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := max(xStart, 0); x <= xEnd && x < c.cols; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.blendPixel(x, y, col, alpha)
			}
		}
	}
}

// fillRect fills pixels whose centres fall inside the box.
func (c *Canvas) fillRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	xStart := int(math.Ceil(x - 0.5))
	xEnd := int(math.Ceil(x + w - 0.5))
	yStart := int(math.Ceil(y - 0.5))
	yEnd := int(math.Ceil(y + h - 0.5))

	for py := max(yStart, 0); py < yEnd && py < c.height; py++ {
		for px := max(xStart, 0); px < xEnd && px < c.cols; px++ {
			c.blendPixel(px, py, col, alpha)
		}
	}
}

// drawTriangle draws an isosceles triangle of the given box size centred on
// (cx, cy). At angle 0 the nose points up (negative y).
func (c *Canvas) drawTriangle(cx, cy, w, h, angle float64, col colorful.Color) {
	points := c.borrowPoints(3)
	tv := TriangleVertices(cx, cy, w, h, angle)
	copy(points, tv[:])
	c.drawPolygon(points, col, true)
}

// TriangleVertices returns the corners of the sprite triangle centred on
// (cx, cy): nose first, then the two wings, rotated by angle.
func TriangleVertices(cx, cy, w, h, angle float64) [3]Point {
	local := [3]Point{
		{X: 0, Y: -h / 2},
		{X: -w * 0.35, Y: h / 2},
		{X: w * 0.35, Y: h / 2},
	}
	sin, cos := math.Sincos(angle)
	var out [3]Point
	for i, p := range local {
		out[i] = Point{
			X: cx + p.X*cos - p.Y*sin,
			Y: cy + p.X*sin + p.Y*cos,
		}
	}
	return out
}

// drawPolygon draws a polygon outline, filling the interior if asked.
func (c *Canvas) drawPolygon(points []Point, col colorful.Color, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.drawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, col colorful.Color) {
	// Find bounding box
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		// Reuse intersection buffer
		intersections := c.intersectionBuf[:0]

		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// drawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) drawLine(p1, p2 Point, col colorful.Color) {
	x1 := int(math.Floor(p1.X))
	y1 := int(math.Floor(p1.Y))
	x2 := int(math.Floor(p2.X))
	y2 := int(math.Floor(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// borrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call.
func (c *Canvas) borrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
