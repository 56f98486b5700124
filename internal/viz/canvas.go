package viz

import "strings"

// Braille cell layout, 2x4 dots per character:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface. Pixel coordinates run over
// (cols*2) x (rows*4) sub-cell dots.
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *Canvas) Cols() int        { return c.cols }
func (c *Canvas) Rows() int        { return c.rows }
func (c *Canvas) PixelWidth() int  { return c.cols * 2 }
func (c *Canvas) PixelHeight() int { return c.rows * 4 }

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

// Set lights the dot at pixel (x, y). Out-of-range pixels are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] |= dotBits[y%4][x%2]
}

// Line draws from (x0, y0) to (x1, y1) with Bresenham stepping.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Blot lights a 3x3 block centered on (x, y), for anchors and markers.
func (c *Canvas) Blot(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.cols + 1) * c.rows)
	for row := 0; row < c.rows; row++ {
		b.WriteString(string(c.cells[row*c.cols : (row+1)*c.cols]))
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
