package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plife/internal/particle"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleEmpty = 0x2800
	untagged     = -1
)

// Canvas is a braille pixel grid. Each cell additionally remembers the type
// of the last particle plotted into it so it can be coloured.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	tags          [][]int8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		tags:   make([][]int8, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.tags[i] = make([]int8, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Plot sets a pixel and tags its cell with t.
func (c *Canvas) Plot(x, y int, t particle.Type) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.tags[row][col] = int8(t)
}

func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < brailleEmpty {
		c.Grid[row][col] = brailleEmpty
	}
	if c.Grid[row][col] == brailleEmpty {
		c.tags[row][col] = untagged
	}
}

// Tag reports the particle type plotted into a cell, if any.
func (c *Canvas) Tag(row, col int) (particle.Type, bool) {
	if row < 0 || col < 0 || row >= c.Height || col >= c.Width {
		return 0, false
	}
	tag := c.tags[row][col]
	if tag == untagged {
		return 0, false
	}
	return particle.Type(tag), true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleEmpty
			c.tags[i][j] = untagged
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

// DrawFrame outlines the canvas edge.
func (c *Canvas) DrawFrame() {
	cw, ch := c.PixelSize()
	c.DrawLine(0, 0, cw-1, 0)
	c.DrawLine(0, ch-1, cw-1, ch-1)
	c.DrawLine(0, 0, 0, ch-1)
	c.DrawLine(cw-1, 0, cw-1, ch-1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Colored renders the grid with tagged cells in their palette colour.
func (c *Canvas) Colored(pal particle.Palette) string {
	var styles [particle.NumTypes]lipgloss.Style
	for _, t := range particle.Types() {
		styles[t] = lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex(t)))
	}

	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if t, ok := c.Tag(i, j); ok {
				b.WriteString(styles[t].Render(string(r)))
				continue
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
