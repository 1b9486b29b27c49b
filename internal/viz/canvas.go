package viz

import (
	"strings"
)

const brailleBlank = 0x2800

// Dot bits of a braille cell, indexed by [row][column]. Each cell is two
// dots wide and four dots tall.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid used for compact array previews. One array
// element maps to one dot column.
type Canvas struct {
	cols, rows int
	cells      [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.cols * 2, c.rows * 4 }

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// fill sets the bottom h dots of dot column x.
func (c *Canvas) fill(x, h int) {
	w, maxH := c.Dots()
	if x < 0 || x >= w {
		return
	}
	h = min(h, maxH)
	for y := maxH - h; y < maxH; y++ {
		c.cells[y/4][x/2] |= brailleDots[y%4][x%2]
	}
}

// Bars clears the canvas and draws one column per value, scaled so that
// maxValue reaches the top. Arrays wider than the canvas are sampled and
// every column shows at least one dot.
func (c *Canvas) Bars(values []int, maxValue int) {
	c.Clear()
	if len(values) == 0 || maxValue <= 0 {
		return
	}
	w, h := c.Dots()
	n := len(values)
	cols := min(n, w)
	for x := 0; x < cols; x++ {
		c.fill(x, max(1, values[x*n/cols]*h/maxValue))
	}
}

func (c *Canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
