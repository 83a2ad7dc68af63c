// Package render walks a computed layout tree and paints it into a
// screen buffer, and composes the panes that tile a terminal among
// several documents (spec.md §4.I). Buffer is adapted from the
// teacher's buffer.go cell grid (kungfusheep-glyph): a flat []Cell
// slice indexed by row-major position, row dirty-tracking for partial
// flush, double-width-aware writes via go-runewidth. Dropped from the
// teacher's version: border-character merging and progress bars, which
// have no notational equivalent here.
package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/synless/synless/geom"
	"github.com/synless/synless/style"
)

// Cell is one character position of the screen buffer.
type Cell struct {
	Rune  rune
	Style style.Style
}

func emptyCell() Cell { return Cell{Rune: ' '} }

// Buffer is a 2D grid of cells the renderer paints into before a
// Frontend flushes it to the real screen.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirtyRows []bool
	dirtyMaxY int
}

// NewBuffer creates a width x height buffer filled with blank cells.
func NewBuffer(width, height int) *Buffer {
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = emptyCell()
	}
	return &Buffer{cells: cells, width: width, height: height, dirtyRows: make([]bool, height)}
}

// Width and Height report the buffer's dimensions.
func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x,y, or a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell()
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell, marking its row dirty. Out-of-bounds writes are
// silently dropped, matching the teacher's clamp-don't-panic
// convention for buffer writes.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
	if y > b.dirtyMaxY {
		b.dirtyMaxY = y
	}
	b.dirtyRows[y] = true
}

// WriteString paints s starting at x,y with st, stopping at maxWidth
// columns or the buffer edge, advancing two columns for double-width
// runes (go-runewidth) and filling the trailing cell with a zero rune
// so the renderer never double-counts it.
func (b *Buffer) WriteString(x, y int, s string, st style.Style, maxWidth int) {
	if y < 0 || y >= b.height {
		return
	}
	written := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		if written+rw > maxWidth || x >= b.width {
			break
		}
		if x >= 0 {
			b.Set(x, y, Cell{Rune: r, Style: st})
			if rw == 2 && x+1 < b.width {
				b.Set(x+1, y, Cell{Rune: 0, Style: st})
			}
		}
		x += rw
		written += rw
	}
}

// Fill paints ch with st across every cell of r.
func (b *Buffer) Fill(r geom.Rect, ch rune, st style.Style) {
	for row := r.Pos.Row; row < r.Pos.Row+r.Height; row++ {
		for col := r.Pos.Col; col < r.Pos.Col+r.Width; col++ {
			b.Set(int(col), int(row), Cell{Rune: ch, Style: st})
		}
	}
}

// DirtyRows reports which rows changed since the last call to Clean.
func (b *Buffer) DirtyRows() []bool { return b.dirtyRows }

// Clean clears the dirty-row tracking after a flush.
func (b *Buffer) Clean() {
	for i := range b.dirtyRows {
		b.dirtyRows[i] = false
	}
	b.dirtyMaxY = 0
}
