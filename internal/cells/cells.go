package cells

import (
	"sync"
)

// BarScale converts a value into a bar size.
const BarScale = 3.8

// Tag is the visual state of a single cell.
type Tag int

const (
	None Tag = iota
	Active
	Special
	Done
)

func (t Tag) String() string {
	switch t {
	case Active:
		return "active"
	case Special:
		return "special"
	case Done:
		return "done"
	default:
		return "none"
	}
}

// Cell is one bar of the visualization.
type Cell struct {
	Value int
	Size  float64
	Tag   Tag
}

// Board is a positionally ordered, fixed-length collection of cells.
// It is safe for one writer and any number of readers.
type Board struct {
	mu    sync.RWMutex
	cells []Cell
}

func NewBoard(values []int) *Board {
	b := &Board{}
	b.Load(values)
	return b
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cells)
}

func (b *Board) Value(i int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cells[i].Value
}

func (b *Board) SetValue(i, v int) {
	b.mu.Lock()
	b.cells[i].Value = v
	b.mu.Unlock()
}

func (b *Board) Size(i int) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cells[i].Size
}

func (b *Board) SetSize(i int, s float64) {
	b.mu.Lock()
	b.cells[i].Size = s
	b.mu.Unlock()
}

func (b *Board) Tag(i int) Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cells[i].Tag
}

func (b *Board) SetTag(i int, t Tag) {
	b.mu.Lock()
	b.cells[i].Tag = t
	b.mu.Unlock()
}

// ClearTags sets every cell back to None.
func (b *Board) ClearTags() {
	b.mu.Lock()
	for i := range b.cells {
		b.cells[i].Tag = None
	}
	b.mu.Unlock()
}

// Values returns a copy of the displayed values.
func (b *Board) Values() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]int, len(b.cells))
	for i, c := range b.cells {
		out[i] = c.Value
	}
	return out
}

// Cells returns a snapshot of the board.
func (b *Board) Cells() []Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Load replaces the board contents with values, sized and untagged.
func (b *Board) Load(values []int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = make([]Cell, len(values))
	for i, v := range values {
		b.cells[i] = Cell{Value: v, Size: SizeOf(v)}
	}
}

// SizeOf returns the bar size for a value.
func SizeOf(v int) float64 {
	return BarScale * float64(v)
}
