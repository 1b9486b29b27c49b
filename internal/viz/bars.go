package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/step"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Bar is one column of the chart.
type Bar struct {
	Value int
	Tag   cells.Tag
}

// BarsFromCells converts a board snapshot.
func BarsFromCells(cs []cells.Cell) []Bar {
	out := make([]Bar, len(cs))
	for i, c := range cs {
		out[i] = Bar{Value: c.Value, Tag: c.Tag}
	}
	return out
}

// BarsFromFrame builds bars for a replayed frame, tagging the positions the
// step under the cursor refers to.
func BarsFromFrame(values []int, s step.Step, ok bool) []Bar {
	out := make([]Bar, len(values))
	for i, v := range values {
		out[i] = Bar{Value: v}
	}
	if !ok {
		return out
	}
	tag := cells.Active
	switch s.Kind {
	case step.KindSwap:
		tag = cells.Special
	case step.KindMilestone:
		tag = cells.Done
	}
	for _, i := range step.Highlight(s) {
		if i >= 0 && i < len(out) {
			out[i].Tag = tag
		}
	}
	return out
}

// barWidth picks the column width that fits n bars into width characters.
func barWidth(n, width int) int {
	switch {
	case n == 0:
		return 1
	case n*3 <= width:
		return 2
	default:
		return 1
	}
}

// RenderBars draws bars bottom-up using eighth blocks. Values are scaled so
// that cells.MaxValue fills height rows.
func RenderBars(bars []Bar, width, height int, th Theme) string {
	if height < 1 {
		height = 1
	}
	bw := barWidth(len(bars), width)
	gap := ""
	if bw > 1 {
		gap = " "
	}

	levels := make([]int, len(bars))
	for i, b := range bars {
		levels[i] = b.Value * height * 8 / cells.MaxValue
		if levels[i] < 1 && b.Value > 0 {
			levels[i] = 1
		}
	}

	styles := map[cells.Tag]lipgloss.Style{}
	styleFor := func(t cells.Tag) lipgloss.Style {
		st, ok := styles[t]
		if !ok {
			st = lipgloss.NewStyle().Foreground(th.TagColor(t))
			styles[t] = st
		}
		return st
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		floor := (height - 1 - r) * 8
		var line strings.Builder
		for i, b := range bars {
			fill := levels[i] - floor
			if fill < 0 {
				fill = 0
			}
			if fill > 8 {
				fill = 8
			}
			cell := strings.Repeat(string(blocks[fill]), bw)
			if fill > 0 {
				cell = styleFor(b.Tag).Render(cell)
			}
			line.WriteString(cell)
			if i < len(bars)-1 {
				line.WriteString(gap)
			}
		}
		rows[r] = line.String()
	}
	return strings.Join(rows, "\n")
}
