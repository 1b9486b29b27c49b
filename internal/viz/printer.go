package viz

import (
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"

	"github.com/san-kum/sortviz/internal/step"
)

// Printer writes each recorded step as one log line. It is a step.Observer
// used by headless runs.
type Printer struct {
	mu     *sync.Mutex
	out    *termenv.Output
	prefix string
}

// NewPrinter writes to w. Colors follow the terminal behind w unless
// noColor is set.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	var opts []termenv.OutputOption
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Printer{mu: &sync.Mutex{}, out: termenv.NewOutput(w, opts...)}
}

// WithPrefix returns a printer sharing the output that tags each line.
func (p *Printer) WithPrefix(prefix string) *Printer {
	return &Printer{mu: p.mu, out: p.out, prefix: prefix}
}

func (p *Printer) OnStep(s step.Step) {
	line := step.Format(s)
	var color string
	switch s.Kind {
	case step.KindComparison:
		color = "#5f87d7"
	case step.KindSwap:
		color = "#ffd75f"
	case step.KindMilestone:
		color = "#5fd75f"
	default:
		color = "#888899"
	}
	styled := p.out.String(line).Foreground(p.out.Color(color))
	if s.Kind == step.KindMilestone {
		styled = styled.Bold()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.prefix != "" {
		fmt.Fprintf(p.out, "%s %s\n", p.out.String(p.prefix).Faint(), styled)
		return
	}
	fmt.Fprintln(p.out, styled)
}
