package step

import (
	"io"
	"strings"
	"sync"
	"time"
)

// DefaultExportFile is the name offered for an exported log.
const DefaultExportFile = "sorting-log.txt"

type History struct {
	mu        sync.RWMutex
	steps     []Step
	cursor    int
	observers []Observer
	now       func() time.Time
}

func NewHistory(observers ...Observer) *History {
	return &History{
		steps:     make([]Step, 0, 256),
		cursor:    -1,
		observers: observers,
		now:       time.Now,
	}
}

// Record appends s, points the cursor at it and returns the stored copy.
// Any combination of indices and values is accepted.
func (h *History) Record(s Step) Step {
	h.mu.Lock()
	s.Seq = len(h.steps)
	s.RecordedAt = h.now()
	h.steps = append(h.steps, s)
	h.cursor = s.Seq
	observers := h.observers
	h.mu.Unlock()

	for _, o := range observers {
		o.OnStep(s)
	}
	return s
}

// StepBack moves the cursor one step towards the start. It reports false,
// leaving the cursor alone, when the cursor is already at or before the first step.
func (h *History) StepBack() (Step, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor <= 0 {
		return Step{}, false
	}
	h.cursor--
	return h.steps[h.cursor], true
}

// StepForward moves the cursor one step towards the newest step.
func (h *History) StepForward() (Step, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor >= len(h.steps)-1 {
		return Step{}, false
	}
	h.cursor++
	return h.steps[h.cursor], true
}

// Current returns the step under the cursor.
func (h *History) Current() (Step, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.cursor < 0 {
		return Step{}, false
	}
	return h.steps[h.cursor], true
}

func (h *History) Cursor() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.steps)
}

func (h *History) At(i int) (Step, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= len(h.steps) {
		return Step{}, false
	}
	return h.steps[i], true
}

// Steps returns a copy of the recorded sequence.
func (h *History) Steps() []Step {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Step, len(h.steps))
	copy(out, h.steps)
	return out
}

// ClearLog discards every recorded step.
func (h *History) ClearLog() {
	h.mu.Lock()
	h.steps = h.steps[:0:0]
	h.cursor = -1
	h.mu.Unlock()
}

// Rewind puts the cursor before the first step and keeps the log.
func (h *History) Rewind() {
	h.mu.Lock()
	h.cursor = -1
	h.mu.Unlock()
}

// Export renders every step in recording order, one per line.
func (h *History) Export() string {
	steps := h.Steps()
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = Format(s)
	}
	return strings.Join(lines, "\n")
}

// WriteTo writes the Export text to w.
func (h *History) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, h.Export())
	return int64(n), err
}
