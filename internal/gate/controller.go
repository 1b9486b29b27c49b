package gate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/step"
)

// Cells is the visual collaborator: positional cells with a value, a size
// and a tag. The controller never adds or removes cells.
type Cells interface {
	Len() int
	Value(i int) int
	SetValue(i, v int)
	Size(i int) float64
	SetSize(i int, s float64)
	SetTag(i int, t cells.Tag)
	ClearTags()
}

// Controller mediates every visible action of one algorithm run.
type Controller struct {
	cells   Cells
	history *step.History
	gate    *Gate
	delay   time.Duration
	sleep   Sleeper
	logger  *slog.Logger
}

type Option func(*Controller)

func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithSleep replaces the pacing sleeper, mostly for tests.
func WithSleep(s Sleeper) Option {
	return func(c *Controller) { c.sleep = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func NewController(cs Cells, h *step.History, g *Gate, opts ...Option) *Controller {
	c := &Controller{
		cells:   cs,
		history: h,
		gate:    g,
		delay:   BaseDelay,
		sleep:   Sleep,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) History() *step.History { return c.history }
func (c *Controller) Gate() *Gate            { return c.gate }
func (c *Controller) Len() int               { return c.cells.Len() }

// pass runs the checkpoint: cancellation, pause, then the pacing delay.
func (c *Controller) pass(ctx context.Context) error {
	if err := c.gate.Wait(ctx); err != nil {
		return err
	}
	return c.sleep(ctx, c.delay)
}

// Compare reports whether the value at i is strictly greater than the value at j.
func (c *Controller) Compare(ctx context.Context, i, j int) (bool, error) {
	if err := c.pass(ctx); err != nil {
		return false, fmt.Errorf("compare %d/%d: %w", i, j, err)
	}
	vi, vj := c.cells.Value(i), c.cells.Value(j)
	s := c.history.Record(step.Comparison(i, j, vi, vj))
	c.logger.Debug("step", "seq", s.Seq, "kind", s.Kind, "i", i, "j", j)
	return vi > vj, nil
}

// Swap exchanges the value and size of positions i and j.
func (c *Controller) Swap(ctx context.Context, i, j int) error {
	if err := c.pass(ctx); err != nil {
		return fmt.Errorf("swap %d/%d: %w", i, j, err)
	}
	vi, vj := c.cells.Value(i), c.cells.Value(j)
	s := c.history.Record(step.Swap(i, j, vi, vj))
	c.logger.Debug("step", "seq", s.Seq, "kind", s.Kind, "i", i, "j", j)

	c.cells.SetValue(i, vj)
	c.cells.SetSize(i, cells.SizeOf(vj))
	c.cells.SetValue(j, vi)
	c.cells.SetSize(j, cells.SizeOf(vi))
	return nil
}

func (c *Controller) Mark(i int)        { c.cells.SetTag(i, cells.Active) }
func (c *Controller) MarkSpecial(i int) { c.cells.SetTag(i, cells.Special) }
func (c *Controller) Unmark(i int)      { c.cells.SetTag(i, cells.None) }

func (c *Controller) MarkDone(i int) {
	c.cells.SetTag(i, cells.Done)
	c.history.Record(step.MilestoneAt(i, fmt.Sprintf("Element at index %d is in final position", i)))
}

func (c *Controller) MarkAllDone() {
	for i := 0; i < c.cells.Len(); i++ {
		c.cells.SetTag(i, cells.Done)
	}
	c.history.Record(step.Milestone("Sorting completed!"))
}

func (c *Controller) LogStart(name string) {
	c.history.Record(step.Info(fmt.Sprintf("Starting %s...", name)))
}

func (c *Controller) LogArrayState() {
	n := c.cells.Len()
	vals := make([]string, n)
	for i := 0; i < n; i++ {
		vals[i] = strconv.Itoa(c.cells.Value(i))
	}
	c.history.Record(step.Info("Array: [" + strings.Join(vals, ", ") + "]"))
}

// Reset rewinds the cursor, clears the pause flag and untags every cell.
// The recorded log is kept.
func (c *Controller) Reset() {
	c.history.Rewind()
	c.gate.Resume()
	c.cells.ClearTags()
}
