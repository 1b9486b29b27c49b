package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/gate"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/step"
	"github.com/san-kum/sortviz/internal/storage"
)

type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusCompleted
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Done reports whether the status is terminal.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

// Result describes how a run ended.
type Result struct {
	Algorithm string
	Status    Status
	Err       error
	Steps     int
	Elapsed   time.Duration
}

type run struct {
	info   algorithms.Info
	ctrl   *gate.Controller
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

type Session struct {
	mu       sync.Mutex
	startMu  sync.Mutex
	board    *cells.Board
	original []int
	registry *algorithms.Registry
	metrics  *metrics.Set
	delay    time.Duration
	sleep    gate.Sleeper
	logger   *slog.Logger
	observer []step.Observer

	history *step.History
	gate    *gate.Gate
	current *run
}

type Option func(*Session)

func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

func WithSpeed(speed int) Option {
	return func(s *Session) { s.delay = gate.DelayFor(speed) }
}

func WithSleep(sl gate.Sleeper) Option {
	return func(s *Session) { s.sleep = sl }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithRegistry(r *algorithms.Registry) Option {
	return func(s *Session) { s.registry = r }
}

func WithMetrics(m *metrics.Set) Option {
	return func(s *Session) { s.metrics = m }
}

// WithObserver adds an observer to the history of every run.
func WithObserver(o step.Observer) Option {
	return func(s *Session) { s.observer = append(s.observer, o) }
}

func New(board *cells.Board, opts ...Option) *Session {
	s := &Session{
		board:    board,
		original: board.Values(),
		registry: algorithms.NewRegistry(),
		metrics:  metrics.Default(),
		delay:    gate.BaseDelay,
		sleep:    gate.Sleep,
		logger:   logging.NewNop(),
		history:  step.NewHistory(),
		gate:     gate.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Board() *cells.Board            { return s.board }
func (s *Session) Registry() *algorithms.Registry { return s.registry }
func (s *Session) Metrics() *metrics.Set          { return s.metrics }

// SetDelay changes the pacing delay used by the next run.
func (s *Session) SetDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

func (s *Session) Delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

// Start cancels and joins the active run, snapshots the board as the
// original array and launches the named algorithm on its own goroutine.
func (s *Session) Start(ctx context.Context, algorithm string) error {
	sorter, info, err := s.registry.Get(algorithm)
	if err != nil {
		return err
	}

	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.Cancel()
	s.Wait()

	s.mu.Lock()
	delay := s.delay
	s.original = s.board.Values()
	s.board.ClearTags()
	s.metrics.Reset()

	observers := append([]step.Observer{s.metrics}, s.observer...)
	h := step.NewHistory(observers...)
	g := gate.New()
	ctrl := gate.NewController(s.board, h, g,
		gate.WithDelay(delay),
		gate.WithSleep(s.sleep),
		gate.WithLogger(s.logger.With("algorithm", info.Key)),
	)

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{info: info, ctrl: ctrl, cancel: cancel, done: make(chan struct{})}
	s.history, s.gate, s.current = h, g, r
	s.mu.Unlock()

	s.logger.Info("run started", "algorithm", info.Key, "size", s.board.Len(), "delay", delay)
	go s.execute(runCtx, sorter, r)
	return nil
}

func (s *Session) execute(ctx context.Context, sorter algorithms.Sorter, r *run) {
	defer close(r.done)
	defer r.cancel()

	start := time.Now()
	err := sorter(ctx, r.ctrl)

	res := Result{
		Algorithm: r.info.Key,
		Steps:     r.ctrl.History().Len(),
		Elapsed:   time.Since(start),
	}
	switch {
	case err == nil:
		res.Status = StatusCompleted
		s.logger.Info("run completed", "algorithm", r.info.Key, "steps", res.Steps, "elapsed", res.Elapsed)
	case gate.IsCancelled(err):
		res.Status = StatusCancelled
		s.logger.Debug("run cancelled", "algorithm", r.info.Key, "steps", res.Steps)
	default:
		res.Status = StatusFailed
		res.Err = err
		s.logger.Error("run failed", "algorithm", r.info.Key, "error", err)
	}

	s.mu.Lock()
	r.result = res
	s.mu.Unlock()
}

func (s *Session) active() *run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Cancel stops the active run at its next checkpoint. It does not wait.
func (s *Session) Cancel() {
	if r := s.active(); r != nil {
		r.cancel()
	}
}

// Wait blocks until the active run ends and returns its result. Without a
// run it returns an idle result immediately.
func (s *Session) Wait() Result {
	r := s.active()
	if r == nil {
		return Result{Status: StatusIdle}
	}
	<-r.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.result
}

// Done is closed when the active run ends; nil without a run.
func (s *Session) Done() <-chan struct{} {
	if r := s.active(); r != nil {
		return r.done
	}
	return nil
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.current
	if r == nil {
		return StatusIdle
	}
	select {
	case <-r.done:
		return r.result.Status
	default:
	}
	if s.gate.Paused() {
		return StatusPaused
	}
	return StatusRunning
}

// Algorithm returns the metadata of the most recent run.
func (s *Session) Algorithm() (algorithms.Info, bool) {
	r := s.active()
	if r == nil {
		return algorithms.Info{}, false
	}
	return r.info, true
}

func (s *Session) currentGate() *gate.Gate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate
}

func (s *Session) currentHistory() *step.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

func (s *Session) Pause()  { s.currentGate().Pause() }
func (s *Session) Resume() { s.currentGate().Resume() }

func (s *Session) TogglePause() bool { return s.currentGate().Toggle() }

func (s *Session) Paused() bool { return s.currentGate().Paused() }

// Advance lets the paused run perform one more gated operation.
func (s *Session) Advance() { s.currentGate().Release() }

func (s *Session) StepForward() (step.Step, bool) { return s.currentHistory().StepForward() }
func (s *Session) StepBack() (step.Step, bool)    { return s.currentHistory().StepBack() }

func (s *Session) History() *step.History { return s.currentHistory() }

// Reset stops the active run, rewinds the log cursor, clears the pause flag
// and the cell tags, and restores the original array. The log is kept.
func (s *Session) Reset() {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.Cancel()
	s.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.ctrl.Reset()
	} else {
		s.history.Rewind()
		s.gate.Resume()
		s.board.ClearTags()
	}
	s.board.Load(s.original)
}

// ClearLog discards the recorded steps of the current run.
func (s *Session) ClearLog() {
	s.currentHistory().ClearLog()
	s.metrics.Reset()
}

func (s *Session) ExportLog() string { return s.currentHistory().Export() }

// Export writes the log atomically to path, or to sorting-log.txt when path
// is empty.
func (s *Session) Export(fs afero.Fs, path string) (string, error) {
	if path == "" {
		path = step.DefaultExportFile
	}
	if err := storage.WriteFileAtomic(fs, path, []byte(s.ExportLog())); err != nil {
		return "", err
	}
	s.logger.Info("log exported", "path", path)
	return path, nil
}

// Original returns the array as it was when the last run started.
func (s *Session) Original() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.original))
	copy(out, s.original)
	return out
}

// Frame returns the bar values as they were right after the step under the
// cursor, replayed from the original array.
func (s *Session) Frame() []int {
	h := s.currentHistory()
	return step.Replay(s.Original(), h.Steps(), h.Cursor())
}
