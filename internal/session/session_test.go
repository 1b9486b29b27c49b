package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/gate"
)

const bubbleLog = "Starting Bubble Sort...\n" +
	"Array: [5, 3, 8]\n" +
	"Comparing index 0 (5) with index 1 (3)\n" +
	"Swapping index 0 (5) with index 1 (3)\n" +
	"Comparing index 1 (5) with index 2 (8)\n" +
	"Element at index 2 is in final position\n" +
	"Comparing index 0 (3) with index 1 (5)\n" +
	"Element at index 1 is in final position\n" +
	"Sorting completed!"

func noSleep(ctx context.Context, d time.Duration) error {
	if ctx.Err() != nil {
		return gate.ErrCancelled
	}
	return nil
}

// ticker returns a sleeper that lets one gated operation through per value
// sent on tick. The sleeper announces itself on waiting before blocking.
func ticker() (sleep gate.Sleeper, waiting, tick chan struct{}) {
	waiting = make(chan struct{})
	tick = make(chan struct{})
	sleep = func(ctx context.Context, d time.Duration) error {
		select {
		case waiting <- struct{}{}:
		case <-ctx.Done():
			return gate.ErrCancelled
		}
		select {
		case <-tick:
			return nil
		case <-ctx.Done():
			return gate.ErrCancelled
		}
	}
	return sleep, waiting, tick
}

func newSession(values []int, opts ...Option) *Session {
	return New(cells.NewBoard(values), opts...)
}

func TestRunCompletes(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSession([]int{5, 3, 8}, WithSleep(noSleep))
	require.NoError(t, s.Start(context.Background(), "bubble"))

	res := s.Wait()
	assert.Equal(t, StatusCompleted, res.Status)
	assert.NoError(t, res.Err)
	assert.Equal(t, "bubble", res.Algorithm)
	assert.Equal(t, 9, res.Steps)
	assert.Equal(t, StatusCompleted, s.Status())

	assert.Equal(t, []int{3, 5, 8}, s.Board().Values())
	assert.Equal(t, []int{5, 3, 8}, s.Original())
	assert.Equal(t, bubbleLog, s.ExportLog())

	vals := s.Metrics().Values()
	assert.Equal(t, 3.0, vals["comparisons"])
	assert.Equal(t, 1.0, vals["swaps"])
	assert.Equal(t, 3.0, vals["milestones"])

	for _, c := range s.Board().Cells() {
		assert.Equal(t, cells.Done, c.Tag)
	}
}

func TestStartUnknownAlgorithm(t *testing.T) {
	s := newSession([]int{2, 1})
	err := s.Start(context.Background(), "bogo")
	assert.True(t, errors.Is(err, algorithms.ErrUnknown))
	assert.Equal(t, StatusIdle, s.Status())
}

func TestWaitWithoutRun(t *testing.T) {
	s := newSession([]int{2, 1})
	assert.Equal(t, StatusIdle, s.Wait().Status)
	assert.Nil(t, s.Done())
	_, ok := s.Algorithm()
	assert.False(t, ok)
}

func TestCancelIsNormalTermination(t *testing.T) {
	defer goleak.VerifyNone(t)

	sleep, _, _ := ticker()
	s := newSession([]int{4, 3, 2, 1}, WithSleep(sleep))
	require.NoError(t, s.Start(context.Background(), "insertion"))
	assert.Equal(t, StatusRunning, s.Status())

	s.Cancel()
	res := s.Wait()
	assert.Equal(t, StatusCancelled, res.Status)
	assert.NoError(t, res.Err)
	assert.Equal(t, []int{4, 3, 2, 1}, s.Board().Values())
}

func TestParentContextCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	sleep, _, _ := ticker()
	ctx, cancel := context.WithCancel(context.Background())
	s := newSession([]int{4, 3, 2, 1}, WithSleep(sleep))
	require.NoError(t, s.Start(ctx, "quick"))

	cancel()
	assert.Equal(t, StatusCancelled, s.Wait().Status)
}

func TestStartReplacesPreviousRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	sleep, _, _ := ticker()
	s := newSession([]int{4, 3, 2, 1}, WithSleep(sleep))
	require.NoError(t, s.Start(context.Background(), "bubble"))
	first := s.History()
	firstDone := s.Done()

	require.NoError(t, s.Start(context.Background(), "selection"))
	select {
	case <-firstDone:
	default:
		t.Fatal("previous run still active after Start")
	}

	assert.NotSame(t, first, s.History())
	info, ok := s.Algorithm()
	require.True(t, ok)
	assert.Equal(t, "selection", info.Key)

	s.Cancel()
	assert.Equal(t, StatusCancelled, s.Wait().Status)
}

func TestPauseAndAdvance(t *testing.T) {
	defer goleak.VerifyNone(t)

	sleep, waiting, tick := ticker()
	s := newSession([]int{5, 3, 8}, WithSleep(sleep))
	require.NoError(t, s.Start(context.Background(), "bubble"))

	// The first compare is past the gate and inside the pacing delay.
	<-waiting
	s.Pause()
	assert.Equal(t, StatusPaused, s.Status())
	tick <- struct{}{}
	require.Eventually(t, func() bool { return s.History().Len() == 3 }, time.Second, time.Millisecond)
	assert.Never(t, func() bool { return s.History().Len() > 3 }, 50*time.Millisecond, 5*time.Millisecond)

	s.Advance()
	<-waiting
	tick <- struct{}{}
	require.Eventually(t, func() bool { return s.History().Len() == 4 }, time.Second, time.Millisecond)
	assert.Never(t, func() bool { return s.History().Len() > 4 }, 50*time.Millisecond, 5*time.Millisecond)

	assert.False(t, s.TogglePause())
	assert.Equal(t, StatusRunning, s.Status())
	done := s.Done()
	go func() {
		for {
			select {
			case <-waiting:
			case tick <- struct{}{}:
			case <-done:
				return
			}
		}
	}()
	res := s.Wait()
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, bubbleLog, s.ExportLog())
}

func TestResetRestoresOriginal(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSession([]int{5, 3, 8}, WithSleep(noSleep))
	require.NoError(t, s.Start(context.Background(), "bubble"))
	s.Wait()
	s.Pause()

	s.Reset()
	assert.Equal(t, []int{5, 3, 8}, s.Board().Values())
	assert.Equal(t, -1, s.History().Cursor())
	assert.Equal(t, 9, s.History().Len())
	assert.False(t, s.Paused())
	for _, c := range s.Board().Cells() {
		assert.Equal(t, cells.None, c.Tag)
	}
	assert.Equal(t, cells.SizeOf(5), s.Board().Size(0))
}

func TestResetCancelsActiveRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	sleep, _, _ := ticker()
	s := newSession([]int{5, 3, 8}, WithSleep(sleep))
	require.NoError(t, s.Start(context.Background(), "merge"))

	s.Reset()
	assert.Equal(t, StatusCancelled, s.Status())
	assert.Equal(t, []int{5, 3, 8}, s.Board().Values())
}

func TestClearLog(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSession([]int{5, 3, 8}, WithSleep(noSleep))
	require.NoError(t, s.Start(context.Background(), "bubble"))
	s.Wait()

	s.ClearLog()
	assert.Equal(t, 0, s.History().Len())
	assert.Equal(t, -1, s.History().Cursor())
	assert.Equal(t, "", s.ExportLog())
	assert.Equal(t, 0.0, s.Metrics().Values()["comparisons"])
}

func TestFrameFollowsCursor(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSession([]int{5, 3, 8}, WithSleep(noSleep))
	require.NoError(t, s.Start(context.Background(), "bubble"))
	s.Wait()

	assert.Equal(t, []int{3, 5, 8}, s.Frame())

	for s.History().Cursor() > 2 {
		_, ok := s.StepBack()
		require.True(t, ok)
	}
	assert.Equal(t, []int{5, 3, 8}, s.Frame())

	st, ok := s.StepForward()
	require.True(t, ok)
	assert.Equal(t, "Swapping index 0 (5) with index 1 (3)", st.String())
	assert.Equal(t, []int{3, 5, 8}, s.Frame())

	assert.Equal(t, []int{3, 5, 8}, s.Board().Values())
}

func TestExport(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := afero.NewMemMapFs()
	s := newSession([]int{5, 3, 8}, WithSleep(noSleep))
	require.NoError(t, s.Start(context.Background(), "bubble"))
	s.Wait()

	path, err := s.Export(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "sorting-log.txt", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, bubbleLog, string(data))

	path, err = s.Export(fs, "logs/run.txt")
	require.NoError(t, err)
	assert.Equal(t, "logs/run.txt", path)
}

func TestIndependentSessions(t *testing.T) {
	defer goleak.VerifyNone(t)

	values := cells.Seeded(30, 42)
	left := newSession(values, WithSleep(noSleep))
	right := newSession(values, WithSleep(noSleep))

	require.NoError(t, left.Start(context.Background(), "merge"))
	require.NoError(t, right.Start(context.Background(), "quick"))

	assert.Equal(t, StatusCompleted, left.Wait().Status)
	assert.Equal(t, StatusCompleted, right.Wait().Status)
	assert.Equal(t, left.Board().Values(), right.Board().Values())
	assert.NotEqual(t, left.ExportLog(), right.ExportLog())
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
		done   bool
	}{
		{StatusIdle, "idle", false},
		{StatusRunning, "running", false},
		{StatusPaused, "paused", false},
		{StatusCompleted, "completed", true},
		{StatusCancelled, "cancelled", true},
		{StatusFailed, "failed", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
		assert.Equal(t, tt.done, tt.status.Done())
	}
}

func TestSetDelayAppliesToNextRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var seen []time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		mu.Lock()
		seen = append(seen, d)
		mu.Unlock()
		return noSleep(ctx, d)
	}

	s := newSession([]int{2, 1}, WithSleep(sleep), WithDelay(time.Second))
	s.SetDelay(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, s.Delay())

	require.NoError(t, s.Start(context.Background(), "bubble"))
	require.Equal(t, StatusCompleted, s.Wait().Status)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for _, d := range seen {
		assert.Equal(t, 5*time.Millisecond, d)
	}
}

func TestSetDelayConcurrentWithStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSession([]int{3, 1, 2}, WithSleep(noSleep))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 100; i++ {
			s.SetDelay(time.Duration(i) * time.Millisecond)
		}
	}()

	require.NoError(t, s.Start(context.Background(), "insertion"))
	assert.Equal(t, StatusCompleted, s.Wait().Status)
	<-done
	assert.Equal(t, 100*time.Millisecond, s.Delay())
}
