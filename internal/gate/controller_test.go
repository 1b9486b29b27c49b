package gate_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/gate"
	"github.com/san-kum/sortviz/internal/step"
)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

var _ = Describe("Controller", func() {
	var (
		board *cells.Board
		hist  *step.History
		g     *gate.Gate
		ctrl  *gate.Controller
		ctx   context.Context
	)

	BeforeEach(func() {
		board = cells.NewBoard([]int{5, 3, 8})
		hist = step.NewHistory()
		g = gate.New()
		ctrl = gate.NewController(board, hist, g, gate.WithSleep(noSleep))
		ctx = context.Background()
	})

	Describe("Compare", func() {
		It("is a strict greater-than test", func() {
			gt, err := ctrl.Compare(ctx, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(gt).To(BeTrue())

			gt, err = ctrl.Compare(ctx, 1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(gt).To(BeFalse())
		})

		It("returns false for equal values", func() {
			board.Load([]int{4, 4})
			gt, err := ctrl.Compare(ctx, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(gt).To(BeFalse())
		})

		It("records both observed values", func() {
			_, _ = ctrl.Compare(ctx, 0, 2)
			s, ok := hist.Current()
			Expect(ok).To(BeTrue())
			Expect(s.Kind).To(Equal(step.KindComparison))
			Expect(s.ValueA).To(Equal(step.Int(5)))
			Expect(s.ValueB).To(Equal(step.Int(8)))
		})
	})

	Describe("Swap", func() {
		It("exchanges values and sizes and records the pre-swap values", func() {
			Expect(ctrl.Swap(ctx, 0, 2)).To(Succeed())

			Expect(board.Values()).To(Equal([]int{8, 3, 5}))
			Expect(board.Size(0)).To(Equal(cells.SizeOf(8)))
			Expect(board.Size(2)).To(Equal(cells.SizeOf(5)))

			s, _ := hist.Current()
			Expect(s.Kind).To(Equal(step.KindSwap))
			Expect(s.ValueA).To(Equal(step.Int(5)))
			Expect(s.ValueB).To(Equal(step.Int(8)))
		})
	})

	Describe("pausing", func() {
		It("freezes a swap until resumed", func() {
			g.Pause()
			done := make(chan error, 1)
			go func() { done <- ctrl.Swap(ctx, 0, 1) }()

			Consistently(hist.Len, 100*time.Millisecond).Should(Equal(0))
			Expect(board.Values()).To(Equal([]int{5, 3, 8}))

			g.Resume()
			Eventually(done).Should(Receive(BeNil()))
			Expect(hist.Len()).To(Equal(1))
			Expect(board.Values()).To(Equal([]int{3, 5, 8}))
		})

		It("lets one operation through per release", func() {
			g.Pause()
			done := make(chan error, 2)
			go func() {
				done <- ctrl.Swap(ctx, 0, 1)
				done <- ctrl.Swap(ctx, 1, 2)
			}()

			g.Release()
			Eventually(done).Should(Receive(BeNil()))
			Consistently(hist.Len, 100*time.Millisecond).Should(Equal(1))
			Expect(g.Paused()).To(BeTrue())

			g.Release()
			Eventually(done).Should(Receive(BeNil()))
			Expect(hist.Len()).To(Equal(2))
		})

		It("toggles", func() {
			Expect(g.Toggle()).To(BeTrue())
			Expect(g.Paused()).To(BeTrue())
			Expect(g.Toggle()).To(BeFalse())
		})
	})

	Describe("cancellation", func() {
		It("fails every later operation without side effects", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := ctrl.Compare(cctx, 0, 1)
			Expect(gate.IsCancelled(err)).To(BeTrue())
			err = ctrl.Swap(cctx, 0, 1)
			Expect(err).To(MatchError(gate.ErrCancelled))

			Expect(hist.Len()).To(Equal(0))
			Expect(board.Values()).To(Equal([]int{5, 3, 8}))
		})

		It("wakes a paused operation", func() {
			cctx, cancel := context.WithCancel(ctx)
			g.Pause()
			done := make(chan error, 1)
			go func() { done <- ctrl.Swap(cctx, 0, 1) }()

			Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
			cancel()

			var err error
			Eventually(done).Should(Receive(&err))
			Expect(gate.IsCancelled(err)).To(BeTrue())
			Expect(hist.Len()).To(Equal(0))
		})

		It("interrupts the pacing delay", func() {
			slow := gate.NewController(board, hist, g, gate.WithDelay(time.Hour))
			cctx, cancel := context.WithCancel(ctx)
			done := make(chan error, 1)
			go func() { done <- slow.Swap(cctx, 0, 1) }()

			cancel()
			var err error
			Eventually(done).Should(Receive(&err))
			Expect(gate.IsCancelled(err)).To(BeTrue())
			Expect(hist.Len()).To(Equal(0))
			Expect(board.Values()).To(Equal([]int{5, 3, 8}))
		})
	})

	Describe("marks", func() {
		It("tags cells without recording steps", func() {
			ctrl.Mark(0)
			ctrl.MarkSpecial(1)
			Expect(board.Tag(0)).To(Equal(cells.Active))
			Expect(board.Tag(1)).To(Equal(cells.Special))
			ctrl.Unmark(0)
			Expect(board.Tag(0)).To(Equal(cells.None))
			Expect(hist.Len()).To(Equal(0))
		})

		It("records milestones when finalizing", func() {
			ctrl.MarkDone(2)
			Expect(board.Tag(2)).To(Equal(cells.Done))
			s, _ := hist.Current()
			Expect(s.Kind).To(Equal(step.KindMilestone))
			Expect(step.Format(s)).To(Equal("Element at index 2 is in final position"))
		})

		It("logs banners", func() {
			ctrl.LogStart("Bubble Sort")
			ctrl.LogArrayState()
			Expect(hist.Export()).To(Equal("Starting Bubble Sort...\nArray: [5, 3, 8]"))
		})
	})

	Describe("Reset", func() {
		It("rewinds, resumes and untags but keeps the log", func() {
			_, _ = ctrl.Compare(ctx, 0, 1)
			_ = ctrl.Swap(ctx, 0, 1)
			ctrl.MarkAllDone()
			g.Pause()

			ctrl.Reset()

			Expect(hist.Cursor()).To(Equal(-1))
			Expect(hist.Len()).To(Equal(3))
			Expect(g.Paused()).To(BeFalse())
			for i := 0; i < board.Len(); i++ {
				Expect(board.Tag(i)).To(Equal(cells.None))
			}
			s, ok := hist.StepForward()
			Expect(ok).To(BeTrue())
			Expect(s.Kind).To(Equal(step.KindComparison))
		})
	})

	It("produces the expected log for [5,3,8]", func() {
		gt, err := ctrl.Compare(ctx, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(gt).To(BeTrue())
		Expect(ctrl.Swap(ctx, 0, 1)).To(Succeed())
		ctrl.MarkAllDone()

		Expect(board.Values()).To(Equal([]int{3, 5, 8}))
		kinds := []step.Kind{}
		for _, s := range hist.Steps() {
			kinds = append(kinds, s.Kind)
		}
		Expect(kinds).To(Equal([]step.Kind{step.KindComparison, step.KindSwap, step.KindMilestone}))
		Expect(hist.Export()).To(Equal(
			"Comparing index 0 (5) with index 1 (3)\n" +
				"Swapping index 0 (5) with index 1 (3)\n" +
				"Sorting completed!"))
	})
})
