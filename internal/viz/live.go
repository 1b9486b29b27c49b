package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/afero"

	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/gate"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/step"
)

const (
	fps          = 30
	barHeight    = 16
	logLines     = 10
	statsWidth   = 50
	rateCapacity = 60
	maxSpeed     = 1000
)

var (
	chartStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type startedMsg struct{ err error }

type exportedMsg struct {
	path string
	err  error
}

// Options configure a live view.
type Options struct {
	Algorithm  string
	ExportPath string
	Speed      int
	Fs         afero.Fs
}

// Model is the single-run view: bars, run status, metrics and the step log.
type Model struct {
	ctx           context.Context
	sess          *session.Session
	algorithm     string
	speed         int
	fs            afero.Fs
	exportPath    string
	width, height int
	canvas        *Canvas
	rates         []float64
	frame         int
	showHelp      bool
	notice        string
}

func NewModel(ctx context.Context, sess *session.Session, opts Options) Model {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	speed := opts.Speed
	if speed < 1 {
		speed = 1
	}
	return Model{
		ctx:        ctx,
		sess:       sess,
		algorithm:  opts.Algorithm,
		speed:      speed,
		fs:         fs,
		exportPath: opts.ExportPath,
		width:      120,
		height:     40,
		canvas:     NewCanvas(20, 2),
		rates:      make([]float64, 0, rateCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start(), tick())
}

func (m Model) start() tea.Cmd {
	sess, ctx, algo := m.sess, m.ctx, m.algorithm
	return func() tea.Msg {
		return startedMsg{err: sess.Start(ctx, algo)}
	}
}

func (m Model) export() tea.Cmd {
	sess, fs, path := m.sess, m.fs, m.exportPath
	return func() tea.Msg {
		p, err := sess.Export(fs, path)
		return exportedMsg{path: p, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case startedMsg:
		if msg.err != nil {
			m.notice = "start failed: " + msg.err.Error()
		} else {
			m.notice = ""
			m.rates = m.rates[:0]
		}
	case exportedMsg:
		if msg.err != nil {
			m.notice = "export failed: " + msg.err.Error()
		} else {
			m.notice = "log exported to " + msg.path
		}
	case TickMsg:
		m.frame++
		if m.frame%fps == 0 && m.sess.Status() == session.StatusRunning {
			m.sampleRate()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Cancel()
		return m, tea.Quit
	case " ":
		if m.sess.TogglePause() {
			m.notice = "paused"
		} else {
			m.notice = "resumed"
		}
	case "]", "l":
		if _, ok := m.sess.StepForward(); !ok {
			m.notice = "at last step"
		}
	case "[", "h":
		if _, ok := m.sess.StepBack(); !ok {
			m.notice = "at first step"
		}
	case "n":
		if m.sess.Paused() {
			m.sess.Advance()
		} else {
			m.notice = "pause before single-stepping"
		}
	case "r":
		m.sess.Reset()
		m.rates = m.rates[:0]
		m.notice = "reset"
	case "c":
		m.sess.ClearLog()
		m.notice = "log cleared"
	case "e":
		return m, m.export()
	case "x":
		m.sess.Cancel()
		m.notice = "cancelled"
	case "s":
		m.notice = "starting"
		return m, m.start()
	case "+", "=":
		m.setSpeed(m.speed + 1)
	case "-":
		m.setSpeed(m.speed - 1)
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// setSpeed takes effect on the next start; the active run keeps its pace.
func (m *Model) setSpeed(speed int) {
	m.speed = min(max(speed, 1), maxSpeed)
	m.sess.SetDelay(gate.DelayFor(m.speed))
	m.notice = fmt.Sprintf("speed %dx from next start", m.speed)
}

func (m *Model) sampleRate() {
	v := m.sess.Metrics().Values()["steps_per_sec"]
	if len(m.rates) == rateCapacity {
		copy(m.rates, m.rates[1:])
		m.rates = m.rates[:rateCapacity-1]
	}
	m.rates = append(m.rates, v)
}

// replaying reports whether the log cursor sits behind the newest step.
func (m Model) replaying() bool {
	h := m.sess.History()
	n := h.Len()
	return n > 0 && h.Cursor() < n-1
}

func (m Model) statusLine() string {
	h := m.sess.History()
	if m.replaying() {
		return StatusReplay.Render(fmt.Sprintf("REPLAY %d/%d", h.Cursor()+1, h.Len()))
	}
	switch st := m.sess.Status(); st {
	case session.StatusRunning:
		return StatusRunning.Render(AnimatedSpinner(m.frame) + " RUNNING")
	case session.StatusPaused:
		return StatusPaused.Render("PAUSED")
	case session.StatusCompleted:
		return StatusRunning.Render("DONE")
	case session.StatusCancelled, session.StatusFailed:
		return StatusStopped.Render(strings.ToUpper(st.String()))
	}
	return Subtle.Render("READY")
}

func (m Model) bars() []Bar {
	if m.replaying() {
		cur, ok := m.sess.History().Current()
		return BarsFromFrame(m.sess.Frame(), cur, ok)
	}
	return BarsFromCells(m.sess.Board().Cells())
}

func (m Model) View() string {
	th := CurrentTheme
	title := strings.ToUpper(m.algorithm)
	complexity := ""
	if info, ok := m.sess.Algorithm(); ok {
		title, complexity = strings.ToUpper(info.Name), info.Complexity()
	} else if info, err := m.sess.Registry().Lookup(m.algorithm); err == nil {
		title, complexity = strings.ToUpper(info.Name), info.Complexity()
	}

	chartWidth := m.width - statsWidth - 6
	if chartWidth < 20 {
		chartWidth = 20
	}
	var left strings.Builder
	left.WriteString(GradientText(title, th.Primary, th.Accent) + "\n")
	left.WriteString(Subtle.Render(complexity) + "\n\n")
	left.WriteString(RenderBars(m.bars(), chartWidth, barHeight, th))
	chartView := chartStyle.Render(left.String())

	var s strings.Builder
	s.WriteString(m.statusLine() + "\n\n")

	vals := m.sess.Metrics().Values()
	h := m.sess.History()
	s.WriteString(MetricLabel.Render("Comparisons") + MetricValue.Render(fmt.Sprintf("%.0f", vals["comparisons"])) + "\n")
	s.WriteString(MetricLabel.Render("Swaps") + MetricValue.Render(fmt.Sprintf("%.0f", vals["swaps"])) + "\n")
	s.WriteString(MetricLabel.Render("Steps/sec") + MetricValue.Render(fmt.Sprintf("%.1f", vals["steps_per_sec"])) + "\n")
	s.WriteString(MetricLabel.Render("Step") + MetricValue.Render(fmt.Sprintf("%d/%d", h.Cursor()+1, h.Len())) + "\n")
	progress := 0.0
	if h.Len() > 0 {
		progress = float64(h.Cursor()+1) / float64(h.Len())
	}
	s.WriteString(ProgressBar(progress, statsWidth-8) + "\n")

	if len(m.rates) > 1 {
		chart := asciigraph.Plot(m.rates, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("steps/sec"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	m.canvas.Bars(m.sess.Original(), cells.MaxValue)
	s.WriteString("\n" + MetricLabel.Render("Initial") + "\n" + Subtle.Render(m.canvas.String()) + "\n\n")

	s.WriteString(Separator(statsWidth-6) + "\n")
	s.WriteString(renderLog(h, logLines, statsWidth-6) + "\n")

	if m.notice != "" {
		s.WriteString("\n" + KeyHint.Render(m.notice) + "\n")
	}
	s.WriteString(helpStyle.Render(keyHelp("spc", "pause", "[ ]", "step", "n", "single", "?", "help", "q", "quit")))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, chartView, statsView)
	if m.showHelp {
		return helpBox + "\n\n" + mainView
	}
	return mainView
}

const helpBox = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume run         ║
║  ] / L    - Step forward in log      ║
║  [ / H    - Step back in log         ║
║  N        - Single-step paused run   ║
║  R        - Reset to original array  ║
║  C        - Clear log                ║
║  E        - Export log               ║
║  X        - Cancel run               ║
║  S        - Start/restart run        ║
║  + / -    - Speed for next start     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// renderLog shows a window of the log around the cursor, highlighting the
// current step.
func renderLog(h *step.History, lines, width int) string {
	n, cursor := h.Len(), h.Cursor()
	if n == 0 {
		return Subtle.Render("(no steps recorded)")
	}
	start := cursor - lines/2
	if start > n-lines {
		start = n - lines
	}
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for i := start; i < start+lines && i < n; i++ {
		s, _ := h.At(i)
		line := truncate(fmt.Sprintf("%4d %s", i+1, step.Format(s)), width)
		if i == cursor {
			b.WriteString(LogCurrent.Render(line))
		} else {
			b.WriteString(KeyHint.Render(line))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// Run shows the live view until the user quits.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	_, err := tea.NewProgram(NewModel(ctx, sess, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
