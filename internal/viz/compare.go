package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/session"
)

const compareLogLines = 6

var (
	panelStyle   = lipgloss.NewStyle().Padding(0, 1)
	dividerStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240"))
)

type panel struct {
	sess      *session.Session
	algorithm string
}

// CompareModel runs two sessions side by side on identical arrays. Each
// panel has its own board and cancellation.
type CompareModel struct {
	ctx           context.Context
	panels        [2]panel
	width, height int
	frame         int
	showHelp      bool
}

func NewCompareModel(ctx context.Context, left, right *session.Session, leftAlgo, rightAlgo string) CompareModel {
	return CompareModel{
		ctx: ctx,
		panels: [2]panel{
			{sess: left, algorithm: leftAlgo},
			{sess: right, algorithm: rightAlgo},
		},
		width:  120,
		height: 40,
	}
}

func (m CompareModel) Init() tea.Cmd {
	return tea.Batch(m.startAll(), tick())
}

func (m CompareModel) startAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.panels))
	for _, p := range m.panels {
		sess, algo, ctx := p.sess, p.algorithm, m.ctx
		cmds = append(cmds, func() tea.Msg {
			return startedMsg{err: sess.Start(ctx, algo)}
		})
	}
	return tea.Batch(cmds...)
}

func (m CompareModel) each(fn func(s *session.Session)) {
	for _, p := range m.panels {
		fn(p.sess)
	}
}

func (m CompareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.each((*session.Session).Cancel)
			return m, tea.Quit
		case " ":
			// Both panels follow the left one so they never drift apart.
			if m.panels[0].sess.Paused() {
				m.each((*session.Session).Resume)
			} else {
				m.each((*session.Session).Pause)
			}
		case "n":
			m.each((*session.Session).Advance)
		case "]", "l":
			m.each(func(s *session.Session) { s.StepForward() })
		case "[", "h":
			m.each(func(s *session.Session) { s.StepBack() })
		case "r":
			m.each((*session.Session).Reset)
		case "c":
			m.each((*session.Session).ClearLog)
		case "x":
			m.each((*session.Session).Cancel)
		case "s":
			return m, m.startAll()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m CompareModel) renderPanel(p panel, width int) string {
	th := CurrentTheme
	lv := Model{sess: p.sess, algorithm: p.algorithm, frame: m.frame}

	title := strings.ToUpper(p.algorithm)
	if info, err := p.sess.Registry().Lookup(p.algorithm); err == nil {
		title = strings.ToUpper(info.Name)
	}

	var b strings.Builder
	b.WriteString(GradientText(title, th.Primary, th.Accent) + "  " + lv.statusLine() + "\n\n")
	b.WriteString(RenderBars(lv.bars(), width, barHeight, th) + "\n\n")

	vals := p.sess.Metrics().Values()
	b.WriteString(MetricLabel.Render("Comparisons") + MetricValue.Render(fmt.Sprintf("%.0f", vals["comparisons"])) + "\n")
	b.WriteString(MetricLabel.Render("Swaps") + MetricValue.Render(fmt.Sprintf("%.0f", vals["swaps"])) + "\n")
	b.WriteString(Separator(width) + "\n")
	b.WriteString(renderLog(p.sess.History(), compareLogLines, width))
	return panelStyle.Width(width + 2).Render(b.String())
}

func (m CompareModel) View() string {
	width := (m.width - 8) / 2
	if width < 20 {
		width = 20
	}
	left := m.renderPanel(m.panels[0], width)
	right := m.renderPanel(m.panels[1], width)
	view := lipgloss.JoinHorizontal(lipgloss.Top, left, dividerStyle.Render(right))
	help := helpStyle.Render(keyHelp("spc", "pause both", "n", "single", "[ ]", "step", "r", "reset", "s", "restart", "q", "quit"))
	if m.showHelp {
		return helpBox + "\n\n" + view + "\n" + help
	}
	return view + "\n" + help
}

// RunCompare shows two sessions side by side until the user quits.
func RunCompare(ctx context.Context, left, right *session.Session, leftAlgo, rightAlgo string) error {
	_, err := tea.NewProgram(NewCompareModel(ctx, left, right, leftAlgo, rightAlgo), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
