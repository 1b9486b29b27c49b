package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/cells"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pointerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	selectedDesc  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	itemDesc      = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
)

var shapes = []cells.Shape{cells.ShapeRandom, cells.ShapeSorted, cells.ShapeReversed}

const (
	stateMenu = iota
	stateConfig
	stateRun
)

// AppOptions configure the interactive application.
type AppOptions struct {
	Config *config.Config
	Logger *slog.Logger
	Fs     afero.Fs
}

type app struct {
	ctx           context.Context
	opts          AppOptions
	state, cursor int
	infos         []algorithms.Info
	selected      algorithms.Info
	cfg           config.Config
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	width, height int
	live          Model
}

func NewInteractiveApp(ctx context.Context, opts AppOptions) *app {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	a := &app{
		ctx:        ctx,
		opts:       opts,
		state:      stateMenu,
		infos:      algorithms.NewRegistry().List(),
		cfg:        *opts.Config,
		paramNames: []string{"size", "speed", "seed", "shape"},
		width:      80,
		height:     24,
	}
	for i, info := range a.infos {
		if info.Key == a.cfg.Algorithm {
			a.cursor = i
		}
	}
	return a
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateRun {
			newLive, cmd := m.live.Update(msg)
			m.live = newLive.(Model)
			return m, cmd
		}
		return m, nil
	default:
		if m.state == stateRun {
			newLive, cmd := m.live.Update(msg)
			m.live = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateRun:
		if msg.String() == "esc" {
			m.live.sess.Cancel()
			m.state = stateConfig
			return m, nil
		}
		newLive, cmd := m.live.Update(msg)
		m.live = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.infos)-1 {
			m.cursor++
		}
	case "t":
		NextTheme()
	case "enter", " ":
		m.selected = m.infos[m.cursor]
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseInt(m.editBuf, 10, 64); err == nil {
				m.setParam(m.paramNames[m.paramCursor], v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if c >= '0' && c <= '9' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	name := m.paramNames[m.paramCursor]
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		if name != "shape" {
			m.editing, m.editBuf = true, m.paramValue(name)
		}
	case "left", "h":
		m.adjust(name, -1)
	case "right", "l":
		m.adjust(name, 1)
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *app) paramValue(name string) string {
	switch name {
	case "size":
		return strconv.Itoa(m.cfg.Size)
	case "speed":
		return strconv.Itoa(m.cfg.Speed)
	case "seed":
		if m.cfg.Seed == 0 {
			return "random"
		}
		return strconv.FormatInt(m.cfg.Seed, 10)
	case "shape":
		if m.cfg.Shape == "" {
			return string(cells.ShapeRandom)
		}
		return m.cfg.Shape
	}
	return ""
}

func (m *app) setParam(name string, v int64) {
	switch name {
	case "size":
		m.cfg.Size = clampInt(int(v), config.MinSize, config.MaxSize)
	case "speed":
		m.cfg.Speed = clampInt(int(v), 1, maxSpeed)
	case "seed":
		if v < 0 {
			v = 0
		}
		m.cfg.Seed = v
	}
}

func (m *app) adjust(name string, dir int) {
	switch name {
	case "size":
		m.setParam(name, int64(m.cfg.Size+dir))
	case "speed":
		m.setParam(name, int64(m.cfg.Speed+dir))
	case "seed":
		m.setParam(name, m.cfg.Seed+int64(dir))
	case "shape":
		cur := 0
		for i, s := range shapes {
			if string(s) == m.cfg.Shape {
				cur = i
			}
		}
		m.cfg.Shape = string(shapes[(cur+dir+len(shapes))%len(shapes)])
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *app) start() tea.Cmd {
	shape, err := cells.ParseShape(m.cfg.Shape)
	if err != nil {
		shape = cells.ShapeRandom
	}
	board := cells.NewBoard(cells.Generate(m.cfg.Size, m.cfg.Seed, shape))
	sess := session.New(board,
		session.WithSpeed(m.cfg.Speed),
		session.WithLogger(m.opts.Logger),
	)
	m.live = NewModel(m.ctx, sess, Options{
		Algorithm:  m.selected.Key,
		ExportPath: m.cfg.ExportFile,
		Speed:      m.cfg.Speed,
		Fs:         m.opts.Fs,
	})
	m.live.width, m.live.height = m.width, m.height
	m.state = stateRun
	return m.live.Init()
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateRun:
		return m.live.View()
	}
	return ""
}

func (m app) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SORTVIZ") + "\n" + subStyle.Render("sorting algorithm visualizer") + "\n" + subStyle.Render("─────────────────────────────") + "\n\n")
	for i, info := range m.infos {
		desc := fmt.Sprintf("avg %s, worst %s", info.Avg, info.Worst)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("%s %s  %s\n", pointerStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-16s", info.Name)), selectedDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("%s  %s\n", itemStyle.Render(fmt.Sprintf("  %-16s", info.Name)), itemDesc.Render(desc)))
		}
	}
	b.WriteString("\n" + keyHelp("j/k", "navigate", "enter", "select", "t", "theme", "q", "quit"))
	return "\n" + GlassPanel.MarginLeft(2).Render(b.String()) + "\n"
}

func (m app) viewConfig() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(m.selected.Name)) + "\n" + subStyle.Render(m.selected.Complexity()) + "\n" + subStyle.Render("─────────────────────────────") + "\n\n")
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%8s", m.paramValue(name))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("%s %s %s\n", pointerStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", name)), selectedDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("%s %s\n", itemStyle.Render(fmt.Sprintf("  %-10s", name)), itemDesc.Render(valStr)))
		}
	}
	b.WriteString("\n" + keyHelp("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back"))
	return "\n" + GlassPanel.MarginLeft(2).Render(b.String()) + "\n"
}

// RunInteractive shows the algorithm menu and runs the chosen algorithm.
func RunInteractive(ctx context.Context, opts AppOptions) error {
	_, err := tea.NewProgram(NewInteractiveApp(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
