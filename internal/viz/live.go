package viz

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbsim/internal/engine"
	"github.com/san-kum/orbsim/internal/gravity"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(42)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type TickMsg time.Time

// Model is the live terminal frontend: the external, frame-driven
// scheduler that calls the engine once per display tick and renders
// the returned body array and trails.
type Model struct {
	eng *engine.Engine
	cfg engine.FrameConfig

	canvas        *Canvas
	zoom          float64 // AU visible across half the canvas width
	burnBody      string
	burnDeltaV    float64
	energyHistory []float64
	frameRate     int
	showHelp      bool
}

func NewModel(eng *engine.Engine, cfg engine.FrameConfig, burnBody string, burnDeltaV float64, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		eng:           eng,
		cfg:           cfg,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		zoom:          2.0,
		burnBody:      burnBody,
		burnDeltaV:    burnDeltaV,
		energyHistory: make([]float64, 0, historyCapacity),
		frameRate:     frameRate,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.cfg.Running = !m.cfg.Running
		case "r":
			m.eng.Reset()
			m.energyHistory = m.energyHistory[:0]
		case "i":
			m.cfg.Method = 1 - m.cfg.Method
		case "+", "=":
			m.cfg.TimeScale *= 1.5
		case "-", "_":
			m.cfg.TimeScale /= 1.5
		case "[":
			m.zoom *= 1.25
		case "]":
			m.zoom /= 1.25
		case "b":
			if m.burnBody != "" {
				m.eng.QueueBurn(m.burnBody, m.burnDeltaV)
			}
		case "a":
			if ap := m.eng.Autopilot(); ap != nil {
				ap.Engage(m.eng.Bodies())
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.eng.Step(m.cfg)
		m.recordEnergy()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) recordEnergy() {
	e := gravity.Energy(m.eng.Bodies(), gravity.Options{
		MassScale: m.cfg.MassScale,
		Softening: m.cfg.Softening,
	})
	m.energyHistory = append(m.energyHistory, e)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// project maps an ecliptic-plane position to canvas sub-pixels,
// centered on the origin. Y is flipped for screen coordinates.
func (m *Model) project(x, y float64) (int, int) {
	sx := canvasWidth * 2
	sy := canvasHeight * 4
	px := int((x/m.zoom)*float64(sx)/2) + sx/2
	py := sy/2 - int((y/m.zoom)*float64(sy)/2)
	return px, py
}

func (m *Model) draw() {
	m.canvas.Clear()

	bodies := m.eng.Bodies()
	trails := m.eng.Trails()

	for i := range bodies {
		for _, p := range trails.Points(bodies[i].ID) {
			px, py := m.project(p.X, p.Y)
			m.canvas.Set(px, py)
		}
	}
	for i := range bodies {
		px, py := m.project(bodies[i].Pos.X, bodies[i].Pos.Y)
		glyph := '*'
		if len(bodies[i].Name) > 0 {
			glyph = unicode.ToUpper(rune(bodies[i].Name[0]))
		}
		m.canvas.Mark(px, py, glyph)
	}
}

func (m Model) View() string {
	m.draw()

	status := pausedStyle.Render("PAUSED")
	if m.cfg.Running {
		status = valueStyle.Render("RUNNING")
	}

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	stats.WriteString(headerStyle.Render("ORBSIM") + "  " + status + "\n\n")
	row("t (days)", fmt.Sprintf("%.1f", m.eng.Time()))
	row("integrator", m.cfg.Method.String())
	row("dt", fmt.Sprintf("%.3f", m.cfg.DT))
	row("time scale", fmt.Sprintf("%.2f", m.cfg.TimeScale))
	row("zoom (AU)", fmt.Sprintf("%.2f", m.zoom))
	if ap := m.eng.Autopilot(); ap != nil {
		row("autopilot", ap.Phase().String())
	}
	if len(m.energyHistory) > 1 {
		stats.WriteString(graphStyle.Render(asciigraph.Plot(
			m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(32),
			asciigraph.Caption("total energy"),
		)))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)

	help := "space pause · i integrator · +/- speed · [/] zoom · b burn · a autopilot · r reset · q quit"
	if m.showHelp {
		help = "space: run/pause\ni: toggle leapfrog/rk4\n+/-: time scale\n[/]: zoom out/in\nb: queue delta-v burn\na: engage autopilot\nr: reset scenario\nq: quit"
	}
	return view + "\n" + helpStyle.Render(help)
}
