package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/core"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	historyCapacity = 400
	worldHalf       = 90.0 // world units visible from center to edge
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the sandbox in a terminal when no GPU window is wanted.
// An auto-spawner stands in for pointer gestures.
type Model struct {
	sim     *core.Simulation
	spawner *core.AutoSpawner
	cfg     *config.Config
	canvas  *Canvas

	t            float64
	running      bool
	showHelp     bool
	countHistory []float64
}

func NewModel(cfg *config.Config) Model {
	return Model{
		sim:          core.New(cfg.Tuning(), cfg.Seed),
		spawner:      core.NewAutoSpawner(cfg.SpawnRate, cfg.Seed+1),
		cfg:          cfg,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		running:      true,
		countHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	fr := m.cfg.FrameRate
	if fr <= 0 {
		fr = 60
	}
	return tea.Tick(time.Second/time.Duration(fr), func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.running = !m.running
		case "r":
			m.sim = core.New(m.cfg.Tuning(), m.cfg.Seed)
			m.spawner = core.NewAutoSpawner(m.cfg.SpawnRate, m.cfg.Seed+1)
			m.t = 0
			m.countHistory = m.countHistory[:0]
		case "s":
			// manual gesture: launch one body by hand
			m.spawnManual()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	dt := m.sim.Tuning().Dt

	m.spawner.Tick(m.sim, dt)
	m.sim.Step()

	margin := m.sim.Tuning().BoundsMargin
	m.sim.RemoveOutOfRange(worldHalf+margin, worldHalf+margin)

	m.t += dt

	m.countHistory = append(m.countHistory, float64(m.sim.Count()))
	if len(m.countHistory) > historyCapacity {
		m.countHistory = m.countHistory[1:]
	}
}

func (m *Model) spawnManual() {
	vx, vy := m.sim.SpawnVelocity(120, -200)
	m.sim.AddBody(45, 0, vx, vy)
}

// project maps world coordinates to canvas pixels, y up.
func (m *Model) project(x, y float64) (int, int) {
	pw, ph := m.canvas.PixelSize()
	scale := float64(ph) / (2 * worldHalf)
	px := pw/2 + int(x*scale)
	py := ph/2 - int(y*scale)
	return px, py
}

func (m *Model) draw() {
	m.canvas.Clear()

	pw, ph := m.canvas.PixelSize()
	scale := float64(ph) / (2 * worldHalf)

	// the star
	cx, cy := pw/2, ph/2
	r := int(m.sim.Central().CollisionRadius() * scale)
	m.canvas.FillCircle(cx, cy, r)

	for _, b := range m.sim.Bodies() {
		px, py := m.project(b.X, b.Y)
		m.canvas.Set(px, py)
		m.canvas.Set(px+1, py)
		m.canvas.Set(px, py+1)

		trail := b.Trail
		for i := 0; i+1 < len(trail); i++ {
			x0, y0 := m.project(trail[i].X, trail[i].Y)
			x1, y1 := m.project(trail[i+1].X, trail[i+1].Y)
			m.canvas.Line(x0, y0, x1, y1)
		}
	}

	if m.sim.EffectActive() {
		ex, ey := m.sim.EffectAt()
		px, py := m.project(ex, ey)
		m.canvas.Circle(px, py, r+2)
		m.canvas.Circle(px, py, r+4)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBITBOX") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.countHistory) > 1 {
		chart := asciigraph.Plot(m.countHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Bodies"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d / %d", m.sim.Count(), m.sim.Tuning().MaxBodies)) + "\n")
	s.WriteString(labelStyle.Render("Kinetic") + valueStyle.Render(fmt.Sprintf("%.1f", m.sim.KineticEnergy())) + "\n")
	s.WriteString(labelStyle.Render("Mean speed") + valueStyle.Render(fmt.Sprintf("%.2f", m.sim.MeanSpeed())) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Collisions())) + "\n")
	s.WriteString(labelStyle.Render("Escapes") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Escapes())) + "\n")
	s.WriteString(labelStyle.Render("Evictions") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Evictions())) + "\n")

	if m.sim.EffectActive() {
		ex, ey := m.sim.EffectAt()
		s.WriteString("\n" + flashStyle.Render(fmt.Sprintf("IMPACT at (%.0f, %.0f)", ex, ey)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset S:Spawn Q:Quit ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset the sandbox        ║
║  S        - Launch a body by hand    ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run blocks inside the bubbletea program until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg))
	_, err := p.Run()
	return err
}
