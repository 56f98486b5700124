package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothlab/internal/cloth"
	"github.com/san-kum/clothlab/internal/config"
	"github.com/san-kum/clothlab/internal/metrics"
	"github.com/san-kum/clothlab/internal/sim"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	historyCapacity = 600
)

var (
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(42)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type TickMsg time.Time

// Model is the interactive cloth view. The terminal mouse is the
// pointer collaborator: left button drags the mesh, right button cuts
// it. The canvas sits at the terminal origin so mouse cells map onto
// it directly.
type Model struct {
	runner  *sim.Runner
	cfg     *config.Config
	preset  string
	canvas  *Canvas
	energy  *metrics.Energy
	intact  *metrics.Intact
	stretch *metrics.MaxStretch

	pointer    cloth.Pointer
	energyHist []float64
	lastFrame  time.Time
	frameEvery time.Duration
	running    bool
	showHelp   bool
	themeIdx   int

	// World-to-pixel projection, fixed per mesh.
	scale    float64
	worldTop float64
}

// NewModel builds the interactive view for cfg. fps bounds the render
// rate; simulation stepping stays at cfg.Dt via the runner accumulator.
func NewModel(cfg *config.Config, preset string, fps int) (Model, error) {
	if fps <= 0 {
		return Model{}, fmt.Errorf("fps must be positive, got %d", fps)
	}
	c, err := cloth.New(cfg.Mesh())
	if err != nil {
		return Model{}, err
	}
	runner, err := sim.NewRunner(c, cfg.Dt)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		runner:     runner,
		cfg:        cfg,
		preset:     preset,
		canvas:     NewCanvas(canvasCols, canvasRows),
		energy:     metrics.NewEnergy(cfg.Dt),
		intact:     metrics.NewIntact(),
		stretch:    metrics.NewMaxStretch(),
		energyHist: make([]float64, 0, historyCapacity),
		frameEvery: time.Second / time.Duration(fps),
		running:    true,
	}
	runner.AddMetric(m.energy)
	runner.AddMetric(m.intact)
	runner.AddMetric(m.stretch)
	m.fitProjection()
	return m, nil
}

// fitProjection picks a pixel scale so the mesh plus generous sag room
// fits the canvas.
func (m *Model) fitProjection() {
	pw := float64(m.canvas.PixelWidth())
	ph := float64(m.canvas.PixelHeight())
	spanX := float64(m.cfg.Width) * m.cfg.Spacing
	spanY := float64(m.cfg.Height-1)*m.cfg.Spacing*1.6 + m.cfg.Spacing

	scaleX := (pw - 8) / spanX
	scaleY := (ph - 8) / spanY
	m.scale = scaleX
	if scaleY < scaleX {
		m.scale = scaleY
	}
	m.worldTop = m.cfg.AnchorY + m.cfg.Spacing
}

func (m *Model) project(p cloth.Vec3) (int, int) {
	px := float64(m.canvas.PixelWidth())/2 + p.X*m.scale
	py := (m.worldTop-p.Y)*m.scale + 4
	return int(px), int(py)
}

// screenToWorld inverts project for a terminal cell under the mouse.
func (m *Model) screenToWorld(cellX, cellY int) cloth.Vec3 {
	px := float64(cellX*2 + 1)
	py := float64(cellY*4 + 2)
	return cloth.Vec3{
		X: (px - float64(m.canvas.PixelWidth())/2) / m.scale,
		Y: m.worldTop - (py-4)/m.scale,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.frameEvery, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			if err := m.runner.Reset(m.cfg.Mesh()); err == nil {
				m.energyHist = m.energyHist[:0]
				m.fitProjection()
			}
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		m.pointer.Pos = m.screenToWorld(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonLeft:
				m.pointer.Primary = true
			case tea.MouseButtonRight:
				m.pointer.Secondary = true
			}
		case tea.MouseActionRelease:
			m.pointer.Primary = false
			m.pointer.Secondary = false
		}

	case TickMsg:
		now := time.Time(msg)
		elapsed := m.frameEvery.Seconds()
		if !m.lastFrame.IsZero() {
			elapsed = now.Sub(m.lastFrame).Seconds()
		}
		m.lastFrame = now

		if m.running {
			m.runner.Advance(elapsed, m.pointer)
			m.energyHist = append(m.energyHist, m.energy.Value())
			if len(m.energyHist) > historyCapacity {
				m.energyHist = m.energyHist[1:]
			}
		}
		return m, tea.Tick(m.frameEvery, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	m.draw()
	theme := Themes[m.themeIdx]
	canvasView := lipgloss.NewStyle().Foreground(theme.Cloth).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("CLOTHLAB") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("energy"),
		)
		s.WriteString(chart + "\n\n")
	}

	c := m.runner.Cloth()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.runner.Time())) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d (%s)", m.cfg.Width, m.cfg.Height, m.preset)) + "\n")
	s.WriteString(labelStyle.Render("Intact") + valueStyle.Render(fmt.Sprintf("%d/%d", c.Intact(), c.NumConstraints())) + "\n")
	s.WriteString(labelStyle.Render("Stretch") + valueStyle.Render(fmt.Sprintf("%.3f", m.stretch.Value())) + "\n")
	s.WriteString(labelStyle.Render("Iterations") + valueStyle.Render(fmt.Sprintf("%d", m.cfg.Iterations)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(theme.Name) + "\n")
	s.WriteString(labelStyle.Render("Anchors") + lipgloss.NewStyle().Foreground(theme.Pin).Render("⣿ pinned row") + "\n")

	s.WriteString(helpStyle.Render("\ndrag: left mouse   cut: right mouse\nSP:Pause R:Reset T:Theme Q:Quit ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          CLOTHLAB CONTROLS           ║
╠══════════════════════════════════════╣
║  Left drag  - pull the cloth         ║
║  Right drag - cut constraints        ║
║  Space      - pause/resume           ║
║  R          - reset the mesh         ║
║  T          - cycle themes           ║
║  Q          - quit                   ║
╚══════════════════════════════════════╝`

// draw renders one segment per enabled constraint plus the pinned row.
// Disabled constraints are skipped, never reordered, so the canvas
// stays in lockstep with the constraint store.
func (m *Model) draw() {
	m.canvas.Clear()
	c := m.runner.Cloth()

	for i := 0; i < c.NumConstraints(); i++ {
		a, b, enabled := c.Segment(i)
		if !enabled {
			continue
		}
		x0, y0 := m.project(a)
		x1, y1 := m.project(b)
		m.canvas.Line(x0, y0, x1, y1)
	}

	for i := 0; i < c.NumParticles(); i++ {
		p := c.ParticleAt(i)
		if !p.Pinned {
			continue
		}
		x, y := m.project(p.Pos)
		m.canvas.Blot(x, y)
	}
}

// RunInteractive owns the bubbletea program for the live view.
func RunInteractive(cfg *config.Config, preset string, fps int) error {
	m, err := NewModel(cfg, preset, fps)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
