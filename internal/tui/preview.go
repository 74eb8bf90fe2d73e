package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/scene"
	"github.com/san-kum/galleryvr/internal/viz"
)

type view int

const (
	viewPlan view = iota
	viewPerspective
)

type param struct {
	name string
	step float64
}

var params = []param{
	{"archetype", 0},
	{"count", 1},
	{"radius", 0.5},
	{"spacing", 0.25},
	{"height", 0.1},
}

// Preview is an interactive layout editor. Every key press that touches a
// parameter rebuilds the request and regenerates the placements.
type Preview struct {
	engine *layout.Engine
	req    layout.Request
	ps     []layout.Placement

	cursor  int
	editing bool
	editBuf string

	view   view
	camera *viz.Camera

	width  int
	height int
}

func NewPreview(e *layout.Engine, r layout.Request) Preview {
	if e == nil {
		e = layout.NewEngine(layout.StandardDefaults())
	}
	m := Preview{
		engine: e,
		req:    layout.Sanitize(r, e.Defaults()),
		camera: viz.NewCamera(scene.Viewer),
		width:  80,
		height: 24,
	}
	m.regenerate()
	return m
}

// Request returns the current, sanitized request.
func (m Preview) Request() layout.Request { return m.req }

// Placements returns the placements for the current request.
func (m Preview) Placements() []layout.Placement { return m.ps }

func (m Preview) Init() tea.Cmd { return nil }

func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *Preview) regenerate() {
	m.req = layout.Sanitize(m.req, m.engine.Defaults())
	m.ps = m.engine.Generate(m.req)
}

func (m Preview) handleKey(msg tea.KeyMsg) (Preview, tea.Cmd) {
	if m.editing {
		return m.editKey(msg), nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(params)-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "tab":
		m.cycleArchetype(1)
	case "shift+tab":
		m.cycleArchetype(-1)
	case "enter":
		if params[m.cursor].name != "archetype" {
			m.editing = true
			m.editBuf = m.value(params[m.cursor].name)
		}
	case "v":
		if m.view == viewPlan {
			m.view = viewPerspective
		} else {
			m.view = viewPlan
		}
	case "[":
		m.camera.Turn(-math.Pi / 12)
	case "]":
		m.camera.Turn(math.Pi / 12)
	case "{":
		m.camera.Tilt(-math.Pi / 24)
	case "}":
		m.camera.Tilt(math.Pi / 24)
	case "r":
		m.camera = viz.NewCamera(scene.Viewer)
		m.req = layout.Request{Archetype: m.req.Archetype, Count: m.req.Count}
		m.req.Radius, m.req.Spacing, m.req.Height = math.NaN(), math.NaN(), math.NaN()
		m.regenerate()
	}
	return m, nil
}

func (m Preview) editKey(msg tea.KeyMsg) Preview {
	switch msg.String() {
	case "enter":
		// Unparseable input becomes NaN and falls back to the default.
		v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64)
		if err != nil {
			v = math.NaN()
		}
		m.set(params[m.cursor].name, v)
		m.editing = false
		m.editBuf = ""
		m.regenerate()
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 {
			c := s[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.editBuf += s
			}
		}
	}
	return m
}

func (m *Preview) adjust(dir float64) {
	p := params[m.cursor]
	if p.name == "archetype" {
		m.cycleArchetype(int(dir))
		return
	}
	m.set(p.name, m.number(p.name)+dir*p.step)
	m.regenerate()
}

func (m *Preview) cycleArchetype(dir int) {
	all := layout.Archetypes()
	i := 0
	for j, a := range all {
		if a == m.req.Archetype {
			i = j
			break
		}
	}
	i = (i + dir + len(all)) % len(all)
	m.req.Archetype = all[i]
	m.regenerate()
}

func (m Preview) number(name string) float64 {
	switch name {
	case "count":
		return float64(m.req.Count)
	case "radius":
		return m.req.Radius
	case "spacing":
		return m.req.Spacing
	case "height":
		return m.req.Height
	}
	return 0
}

func (m *Preview) set(name string, v float64) {
	switch name {
	case "count":
		m.req.Count = layout.ValidCount(v)
	case "radius":
		m.req.Radius = v
	case "spacing":
		m.req.Spacing = v
	case "height":
		m.req.Height = v
	}
}

func (m Preview) value(name string) string {
	if name == "archetype" {
		return string(m.req.Archetype)
	}
	if name == "count" {
		return strconv.Itoa(m.req.Count)
	}
	return fmt.Sprintf("%.2f", m.number(name))
}

func (m Preview) View() string {
	var b strings.Builder

	b.WriteString(viz.Title.Render("galleryvr preview"))
	b.WriteString("\n\n")

	for i, p := range params {
		line := fmt.Sprintf("%-10s %s", p.name, m.value(p.name))
		if i == m.cursor && m.editing {
			line = fmt.Sprintf("%-10s %s_", p.name, m.editBuf)
		}
		if i == m.cursor {
			b.WriteString(viz.Selected.Render("> " + line))
		} else {
			b.WriteString(viz.Subtle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	w, h := m.canvasSize()
	var c *viz.Canvas
	if m.view == viewPlan {
		c = viz.FloorPlan(m.ps, w, h, viz.DefaultPlanOptions())
	} else {
		c = viz.NewCanvas(w, h)
		wf := viz.FramesWireframe(m.ps, scene.FrameWidth, scene.FrameHeight)
		wf.AddFloorGrid(10, 2)
		viz.Render3D(c, wf, m.camera)
	}
	b.WriteString(viz.Panel.Render(viz.Drawing.Render(c.String())))
	b.WriteString("\n")
	b.WriteString(viz.Summary(m.req, m.ps))
	b.WriteString("\n\n")
	b.WriteString(viz.KeyHint.Render("↑/↓ select  ←/→ adjust  enter edit  tab layout  v view  [ ] turn  { } tilt  r reset  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Preview) canvasSize() (int, int) {
	w := m.width - 4
	h := m.height - len(params) - 10
	if w < 20 {
		w = 20
	}
	if h < 8 {
		h = 8
	}
	return w, h
}
