package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/galleryvr/internal/layout"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Drawing = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ff88"))
)

// Metric renders a "label value" pair.
func Metric(label string, value any) string {
	return MetricLabel.Render(label+" ") + MetricValue.Render(fmt.Sprint(value))
}

// Summary renders the request parameters and a few derived figures of a
// computed layout on one line.
func Summary(r layout.Request, ps []layout.Placement) string {
	parts := []string{
		Metric("layout", r.Archetype),
		Metric("count", len(ps)),
		Metric("radius", fmt.Sprintf("%.2f", r.Radius)),
		Metric("spacing", fmt.Sprintf("%.2f", r.Spacing)),
		Metric("height", fmt.Sprintf("%.2f", r.Height)),
	}
	if r.Archetype == layout.Grid && len(ps) > 0 {
		cols, rows := layout.GridShape(len(ps))
		parts = append(parts, Metric("grid", fmt.Sprintf("%dx%d", cols, rows)))
	}
	if !r.Archetype.Known() {
		parts = append(parts, Warning.Render("unknown layout, nothing placed"))
	}
	return strings.Join(parts, "  ")
}
