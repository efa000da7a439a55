// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Palette holds the rendered styles used by command output.
type Palette struct {
	Label   lipgloss.Style
	Path    lipgloss.Style
	Found   lipgloss.Style
	Missing lipgloss.Style
	Muted   lipgloss.Style
}

// NewPalette builds the palette for a renderer.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Label:   r.NewStyle().Foreground(Iris).Bold(true),
		Path:    r.NewStyle(),
		Found:   r.NewStyle().Foreground(Green),
		Missing: r.NewStyle().Foreground(Red),
		Muted:   r.NewStyle().Foreground(Slate),
	}
}

// Element renders one search path element line with its index.
func (p Palette) Element(index int, kind, value string) string {
	return p.Muted.Width(4).Render(strconv.Itoa(index)) +
		p.Label.Width(8).Render(kind) +
		p.Path.Render(value)
}
