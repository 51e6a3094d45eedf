package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("12")  // bright blue
	colorAccent  = lipgloss.Color("10")  // bright green
	colorMuted   = lipgloss.Color("240") // gray
	colorBarFill = lipgloss.Color("14")  // cyan
	colorMatch   = lipgloss.Color("9")   // bright red

	styleTitle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleHeader  = styleTitle
	styleLabel   = lipgloss.NewStyle().Foreground(colorMuted)
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleSpeaker = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleBar     = lipgloss.NewStyle().Foreground(colorBarFill)
	styleMatch   = lipgloss.NewStyle().Foreground(colorMatch).Bold(true)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// painter applies styles only when color output is on.
type painter struct{ on bool }

func (p painter) paint(st lipgloss.Style, s string) string {
	if !p.on || s == "" {
		return s
	}
	return st.Render(s)
}
