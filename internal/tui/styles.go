package tui

import "github.com/charmbracelet/lipgloss"

// palette, 256-color codes
var (
	colorPrimary   = lipgloss.Color("39")  // sky blue
	colorSecondary = lipgloss.Color("114") // soft green
	colorDim       = lipgloss.Color("243")
	colorHighlight = lipgloss.Color("214") // orange
	colorBorder    = lipgloss.Color("237")
)

func panel(border lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}

var (
	styleInputPrompt = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	styleInput       = lipgloss.NewStyle().Foreground(colorPrimary)

	styleListSelected = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	styleSpeaker      = lipgloss.NewStyle().Foreground(colorSecondary)
	styleEveryone     = styleSpeaker.Foreground(colorPrimary).Italic(true)

	stylePanelBorder  = panel(colorBorder)
	styleActiveBorder = panel(colorPrimary)

	styleStatusBar = lipgloss.NewStyle().Foreground(colorDim).PaddingLeft(1)
)
