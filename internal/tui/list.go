package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each speaker occupies.
const linesPerItem = 2

// renderList renders the left panel: speaker list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.speakers) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No speakers")
	}

	var lines []string
	for i, s := range m.speakers {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatSpeakerLine(s, m.totalWords, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatSpeakerLine formats one list entry as two lines:
//
//	line 1: [>] name
//	line 2:    words  share  messages (dimmed)
func formatSpeakerLine(s index.SpeakerRow, totalWords, width int, selected bool) []string {
	nameMax := width - 2
	if nameMax < 0 {
		nameMax = 0
	}
	name := s.Speaker
	style := styleSpeaker
	if name == "" {
		name = "Everyone"
		style = styleEveryone
	}
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "")
	}

	line1 := style.Render(name)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	share := 0.0
	if totalWords > 0 {
		share = float64(s.Words) / float64(totalWords) * 100
	}
	detail := fmt.Sprintf("%d words  %.1f%%  %d msgs", s.Words, share, s.Messages)
	if runewidth.StringWidth(detail) > width-4 && width > 4 {
		detail = runewidth.Truncate(detail, width-4, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
