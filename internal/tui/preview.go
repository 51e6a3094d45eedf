package tui

import (
	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/Zuo-Peng/chat-stats/internal/render"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// previewRenderedMsg is sent when an async profile render completes.
type previewRenderedMsg struct {
	speaker string
	prefix  string
	content string
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders a speaker profile async.
func loadPreviewCmd(db *index.DB, reportID, speaker, prefix string, width int) tea.Cmd {
	return func() tea.Msg {
		content, err := render.RenderSpeaker(db, reportID, speaker, render.Options{
			Width:  width,
			Limit:  30,
			Prefix: prefix,
			Color:  true,
		})
		return previewRenderedMsg{
			speaker: speaker,
			prefix:  prefix,
			content: content,
			err:     err,
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
