package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const debounceDelay = 200 * time.Millisecond

// copyWords is how many top words Enter copies.
const copyWords = 20

// message types

type debounceTickMsg struct {
	prefix string
}

// model

type model struct {
	db          *index.DB
	report      index.ReportRow
	speakers    []index.SpeakerRow // first entry is the whole conversation
	totalWords  int
	prefix      string
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // "speaker\x00prefix" to avoid duplicate renders
	width       int
	height      int
	ready       bool
	quitting    bool
	selected    *index.SpeakerRow
}

func initialModel(db *index.DB, report index.ReportRow, speakers []index.SpeakerRow) model {
	ti := textinput.New()
	ti.Placeholder = "Filter words by prefix..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 64

	everyone := index.SpeakerRow{Speaker: ""}
	for _, s := range speakers {
		everyone.Words += s.Words
		everyone.Messages += s.Messages
	}

	return model{
		db:          db,
		report:      report,
		speakers:    append([]index.SpeakerRow{everyone}, speakers...),
		totalWords:  everyone.Words,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the browser for a stored report and blocks until it exits.
// If the user presses Enter on a speaker, that speaker's top words are
// copied to the clipboard.
func Run(db *index.DB, report index.ReportRow) error {
	speakers, err := db.GetSpeakers(report.ReportID)
	if err != nil {
		return fmt.Errorf("get speakers: %w", err)
	}

	m := initialModel(db, report, speakers)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected != nil {
		return copyTopWords(db, report.ReportID, fm.selected.Speaker, fm.prefix)
	}
	return nil
}

// copyTopWords copies "word count, ..." for a speaker to the clipboard,
// printing it instead when no clipboard is available.
func copyTopWords(db *index.DB, reportID, speaker, prefix string) error {
	rows, err := db.TopWords(reportID, index.WordQuery{Speaker: speaker, Prefix: prefix, Limit: copyWords})
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, fmt.Sprintf("%s %d", r.Word, r.Count))
	}
	line := strings.Join(parts, ", ")

	if err := clipboard.WriteAll(line); err != nil {
		fmt.Printf("%s\n", line)
		return nil
	}

	name := speaker
	if name == "" {
		name = "everyone"
	}
	fmt.Printf("Copied top words of %s to clipboard: %s\n", name, line)
	return nil
}

// Init triggers the initial profile load.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCurrentPreview())
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		lay := m.layout()
		m.preview = newViewport(lay.previewW, lay.panelH)
		m.previewKey = ""
		cmds = append(cmds, m.loadCurrentPreview())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.speakers) {
				s := m.speakers[m.cursor]
				m.selected = &s
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.layout().panelH)
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.speakers)-1 {
				m.cursor++
				m.adjustListScroll(m.layout().panelH)
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.layout().panelH / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.layout().panelH / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.layout().panelH)
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.layout().panelH)
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newPrefix := strings.TrimSpace(m.filterInput.Value())
		if newPrefix != m.prefix {
			m.prefix = newPrefix
			cmds = append(cmds, scheduleDebouncedFilter(newPrefix))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}

		region, itemIdx := m.layout().hit(msg.X, msg.Y, m.listOffset)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.layout().panelH / linesPerItem
			maxOffset := len(m.speakers) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.speakers) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.layout().panelH)
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case debounceTickMsg:
		// Only re-render if the prefix hasn't changed since the tick was scheduled
		if msg.prefix == m.prefix {
			cmds = append(cmds, m.loadCurrentPreview())
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		k := previewCacheKey(msg.speaker, msg.prefix)
		if k == m.previewKey {
			return m, nil
		}
		// drop renders for a speaker or prefix no longer shown
		if m.cursor < len(m.speakers) && k != previewCacheKey(m.speakers[m.cursor].Speaker, m.prefix) {
			return m, nil
		}
		if msg.err != nil {
			m.preview.SetContent("Profile error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			m.preview.GotoTop()
		}
		m.previewKey = k
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	lay := m.layout()
	listW, previewW, panelH := lay.listW, lay.previewW, lay.panelH

	inputRow := m.filterInput.View()

	listContent := m.renderList(listW, panelH)
	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(listContent)

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

func (m model) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d speakers", len(m.speakers)-1),
		fmt.Sprintf("%d words", m.report.TotalWords),
	}
	if m.report.FirstDay != "" {
		parts = append(parts, m.report.FirstDay+".."+m.report.LastDay)
	}
	parts = append(parts,
		"click/up/dn navigate",
		"scroll/C-u/C-d profile",
		"Enter copy top words",
		"Esc quit",
	)
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func scheduleDebouncedFilter(prefix string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{prefix: prefix}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if m.cursor >= len(m.speakers) {
		return nil
	}
	speaker := m.speakers[m.cursor].Speaker
	if previewCacheKey(speaker, m.prefix) == m.previewKey {
		return nil // already showing this profile
	}
	return loadPreviewCmd(m.db, m.report.ReportID, speaker, m.prefix, m.layout().previewW)
}

func previewCacheKey(speaker, prefix string) string {
	return speaker + "\x00" + prefix
}
