package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/mattn/go-runewidth"
)

type Options struct {
	Width  int    // wrap width (0 = no wrap)
	Limit  int    // rows per table, 0 = 20
	Prefix string // word filter, highlighted in the word table
	Color  bool
}

// highlightPrefix styles a leading match of the lowercased prefix.
// Stored words are already lowercase.
func (p painter) highlightPrefix(word, prefix string) string {
	lower := strings.ToLower(prefix)
	if lower == "" || !p.on || !strings.HasPrefix(word, lower) {
		return word
	}
	return styleMatch.Render(word[:len(lower)]) + word[len(lower):]
}

// padRight pads s with spaces to width visible columns.
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// bar draws a horizontal bar of n scaled against max into width cells.
func bar(n, max, width int) string {
	if max <= 0 || width <= 0 || n <= 0 {
		return ""
	}
	cells := n * width / max
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}

// RenderSpeaker renders the stored profile of one speaker of a report, or of
// the whole conversation when speaker is empty.
func RenderSpeaker(db *index.DB, reportID, speaker string, opts Options) (string, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	p := painter{on: opts.Color}

	speakers, err := db.GetSpeakers(reportID)
	if err != nil {
		return "", fmt.Errorf("get speakers: %w", err)
	}

	var words, messages, distinct, total int
	found := speaker == ""
	for _, s := range speakers {
		total += s.Words
		if speaker == "" {
			words += s.Words
			messages += s.Messages
		} else if s.Speaker == speaker {
			words, messages, distinct = s.Words, s.Messages, s.Distinct
			found = true
		}
	}
	if !found {
		return "", fmt.Errorf("speaker not found: %s", speaker)
	}

	top, err := db.TopWords(reportID, index.WordQuery{Speaker: speaker, Prefix: opts.Prefix, Limit: opts.Limit})
	if err != nil {
		return "", err
	}
	bigrams, err := db.TopBigrams(reportID, speaker, opts.Limit)
	if err != nil {
		return "", err
	}
	days, err := db.GetDays(reportID, speaker)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	title := speaker
	if title == "" {
		title = "Everyone"
	}
	writeLine(p.paint(styleSpeaker, title))
	share := 0.0
	if total > 0 {
		share = float64(words) / float64(total) * 100
	}
	summary := fmt.Sprintf("%d words  %d messages  %.1f%% of conversation", words, messages, share)
	if speaker != "" && words > 0 {
		summary += fmt.Sprintf("  diversity %.2f", float64(distinct)/float64(words))
	}
	writeLine(p.paint(styleDim, summary))
	writeLine("")

	header := "TOP WORDS"
	if opts.Prefix != "" {
		header += fmt.Sprintf(" (%s*)", opts.Prefix)
	}
	writeLine(p.paint(styleHeader, header))
	if len(top) == 0 {
		writeLine(p.paint(styleDim, "  (none)"))
	}
	wordW := 0
	for _, w := range top {
		if n := runewidth.StringWidth(w.Word); n > wordW {
			wordW = n
		}
	}
	for _, w := range top {
		writeLine(fmt.Sprintf("  %s %6d", p.highlightPrefix(padRight(w.Word, wordW), opts.Prefix), w.Count))
	}
	writeLine("")

	writeLine(p.paint(styleHeader, "TOP BIGRAMS"))
	if len(bigrams) == 0 {
		writeLine(p.paint(styleDim, "  (none)"))
	}
	for _, bg := range bigrams {
		writeLine(fmt.Sprintf("  %s %6d", padRight(bg.First+" "+bg.Second, 24), bg.Count))
	}
	writeLine("")

	writeLine(p.paint(styleHeader, "DAILY WORDS"))
	max := 0
	for _, d := range days {
		if d.Words > max {
			max = d.Words
		}
	}
	for _, d := range days {
		writeLine(fmt.Sprintf("  %s %6d %s", d.Day, d.Words, p.paint(styleBar, bar(d.Words, max, 30))))
	}

	return b.String(), nil
}
