package render

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chat-stats/internal/stats"
	"github.com/mattn/go-runewidth"
)

const summaryBarWidth = 24

// Summary renders the headline numbers of a report and a per-speaker table.
// With color off the output is plain text suitable for pipes.
func Summary(r *stats.Report, wpm int, color bool) string {
	style := painter{on: color}.paint

	var lines []string
	lines = append(lines, style(styleTitle, "Chat statistics"))
	lines = append(lines, fmt.Sprintf("%s %d", style(styleLabel, "words:        "), r.TotalWords))
	lines = append(lines, fmt.Sprintf("%s %d", style(styleLabel, "messages:     "), r.Messages))
	lines = append(lines, fmt.Sprintf("%s %d", style(styleLabel, "distinct:     "), r.Distinct))
	lines = append(lines, fmt.Sprintf("%s %.2f", style(styleLabel, "diversity:    "), r.Diversity))
	lines = append(lines, fmt.Sprintf("%s %.2f h", style(styleLabel, "time to read: "), r.ReadingHours(wpm)))
	if len(r.Days) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s .. %s", style(styleLabel, "days:         "), r.Days[0], r.Days[len(r.Days)-1]))
	}
	lines = append(lines, "")

	nameW := 0
	for _, s := range r.Speakers {
		if w := runewidth.StringWidth(s.Name); w > nameW {
			nameW = w
		}
	}
	maxWords := 0
	if len(r.Speakers) > 0 {
		maxWords = r.Speakers[0].Words
	}
	for _, s := range r.Speakers {
		name := runewidth.Truncate(s.Name, 30, "…")
		lines = append(lines, fmt.Sprintf("%s %7d %6.2f%%  %s",
			style(styleSpeaker, padRight(name, min(nameW, 30))),
			s.Words,
			s.Share*100,
			style(styleBar, bar(s.Words, maxWords, summaryBarWidth)),
		))
	}

	out := strings.Join(lines, "\n")
	if color {
		return styleBox.Render(out) + "\n"
	}
	return out + "\n"
}
