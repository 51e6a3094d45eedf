package render

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/stats"
)

const chat = `2020-01-01 10:00:00 Alice: hi there
2020-01-01 10:01:00 Bob: hi alice, pizza pizza
2020-01-03 08:00:00 Alice: hi there again
`

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"no wrap", "abcdef", 0, []string{"abcdef"}},
		{"wraps", "abcdef", 4, []string{"abcd", "ef"}},
		{"skips ansi", "\033[1mabcd\033[0m", 4, []string{"\033[1mabcd\033[0m"}},
		{"wide runes", "日本語", 4, []string{"日本", "語"}},
		{"empty", "", 4, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLine(tt.line, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBar(t *testing.T) {
	if got := bar(5, 10, 10); got != strings.Repeat("█", 5) {
		t.Errorf("bar = %q", got)
	}
	if got := bar(1, 1000, 10); got != "█" {
		t.Errorf("small values should still get one cell, got %q", got)
	}
	if bar(0, 10, 10) != "" || bar(3, 0, 10) != "" {
		t.Error("expected empty bars")
	}
}

func TestHighlightPrefix(t *testing.T) {
	p := painter{on: true}
	if got := p.highlightPrefix("pizza", "PI"); got != styleMatch.Render("pi")+"zza" {
		t.Errorf("highlightPrefix = %q", got)
	}
	if got := p.highlightPrefix("pizza", "x"); got != "pizza" {
		t.Errorf("non-matching prefix changed word: %q", got)
	}
	if got := (painter{}).highlightPrefix("pizza", "pi"); got != "pizza" {
		t.Errorf("colorless painter highlighted: %q", got)
	}
}

func TestPainterOff(t *testing.T) {
	if got := (painter{}).paint(styleHeader, "TOP WORDS"); got != "TOP WORDS" {
		t.Errorf("paint with color off = %q", got)
	}
	if got := (painter{on: true}).paint(styleHeader, ""); got != "" {
		t.Errorf("paint of empty string = %q", got)
	}
}

func aggregate(t *testing.T) (*parse.Transcript, *stats.Report) {
	t.Helper()
	tr, err := parse.Parse(strings.NewReader(chat), parse.Options{})
	if err != nil {
		t.Fatal(err)
	}
	tr.Path = filepath.Join(t.TempDir(), "chat.txt")
	return tr, stats.Aggregate(tr.Messages, nil)
}

func TestSummaryPlain(t *testing.T) {
	_, r := aggregate(t)
	out := Summary(r, 250, false)
	for _, want := range []string{"words:         9", "messages:      3", "Alice       5  55.56%", "2020-01-01 .. 2020-01-03"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("plain summary contains escape codes")
	}
}

func TestRenderSpeaker(t *testing.T) {
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "r.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	tr, r := aggregate(t)
	id, err := index.SaveReport(db, tr, r)
	if err != nil {
		t.Fatal(err)
	}

	out, err := RenderSpeaker(db, id, "Bob", Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Bob", "4 words  1 messages  44.4% of conversation", "pizza", "2020-01-01      4"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile missing %q:\n%s", want, out)
		}
	}

	all, err := RenderSpeaker(db, id, "", Options{Prefix: "th"})
	if err != nil {
		t.Fatal(err)
	}
	wordsSection, _, _ := strings.Cut(all, "TOP BIGRAMS")
	if !strings.Contains(all, "Everyone") || !strings.Contains(wordsSection, "TOP WORDS (th*)") {
		t.Errorf("unexpected overall profile:\n%s", all)
	}
	if !strings.Contains(wordsSection, "there") || strings.Contains(wordsSection, "pizza") {
		t.Errorf("prefix filter not applied:\n%s", wordsSection)
	}

	if strings.Contains(out+all, "\033[") {
		t.Error("profile without color contains escape codes")
	}

	if _, err := RenderSpeaker(db, id, "Nobody", Options{}); err == nil {
		t.Error("expected error for unknown speaker")
	}
}
