package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/stats"
	"gopkg.in/yaml.v3"
)

const transcript = `2020-01-01 10:00:00 Alice: hi there, pizza time
2020-01-01 10:01:00 Bob: hi Alice pizza pizza 42 42
2020-01-02 08:00:00 Alice: hi there
`

func buildReport(t *testing.T) *stats.Report {
	t.Helper()
	tr, err := parse.Parse(strings.NewReader(transcript), parse.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return stats.Aggregate(tr.Messages, []string{"pizza"})
}

func defaultOpts() Options {
	return Options{
		MinCount:   2,
		StopWords:  map[string]bool{"there": true},
		ReadingWPM: 250,
		Seed:       1,
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestWriteCreatesAllFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	written, err := Write(dir, buildReport(t), defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != len(Files)-1 {
		t.Errorf("wrote %d files, want %d", len(written), len(Files)-1)
	}
	for _, name := range Files {
		_, err := os.Stat(filepath.Join(dir, name))
		if name == "generated_text.txt" {
			if err == nil {
				t.Error("generated_text.txt written with sentences disabled")
			}
			continue
		}
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestFrequencyFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, buildReport(t), defaultOpts()); err != nil {
		t.Fatal(err)
	}

	// hi=3 pizza=3; "there" is a stop word, "42" a number
	got := readFile(t, dir, "overall_word_frequencies.txt")
	want := "hi\t3\t25\npizza\t3\t25\n"
	if got != want {
		t.Errorf("overall_word_frequencies.txt =\n%q\nwant\n%q", got, want)
	}

	got = readFile(t, dir, "speaker_word_frequencies.txt")
	want = "Alice\thi\t2\t33.333\nBob\tpizza\t2\t33.333\n"
	if got != want {
		t.Errorf("speaker_word_frequencies.txt =\n%q\nwant\n%q", got, want)
	}

	got = readFile(t, dir, "overall_bigram_frequencies.txt")
	want = "hi there\t2\t16.667\n"
	if got != want {
		t.Errorf("overall_bigram_frequencies.txt =\n%q\nwant\n%q", got, want)
	}
}

func TestTimeseriesFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, buildReport(t), defaultOpts()); err != nil {
		t.Fatal(err)
	}

	got := readFile(t, dir, "speaker_timeseries.txt")
	want := "speaker\t2020-01-01\t2020-01-02\nAlice\t4\t2\nBob\t6\t0\n"
	if got != want {
		t.Errorf("speaker_timeseries.txt =\n%q\nwant\n%q", got, want)
	}

	got = readFile(t, dir, "word_timeseries.txt")
	want = "word\t2020-01-01\t2020-01-02\npizza\t3\t0\n"
	if got != want {
		t.Errorf("word_timeseries.txt =\n%q\nwant\n%q", got, want)
	}

	got = readFile(t, dir, "day_timeseries.txt")
	want = "2020-01-01\t10\n2020-01-02\t2\n"
	if got != want {
		t.Errorf("day_timeseries.txt =\n%q\nwant\n%q", got, want)
	}

	lines := strings.Split(strings.TrimSpace(readFile(t, dir, "daytime_timeseries.txt")), "\n")
	if len(lines) != stats.SlotsPerDay {
		t.Fatalf("daytime_timeseries.txt has %d lines", len(lines))
	}
	if lines[60] != "10:00\t10" || lines[48] != "08:00\t2" {
		t.Errorf("slots: %q %q", lines[60], lines[48])
	}
}

func TestSummaryFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, buildReport(t), defaultOpts()); err != nil {
		t.Fatal(err)
	}

	summary := readFile(t, dir, "summary.txt")
	for _, want := range []string{"total length: 12 words", "Bob\t6\t50%", "LEXICAL DIVERSITY", "date range: 2020-01-01 to 2020-01-02 (2 days)"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary.txt missing %q:\n%s", want, summary)
		}
	}

	var s Summary
	if err := yaml.Unmarshal([]byte(readFile(t, dir, "summary.yaml")), &s); err != nil {
		t.Fatal(err)
	}
	if s.TotalWords != 12 || len(s.Speakers) != 2 || s.FirstDay != "2020-01-01" {
		t.Errorf("unexpected summary.yaml: %+v", s)
	}
}

func TestGeneratedText(t *testing.T) {
	opts := defaultOpts()
	opts.Sentences = 2

	dirA, dirB := t.TempDir(), t.TempDir()
	r := buildReport(t)
	if _, err := Write(dirA, r, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := Write(dirB, r, opts); err != nil {
		t.Fatal(err)
	}

	a := readFile(t, dirA, "generated_text.txt")
	if n := strings.Count(a, "\n"); n != 4 {
		t.Errorf("got %d generated lines, want 4", n)
	}
	if a != readFile(t, dirB, "generated_text.txt") {
		t.Error("generated text differs between runs with the same seed")
	}
}

func TestWriteUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Write(filepath.Join(file, "sub"), buildReport(t), defaultOpts()); err == nil {
		t.Error("expected error when results dir cannot be created")
	}
}

func TestRound(t *testing.T) {
	if got := Round(33.33333, 3); got != 33.333 {
		t.Errorf("Round = %v", got)
	}
}
