// Package report writes an aggregated transcript to a results directory.
package report

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chat-stats/internal/stats"
)

type Options struct {
	MinCount   int
	StopWords  map[string]bool
	ReadingWPM int
	Sentences  int   // generated sentences per speaker, 0 disables
	Seed       int64 // seed for generated sentences
}

// Files lists the outputs of Write, in write order.
var Files = []string{
	"summary.txt",
	"summary.yaml",
	"words.txt",
	"overall_word_frequencies.txt",
	"speaker_word_frequencies.txt",
	"overall_bigram_frequencies.txt",
	"speaker_bigram_frequencies.txt",
	"speaker_timeseries.txt",
	"word_timeseries.txt",
	"day_timeseries.txt",
	"daytime_timeseries.txt",
	"generated_text.txt",
}

var numberRe = regexp.MustCompile(`^\d+$`)

// Write creates dir if needed and writes every report file. It returns the
// paths written.
func Write(dir string, r *stats.Report, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}

	writers := map[string]func(*bufio.Writer) error{
		"summary.txt":                    func(w *bufio.Writer) error { return writeSummary(w, r, opts) },
		"summary.yaml":                   func(w *bufio.Writer) error { return writeSummaryYAML(w, r, opts) },
		"words.txt":                      func(w *bufio.Writer) error { return writeWords(w, r) },
		"overall_word_frequencies.txt":   func(w *bufio.Writer) error { return writeOverallWords(w, r, opts) },
		"speaker_word_frequencies.txt":   func(w *bufio.Writer) error { return writeSpeakerWords(w, r, opts) },
		"overall_bigram_frequencies.txt": func(w *bufio.Writer) error { return writeOverallBigrams(w, r, opts) },
		"speaker_bigram_frequencies.txt": func(w *bufio.Writer) error { return writeSpeakerBigrams(w, r, opts) },
		"speaker_timeseries.txt":         func(w *bufio.Writer) error { return writeSpeakerSeries(w, r) },
		"word_timeseries.txt":            func(w *bufio.Writer) error { return writeWordSeries(w, r) },
		"day_timeseries.txt":             func(w *bufio.Writer) error { return writeDaySeries(w, r) },
		"daytime_timeseries.txt":         func(w *bufio.Writer) error { return writeDaytime(w, r) },
		"generated_text.txt":             func(w *bufio.Writer) error { return writeGenerated(w, r, opts) },
	}

	var written []string
	for _, name := range Files {
		if name == "generated_text.txt" && opts.Sentences <= 0 {
			continue
		}
		path := filepath.Join(dir, name)
		if err := writeFile(path, writers[name]); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, fill func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Round rounds v to places decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func formatFloat(v float64, places int) string {
	return strconv.FormatFloat(Round(v, places), 'f', -1, 64)
}

// keepWord applies the frequency-table filters: minimum count, stop list
// and pure numbers.
func keepWord(wc stats.WordCount, opts Options) bool {
	return wc.Count >= opts.MinCount && !opts.StopWords[wc.Word] && !numberRe.MatchString(wc.Word)
}

func writeSummary(w *bufio.Writer, r *stats.Report, opts Options) error {
	fmt.Fprintf(w, "GENERAL\n-------\n")
	fmt.Fprintf(w, "total length: %d words\n", r.TotalWords)
	fmt.Fprintf(w, "messages: %d\n", r.Messages)
	fmt.Fprintf(w, "distinct words: %d\n", r.Distinct)
	fmt.Fprintf(w, "time to read: %s hours\n", formatFloat(r.ReadingHours(opts.ReadingWPM), 2))
	if len(r.Days) > 0 {
		fmt.Fprintf(w, "date range: %s to %s (%d days)\n", r.Days[0], r.Days[len(r.Days)-1], len(r.Days))
	}
	fmt.Fprintf(w, "lexical diversity: %s\n\n", formatFloat(r.Diversity, 2))

	fmt.Fprintf(w, "WORDS\n-----\n")
	for _, s := range r.Speakers {
		fmt.Fprintf(w, "%s\t%d\t%s%%\n", s.Name, s.Words, formatFloat(s.Share*100, 2))
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "MESSAGES\n--------\n")
	for _, s := range r.Speakers {
		fmt.Fprintf(w, "%s\t%d\n", s.Name, s.Messages)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "LEXICAL DIVERSITY\n-----------------\n")
	for _, s := range r.Speakers {
		fmt.Fprintf(w, "%s\t%s\n", s.Name, formatFloat(s.Diversity, 2))
	}
	return nil
}

// writeWords lists every distinct word of each speaker, most used first.
func writeWords(w *bufio.Writer, r *stats.Report) error {
	for _, s := range r.Speakers {
		for _, wc := range s.Unigrams {
			fmt.Fprintf(w, "%s\t%s\n", s.Name, wc.Word)
		}
	}
	return nil
}

func writeOverallWords(w *bufio.Writer, r *stats.Report, opts Options) error {
	for _, wc := range r.Unigrams {
		if !keepWord(wc, opts) {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", wc.Word, wc.Count, formatFloat(percent(wc.Count, r.TotalWords), 3))
	}
	return nil
}

func writeSpeakerWords(w *bufio.Writer, r *stats.Report, opts Options) error {
	for _, s := range r.Speakers {
		for _, wc := range s.Unigrams {
			if !keepWord(wc, opts) {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.Name, wc.Word, wc.Count, formatFloat(percent(wc.Count, s.Words), 3))
		}
	}
	return nil
}

func writeOverallBigrams(w *bufio.Writer, r *stats.Report, opts Options) error {
	for _, bc := range r.Bigrams {
		if bc.Count < opts.MinCount {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", bc.Bigram, bc.Count, formatFloat(percent(bc.Count, r.TotalWords), 3))
	}
	return nil
}

func writeSpeakerBigrams(w *bufio.Writer, r *stats.Report, opts Options) error {
	for _, s := range r.Speakers {
		for _, bc := range s.Bigrams {
			if bc.Count < opts.MinCount {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.Name, bc.Bigram, bc.Count, formatFloat(percent(bc.Count, s.Words), 3))
		}
	}
	return nil
}

func writeSeriesHeader(w *bufio.Writer, label string, days []string) {
	w.WriteString(label)
	for _, d := range days {
		w.WriteString("\t" + d)
	}
	w.WriteString("\n")
}

func writeSeriesRow(w *bufio.Writer, label string, values []int) {
	w.WriteString(label)
	for _, v := range values {
		w.WriteString("\t" + strconv.Itoa(v))
	}
	w.WriteString("\n")
}

func writeSpeakerSeries(w *bufio.Writer, r *stats.Report) error {
	writeSeriesHeader(w, "speaker", r.Days)
	for _, s := range r.Speakers {
		writeSeriesRow(w, s.Name, r.SpeakerSeries(s.Name))
	}
	return nil
}

func writeWordSeries(w *bufio.Writer, r *stats.Report) error {
	writeSeriesHeader(w, "word", r.Days)
	for _, k := range r.Keywords {
		writeSeriesRow(w, k, r.KeywordSeries(k))
	}
	return nil
}

func writeDaySeries(w *bufio.Writer, r *stats.Report) error {
	for i, n := range r.DaySeries() {
		fmt.Fprintf(w, "%s\t%d\n", r.Days[i], n)
	}
	return nil
}

func writeDaytime(w *bufio.Writer, r *stats.Report) error {
	for slot, n := range r.Daytime {
		fmt.Fprintf(w, "%02d:%02d\t%d\n", slot/6, slot%6*10, n)
	}
	return nil
}

func writeGenerated(w *bufio.Writer, r *stats.Report, opts Options) error {
	rng := rand.New(rand.NewSource(opts.Seed))
	for _, s := range r.Speakers {
		if s.Words == 0 {
			continue
		}
		for i := 0; i < opts.Sentences; i++ {
			line, err := r.Generate(s.Name, rng)
			if err != nil {
				return err
			}
			w.WriteString(strings.TrimSpace(line) + "\n")
		}
	}
	return nil
}
