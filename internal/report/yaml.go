package report

import (
	"bufio"

	"github.com/Zuo-Peng/chat-stats/internal/stats"
	"gopkg.in/yaml.v3"
)

// Summary is the machine-readable counterpart of summary.txt.
type Summary struct {
	TotalWords   int              `yaml:"total_words"`
	Messages     int              `yaml:"messages"`
	Distinct     int              `yaml:"distinct_words"`
	Diversity    float64          `yaml:"lexical_diversity"`
	ReadingHours float64          `yaml:"reading_hours"`
	FirstDay     string           `yaml:"first_day,omitempty"`
	LastDay      string           `yaml:"last_day,omitempty"`
	Speakers     []SpeakerSummary `yaml:"speakers"`
	TopWords     []WordSummary    `yaml:"top_words,omitempty"`
}

type SpeakerSummary struct {
	Name      string  `yaml:"name"`
	Words     int     `yaml:"words"`
	Messages  int     `yaml:"messages"`
	Percent   float64 `yaml:"percent"`
	Diversity float64 `yaml:"lexical_diversity"`
}

type WordSummary struct {
	Word  string `yaml:"word"`
	Count int    `yaml:"count"`
}

const summaryTopWords = 25

// NewSummary condenses a report; top words obey the same filters as
// overall_word_frequencies.txt.
func NewSummary(r *stats.Report, opts Options) Summary {
	s := Summary{
		TotalWords:   r.TotalWords,
		Messages:     r.Messages,
		Distinct:     r.Distinct,
		Diversity:    Round(r.Diversity, 4),
		ReadingHours: Round(r.ReadingHours(opts.ReadingWPM), 2),
		Speakers:     []SpeakerSummary{},
	}
	if len(r.Days) > 0 {
		s.FirstDay = r.Days[0]
		s.LastDay = r.Days[len(r.Days)-1]
	}
	for _, sp := range r.Speakers {
		s.Speakers = append(s.Speakers, SpeakerSummary{
			Name:      sp.Name,
			Words:     sp.Words,
			Messages:  sp.Messages,
			Percent:   Round(sp.Share*100, 2),
			Diversity: Round(sp.Diversity, 4),
		})
	}
	for _, wc := range r.Unigrams {
		if len(s.TopWords) == summaryTopWords {
			break
		}
		if keepWord(wc, opts) {
			s.TopWords = append(s.TopWords, WordSummary{wc.Word, wc.Count})
		}
	}
	return s
}

func writeSummaryYAML(w *bufio.Writer, r *stats.Report, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewSummary(r, opts)); err != nil {
		return err
	}
	return enc.Close()
}
