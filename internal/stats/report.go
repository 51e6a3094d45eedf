package stats

import (
	"sort"
	"time"

	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/tokenize"
)

type WordCount struct {
	Word  string
	Count int
}

type BigramCount struct {
	Bigram tokenize.Bigram
	Count  int
}

type SpeakerStats struct {
	Name      string
	Words     int
	Messages  int
	Distinct  int
	Share     float64 // fraction of all words, 0..1
	Diversity float64 // Distinct / Words, 0..1
	WordList  []string
	Unigrams  []WordCount   // count desc, word asc
	Bigrams   []BigramCount // count desc, bigram asc
}

// Report is the frozen result of an aggregation pass.
type Report struct {
	TotalWords int
	Messages   int
	Distinct   int
	Diversity  float64

	Speakers []SpeakerStats // words desc, name asc
	Unigrams []WordCount
	Bigrams  []BigramCount

	Days            []string // every day from first to last, inclusive
	DayWords        map[string]int
	DaySpeakerWords map[DaySpeaker]int
	Keywords        []string
	KeywordByDay    map[DayWord]int
	DayFirstLine    map[string]int
	Daytime         [SlotsPerDay]int

	trigrams map[string]map[tokenize.Trigram]int
}

// Finish freezes the aggregator and computes derived values. Further calls
// to Add panic.
func (a *Aggregator) Finish() *Report {
	a.finished = true

	r := &Report{
		TotalWords:      a.totalWords,
		Distinct:        len(a.unigrams),
		Diversity:       diversity(len(a.unigrams), a.totalWords),
		Unigrams:        sortWords(a.unigrams),
		Bigrams:         sortBigrams(a.bigrams),
		Days:            dayRange(a.firstDay, a.lastDay),
		DayWords:        a.dayWords,
		DaySpeakerWords: a.daySpeakerWords,
		Keywords:        a.keywords,
		KeywordByDay:    a.keywordByDay,
		DayFirstLine:    a.dayFirstLine,
		Daytime:         a.daytime,
		trigrams:        a.speakerTrigrams,
	}

	for _, name := range a.speakers {
		words := a.wordsBySpeaker[name]
		distinct := len(a.speakerUnigrams[name])
		s := SpeakerStats{
			Name:      name,
			Words:     words,
			Messages:  a.messages[name],
			Distinct:  distinct,
			Diversity: diversity(distinct, words),
			WordList:  a.wordLists[name],
			Unigrams:  sortWords(a.speakerUnigrams[name]),
			Bigrams:   sortBigrams(a.speakerBigrams[name]),
		}
		if a.totalWords > 0 {
			s.Share = float64(words) / float64(a.totalWords)
		}
		r.Messages += s.Messages
		r.Speakers = append(r.Speakers, s)
	}

	sort.SliceStable(r.Speakers, func(i, j int) bool {
		if r.Speakers[i].Words != r.Speakers[j].Words {
			return r.Speakers[i].Words > r.Speakers[j].Words
		}
		return r.Speakers[i].Name < r.Speakers[j].Name
	})

	return r
}

// Aggregate runs a full pass over msgs.
func Aggregate(msgs []parse.Message, keywords []string) *Report {
	a := NewAggregator(keywords)
	a.AddAll(msgs)
	return a.Finish()
}

func diversity(distinct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(distinct) / float64(total)
}

func sortWords(m map[string]int) []WordCount {
	out := make([]WordCount, 0, len(m))
	for w, c := range m {
		out = append(out, WordCount{w, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

func sortBigrams(m map[tokenize.Bigram]int) []BigramCount {
	out := make([]BigramCount, 0, len(m))
	for b, c := range m {
		out = append(out, BigramCount{b, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Bigram.First != out[j].Bigram.First {
			return out[i].Bigram.First < out[j].Bigram.First
		}
		return out[i].Bigram.Second < out[j].Bigram.Second
	})
	return out
}

func dayRange(first, last string) []string {
	if first == "" {
		return nil
	}
	start, err := time.Parse(parse.DayLayout, first)
	if err != nil {
		return nil
	}
	end, err := time.Parse(parse.DayLayout, last)
	if err != nil {
		return nil
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(parse.DayLayout))
	}
	return days
}

// Speaker looks up one speaker's stats by exact name.
func (r *Report) Speaker(name string) (*SpeakerStats, bool) {
	for i := range r.Speakers {
		if r.Speakers[i].Name == name {
			return &r.Speakers[i], true
		}
	}
	return nil, false
}

// ReadingHours estimates the time to read the whole transcript.
func (r *Report) ReadingHours(wpm int) float64 {
	if wpm <= 0 {
		return 0
	}
	return float64(r.TotalWords) / float64(wpm) / 60
}

// DaySeries returns words per day aligned with Days.
func (r *Report) DaySeries() []int {
	out := make([]int, len(r.Days))
	for i, d := range r.Days {
		out[i] = r.DayWords[d]
	}
	return out
}

// SpeakerSeries returns a speaker's words per day aligned with Days.
func (r *Report) SpeakerSeries(speaker string) []int {
	out := make([]int, len(r.Days))
	for i, d := range r.Days {
		out[i] = r.DaySpeakerWords[DaySpeaker{d, speaker}]
	}
	return out
}

// KeywordSeries returns occurrences of a word of interest per day aligned
// with Days.
func (r *Report) KeywordSeries(word string) []int {
	out := make([]int, len(r.Days))
	for i, d := range r.Days {
		out[i] = r.KeywordByDay[DayWord{d, word}]
	}
	return out
}
