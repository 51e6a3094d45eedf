// Package stats accumulates word statistics over parsed transcript messages
// and freezes them into a Report.
package stats

import (
	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/tokenize"
)

// SlotsPerDay is the number of ten-minute time-of-day buckets.
const SlotsPerDay = 24 * 6

type DaySpeaker struct {
	Day, Speaker string
}

type DayWord struct {
	Day, Word string
}

// Aggregator is the single-pass accumulator. Use NewAggregator, call Add
// for every message in transcript order, then Finish once.
type Aggregator struct {
	keywords   []string
	keywordSet map[string]bool

	totalWords     int
	speakers       []string // first-appearance order
	wordsBySpeaker map[string]int
	messages       map[string]int
	wordLists      map[string][]string

	unigrams        map[string]int
	speakerUnigrams map[string]map[string]int
	bigrams         map[tokenize.Bigram]int
	speakerBigrams  map[string]map[tokenize.Bigram]int
	speakerTrigrams map[string]map[tokenize.Trigram]int

	dayWords        map[string]int
	daySpeakerWords map[DaySpeaker]int
	keywordByDay    map[DayWord]int
	dayFirstLine    map[string]int
	daytime         [SlotsPerDay]int

	firstDay, lastDay string
	finished          bool
}

// NewAggregator tracks the given words of interest (lowercased on input)
// in the per-day keyword series.
func NewAggregator(keywords []string) *Aggregator {
	a := &Aggregator{
		keywordSet:      make(map[string]bool),
		wordsBySpeaker:  make(map[string]int),
		messages:        make(map[string]int),
		wordLists:       make(map[string][]string),
		unigrams:        make(map[string]int),
		speakerUnigrams: make(map[string]map[string]int),
		bigrams:         make(map[tokenize.Bigram]int),
		speakerBigrams:  make(map[string]map[tokenize.Bigram]int),
		speakerTrigrams: make(map[string]map[tokenize.Trigram]int),
		dayWords:        make(map[string]int),
		daySpeakerWords: make(map[DaySpeaker]int),
		keywordByDay:    make(map[DayWord]int),
		dayFirstLine:    make(map[string]int),
	}
	for _, k := range keywords {
		for _, w := range tokenize.Words(k) {
			if !a.keywordSet[w] {
				a.keywordSet[w] = true
				a.keywords = append(a.keywords, w)
			}
		}
	}
	return a
}

// Add folds one message into every counter. Add panics after Finish.
func (a *Aggregator) Add(m parse.Message) {
	if a.finished {
		panic("stats: Add called after Finish")
	}

	speaker := m.Speaker
	day := m.Day()

	if _, ok := a.speakerUnigrams[speaker]; !ok {
		a.speakers = append(a.speakers, speaker)
		a.speakerUnigrams[speaker] = make(map[string]int)
		a.speakerBigrams[speaker] = make(map[tokenize.Bigram]int)
		a.speakerTrigrams[speaker] = make(map[tokenize.Trigram]int)
	}
	a.messages[speaker]++

	if a.firstDay == "" || day < a.firstDay {
		a.firstDay = day
	}
	if day > a.lastDay {
		a.lastDay = day
	}
	if _, ok := a.dayFirstLine[day]; !ok {
		a.dayFirstLine[day] = m.LineNumber
	}

	words := tokenize.Words(m.Text)
	n := len(words)

	a.totalWords += n
	a.wordsBySpeaker[speaker] += n
	a.wordLists[speaker] = append(a.wordLists[speaker], words...)
	a.dayWords[day] += n
	a.daySpeakerWords[DaySpeaker{day, speaker}] += n
	a.daytime[slotOf(m)] += n

	su := a.speakerUnigrams[speaker]
	for _, w := range words {
		a.unigrams[w]++
		su[w]++
		if a.keywordSet[w] {
			a.keywordByDay[DayWord{day, w}]++
		}
	}

	sb := a.speakerBigrams[speaker]
	for _, b := range tokenize.Bigrams(words) {
		a.bigrams[b]++
		sb[b]++
	}

	st := a.speakerTrigrams[speaker]
	for _, t := range tokenize.Trigrams(words) {
		st[t]++
	}
}

func slotOf(m parse.Message) int {
	return (m.Timestamp.Hour()*60 + m.Timestamp.Minute()) / 10
}

// AddAll feeds every message of a transcript.
func (a *Aggregator) AddAll(msgs []parse.Message) {
	for _, m := range msgs {
		a.Add(m)
	}
}

// TotalWords is the running total, usable before Finish.
func (a *Aggregator) TotalWords() int { return a.totalWords }
