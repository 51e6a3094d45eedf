package stats

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/tokenize"
)

const transcript = `2020-01-01 10:00:00 Alice: hi there
2020-01-01 10:01:00 Bob: hi Alice, pizza tonight?
2020-01-01 23:55:00 Alice: pizza pizza! hi there
not a message
2020-01-03 08:00:00 Bob: Pizza again
2020-01-03 08:00:30 Carol:
`

func mustParse(t *testing.T, in string) []parse.Message {
	t.Helper()
	tr, err := parse.Parse(strings.NewReader(in), parse.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return tr.Messages
}

func TestSingleMessage(t *testing.T) {
	r := Aggregate(mustParse(t, "2020-01-01 10:00:00 Alice: hi there\n"), nil)

	alice, ok := r.Speaker("Alice")
	if !ok {
		t.Fatal("speaker Alice missing")
	}
	if !reflect.DeepEqual(alice.WordList, []string{"hi", "there"}) {
		t.Errorf("WordList = %v", alice.WordList)
	}
	want := []BigramCount{{tokenize.Bigram{First: "hi", Second: "there"}, 1}}
	if !reflect.DeepEqual(alice.Bigrams, want) {
		t.Errorf("Bigrams = %v, want %v", alice.Bigrams, want)
	}
	if !reflect.DeepEqual(r.Days, []string{"2020-01-01"}) {
		t.Errorf("Days = %v", r.Days)
	}
	if r.DayWords["2020-01-01"] != 2 {
		t.Errorf("DayWords = %v", r.DayWords)
	}
}

func TestAggregateCounts(t *testing.T) {
	r := Aggregate(mustParse(t, transcript), []string{"Pizza", "tonight", "pizza"})

	if r.TotalWords != 12 {
		t.Errorf("TotalWords = %d, want 12", r.TotalWords)
	}
	if r.Messages != 5 {
		t.Errorf("Messages = %d, want 5", r.Messages)
	}

	var names []string
	for _, s := range r.Speakers {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, []string{"Alice", "Bob", "Carol"}) {
		t.Errorf("speaker order = %v", names)
	}

	alice, _ := r.Speaker("Alice")
	if alice.Words != 6 || alice.Messages != 2 {
		t.Errorf("Alice = %d words / %d messages", alice.Words, alice.Messages)
	}
	carol, _ := r.Speaker("Carol")
	if carol.Words != 0 || carol.Diversity != 0 || carol.Share != 0 {
		t.Errorf("Carol = %+v", carol)
	}

	if !reflect.DeepEqual(r.Keywords, []string{"pizza", "tonight"}) {
		t.Errorf("Keywords = %v", r.Keywords)
	}
	if got := r.KeywordSeries("pizza"); !reflect.DeepEqual(got, []int{3, 0, 1}) {
		t.Errorf("pizza series = %v", got)
	}
	if got := r.DaySeries(); !reflect.DeepEqual(got, []int{10, 0, 2}) {
		t.Errorf("DaySeries = %v", got)
	}
	if got := r.SpeakerSeries("Bob"); !reflect.DeepEqual(got, []int{4, 0, 2}) {
		t.Errorf("Bob series = %v", got)
	}
	if r.DayFirstLine["2020-01-03"] != 5 {
		t.Errorf("DayFirstLine = %v", r.DayFirstLine)
	}
	if r.Daytime[60] != 6 || r.Daytime[48] != 2 || r.Daytime[143] != 4 {
		t.Errorf("Daytime slots 48=%d 60=%d 143=%d", r.Daytime[48], r.Daytime[60], r.Daytime[143])
	}
	if r.Unigrams[0] != (WordCount{"pizza", 4}) {
		t.Errorf("top word = %+v", r.Unigrams[0])
	}
}

func TestInvariants(t *testing.T) {
	r := Aggregate(mustParse(t, transcript), nil)

	sum := 0
	for _, s := range r.Speakers {
		sum += s.Words

		uni := 0
		for _, wc := range s.Unigrams {
			uni += wc.Count
		}
		if uni != s.Words {
			t.Errorf("%s unigram sum %d != words %d", s.Name, uni, s.Words)
		}
		if len(s.WordList) != s.Words {
			t.Errorf("%s word list has %d entries, want %d", s.Name, len(s.WordList), s.Words)
		}
		if s.Diversity < 0 || s.Diversity > 1 {
			t.Errorf("%s diversity %f out of range", s.Name, s.Diversity)
		}
		assertSortedWords(t, s.Unigrams)
		assertSortedBigrams(t, s.Bigrams)
	}
	if sum != r.TotalWords {
		t.Errorf("speaker sum %d != total %d", sum, r.TotalWords)
	}
	if r.Diversity < 0 || r.Diversity > 1 {
		t.Errorf("diversity %f out of range", r.Diversity)
	}
	assertSortedWords(t, r.Unigrams)
	assertSortedBigrams(t, r.Bigrams)
}

func assertSortedWords(t *testing.T, wcs []WordCount) {
	t.Helper()
	for i := 1; i < len(wcs); i++ {
		if wcs[i].Count > wcs[i-1].Count {
			t.Fatalf("not sorted at %d: %v", i, wcs)
		}
	}
}

func assertSortedBigrams(t *testing.T, bcs []BigramCount) {
	t.Helper()
	for i := 1; i < len(bcs); i++ {
		if bcs[i].Count > bcs[i-1].Count {
			t.Fatalf("not sorted at %d: %v", i, bcs)
		}
	}
}

func TestNoCrossMessageBigrams(t *testing.T) {
	r := Aggregate(mustParse(t, "2020-01-01 10:00:00 A: one two\n2020-01-01 10:00:01 A: three\n"), nil)
	for _, b := range r.Bigrams {
		if b.Bigram.First == "two" && b.Bigram.Second == "three" {
			t.Fatal("bigram crossed a message boundary")
		}
	}
	if len(r.Bigrams) != 1 {
		t.Errorf("Bigrams = %v", r.Bigrams)
	}
}

func TestEmptyTranscript(t *testing.T) {
	r := Aggregate(nil, []string{"x"})
	if r.TotalWords != 0 || r.Diversity != 0 || len(r.Days) != 0 {
		t.Errorf("unexpected report %+v", r)
	}
	if r.ReadingHours(250) != 0 {
		t.Error("reading time of empty transcript should be 0")
	}
}

func TestDeterministic(t *testing.T) {
	msgs := mustParse(t, transcript)
	a := Aggregate(msgs, []string{"pizza"})
	b := Aggregate(msgs, []string{"pizza"})
	a.trigrams, b.trigrams = nil, nil
	if !reflect.DeepEqual(a, b) {
		t.Error("two passes over the same transcript differ")
	}
}

func TestAddAfterFinishPanics(t *testing.T) {
	a := NewAggregator(nil)
	a.Finish()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.Add(parse.Message{Speaker: "x"})
}

func TestReadingHours(t *testing.T) {
	r := &Report{TotalWords: 30000}
	if got := r.ReadingHours(250); got != 2 {
		t.Errorf("ReadingHours = %f, want 2", got)
	}
}

func TestGenerate(t *testing.T) {
	r := Aggregate(mustParse(t, "2020-01-01 10:00:00 Bob: i think i'm fine\n"), nil)

	got, err := r.Generate("Bob", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if got != "Bob: I think I'm fine." {
		t.Errorf("Generate = %q", got)
	}

	if _, err := r.Generate("Nobody", rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for unknown speaker")
	}
}

func TestGenerateSpeakerWithoutWords(t *testing.T) {
	r := Aggregate(mustParse(t, transcript), nil)
	_, err := r.Generate("Carol", rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected error for speaker without words")
	}
	if !strings.Contains(err.Error(), "has no words") {
		t.Errorf("error = %q", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	r := Aggregate(mustParse(t, transcript), nil)
	a, _ := r.Generate("Alice", rand.New(rand.NewSource(7)))
	b, _ := r.Generate("Alice", rand.New(rand.NewSource(7)))
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
}
