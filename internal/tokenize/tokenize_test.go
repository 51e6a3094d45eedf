package tokenize

import (
	"reflect"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "hi there", []string{"hi", "there"}},
		{"lowercases", "Hello WORLD", []string{"hello", "world"}},
		{"punctuation", "wait, what?! really...", []string{"wait", "what", "really"}},
		{"no space after comma", "one,two", []string{"one", "two"}},
		{"hyphen and slash", "well-known and/or", []string{"well", "known", "and", "or"}},
		{"contraction kept", "I don't know, it's fine", []string{"i", "don't", "know", "it's", "fine"}},
		{"curly apostrophe", "don’t", []string{"don't"}},
		{"possessive dropped", "Alice's cat", []string{"alices", "cat"}},
		{"quoted", "'hello'", []string{"hello"}},
		{"links removed", "see https://example.com/a-b now", []string{"see", "now"}},
		{"www link removed", "go to www.example.com", []string{"go", "to"}},
		{"digits kept", "call 911", []string{"call", "911"}},
		{"unicode letters", "Café naïve", []string{"café", "naïve"}},
		{"only punctuation", "?!... --", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBigrams(t *testing.T) {
	got := Bigrams([]string{"hi", "there", "you"})
	want := []Bigram{{"hi", "there"}, {"there", "you"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Bigrams = %v, want %v", got, want)
	}
	if Bigrams([]string{"solo"}) != nil {
		t.Error("single word should have no bigrams")
	}
	if s := want[0].String(); s != "hi there" {
		t.Errorf("String() = %q", s)
	}
}

func TestTrigrams(t *testing.T) {
	got := Trigrams([]string{"hi", "there"})
	want := []Trigram{
		{BOS, BOS, "hi"},
		{BOS, "hi", "there"},
		{"hi", "there", EOS},
		{"there", EOS, EOS},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trigrams = %v, want %v", got, want)
	}
	if Trigrams(nil) != nil {
		t.Error("empty message should have no trigrams")
	}
}
