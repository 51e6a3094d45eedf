// Package tokenize splits chat messages into lowercase word tokens and
// builds n-grams from them.
package tokenize

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	BOS = "BOS" // sentence start padding for trigrams
	EOS = "EOS" // sentence end padding for trigrams
)

var linkRe = regexp.MustCompile(`(?i)(?:https?://|www\.)\S*`)

// contractions keep their apostrophe; every other apostrophe is dropped.
var contractions = map[string]bool{
	"can't": true, "could've": true, "couldn't": true, "didn't": true,
	"doesn't": true, "don't": true, "hadn't": true, "hasn't": true,
	"haven't": true, "he'd": true, "he'll": true, "here's": true,
	"he's": true, "i'd": true, "i'll": true, "i'm": true, "i've": true,
	"isn't": true, "it'd": true, "it'll": true, "it's": true, "let's": true,
	"she'd": true, "she'll": true, "she's": true, "that'd": true,
	"that'll": true, "that's": true, "there's": true, "there'll": true,
	"they're": true, "this'd": true, "this'll": true, "wasn't": true,
	"we'd": true, "we're": true, "we've": true, "what'd": true,
	"what'll": true, "what's": true, "won't": true, "would've": true,
	"wouldn't": true, "you'd": true, "you'll": true, "you're": true,
	"you've": true,
}

type Bigram struct {
	First, Second string
}

func (b Bigram) String() string { return b.First + " " + b.Second }

type Trigram [3]string

func (t Trigram) String() string { return t[0] + " " + t[1] + " " + t[2] }

// Words lowercases text, drops hyperlinks and splits on whitespace and
// punctuation.
func Words(text string) []string {
	text = linkRe.ReplaceAllString(strings.ToLower(text), " ")
	text = strings.NewReplacer("’", "'", "‘", "'").Replace(text)

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r != '\'' && !isWordRune(r)
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := normalize(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

func normalize(token string) string {
	token = strings.Trim(token, "'")
	if contractions[token] {
		return token
	}
	return strings.ReplaceAll(token, "'", "")
}

// Bigrams returns adjacent pairs of words, in order.
func Bigrams(words []string) []Bigram {
	if len(words) < 2 {
		return nil
	}
	out := make([]Bigram, 0, len(words)-1)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, Bigram{words[i], words[i+1]})
	}
	return out
}

// Trigrams pads words with two BOS and two EOS markers and returns every
// window of three. An empty message yields nothing.
func Trigrams(words []string) []Trigram {
	if len(words) == 0 {
		return nil
	}
	padded := make([]string, 0, len(words)+4)
	padded = append(padded, BOS, BOS)
	padded = append(padded, words...)
	padded = append(padded, EOS, EOS)

	out := make([]Trigram, 0, len(padded)-2)
	for i := 0; i+2 < len(padded); i++ {
		out = append(out, Trigram{padded[i], padded[i+1], padded[i+2]})
	}
	return out
}
