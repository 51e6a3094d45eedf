package stats

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Zuo-Peng/chat-stats/internal/tokenize"
)

// maxGeneratedWords bounds a generated sentence when the chain cycles.
const maxGeneratedWords = 60

type transition struct {
	next  string
	count int
}

var (
	loneIRe     = regexp.MustCompile(`\bi\b`)
	contractIRe = regexp.MustCompile(`\bi'`)
)

// Generate builds a sentence in the style of speaker by walking the
// speaker's trigram chain from the sentence start. The walk is
// deterministic for a given rng state.
func (r *Report) Generate(speaker string, rng *rand.Rand) (string, error) {
	trigrams, ok := r.trigrams[speaker]
	if !ok {
		return "", fmt.Errorf("unknown speaker %q", speaker)
	}
	if len(trigrams) == 0 {
		return "", fmt.Errorf("speaker %q has no words", speaker)
	}

	chain := make(map[[2]string][]transition)
	for t, c := range trigrams {
		key := [2]string{t[0], t[1]}
		chain[key] = append(chain[key], transition{t[2], c})
	}
	for _, ts := range chain {
		sort.Slice(ts, func(i, j int) bool { return ts[i].next < ts[j].next })
	}

	state := [2]string{tokenize.BOS, tokenize.BOS}
	var words []string
	for len(words) < maxGeneratedWords {
		choices := chain[state]
		if len(choices) == 0 {
			break
		}
		next := pick(choices, rng)
		if next == tokenize.EOS {
			break
		}
		words = append(words, next)
		state = [2]string{state[1], next}
	}

	sentence := strings.Join(words, " ")
	sentence = contractIRe.ReplaceAllString(sentence, "I'")
	sentence = loneIRe.ReplaceAllString(sentence, "I")
	if first, size := utf8.DecodeRuneInString(sentence); size > 0 {
		sentence = string(unicode.ToUpper(first)) + sentence[size:]
	}
	return speaker + ": " + sentence + ".", nil
}

func pick(choices []transition, rng *rand.Rand) string {
	total := 0
	for _, c := range choices {
		total += c.count
	}
	n := rng.Intn(total)
	for _, c := range choices {
		if n < c.count {
			return c.next
		}
		n -= c.count
	}
	return choices[len(choices)-1].next
}
