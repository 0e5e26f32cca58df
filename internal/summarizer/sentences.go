package summarizer

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?\n]+[.!?\n])`)
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{M}\p{N}]*(?:['’][\p{L}\p{M}]+)*`)
)

// Sentences splits text on sentence punctuation and line breaks. Text
// without any terminator comes back as a single sentence.
func Sentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[loc[0]:loc[1]]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// BestSentence returns the index of the sentence sharing the most words
// with query, scored with the Ochiai coefficient. It returns -1 when
// there is nothing to match.
func BestSentence(sentences []string, query string) int {
	q := wordSet(query)
	if len(q) == 0 || len(sentences) == 0 {
		return -1
	}
	best, bestScore := -1, 0.0
	for i, s := range sentences {
		if score := ochiai(q, wordSet(s)); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func wordSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// ochiai is |A∩B| / sqrt(|A||B|).
func ochiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range b {
		if _, ok := a[t]; ok {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}
