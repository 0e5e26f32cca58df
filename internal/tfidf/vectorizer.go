// Package tfidf builds the lexical vector space over the findings library:
// unigram and bigram terms, frequency-capped vocabulary, smoothed IDF and
// L2-normalised sparse document vectors.
package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Default vectorizer settings.
const (
	DefaultMaxFeatures = 20000
	DefaultNGramMax    = 2
)

// Options configures vocabulary extraction.
type Options struct {
	// MaxFeatures caps the vocabulary to the most frequent terms across the corpus.
	MaxFeatures int
	// NGramMax is the longest word n-gram extracted (1 = unigrams only).
	NGramMax int
	// Stopwords drops common English words before n-grams are formed.
	Stopwords bool
}

func (o Options) withDefaults() Options {
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = DefaultMaxFeatures
	}
	if o.NGramMax <= 0 {
		o.NGramMax = DefaultNGramMax
	}
	return o
}

// Vectorizer maps text into the fitted TF-IDF space.
type Vectorizer struct {
	opts         Options
	vocabulary   map[string]int
	terms        []string
	idf          []float64
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(opts Options) *Vectorizer {
	v := &Vectorizer{
		opts:         opts.withDefaults(),
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{M}\p{N}_]+`),
	}
	if v.opts.Stopwords {
		v.stopwords = defaultStopwords()
	}
	return v
}

// Fit builds the vocabulary and IDF weights from corpus. A corpus whose
// documents carry no terms fits an empty vocabulary; every vector is then zero.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF fit")
	}
	df := make(map[string]int)
	tf := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range v.analyze(text) {
			tf[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	// Keep the MaxFeatures most frequent terms, ties broken alphabetically.
	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if tf[terms[i]] != tf[terms[j]] {
			return tf[terms[i]] > tf[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.opts.MaxFeatures {
		terms = terms[:v.opts.MaxFeatures]
	}
	// Stable column order for the document-term matrix.
	sort.Strings(terms)

	v.terms = terms
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.prepared = true
	return nil
}

// Dimension returns the vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.terms) }

// Terms returns the fitted vocabulary in column order.
func (v *Vectorizer) Terms() []string { return v.terms }

// IDF returns the weight of term and whether it is in the vocabulary.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	i, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

// Transform projects text into the fitted space. Terms outside the
// vocabulary are dropped; text with no known terms yields the zero vector.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.prepared {
		return Vector{}, errors.New("tfidf vectorizer not fitted")
	}
	counts := make(map[int]int)
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}, nil
	}
	vec := Vector{Indices: make([]int, 0, len(counts)), Values: make([]float64, 0, len(counts))}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, float64(counts[idx])*v.idf[idx])
	}
	vec.normalize()
	return vec, nil
}

// analyze returns the unigrams and word n-grams of text.
func (v *Vectorizer) analyze(text string) []string {
	tokens := v.tokenize(text)
	if v.opts.NGramMax <= 1 || len(tokens) < 2 {
		return tokens
	}
	out := append([]string(nil), tokens...)
	for n := 2; n <= v.opts.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func (v *Vectorizer) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := v.tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
