package domain

import "context"

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Suggester drafts audit suggestions from a query and its shortlist.
type Suggester interface {
	Suggest(ctx context.Context, query string, candidates []RankedCandidate) (Suggestions, error)
}

// Extractor turns free text into 6W2H plan fields.
type Extractor interface {
	ExtractSixW2H(ctx context.Context, text string) (SixW2H, error)
}
