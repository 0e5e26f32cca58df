// Package ranking scores findings against a query by blending lexical
// similarity with severity and recency.
package ranking

import (
	"sort"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/tfidf"
)

// Composite score weights. Relevance dominates, severity is secondary and
// recency only nudges.
const (
	WeightSimilarity = 0.65
	WeightSeverity   = 0.25
	WeightRecency    = 0.10
)

// DefaultTopK is the shortlist length used when topK is not positive.
const DefaultTopK = 8

// Rank scores every finding in lib against query and returns the best topK,
// highest composite score first. Equal scores keep library row order.
func Rank(query string, lib *domain.FindingsLibrary, idx *tfidf.Index, topK int) ([]domain.RankedCandidate, error) {
	if lib.Empty() {
		return nil, domain.ErrEmptyLibrary
	}
	if idx == nil || idx.Fingerprint != lib.Fingerprint || idx.Len() != lib.Len() {
		return nil, domain.ErrIndexNotBuilt
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	sims, err := idx.Similarities(query)
	if err != nil {
		return nil, err
	}

	lo, hi := lib.YearRange()
	span := float64(hi - lo)

	out := make([]domain.RankedCandidate, lib.Len())
	for i, f := range lib.Records {
		c := domain.RankedCandidate{
			Finding:  f,
			Row:      i,
			SimScore: sims[i],
			SevNorm:  float64(f.Severity) / 5,
		}
		if span != 0 {
			c.YearNorm = float64(f.Year-lo) / span
		}
		c.Score = Composite(c.SimScore, c.SevNorm, c.YearNorm)
		out[i] = c
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if topK > len(out) {
		topK = len(out)
	}
	return out[:topK], nil
}

// Composite blends the three normalised signals.
func Composite(sim, sevNorm, yearNorm float64) float64 {
	return WeightSimilarity*sim + WeightSeverity*sevNorm + WeightRecency*yearNorm
}
