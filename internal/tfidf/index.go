package tfidf

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/logging"
)

// Index is the fitted vector space plus the document-term matrix of one
// library. It is read-only once built.
type Index struct {
	Vectorizer *Vectorizer
	Matrix     []Vector
	// Fingerprint identifies the library the index was built from.
	Fingerprint string
}

// Len returns the number of indexed documents.
func (x *Index) Len() int { return len(x.Matrix) }

// Similarities returns the cosine similarity of query against every row,
// in library row order.
func (x *Index) Similarities(query string) ([]float64, error) {
	qv, err := x.Vectorizer.Transform(query)
	if err != nil {
		return nil, err
	}
	sims := make([]float64, len(x.Matrix))
	if qv.IsZero() {
		return sims, nil
	}
	for i, row := range x.Matrix {
		sims[i] = Cosine(qv, row)
	}
	return sims, nil
}

// Build fits a fresh index over lib. The library must not be empty.
func Build(lib *domain.FindingsLibrary, opts Options) (*Index, error) {
	if lib.Empty() {
		return nil, domain.ErrEmptyLibrary
	}
	vz := NewVectorizer(opts)
	corpus := lib.Corpus()
	if err := vz.Fit(corpus); err != nil {
		return nil, fmt.Errorf("fit vocabulary: %w", err)
	}
	matrix := make([]Vector, len(corpus))
	for i, doc := range corpus {
		vec, err := vz.Transform(doc)
		if err != nil {
			return nil, err
		}
		matrix[i] = vec
	}
	return &Index{Vectorizer: vz, Matrix: matrix, Fingerprint: lib.Fingerprint}, nil
}

// Builder memoises Build by library fingerprint. It is safe for concurrent use.
type Builder struct {
	opts   Options
	memo   *cache.Cache
	logger *zap.Logger
}

// NewBuilder creates a memoising index builder.
func NewBuilder(opts Options, logger *zap.Logger) *Builder {
	return &Builder{
		opts:   opts,
		memo:   cache.New(cache.NoExpiration, 0),
		logger: logging.OrNop(logger).Named("tfidf"),
	}
}

// Build returns the index for lib, fitting it only when no index exists for
// the library's current content.
func (b *Builder) Build(lib *domain.FindingsLibrary) (*Index, error) {
	if lib.Empty() {
		return nil, domain.ErrEmptyLibrary
	}
	if v, ok := b.memo.Get(lib.Fingerprint); ok {
		return v.(*Index), nil
	}
	start := time.Now()
	idx, err := Build(lib, b.opts)
	if err != nil {
		return nil, err
	}
	b.memo.Set(lib.Fingerprint, idx, cache.NoExpiration)
	b.logger.Info("index built",
		zap.Int("documents", idx.Len()),
		zap.Int("terms", idx.Vectorizer.Dimension()),
		zap.Duration("took", time.Since(start)))
	return idx, nil
}
