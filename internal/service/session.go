// Package service holds the per-user planning session: the loaded findings
// library, its lexical index, the plan being drafted and the selected issues.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/totohpy/pa-ai-auditor/internal/config"
	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/findings"
	"github.com/totohpy/pa-ai-auditor/internal/logging"
	"github.com/totohpy/pa-ai-auditor/internal/plan"
	"github.com/totohpy/pa-ai-auditor/internal/ranking"
	"github.com/totohpy/pa-ai-auditor/internal/shortlist"
	"github.com/totohpy/pa-ai-auditor/internal/summarizer"
	"github.com/totohpy/pa-ai-auditor/internal/tfidf"
)

// Options configures a Session.
type Options struct {
	Findings     findings.Options
	Index        tfidf.Options
	TopK         int
	MaxSentences int
	Logger       *zap.Logger
}

// OptionsFromConfig maps the application config onto session options.
func OptionsFromConfig(cfg *config.AppConfig, logger *zap.Logger) Options {
	return Options{
		Findings: findings.Options{
			DefaultPath:  cfg.Findings.DefaultPath,
			Sheet:        cfg.Findings.Sheet,
			EnforceSheet: cfg.Findings.EnforceSheet,
		},
		Index: tfidf.Options{
			MaxFeatures: cfg.Index.MaxFeatures,
			NGramMax:    cfg.Index.NGramMax,
			Stopwords:   cfg.Index.Stopwords,
		},
		TopK:         cfg.Ranking.TopK,
		MaxSentences: cfg.Summarizer.MaxSentences,
		Logger:       logger,
	}
}

// Session is the explicit state of one user's working session. It is not
// safe for concurrent use; every interaction runs to completion first.
type Session struct {
	ID       string
	Workbook *plan.Workbook

	loader       *findings.Loader
	indexer      *tfidf.Builder
	topK         int
	maxSentences int
	logger       *zap.Logger

	issues   *shortlist.Collection
	upload   *findings.Source
	library  *domain.FindingsLibrary
	index    *tfidf.Index
	warnings []error
}

// NewSession starts a session over wb. A nil wb starts a fresh draft plan.
func NewSession(opts Options, wb *plan.Workbook) *Session {
	if wb == nil {
		wb = plan.New(time.Now())
	}
	if opts.TopK <= 0 {
		opts.TopK = ranking.DefaultTopK
	}
	id := uuid.NewString()
	logger := logging.OrNop(opts.Logger).With(zap.String("session", id))
	return &Session{
		ID:           id,
		Workbook:     wb,
		loader:       findings.NewLoader(opts.Findings, logger),
		indexer:      tfidf.NewBuilder(opts.Index, logger),
		topK:         opts.TopK,
		maxSentences: opts.MaxSentences,
		logger:       logger,
		issues:       shortlist.NewCollection(wb.Plan.PlanID, wb.Issues...),
	}
}

// LoadFindings rebuilds the library from the default dataset plus upload.
// The index is dropped whenever the library content changes.
func (s *Session) LoadFindings(upload *findings.Source) findings.Result {
	res := s.loader.Load(upload)
	s.upload = upload
	s.warnings = res.Warnings
	if s.library == nil || s.library.Fingerprint != res.Library.Fingerprint {
		s.index = nil
	}
	s.library = res.Library
	return res
}

// Reload re-reads the default dataset from disk and replays the upload of
// the last load from the bytes already held in memory.
func (s *Session) Reload() findings.Result {
	return s.LoadFindings(s.upload)
}

// Library returns the current findings library, or nil before the first load.
func (s *Session) Library() *domain.FindingsLibrary { return s.library }

// Warnings returns the recoverable problems reported by the last load.
func (s *Session) Warnings() []error { return s.warnings }

// TopK is the shortlist length used when callers pass zero.
func (s *Session) TopK() int { return s.topK }

// Suggest ranks the library against query. The index is built on first
// use for each library content.
func (s *Session) Suggest(query string, topK int) ([]domain.RankedCandidate, error) {
	if s.library.Empty() {
		return nil, domain.ErrEmptyLibrary
	}
	if topK <= 0 {
		topK = s.topK
	}
	if s.index == nil || s.index.Fingerprint != s.library.Fingerprint {
		idx, err := s.indexer.Build(s.library)
		if err != nil {
			return nil, fmt.Errorf("build index: %w", err)
		}
		s.index = idx
	}
	cands, err := ranking.Rank(query, s.library, s.index, topK)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("ranked", zap.Int("candidates", len(cands)), zap.Int("top_k", topK))
	return cands, nil
}

// SuggestForPlan ranks against the query composed from the session's plan.
// It returns the query alongside the candidates.
func (s *Session) SuggestForPlan(topK int) ([]domain.RankedCandidate, string, error) {
	q := s.Workbook.Query()
	cands, err := s.Suggest(q, topK)
	return cands, q, err
}

// AddIssue materialises cand as an audit issue of the session's plan.
func (s *Session) AddIssue(cand *domain.RankedCandidate, ann shortlist.Annotations) (domain.AuditIssue, error) {
	if cand == nil {
		return domain.AuditIssue{}, domain.ErrNoCandidate
	}
	s.issues.SetPlanID(s.Workbook.Plan.PlanID)
	issue := s.issues.Add(*cand, ann)
	s.Workbook.Issues = s.issues.Issues()
	s.logger.Info("issue added", zap.String("issue_id", issue.IssueID), zap.String("source_finding_id", issue.SourceFindingID))
	return issue, nil
}

// Issues returns the session's audit issues in insertion order.
func (s *Session) Issues() []domain.AuditIssue { return s.issues.Issues() }

// ExportIssues writes the issue collection as CSV.
func (s *Session) ExportIssues(w io.Writer) error {
	return shortlist.WriteCSV(w, s.issues.Issues())
}

// Draft asks suggester for issue, finding and report drafts. A nil
// suggester drafts offline from the shortlist itself.
func (s *Session) Draft(ctx context.Context, suggester domain.Suggester, query string, cands []domain.RankedCandidate) (domain.Suggestions, error) {
	if suggester == nil {
		suggester = summarizer.NewDrafter(nil, s.maxSentences)
	}
	out, err := suggester.Suggest(ctx, query, cands)
	if err != nil {
		s.logger.Warn("drafting failed", zap.Error(err))
		return domain.Suggestions{}, err
	}
	return out, nil
}
