// Package findings loads the historical findings library from the default
// dataset and an optional upload, memoising the result by input content.
package findings

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/logging"
	"github.com/totohpy/pa-ai-auditor/internal/tabular"
)

// Source is an uploaded tabular file.
type Source struct {
	Name string
	Data []byte
}

// ReadSource reads a file from disk into a Source.
func ReadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Source{Name: filepath.Base(path), Data: data}, nil
}

// Options configures where the default library lives and which worksheet is read.
type Options struct {
	DefaultPath string
	// Sheet is the worksheet read from workbooks when EnforceSheet is set.
	Sheet        string
	EnforceSheet bool
}

// Result is the outcome of one load. The loader never fails: unreadable
// sources are skipped and reported in Warnings.
type Result struct {
	Library  *domain.FindingsLibrary
	Warnings []error
	// Cached is true when the result was served from the memo cache.
	Cached bool
}

// Loader builds FindingsLibrary values. It is safe for concurrent use.
type Loader struct {
	opts   Options
	memo   *cache.Cache
	logger *zap.Logger
}

// NewLoader creates a loader with an empty memo cache.
func NewLoader(opts Options, logger *zap.Logger) *Loader {
	return &Loader{
		opts:   opts,
		memo:   cache.New(cache.NoExpiration, 0),
		logger: logging.OrNop(logger).Named("findings"),
	}
}

// Load reads the default dataset (when present) and appends the rows of
// upload (when non-nil). An identical combination of inputs is parsed once.
func (l *Loader) Load(upload *Source) Result {
	var defaultSrc *Source
	if l.opts.DefaultPath != "" {
		src, err := ReadSource(l.opts.DefaultPath)
		switch {
		case err == nil:
			defaultSrc = src
		case errors.Is(err, os.ErrNotExist):
			l.logger.Debug("no default findings library", zap.String("path", l.opts.DefaultPath))
		default:
			l.logger.Warn("default findings library unreadable", zap.String("path", l.opts.DefaultPath), zap.Error(err))
		}
	}

	key := memoKey(defaultSrc, upload)
	if v, ok := l.memo.Get(key); ok {
		res := v.(Result)
		res.Cached = true
		return res
	}

	var (
		recs     []domain.FindingRecord
		warnings []error
	)
	for _, src := range []*Source{defaultSrc, upload} {
		if src == nil {
			continue
		}
		got, warns := l.parse(src)
		recs = append(recs, got...)
		warnings = append(warnings, warns...)
	}

	res := Result{Library: domain.NewFindingsLibrary(recs), Warnings: warnings}
	l.memo.Set(key, res, cache.NoExpiration)
	l.logger.Info("findings loaded",
		zap.Int("rows", len(recs)),
		zap.Int("warnings", len(warnings)),
		zap.String("fingerprint", res.Library.Fingerprint))
	return res
}

// Forget drops every memoised result.
func (l *Loader) Forget() { l.memo.Flush() }

func (l *Loader) parse(src *Source) ([]domain.FindingRecord, []error) {
	sheet := ""
	if l.opts.EnforceSheet {
		sheet = l.opts.Sheet
	}
	tbl, used, err := tabular.Read(src.Name, src.Data, sheet)
	if err != nil {
		err = fmt.Errorf("parse %s: %w", src.Name, err)
		l.logger.Warn("findings source skipped", zap.Error(err))
		return nil, []error{err}
	}
	var warnings []error
	if sheet != "" && used != "" && used != sheet {
		w := fmt.Errorf("%s: worksheet %q not found, read %q instead", src.Name, sheet, used)
		l.logger.Warn("worksheet fallback", zap.Error(w))
		warnings = append(warnings, w)
	}
	return records(tbl), warnings
}

func memoKey(sources ...*Source) string {
	h := sha256.New()
	for _, src := range sources {
		if src == nil {
			h.Write([]byte("-\x00"))
			continue
		}
		sum := sha256.Sum256(src.Data)
		h.Write([]byte(src.Name))
		h.Write([]byte{0})
		h.Write(sum[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
