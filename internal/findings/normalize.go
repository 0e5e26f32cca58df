package findings

import (
	"math"
	"strconv"
	"strings"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/tabular"
)

const (
	defaultYear     = 0
	defaultSeverity = 3
	minSeverity     = 1
	maxSeverity     = 5
)

// records converts a parsed table into findings. Missing columns and blank
// cells become "" for text, 0 for year and 3 for severity.
func records(t *tabular.Table) []domain.FindingRecord {
	out := make([]domain.FindingRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		text := func(col string) string {
			v, _ := t.Cell(i, col)
			return v
		}
		outcomes := text(ColOutcomesImpact)
		if !t.Has(ColOutcomesImpact) {
			outcomes = text(ColOutcomesAffected)
		}
		out = append(out, domain.FindingRecord{
			FindingID:      strings.TrimSpace(text(ColFindingID)),
			ReportID:       strings.TrimSpace(text(ColReportID)),
			Year:           coerceYear(text(ColYear)),
			Unit:           text(ColUnit),
			Program:        text(ColProgram),
			IssueTitle:     text(ColIssueTitle),
			IssueDetail:    text(ColIssueDetail),
			CauseCategory:  text(ColCauseCategory),
			CauseDetail:    text(ColCauseDetail),
			EvidenceType:   text(ColEvidenceType),
			Recommendation: text(ColRecommendation),
			OutcomesImpact: outcomes,
			KPITouchpoints: text(ColKPITouchpoints),
			Severity:       coerceSeverity(text(ColSeverity)),
		})
	}
	return out
}

// coerceYear parses a year; anything non-numeric yields 0.
func coerceYear(raw string) int {
	v, ok := parseNumber(raw)
	if !ok || math.Abs(v) > math.MaxInt32 {
		return defaultYear
	}
	return int(v)
}

// coerceSeverity parses a severity, defaulting to 3 and clamping to [1,5].
func coerceSeverity(raw string) int {
	v, ok := parseNumber(raw)
	if !ok {
		return defaultSeverity
	}
	v = math.Max(minSeverity, math.Min(maxSeverity, v))
	return int(v)
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
