package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

// Section headings shared with the language-model drafter's output format.
const (
	HeadingIssues   = "##### Audit issues to prioritise"
	HeadingFindings = "##### Expected findings (with likelihood)"
	HeadingReport   = "##### Draft report (preview)"
)

// Drafter produces suggestions from the shortlist alone. It satisfies
// domain.Suggester and stands in when no language model is configured.
type Drafter struct {
	summarizer   domain.Summarizer
	maxSentences int
}

// NewDrafter wraps s. A nil s uses a FrequencySummarizer.
func NewDrafter(s domain.Summarizer, maxSentences int) *Drafter {
	if s == nil {
		s = NewFrequencySummarizer()
	}
	return &Drafter{summarizer: s, maxSentences: maxSentences}
}

// Suggest lists the candidates as issues and expected findings and
// summarises their detail text as the report preview.
func (d *Drafter) Suggest(_ context.Context, _ string, cands []domain.RankedCandidate) (domain.Suggestions, error) {
	var issues, findings, detail strings.Builder
	issues.WriteString(HeadingIssues + "\n")
	findings.WriteString(HeadingFindings + "\n")
	for _, c := range cands {
		f := c.Finding
		fmt.Fprintf(&issues, "- %s (%s)\n", orDash(f.IssueTitle), orDash(f.CauseDetail))
		fmt.Fprintf(&findings, "- %s: %s, likelihood %s\n", orDash(f.FindingID), orDash(f.IssueTitle), Likelihood(c.Score))
		for _, s := range []string{f.IssueDetail, f.Recommendation} {
			if s = strings.TrimSpace(s); s != "" {
				detail.WriteString(terminate(s))
				detail.WriteString(" ")
			}
		}
	}

	summary, err := d.summarizer.Summarize(detail.String(), d.maxSentences)
	if err != nil {
		return domain.Suggestions{}, fmt.Errorf("summarize shortlist: %w", err)
	}
	report := HeadingReport + "\n" + summary
	return domain.Suggestions{
		Issues:   strings.TrimRight(issues.String(), "\n"),
		Findings: strings.TrimRight(findings.String(), "\n"),
		Report:   strings.TrimRight(report, "\n"),
	}, nil
}

// Likelihood buckets a composite score into high, medium or low.
func Likelihood(score float64) string {
	switch {
	case score >= 0.6:
		return "high"
	case score >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

func terminate(s string) string {
	if strings.ContainsAny(s[len(s)-1:], ".!?") {
		return s
	}
	return s + "."
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}
