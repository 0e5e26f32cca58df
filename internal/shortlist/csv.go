package shortlist

import (
	"fmt"
	"io"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/tabular"
)

// Columns is the exported issue schema, in order.
var Columns = []string{
	"issue_id", "plan_id", "title", "rationale", "linked_kpi",
	"proposed_methods", "source_finding_id", "issue_detail", "recommendation",
}

// WriteCSV exports issues as UTF-8-with-BOM CSV.
func WriteCSV(w io.Writer, issues []domain.AuditIssue) error {
	rows := make([][]string, len(issues))
	for i, is := range issues {
		rows[i] = []string{
			is.IssueID, is.PlanID, is.Title, is.Rationale, is.LinkedKPI,
			is.ProposedMethods, is.SourceFindingID, is.IssueDetail, is.Recommendation,
		}
	}
	if err := tabular.WriteCSV(w, Columns, rows); err != nil {
		return fmt.Errorf("write issues: %w", err)
	}
	return nil
}

// ReadCSV parses an issue export. Missing columns read as empty strings.
func ReadCSV(r io.Reader) ([]domain.AuditIssue, error) {
	t, err := tabular.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read issues: %w", err)
	}
	out := make([]domain.AuditIssue, t.Len())
	for i := range out {
		get := func(col string) string {
			v, _ := t.Cell(i, col)
			return v
		}
		out[i] = domain.AuditIssue{
			IssueID:         get("issue_id"),
			PlanID:          get("plan_id"),
			Title:           get("title"),
			Rationale:       get("rationale"),
			LinkedKPI:       get("linked_kpi"),
			ProposedMethods: get("proposed_methods"),
			SourceFindingID: get("source_finding_id"),
			IssueDetail:     get("issue_detail"),
			Recommendation:  get("recommendation"),
		}
	}
	return out, nil
}
