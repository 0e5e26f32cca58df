// Package shortlist turns selected ranked candidates into audit issues.
package shortlist

import (
	"fmt"
	"strings"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

// IssuePrefix is the id prefix of audit issues.
const IssuePrefix = "ISS"

// Annotations are the auditor-supplied fields of a new issue.
// An empty Rationale is replaced by DefaultRationale.
type Annotations struct {
	Rationale       string
	LinkedKPI       string
	ProposedMethods string
}

// Collection is the ordered set of audit issues of one plan session.
// Issues are only ever appended.
type Collection struct {
	planID string
	issues []domain.AuditIssue
}

// NewCollection starts a collection for planID, optionally resuming from
// previously exported issues.
func NewCollection(planID string, existing ...domain.AuditIssue) *Collection {
	c := &Collection{planID: planID}
	c.issues = append(c.issues, existing...)
	return c
}

// PlanID returns the plan the collection belongs to.
func (c *Collection) PlanID() string { return c.planID }

// SetPlanID changes the plan id stamped on issues added from now on.
func (c *Collection) SetPlanID(id string) { c.planID = id }

// lineBreaks folds CRLF and lone CR to LF. CSV readers drop the CR of a
// quoted CRLF, so issues hold plain LF to survive an export round trip.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Add materialises cand as a new issue with the next free ISS id.
func (c *Collection) Add(cand domain.RankedCandidate, ann Annotations) domain.AuditIssue {
	f := cand.Finding
	rationale := strings.TrimSpace(ann.Rationale)
	if rationale == "" {
		rationale = DefaultRationale(f)
	}
	issue := domain.AuditIssue{
		IssueID:         domain.NextID(IssuePrefix, c.ids()),
		PlanID:          c.planID,
		Title:           lineBreaks.Replace(f.IssueTitle),
		Rationale:       lineBreaks.Replace(rationale),
		LinkedKPI:       lineBreaks.Replace(strings.TrimSpace(ann.LinkedKPI)),
		ProposedMethods: lineBreaks.Replace(strings.TrimSpace(ann.ProposedMethods)),
		SourceFindingID: f.FindingID,
		IssueDetail:     lineBreaks.Replace(f.IssueDetail),
		Recommendation:  lineBreaks.Replace(f.Recommendation),
	}
	c.issues = append(c.issues, issue)
	return issue
}

// Issues returns a copy of the issues in insertion order.
func (c *Collection) Issues() []domain.AuditIssue {
	out := make([]domain.AuditIssue, len(c.issues))
	copy(out, c.issues)
	return out
}

// Len returns the number of issues.
func (c *Collection) Len() int { return len(c.issues) }

func (c *Collection) ids() []string {
	ids := make([]string, len(c.issues))
	for i, is := range c.issues {
		ids[i] = is.IssueID
	}
	return ids
}

// DefaultRationale is the pre-filled rationale pointing back at the source finding.
func DefaultRationale(f domain.FindingRecord) string {
	year := "unknown year"
	if f.Year != 0 {
		year = fmt.Sprint(f.Year)
	}
	unit := strings.TrimSpace(f.Unit)
	if unit == "" {
		unit = "an unnamed unit"
	}
	return fmt.Sprintf("Similar finding reported in %s at %s; check whether the issue recurs.", year, unit)
}
