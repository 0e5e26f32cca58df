package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// FindingRecord is one historical audit finding after column normalisation.
// Text fields are never nil-like: absent cells are stored as "".
type FindingRecord struct {
	FindingID      string `json:"finding_id"`
	ReportID       string `json:"report_id,omitempty"`
	Year           int    `json:"year"`
	Unit           string `json:"unit"`
	Program        string `json:"program"`
	IssueTitle     string `json:"issue_title"`
	IssueDetail    string `json:"issue_detail"`
	CauseCategory  string `json:"cause_category"`
	CauseDetail    string `json:"cause_detail"`
	EvidenceType   string `json:"evidence_type,omitempty"`
	Recommendation string `json:"recommendation"`
	OutcomesImpact string `json:"outcomes_impact"`
	KPITouchpoints string `json:"kpi_touchpoints,omitempty"`
	Severity       int    `json:"severity"`
}

// IndexText is the document the lexical index sees for this finding:
// title, detail, cause detail and recommendation joined by single spaces.
func (f FindingRecord) IndexText() string {
	return strings.Join([]string{f.IssueTitle, f.IssueDetail, f.CauseDetail, f.Recommendation}, " ")
}

// FindingsLibrary is the ordered, read-only set of findings produced by one
// load event. Row order is the tie-break order for equal ranking scores.
type FindingsLibrary struct {
	Records     []FindingRecord
	Fingerprint string
}

// NewFindingsLibrary wraps records and computes the content fingerprint
// used to key derived artifacts such as the lexical index.
func NewFindingsLibrary(records []FindingRecord) *FindingsLibrary {
	return &FindingsLibrary{Records: records, Fingerprint: fingerprint(records)}
}

// Len returns the number of findings.
func (l *FindingsLibrary) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Records)
}

// Empty reports whether there is nothing to index.
func (l *FindingsLibrary) Empty() bool { return l.Len() == 0 }

// Corpus returns the per-finding index text in row order.
func (l *FindingsLibrary) Corpus() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.Records))
	for i, r := range l.Records {
		out[i] = r.IndexText()
	}
	return out
}

// YearRange returns the minimum and maximum year across the library.
func (l *FindingsLibrary) YearRange() (lo, hi int) {
	if l == nil {
		return 0, 0
	}
	for i, r := range l.Records {
		if i == 0 || r.Year < lo {
			lo = r.Year
		}
		if i == 0 || r.Year > hi {
			hi = r.Year
		}
	}
	return lo, hi
}

func fingerprint(records []FindingRecord) string {
	h := sha256.New()
	for _, r := range records {
		for _, s := range []string{
			r.FindingID, r.ReportID, strconv.Itoa(r.Year), r.Unit, r.Program,
			r.IssueTitle, r.IssueDetail, r.CauseCategory, r.CauseDetail,
			r.EvidenceType, r.Recommendation, r.OutcomesImpact, r.KPITouchpoints,
			strconv.Itoa(r.Severity),
		} {
			h.Write([]byte(s))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// RankedCandidate is a finding scored against one query.
type RankedCandidate struct {
	Finding  FindingRecord `json:"finding"`
	Row      int           `json:"row"`
	SimScore float64       `json:"sim_score"`
	YearNorm float64       `json:"year_norm"`
	SevNorm  float64       `json:"sev_norm"`
	Score    float64       `json:"score"`
}

// AuditIssue is a plan artifact created from a selected candidate.
type AuditIssue struct {
	IssueID         string `json:"issue_id" yaml:"issue_id"`
	PlanID          string `json:"plan_id" yaml:"plan_id"`
	Title           string `json:"title" yaml:"title"`
	Rationale       string `json:"rationale" yaml:"rationale"`
	LinkedKPI       string `json:"linked_kpi" yaml:"linked_kpi"`
	ProposedMethods string `json:"proposed_methods" yaml:"proposed_methods"`
	SourceFindingID string `json:"source_finding_id" yaml:"source_finding_id"`
	IssueDetail     string `json:"issue_detail" yaml:"issue_detail"`
	Recommendation  string `json:"recommendation" yaml:"recommendation"`
}
