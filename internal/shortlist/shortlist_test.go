package shortlist

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

func candidate(id, title string) domain.RankedCandidate {
	return domain.RankedCandidate{Finding: domain.FindingRecord{
		FindingID:      id,
		Year:           2022,
		Unit:           "Dept A",
		IssueTitle:     title,
		IssueDetail:    "detail of " + title,
		Recommendation: "fix " + title,
	}}
}

func TestAdd_SequentialIDs(t *testing.T) {
	c := NewCollection("PLN-1")
	first := c.Add(candidate("F1", "Procurement delay"), Annotations{LinkedKPI: "KPI-001"})
	second := c.Add(candidate("F2", "Budget underspending"), Annotations{Rationale: "recurring"})

	assert.Equal(t, "ISS-001", first.IssueID)
	assert.Equal(t, "ISS-002", second.IssueID)
	assert.Equal(t, "PLN-1", first.PlanID)
	assert.Equal(t, "F1", first.SourceFindingID)
	assert.Equal(t, "detail of Procurement delay", first.IssueDetail)
	assert.Equal(t, "fix Procurement delay", first.Recommendation)
	assert.Equal(t, "KPI-001", first.LinkedKPI)
	assert.Contains(t, first.Rationale, "2022")
	assert.Contains(t, first.Rationale, "Dept A")
	assert.Equal(t, "recurring", second.Rationale)
	assert.Equal(t, 2, c.Len())
}

func TestAdd_ToleratesManualIDs(t *testing.T) {
	c := NewCollection("PLN-1",
		domain.AuditIssue{IssueID: "ISS-001"},
		domain.AuditIssue{IssueID: "ISS-003"},
		domain.AuditIssue{IssueID: "ISS-XYZ"},
	)
	got := c.Add(candidate("F9", "Late reporting"), Annotations{})
	assert.Equal(t, "ISS-004", got.IssueID)
}

func TestDefaultRationale_MissingYearAndUnit(t *testing.T) {
	r := DefaultRationale(domain.FindingRecord{})
	assert.Contains(t, r, "unknown year")
	assert.Contains(t, r, "unnamed unit")
}

func TestIssues_ReturnsCopy(t *testing.T) {
	c := NewCollection("PLN-1")
	c.Add(candidate("F1", "A"), Annotations{})
	got := c.Issues()
	got[0].Title = "changed"
	assert.Equal(t, "A", c.Issues()[0].Title)
}

func TestCSV_RoundTrip(t *testing.T) {
	c := NewCollection("PLN-250101-090000")
	c.Add(candidate("F1", "Procurement delay, late \"signing\""), Annotations{ProposedMethods: "interview\ndocument"})
	c.Add(candidate("F2", "งบประมาณเบิกจ่ายล่าช้า"), Annotations{})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, c.Issues()))
	assert.True(t, strings.HasPrefix(buf.String(), "\uFEFFissue_id,plan_id,title,"))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Issues(), back)
}

func TestCSV_RoundTripCarriageReturns(t *testing.T) {
	c := NewCollection("PLN-250101-090000")
	is := c.Add(candidate("F1", "Procurement delay"), Annotations{
		Rationale:       "line one\r\nline two",
		ProposedMethods: "interview\rdocument",
	})
	assert.Equal(t, "line one\nline two", is.Rationale)
	assert.Equal(t, "interview\ndocument", is.ProposedMethods)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, c.Issues()))
	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Issues(), back)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}
