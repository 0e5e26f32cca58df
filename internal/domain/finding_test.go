package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindingRecord_IndexText(t *testing.T) {
	f := FindingRecord{
		IssueTitle:     "Procurement delay",
		IssueDetail:    "Contracts signed late",
		CauseDetail:    "",
		Recommendation: "Plan earlier",
		Program:        "not indexed",
	}
	assert.Equal(t, "Procurement delay Contracts signed late  Plan earlier", f.IndexText())
}

func TestFindingsLibrary_Fingerprint(t *testing.T) {
	a := NewFindingsLibrary([]FindingRecord{{FindingID: "F1", Severity: 3}})
	b := NewFindingsLibrary([]FindingRecord{{FindingID: "F1", Severity: 3}})
	c := NewFindingsLibrary([]FindingRecord{{FindingID: "F1", Severity: 4}})

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestFindingsLibrary_YearRange(t *testing.T) {
	lib := NewFindingsLibrary([]FindingRecord{{Year: 2021}, {Year: 2019}, {Year: 2024}})
	lo, hi := lib.YearRange()
	assert.Equal(t, 2019, lo)
	assert.Equal(t, 2024, hi)

	var empty *FindingsLibrary
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Len())
}
