package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/findings"
	"github.com/totohpy/pa-ai-auditor/internal/shortlist"
)

type fakeSession struct {
	results []domain.RankedCandidate
	err     error
	queries []string
	added   []domain.AuditIssue
	reloads int
	coll    *shortlist.Collection
	lib     *domain.FindingsLibrary
}

func newFake() *fakeSession {
	recs := []domain.FindingRecord{
		{FindingID: "F1", IssueTitle: "Procurement delay", IssueDetail: "Budget was fine. Procurement approvals were slow.", Severity: 5, Year: 2023},
		{FindingID: "F2", IssueTitle: "Budget underspending", Severity: 2, Year: 2020},
	}
	return &fakeSession{
		results: []domain.RankedCandidate{{Finding: recs[0], Score: 0.9, SimScore: 0.8}, {Finding: recs[1], Row: 1, Score: 0.3}},
		coll:    shortlist.NewCollection("PLN-1"),
		lib:     domain.NewFindingsLibrary(recs),
	}
}

func (f *fakeSession) Suggest(q string, _ int) ([]domain.RankedCandidate, error) {
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func (f *fakeSession) AddIssue(c *domain.RankedCandidate, ann shortlist.Annotations) (domain.AuditIssue, error) {
	if c == nil {
		return domain.AuditIssue{}, domain.ErrNoCandidate
	}
	is := f.coll.Add(*c, ann)
	f.added = append(f.added, is)
	return is, nil
}

func (f *fakeSession) Reload() findings.Result {
	f.reloads++
	return findings.Result{Library: f.lib}
}

func (f *fakeSession) Library() *domain.FindingsLibrary { return f.lib }
func (f *fakeSession) Issues() []domain.AuditIssue      { return f.coll.Issues() }

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModel_RankBrowseAdd(t *testing.T) {
	fs := newFake()
	m := New(fs, 8, "Who: Dept A\nWhat: procurement")
	assert.Equal(t, "Who: Dept A What: procurement", m.input.Value())

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, fs.queries, 1)
	assert.Len(t, m.results, 2)
	assert.Contains(t, m.renderCurrentResult(), "score=0.900")
	assert.Contains(t, m.renderCurrentResult(), "sim=0.800")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.cursor, "cursor wraps")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, fs.added, 1)
	assert.Equal(t, "F2", fs.added[0].SourceFindingID)
	assert.Contains(t, m.status, "ISS-001")
	assert.Contains(t, m.View(), "1 issues selected")
}

func TestModel_AddWithoutResults(t *testing.T) {
	m := update(t, New(newFake(), 8, ""), tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, m.status, domain.ErrNoCandidate.Error())
}

func TestModel_SuggestError(t *testing.T) {
	fs := newFake()
	fs.err = errors.New("findings library is empty")
	m := update(t, New(fs, 8, "x"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, strings.HasPrefix(m.status, "Error:"))
	assert.Empty(t, m.results)
}

func TestModel_ReloadReranks(t *testing.T) {
	fs := newFake()
	m := update(t, New(fs, 8, "procurement"), tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, ReloadMsg{})
	assert.Equal(t, 1, fs.reloads)
	assert.Len(t, fs.queries, 2)
	assert.Contains(t, m.status, "2 candidates")
}

func TestModel_Quit(t *testing.T) {
	_, cmd := New(newFake(), 8, "").Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHighlightBestSentence(t *testing.T) {
	out := highlightBestSentence("Budget was fine. Procurement approvals were slow.", "procurement approvals")
	assert.Contains(t, out, "Budget was fine.")
	assert.Contains(t, out, "Procurement approvals were slow.")
	assert.Equal(t, "", highlightBestSentence("", "x"))
}
