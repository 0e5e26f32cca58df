package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

func TestSentences(t *testing.T) {
	got := Sentences("Contracts were late. Why? Approvals took weeks\nno tail punctuation")
	assert.Equal(t, []string{"Contracts were late.", "Why?", "Approvals took weeks", "no tail punctuation"}, got)
	assert.Empty(t, Sentences("   "))
}

func TestBestSentence(t *testing.T) {
	s := []string{"Budget was underspent.", "Procurement was delayed by approvals.", "Staff turnover was high."}
	assert.Equal(t, 1, BestSentence(s, "procurement delay approvals"))
	assert.Equal(t, -1, BestSentence(s, ""))
	assert.Equal(t, -1, BestSentence(s, "hospital"))
}

func TestSummarize_KeepsOriginalOrder(t *testing.T) {
	text := "Procurement was delayed. Procurement approvals were slow and procurement staff were few. The weather was fine. Procurement rules changed."
	got, err := NewFrequencySummarizer().Summarize(text, 2)
	require.NoError(t, err)

	parts := Sentences(got)
	require.Len(t, parts, 2)
	assert.NotContains(t, got, "weather")
	assert.Less(t, strings.Index(text, parts[0]), strings.Index(text, parts[1]))
}

func TestSummarize_ShortText(t *testing.T) {
	got, err := NewFrequencySummarizer().Summarize("Only one sentence here", 0)
	require.NoError(t, err)
	assert.Equal(t, "Only one sentence here", got)

	got, err = NewFrequencySummarizer().Summarize("", 3)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestLikelihood(t *testing.T) {
	assert.Equal(t, "high", Likelihood(0.8))
	assert.Equal(t, "medium", Likelihood(0.45))
	assert.Equal(t, "low", Likelihood(0.1))
}

func TestDrafter_Suggest(t *testing.T) {
	cands := []domain.RankedCandidate{
		{Finding: domain.FindingRecord{FindingID: "F1", IssueTitle: "Procurement delay", CauseDetail: "slow approvals", IssueDetail: "Contracts were signed late", Recommendation: "Streamline approvals"}, Score: 0.7},
		{Finding: domain.FindingRecord{FindingID: "F2", IssueTitle: "Budget underspending"}, Score: 0.2},
	}
	got, err := NewDrafter(nil, 3).Suggest(context.Background(), "procurement", cands)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.Issues, HeadingIssues))
	assert.Contains(t, got.Issues, "- Procurement delay (slow approvals)")
	assert.Contains(t, got.Issues, "- Budget underspending (-)")
	assert.Contains(t, got.Findings, "F1: Procurement delay, likelihood high")
	assert.Contains(t, got.Findings, "F2: Budget underspending, likelihood low")
	assert.True(t, strings.HasPrefix(got.Report, HeadingReport))
	assert.Contains(t, got.Report, "Contracts were signed late.")
}

type failingSummarizer struct{}

func (failingSummarizer) Summarize(string, int) (string, error) { return "", errors.New("boom") }

func TestDrafter_SummarizerError(t *testing.T) {
	_, err := NewDrafter(failingSummarizer{}, 3).Suggest(context.Background(), "q", nil)
	assert.ErrorContains(t, err, "boom")
}
