package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/summarizer"
)

const sixW2HPrompt = `From the text below, summarise and separate the information into 6W2H: Who, Whom, What, Where, When, Why, How and How much, as clear key-value lines. Answer in the language of the text.
Text:
---
%s
---
Required format:
Who: [text]
Whom: [text]
What: [text]
Where: [text]
When: [text]
Why: [text]
How: [text]
How Much: [text]
`

const suggestPrompt = `Role: you are an assistant to performance auditors.
Task: from the audit topic and the related past findings below
- recommend the audit issues that deserve attention now, in a performance audit context
- predict the findings likely to arise, each with a likelihood (high, medium, low), using the past findings as a guide
- write a draft report of about 100 words in concise language
Answer in the language of the audit topic.

Audit topic:
---
%s
---

Related past findings:
---
%s
---

Required format:
%s
[issues]

%s
[findings]

%s
[summary]
`

// ExtractSixW2H asks the model to split text into the eight plan fields.
func (c *Client) ExtractSixW2H(ctx context.Context, text string) (domain.SixW2H, error) {
	out, err := c.complete(ctx, fmt.Sprintf(sixW2HPrompt, text))
	if err != nil {
		return domain.SixW2H{}, fmt.Errorf("extract 6W2H: %w", err)
	}
	return ParseSixW2H(out), nil
}

// Suggest drafts issues, expected findings and a report preview.
func (c *Client) Suggest(ctx context.Context, query string, cands []domain.RankedCandidate) (domain.Suggestions, error) {
	prompt := fmt.Sprintf(suggestPrompt, query, candidateTable(cands),
		summarizer.HeadingIssues, summarizer.HeadingFindings, summarizer.HeadingReport)
	out, err := c.complete(ctx, prompt)
	if err != nil {
		return domain.Suggestions{}, fmt.Errorf("draft suggestions: %w", err)
	}
	return ParseSections(out), nil
}

// ParseSixW2H reads "Key: value" lines. Keys are matched case-insensitively
// with spaces folded to underscores; markdown bullets and bold markers are
// ignored. Unknown keys are skipped.
func ParseSixW2H(text string) domain.SixW2H {
	var w domain.SixW2H
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.Trim(strings.TrimSpace(key), "-*# ")
		key = strings.ReplaceAll(strings.ToLower(key), " ", "_")
		value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), "*"))
		switch key {
		case "who":
			w.Who = value
		case "whom":
			w.Whom = value
		case "what":
			w.What = value
		case "where":
			w.Where = value
		case "when":
			w.When = value
		case "why":
			w.Why = value
		case "how":
			w.How = value
		case "how_much":
			w.HowMuch = value
		}
	}
	return w
}

// ParseSections splits a response on "#####" markers into the three
// suggestion sections, in order. Each section keeps its marker; missing
// sections are empty.
func ParseSections(text string) domain.Suggestions {
	parts := strings.Split(text, "#####")
	section := func(i int) string {
		if i >= len(parts) {
			return ""
		}
		return strings.TrimSpace("#####" + parts[i])
	}
	return domain.Suggestions{Issues: section(1), Findings: section(2), Report: section(3)}
}

func candidateTable(cands []domain.RankedCandidate) string {
	var b strings.Builder
	for _, c := range cands {
		f := c.Finding
		fmt.Fprintf(&b, "- [%s] %s (year %d, unit %s, severity %d, score %.3f)\n  detail: %s\n  recommendation: %s\n",
			f.FindingID, f.IssueTitle, f.Year, f.Unit, f.Severity, c.Score, f.IssueDetail, f.Recommendation)
	}
	return b.String()
}
