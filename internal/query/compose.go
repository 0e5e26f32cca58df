// Package query builds the ranking query from a plan's structured fields.
package query

import (
	"strings"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

// Compose renders the plan's 6W2H fields followed by the pipe-joined
// descriptions of its Output and Outcome logic items, one labelled line
// each. Labels are always emitted, even for empty values, so the result
// has the same shape for every plan.
func Compose(p domain.Plan, items []domain.LogicItem) string {
	lines := []string{
		"Who: " + clean(p.Who),
		"Whom: " + clean(p.Whom),
		"What: " + clean(p.What),
		"Where: " + clean(p.Where),
		"When: " + clean(p.When),
		"Why: " + clean(p.Why),
		"How: " + clean(p.How),
		"How much: " + clean(p.HowMuch),
		"Outputs: " + descriptions(items, domain.LogicOutput),
		"Outcomes: " + descriptions(items, domain.LogicOutcome),
	}
	return strings.Join(lines, "\n")
}

func descriptions(items []domain.LogicItem, typ string) string {
	var out []string
	for _, it := range items {
		if !strings.EqualFold(strings.TrimSpace(it.Type), typ) {
			continue
		}
		out = append(out, clean(it.Description))
	}
	return strings.Join(out, " | ")
}

// clean trims and folds embedded line breaks so each field stays on its label's line.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
