package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

func TestCompose_EmptyPlanKeepsLabels(t *testing.T) {
	got := Compose(domain.Plan{}, nil)
	assert.Equal(t, strings.Join([]string{
		"Who: ", "Whom: ", "What: ", "Where: ", "When: ",
		"Why: ", "How: ", "How much: ", "Outputs: ", "Outcomes: ",
	}, "\n"), got)
}

func TestCompose_FieldsAndLogicItems(t *testing.T) {
	p := domain.Plan{SixW2H: domain.SixW2H{
		Who:     "Department of Highways",
		What:    "Road maintenance\nprogramme",
		HowMuch: " 120 million ",
	}}
	items := []domain.LogicItem{
		{Type: domain.LogicInput, Description: "budget"},
		{Type: domain.LogicOutput, Description: "Roads resurfaced"},
		{Type: "outcome", Description: "Fewer accidents"},
		{Type: domain.LogicOutput, Description: " Bridges inspected "},
		{Type: domain.LogicImpact, Description: "Safer travel"},
	}

	lines := strings.Split(Compose(p, items), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "Who: Department of Highways", lines[0])
	assert.Equal(t, "What: Road maintenance programme", lines[2])
	assert.Equal(t, "How much: 120 million", lines[7])
	assert.Equal(t, "Outputs: Roads resurfaced | Bridges inspected", lines[8])
	assert.Equal(t, "Outcomes: Fewer accidents", lines[9])
}

func TestCompose_Deterministic(t *testing.T) {
	p := domain.Plan{SixW2H: domain.SixW2H{Why: "late delivery"}}
	items := []domain.LogicItem{{Type: domain.LogicOutput, Description: "a"}, {Type: domain.LogicOutput, Description: "b"}}
	assert.Equal(t, Compose(p, items), Compose(p, items))
}
