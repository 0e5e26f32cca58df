package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/tabular"
)

func newWorkbook() *Workbook {
	return New(time.Date(2025, 3, 7, 14, 5, 9, 0, time.UTC))
}

func TestNew(t *testing.T) {
	wb := newWorkbook()
	assert.Equal(t, "PLN-250307-140509", wb.Plan.PlanID)
	assert.Equal(t, domain.PlanDraft, wb.Plan.Status)
}

func TestAddLogicItem_IDsAndValidation(t *testing.T) {
	wb := newWorkbook()
	a, err := wb.AddLogicItem(domain.LogicItem{Type: domain.LogicOutput, Description: "roads"})
	require.NoError(t, err)
	b, err := wb.AddLogicItem(domain.LogicItem{Type: domain.LogicOutcome, Description: "safety"})
	require.NoError(t, err)

	assert.Equal(t, "LG-001", a.ItemID)
	assert.Equal(t, "LG-002", b.ItemID)
	assert.Equal(t, wb.Plan.PlanID, a.PlanID)

	_, err = wb.AddLogicItem(domain.LogicItem{Type: "Wish"})
	assert.Error(t, err)
	assert.Len(t, wb.LogicItems, 2)
}

func TestAddRisk_Bounds(t *testing.T) {
	wb := newWorkbook()
	_, err := wb.AddRisk(domain.Risk{Category: "data", Likelihood: 6, Impact: 2})
	assert.Error(t, err)

	r, err := wb.AddRisk(domain.Risk{Category: "data", Likelihood: 3, Impact: 2})
	require.NoError(t, err)
	assert.Equal(t, "RSK-001", r.RiskID)
}

func TestAdd_FromFields(t *testing.T) {
	wb := newWorkbook()

	id, err := wb.Add("kpi", map[string]string{"level": "outcome", "name": "On-time delivery", "target": "95"})
	require.NoError(t, err)
	assert.Equal(t, "KPI-001", id)
	assert.Equal(t, "95", wb.KPIs[0].Target)

	id, err = wb.Add("risk", map[string]string{"category": "process", "likelihood": "4", "impact": "5"})
	require.NoError(t, err)
	assert.Equal(t, "RSK-001", id)
	assert.Equal(t, 4, wb.Risks[0].Likelihood)

	id, err = wb.Add("method", map[string]string{"type": "interview", "questions": "Who approves?"})
	require.NoError(t, err)
	assert.Equal(t, "MT-001", id)

	_, err = wb.Add("risk", map[string]string{"category": "process", "likelihood": "high", "impact": "1"})
	assert.Error(t, err)

	_, err = wb.Add("logic", map[string]string{"type": "Output", "colour": "red"})
	assert.ErrorContains(t, err, "colour")

	_, err = wb.Add("budget", nil)
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func TestSaveLoad(t *testing.T) {
	wb := newWorkbook()
	wb.Plan.Title = "Road maintenance audit"
	wb.Plan.Who = "Department of Highways"
	_, err := wb.AddLogicItem(domain.LogicItem{Type: domain.LogicOutput, Description: "roads"})
	require.NoError(t, err)
	wb.Issues = []domain.AuditIssue{{IssueID: "ISS-001", Title: "Procurement delay"}}

	path := filepath.Join(t.TempDir(), "plans", "plan.yaml")
	require.NoError(t, wb.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, wb, got)
	assert.Equal(t, wb.Query(), got.Query())
}

func TestLoad_InvalidStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plan:\n  plan_id: PLN-1\n  status: Archived\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestQuery_UsesPlanFields(t *testing.T) {
	wb := newWorkbook()
	wb.Plan.What = "bridge inspections"
	_, err := wb.AddLogicItem(domain.LogicItem{Type: domain.LogicOutcome, Description: "fewer closures"})
	require.NoError(t, err)
	assert.Contains(t, wb.Query(), "What: bridge inspections")
	assert.Contains(t, wb.Query(), "Outcomes: fewer closures")
}

func TestExportCSV(t *testing.T) {
	wb := newWorkbook()
	wb.Plan.Who = "Dept A"
	_, err := wb.AddKPI(domain.KPI{Level: "output", Name: "Roads resurfaced"})
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := wb.ExportCSV(dir)
	require.NoError(t, err)
	assert.Len(t, paths, 6)

	f, err := os.Open(filepath.Join(dir, "plan.csv"))
	require.NoError(t, err)
	defer f.Close()
	tbl, err := tabular.ReadCSV(f)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	v, ok := tbl.Cell(0, "who")
	assert.True(t, ok, "inline 6W2H fields become plan columns")
	assert.Equal(t, "Dept A", v)
	v, _ = tbl.Cell(0, "plan_id")
	assert.Equal(t, "PLN-250307-140509", v)

	k, err := os.Open(filepath.Join(dir, "kpis.csv"))
	require.NoError(t, err)
	defer k.Close()
	kt, err := tabular.ReadCSV(k)
	require.NoError(t, err)
	v, _ = kt.Cell(0, "kpi_id")
	assert.Equal(t, "KPI-001", v)

	r, err := os.Open(filepath.Join(dir, "risks.csv"))
	require.NoError(t, err)
	defer r.Close()
	rt, err := tabular.ReadCSV(r)
	require.NoError(t, err)
	assert.Equal(t, 0, rt.Len())
	assert.True(t, rt.Has("likelihood"))
}

func TestSet_MergesFields(t *testing.T) {
	wb := newWorkbook()
	require.NoError(t, wb.Set(map[string]string{"plan_title": "Roads", "who": "Dept A"}))
	require.NoError(t, wb.Set(map[string]string{"How_Much": "5 million"}))

	assert.Equal(t, "PLN-250307-140509", wb.Plan.PlanID)
	assert.Equal(t, "Roads", wb.Plan.Title)
	assert.Equal(t, "Dept A", wb.Plan.Who)
	assert.Equal(t, "5 million", wb.Plan.HowMuch)

	assert.Error(t, wb.Set(map[string]string{"status": "Archived"}))
	assert.Error(t, wb.Set(map[string]string{"plan_id": "X"}))
	assert.Error(t, wb.Set(map[string]string{"budget": "1"}))
	assert.Equal(t, domain.PlanDraft, wb.Plan.Status)
}

func TestSet_TextColumnsTakenLiterally(t *testing.T) {
	wb := newWorkbook()
	require.NoError(t, wb.Set(map[string]string{"who": "null", "whom": "~", "when": "2024"}))
	assert.Equal(t, "null", wb.Plan.Who)
	assert.Equal(t, "~", wb.Plan.Whom)
	assert.Equal(t, "2024", wb.Plan.When)

	id, err := wb.Add(TableLogic, map[string]string{"type": "Output", "description": "null"})
	require.NoError(t, err)
	require.Len(t, wb.LogicItems, 1)
	assert.Equal(t, id, wb.LogicItems[0].ItemID)
	assert.Equal(t, "null", wb.LogicItems[0].Description)
}
