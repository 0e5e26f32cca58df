package findings

import "github.com/totohpy/pa-ai-auditor/internal/tabular"

// Column names of the findings library.
const (
	ColFindingID        = "finding_id"
	ColReportID         = "report_id"
	ColYear             = "year"
	ColUnit             = "unit"
	ColProgram          = "program"
	ColIssueTitle       = "issue_title"
	ColIssueDetail      = "issue_detail"
	ColCauseCategory    = "cause_category"
	ColCauseDetail      = "cause_detail"
	ColEvidenceType     = "evidence_type"
	ColRecommendation   = "recommendation"
	ColOutcomesAffected = "outcomes_affected"
	ColOutcomesImpact   = "outcomes_impact"
	ColKPITouchpoints   = "kpi_touchpoints"
	ColSeverity         = "severity"
)

// TemplateSheet is the worksheet name used by the import template.
const TemplateSheet = "Data"

// Columns is the import template schema in column order.
var Columns = []tabular.Column{
	{Name: ColFindingID, Description: "Finding identifier, e.g. F-2023-014"},
	{Name: ColReportID, Description: "Audit report the finding was published in"},
	{Name: ColYear, Description: "Report year (integer)"},
	{Name: ColUnit, Description: "Audited organisation"},
	{Name: ColProgram, Description: "Programme or project audited"},
	{Name: ColIssueTitle, Description: "Short title of the finding"},
	{Name: ColIssueDetail, Description: "What was found"},
	{Name: ColCauseCategory, Description: "Cause group: policy, org, data, process, people"},
	{Name: ColCauseDetail, Description: "Why it happened"},
	{Name: ColEvidenceType, Description: "Kind of evidence collected"},
	{Name: ColRecommendation, Description: "Recommendation issued"},
	{Name: ColOutcomesAffected, Description: "Outcomes or impacts affected by the finding"},
	{Name: ColKPITouchpoints, Description: "KPIs the finding touches"},
	{Name: ColSeverity, Description: "Severity 1 (low) to 5 (high); blank means 3"},
}
