package domain

// SixW2H holds the who/whom/what/where/when/why/how/how-much framing of a plan.
type SixW2H struct {
	Who     string `yaml:"who" json:"who"`
	Whom    string `yaml:"whom" json:"whom"`
	What    string `yaml:"what" json:"what"`
	Where   string `yaml:"where" json:"where"`
	When    string `yaml:"when" json:"when"`
	Why     string `yaml:"why" json:"why"`
	How     string `yaml:"how" json:"how"`
	HowMuch string `yaml:"how_much" json:"how_much"`
}

// Plan statuses.
const (
	PlanDraft     = "Draft"
	PlanPublished = "Published"
)

// Plan is the header record of an audit plan.
type Plan struct {
	PlanID      string `yaml:"plan_id" validate:"required"`
	Title       string `yaml:"plan_title"`
	ProgramName string `yaml:"program_name"`
	Objectives  string `yaml:"objectives"`
	Scope       string `yaml:"scope"`
	Assumptions string `yaml:"assumptions"`
	Status      string `yaml:"status" validate:"oneof=Draft Published"`
	SixW2H      `yaml:",inline"`
}

// Logic model item types.
const (
	LogicInput    = "Input"
	LogicActivity = "Activity"
	LogicOutput   = "Output"
	LogicOutcome  = "Outcome"
	LogicImpact   = "Impact"
)

// LogicItem is one row of the plan's logic model.
type LogicItem struct {
	ItemID      string `yaml:"item_id"`
	PlanID      string `yaml:"plan_id"`
	Type        string `yaml:"type" validate:"oneof=Input Activity Output Outcome Impact"`
	Description string `yaml:"description"`
	Metric      string `yaml:"metric"`
	Unit        string `yaml:"unit"`
	Target      string `yaml:"target"`
	Source      string `yaml:"source"`
}

// Method is a planned data-collection method.
type Method struct {
	MethodID    string `yaml:"method_id"`
	PlanID      string `yaml:"plan_id"`
	Type        string `yaml:"type" validate:"oneof=observe interview questionnaire document"`
	ToolRef     string `yaml:"tool_ref"`
	Sampling    string `yaml:"sampling"`
	Questions   string `yaml:"questions"`
	LinkedIssue string `yaml:"linked_issue"`
	DataSource  string `yaml:"data_source"`
	Frequency   string `yaml:"frequency"`
}

// KPI is a performance indicator attached to the plan.
type KPI struct {
	KPIID               string `yaml:"kpi_id"`
	PlanID              string `yaml:"plan_id"`
	Level               string `yaml:"level" validate:"oneof=output outcome"`
	Name                string `yaml:"name" validate:"required"`
	Formula             string `yaml:"formula"`
	Numerator           string `yaml:"numerator"`
	Denominator         string `yaml:"denominator"`
	Unit                string `yaml:"unit"`
	Baseline            string `yaml:"baseline"`
	Target              string `yaml:"target"`
	Frequency           string `yaml:"frequency"`
	DataSource          string `yaml:"data_source"`
	QualityRequirements string `yaml:"quality_requirements"`
}

// Risk is an audit risk with likelihood and impact on a 1-5 scale.
type Risk struct {
	RiskID      string `yaml:"risk_id"`
	PlanID      string `yaml:"plan_id"`
	Description string `yaml:"description"`
	Category    string `yaml:"category" validate:"oneof=policy org data process people"`
	Likelihood  int    `yaml:"likelihood" validate:"min=1,max=5"`
	Impact      int    `yaml:"impact" validate:"min=1,max=5"`
	Mitigation  string `yaml:"mitigation"`
	Hypothesis  string `yaml:"hypothesis"`
}

// Suggestions is the sectioned free-text output of a drafting collaborator.
type Suggestions struct {
	Issues   string
	Findings string
	Report   string
}
