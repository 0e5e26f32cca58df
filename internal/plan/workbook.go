// Package plan holds the audit plan being drafted: its header, logic
// model, data-collection methods, KPIs, risks and selected issues.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/query"
)

// Table names accepted by Add.
const (
	TableLogic  = "logic"
	TableMethod = "method"
	TableKPI    = "kpi"
	TableRisk   = "risk"
)

// Id prefixes per table.
const (
	LogicPrefix  = "LG"
	MethodPrefix = "MT"
	KPIPrefix    = "KPI"
	RiskPrefix   = "RSK"
)

// ErrUnknownTable is returned by Add for a table name it does not know.
var ErrUnknownTable = errors.New("unknown plan table")

var validate = validator.New()

// Workbook is the full plan state persisted between sessions.
type Workbook struct {
	Plan       domain.Plan         `yaml:"plan"`
	LogicItems []domain.LogicItem  `yaml:"logic_items,omitempty"`
	Methods    []domain.Method     `yaml:"methods,omitempty"`
	KPIs       []domain.KPI        `yaml:"kpis,omitempty"`
	Risks      []domain.Risk       `yaml:"risks,omitempty"`
	Issues     []domain.AuditIssue `yaml:"issues,omitempty"`
}

// New starts a draft plan whose id encodes the creation time.
func New(now time.Time) *Workbook {
	return &Workbook{Plan: domain.Plan{
		PlanID: "PLN-" + now.Format("060102-150405"),
		Status: domain.PlanDraft,
	}}
}

// Load reads a workbook from a YAML file.
func Load(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var wb Workbook
	if err := yaml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if wb.Plan.Status == "" {
		wb.Plan.Status = domain.PlanDraft
	}
	if err := validate.Struct(wb.Plan); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &wb, nil
}

// Save writes the workbook as YAML, creating parent directories.
func (wb *Workbook) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(wb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Query composes the ranking query from the plan header and logic model.
func (wb *Workbook) Query() string {
	return query.Compose(wb.Plan, wb.LogicItems)
}

// AddLogicItem validates it, assigns the next LG id and appends it.
func (wb *Workbook) AddLogicItem(it domain.LogicItem) (domain.LogicItem, error) {
	ids := make([]string, len(wb.LogicItems))
	for i, x := range wb.LogicItems {
		ids[i] = x.ItemID
	}
	it.ItemID = domain.NextID(LogicPrefix, ids)
	it.PlanID = wb.Plan.PlanID
	if err := validate.Struct(it); err != nil {
		return domain.LogicItem{}, fmt.Errorf("logic item: %w", err)
	}
	wb.LogicItems = append(wb.LogicItems, it)
	return it, nil
}

// AddMethod validates m, assigns the next MT id and appends it.
func (wb *Workbook) AddMethod(m domain.Method) (domain.Method, error) {
	ids := make([]string, len(wb.Methods))
	for i, x := range wb.Methods {
		ids[i] = x.MethodID
	}
	m.MethodID = domain.NextID(MethodPrefix, ids)
	m.PlanID = wb.Plan.PlanID
	if err := validate.Struct(m); err != nil {
		return domain.Method{}, fmt.Errorf("method: %w", err)
	}
	wb.Methods = append(wb.Methods, m)
	return m, nil
}

// AddKPI validates k, assigns the next KPI id and appends it.
func (wb *Workbook) AddKPI(k domain.KPI) (domain.KPI, error) {
	ids := make([]string, len(wb.KPIs))
	for i, x := range wb.KPIs {
		ids[i] = x.KPIID
	}
	k.KPIID = domain.NextID(KPIPrefix, ids)
	k.PlanID = wb.Plan.PlanID
	if err := validate.Struct(k); err != nil {
		return domain.KPI{}, fmt.Errorf("kpi: %w", err)
	}
	wb.KPIs = append(wb.KPIs, k)
	return k, nil
}

// AddRisk validates r, assigns the next RSK id and appends it.
func (wb *Workbook) AddRisk(r domain.Risk) (domain.Risk, error) {
	ids := make([]string, len(wb.Risks))
	for i, x := range wb.Risks {
		ids[i] = x.RiskID
	}
	r.RiskID = domain.NextID(RiskPrefix, ids)
	r.PlanID = wb.Plan.PlanID
	if err := validate.Struct(r); err != nil {
		return domain.Risk{}, fmt.Errorf("risk: %w", err)
	}
	wb.Risks = append(wb.Risks, r)
	return r, nil
}

// Add appends a row to table from column=value pairs, as typed on the
// command line. Keys are the YAML column names; unknown keys are rejected.
// It returns the id assigned to the new row.
func (wb *Workbook) Add(table string, fields map[string]string) (string, error) {
	switch strings.ToLower(table) {
	case TableLogic:
		var it domain.LogicItem
		if err := decodeFields(fields, &it); err != nil {
			return "", err
		}
		it, err := wb.AddLogicItem(it)
		return it.ItemID, err
	case TableMethod:
		var m domain.Method
		if err := decodeFields(fields, &m); err != nil {
			return "", err
		}
		m, err := wb.AddMethod(m)
		return m.MethodID, err
	case TableKPI:
		var k domain.KPI
		if err := decodeFields(fields, &k); err != nil {
			return "", err
		}
		k, err := wb.AddKPI(k)
		return k.KPIID, err
	case TableRisk:
		var r domain.Risk
		if err := decodeFields(fields, &r); err != nil {
			return "", err
		}
		r, err := wb.AddRisk(r)
		return r.RiskID, err
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}

// Set updates plan header and 6W2H fields from column=value pairs.
// Fields not named keep their value; plan_id cannot be changed.
func (wb *Workbook) Set(fields map[string]string) error {
	keys, vals, err := flatten(wb.Plan)
	if err != nil {
		return err
	}
	merged := make(map[string]string, len(keys)+len(fields))
	for i, k := range keys {
		merged[k] = vals[i]
	}
	for k, v := range fields {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "plan_id" {
			return errors.New("plan_id is assigned when the plan is created")
		}
		merged[k] = v
	}
	var p domain.Plan
	if err := decodeFields(merged, &p); err != nil {
		return err
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	wb.Plan = p
	return nil
}

// decodeFields builds a YAML mapping from fields and decodes it into out,
// so numeric columns get the same coercion as a plan file. Values of text
// columns are always taken literally, so "null" or "~" stay as typed.
func decodeFields(fields map[string]string, out any) error {
	known, err := yamlKeys(out)
	if err != nil {
		return err
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for k, v := range fields {
		k = strings.ToLower(strings.TrimSpace(k))
		text, ok := known[k]
		if !ok {
			return fmt.Errorf("unknown column %q", k)
		}
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: strings.TrimSpace(v)}
		if text {
			val.Tag = "!!str"
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			val,
		)
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("decode columns: %w", err)
	}
	return nil
}

// yamlKeys maps every column of v to whether it holds text.
func yamlKeys(v any) (map[string]bool, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(m))
	for k, val := range m {
		_, text := val.(string)
		keys[k] = text
	}
	return keys, nil
}
