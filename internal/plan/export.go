package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/shortlist"
	"github.com/totohpy/pa-ai-auditor/internal/tabular"
)

// ExportCSV writes plan.csv, logic_items.csv, methods.csv, kpis.csv,
// risks.csv and audit_issues.csv into dir. Column names match the YAML
// keys of each row type. It returns the paths written.
func (wb *Workbook) ExportCSV(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tables := []struct {
		name string
		zero any
		rows []any
	}{
		{"plan.csv", domain.Plan{}, []any{wb.Plan}},
		{"logic_items.csv", domain.LogicItem{}, anySlice(wb.LogicItems)},
		{"methods.csv", domain.Method{}, anySlice(wb.Methods)},
		{"kpis.csv", domain.KPI{}, anySlice(wb.KPIs)},
		{"risks.csv", domain.Risk{}, anySlice(wb.Risks)},
	}

	var written []string
	for _, tb := range tables {
		header, _, err := flatten(tb.zero)
		if err != nil {
			return written, err
		}
		rows := make([][]string, 0, len(tb.rows))
		for _, r := range tb.rows {
			_, vals, err := flatten(r)
			if err != nil {
				return written, err
			}
			rows = append(rows, vals)
		}
		path := filepath.Join(dir, tb.name)
		if err := writeFile(path, func(f *os.File) error { return tabular.WriteCSV(f, header, rows) }); err != nil {
			return written, fmt.Errorf("export %s: %w", tb.name, err)
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, "audit_issues.csv")
	if err := writeFile(path, func(f *os.File) error { return shortlist.WriteCSV(f, wb.Issues) }); err != nil {
		return written, err
	}
	return append(written, path), nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// flatten returns the YAML keys and scalar values of v in declaration order.
func flatten(v any) (keys, vals []string, err error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("flatten %T: not a mapping", v)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
		vals = append(vals, n.Content[i+1].Value)
	}
	return keys, vals, nil
}
