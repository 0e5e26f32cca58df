// Package tabular reads and writes the flat tables the planner exchanges
// with auditors: CSV files and spreadsheet workbooks.
package tabular

import "strings"

// Table is a header plus string rows. Rows are padded to the header width.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// NewTable normalises header names and pads every row to the header width.
// Rows whose cells are all blank are dropped.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, bom))
		t.Header[i] = h
		key := strings.ToLower(h)
		if _, dup := t.index[key]; !dup && key != "" {
			t.index[key] = i
		}
	}
	for _, r := range rows {
		if blank(r) {
			continue
		}
		row := make([]string, len(header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Has reports whether the table carries column name (case-insensitive).
func (t *Table) Has(name string) bool {
	_, ok := t.index[strings.ToLower(name)]
	return ok
}

// Cell returns the value of column name in row i, and whether the column exists.
func (t *Table) Cell(i int, name string) (string, bool) {
	j, ok := t.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return t.Rows[i][j], true
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
