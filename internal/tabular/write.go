package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes header and rows as UTF-8 CSV prefixed with a BOM so that
// spreadsheet applications pick the right encoding.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Column describes one column of an import template.
type Column struct {
	Name        string
	Description string
}

// DescriptionSheet is the name of the human-readable column guide.
const DescriptionSheet = "Columns"

// WriteTemplate writes a workbook whose sheet dataSheet holds only the header
// row, paired with a sheet describing every column.
func WriteTemplate(w io.Writer, dataSheet string, cols []Column) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), dataSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if _, err := f.NewSheet(DescriptionSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := f.SetSheetRow(DescriptionSheet, "A1", &[]string{"column", "description"}); err != nil {
		return err
	}
	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DescriptionSheet, cell, &[]string{c.Name, c.Description}); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}
