package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const bom = "\uFEFF"

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
// Legacy .xls workbooks land here too and must be resaved as .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported tabular format")

// ReadCSV parses UTF-8 CSV. A leading BOM is dropped before parsing, so a
// quoted first header still unquotes. The first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		if _, err := br.Discard(len(bom)); err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("read csv: no header row")
	}
	return NewTable(records[0], records[1:]), nil
}

// ReadXLSX parses one worksheet of a workbook. When sheet is empty the first
// worksheet is used. When sheet is named but absent the first worksheet is
// used as well, and the returned name tells the caller which one was read.
func ReadXLSX(r io.Reader, sheet string) (*Table, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", errors.New("open workbook: no worksheets")
	}
	used := sheets[0]
	for _, s := range sheets {
		if sheet != "" && s == sheet {
			used = s
			break
		}
	}
	rows, err := f.GetRows(used)
	if err != nil {
		return nil, used, fmt.Errorf("read sheet %q: %w", used, err)
	}
	if len(rows) == 0 {
		return nil, used, fmt.Errorf("read sheet %q: no header row", used)
	}
	return NewTable(rows[0], rows[1:]), used, nil
}

// Read dispatches on the file extension of name. The second return value is
// the worksheet actually read, empty for CSV.
func Read(name string, data []byte, sheet string) (*Table, string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		t, err := ReadCSV(bytes.NewReader(data))
		return t, "", err
	case ".xlsx", ".xlsm":
		return ReadXLSX(bytes.NewReader(data), sheet)
	case ".xls":
		return nil, "", fmt.Errorf("%w: %s is a legacy .xls workbook, resave it as .xlsx", ErrUnsupportedFormat, name)
	default:
		return nil, "", fmt.Errorf("%w: %s (expected .csv or .xlsx)", ErrUnsupportedFormat, name)
	}
}
