/*
Package contacts loads the recipient list from an .xlsx workbook.

The first row of the selected sheet is treated as a header row. Headers
are trimmed and lowercased; a column without a usable header gets a
synthesized positional name (column_<n>). Every data row becomes a Record
keyed by those names, and only rows with a non-empty email field are kept.
*/
package contacts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record maps lowercase column names to the trimmed cell values of one
// spreadsheet row.
type Record map[string]string

// Get returns the value for a column name, matching case-insensitively.
func (r Record) Get(key string) string {
	return r[strings.ToLower(strings.TrimSpace(key))]
}

// SheetNotFoundError reports a requested sheet that does not exist in the
// workbook, listing the sheets that do.
type SheetNotFoundError struct {
	Name      string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// ErrNoContacts signals a workbook without a usable recipient list.
var ErrNoContacts = errors.New("no contacts found: need an 'email' column and at least one data row with an address")

// Load reads the workbook at path and returns one Record per data row
// that has a non-empty email field, in sheet order. An empty sheet name
// selects the first sheet.
func Load(path, sheet string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	name := sheet
	if name == "" {
		name = f.GetSheetName(0)
	} else {
		idx, err := f.GetSheetIndex(name)
		if err != nil || idx < 0 {
			return nil, &SheetNotFoundError{Name: name, Available: f.GetSheetList()}
		}
	}

	// GetRows yields display strings, so numeric and date cells arrive
	// already formatted.
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) < 2 {
		return nil, ErrNoContacts
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			key = fmt.Sprintf("column_%d", i+1)
		}
		headers[i] = key
	}

	var records []Record
	for _, row := range rows[1:] {
		rec := make(Record, len(headers))
		for i, cell := range row {
			key := fmt.Sprintf("column_%d", i+1)
			if i < len(headers) {
				key = headers[i]
			}
			rec[key] = strings.TrimSpace(cell)
		}
		// Short rows leave trailing columns absent; fill them so
		// templates see empty strings instead of missing keys.
		for _, h := range headers {
			if _, ok := rec[h]; !ok {
				rec[h] = ""
			}
		}
		if rec["email"] != "" {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, ErrNoContacts
	}
	return records, nil
}
