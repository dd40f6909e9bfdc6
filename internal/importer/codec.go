package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadSheet decodes one worksheet into header-keyed rows. An empty sheet
// name selects the first worksheet. Blank lines are dropped; cells beyond
// the header width are ignored.
func ReadSheet(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = list[0]
	}

	lines, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	headers := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for _, line := range lines[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, cell := range line {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			row[headers[i]] = cell
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
