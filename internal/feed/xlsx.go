package feed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

var ErrNoSheet = errors.New("spreadsheet has no sheets")

// ParseXLSX reads the first sheet of a spreadsheet export into the same row
// shape ParseCSV produces. Rows with only empty cells are skipped.
func ParseXLSX(data []byte) ([][]string, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrNoSheet
	}

	var rows [][]string
	for _, row := range file.Sheets[0].Rows {
		if row == nil {
			continue
		}
		fields := make([]string, len(row.Cells))
		blank := true
		for i, cell := range row.Cells {
			fields[i] = strings.TrimSpace(cell.String())
			if fields[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, fields)
	}
	return rows, nil
}
