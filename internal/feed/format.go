package feed

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a config value to a Format; empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown feed format %q", s)
	}
}

// Rows decodes a raw feed body according to f.
func (f Format) Rows(body []byte) ([][]string, error) {
	if f == FormatXLSX {
		return ParseXLSX(body)
	}
	return ParseCSV(string(body)), nil
}
