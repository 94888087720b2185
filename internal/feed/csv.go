package feed

import "strings"

// ParseCSV splits a published sheet export into rows of trimmed fields.
//
// Commas inside a double-quoted span are literal. Every quote toggles the
// quoted state and is dropped; there is no escaped-quote form. Blank lines are
// skipped. The parser never fails: malformed input just yields odd fields.
func ParseCSV(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, parseLine(line))
	}
	return rows
}

func parseLine(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			quoted = !quoted
		case ch == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}
