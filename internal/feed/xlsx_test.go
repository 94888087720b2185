package feed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func buildSpreadsheet(t *testing.T, rows [][]string) []byte {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func TestParseXLSX_ReadsFirstSheet(t *testing.T) {
	data := buildSpreadsheet(t, [][]string{
		{"id", "name", "price"},
		{"1", " Shirt ", "650"},
		{"", "", ""},
		{"2", "Cap", "450"},
	})

	rows, err := ParseXLSX(data)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Shirt", "650"}, rows[1])
	assert.Equal(t, []string{"2", "Cap", "450"}, rows[2])
}

func TestParseXLSX_InvalidData(t *testing.T) {
	_, err := ParseXLSX([]byte("not a spreadsheet"))
	assert.Error(t, err)
}

func TestFormatRows_DispatchesOnFormat(t *testing.T) {
	rows, err := FormatCSV.Rows([]byte("id\n1\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	data := buildSpreadsheet(t, [][]string{{"id"}, {"1"}})
	rows, err = FormatXLSX.Rows(data)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
