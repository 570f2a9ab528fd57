package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tramova/tramova/modules/trips/infrastructure/excel"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"external_id", "date", "site", "personnel", "vehicle", "origin", "destination", "rate_type", "quantity", "distance"},
		{"EXT-1", "15/3/2024", "Almacén Norte", "D-1042", "AB 123 CD", "Madrid", "Valencia", "contracted", "12.5", "350"},
		{"EXT-2", "16/3/2024", "Almacén Norte", "D-1042", "AB 123 CD", "Madrid", "Valencia", "contracted", "8"},
	})

	rows, err := excel.ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, "EXT-1", rows[0].ExternalID)
	assert.Equal(t, "15/3/2024", rows[0].Date)
	assert.Equal(t, "Almacén Norte", rows[0].Site)
	assert.Equal(t, "12.5", rows[0].Quantity)

	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, "", rows[1].Distance, "short records pad missing cells")
}

func TestReadRowsSkipsEmptyRecords(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"external_id", "date", "site", "personnel", "vehicle", "origin", "destination", "rate_type", "quantity", "distance"},
		{"", "", ""},
		{"EXT-1", "15/3/2024", "Almacén Norte", "D-1042", "AB 123 CD", "Madrid", "Valencia", "contracted", "1", "1"},
	})

	rows, err := excel.ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EXT-1", rows[0].ExternalID)
}

func TestReadRowsHeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"external_id", "date", "site", "personnel", "vehicle", "origin", "destination", "rate_type", "quantity", "distance"},
	})

	rows, err := excel.ReadRows(buf)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRowsRejectsGarbage(t *testing.T) {
	_, err := excel.ReadRows(bytes.NewReader([]byte("not an xlsx")))
	assert.Error(t, err)
}
