package excel

import (
	"io"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/tramova/tramova/modules/trips/domain/importer"
)

// Column order of the standard upload template. The header row is skipped;
// columns are positional because operator files rarely keep header spelling
// consistent.
const (
	colExternalID = iota
	colDate
	colSite
	colPersonnel
	colVehicle
	colOrigin
	colDestination
	colRateType
	colQuantity
	colDistance
)

var ErrNoSheet = gerrors.New("workbook has no sheets")

// ReadRows extracts raw import rows from the first sheet of an xlsx file.
// Cells come back untyped and untrimmed; all validation belongs to the
// classification pass, not here.
func ReadRows(r io.Reader) ([]importer.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to read sheet")
	}
	if len(records) <= 1 {
		return nil, nil
	}

	rows := make([]importer.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		rows = append(rows, importer.Row{
			Index:       len(rows),
			ExternalID:  cell(record, colExternalID),
			Date:        cell(record, colDate),
			Site:        cell(record, colSite),
			Personnel:   cell(record, colPersonnel),
			Vehicle:     cell(record, colVehicle),
			Origin:      cell(record, colOrigin),
			Destination: cell(record, colDestination),
			RateType:    cell(record, colRateType),
			Quantity:    cell(record, colQuantity),
			Distance:    cell(record, colDistance),
		})
	}
	return rows, nil
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func isEmptyRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
