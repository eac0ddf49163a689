// Package output serializes tables as RFC-4180 CSV and persists them
// atomically at the configured destination.
package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jsontab/jsontab/internal/models"
)

// WriteCSV serializes a table: one header row of column names followed
// by one line per table row, no index column. Fields containing the
// delimiter, a quote, or a newline are quoted by encoding/csv; lines end
// with \n. A zero-column table serializes as bare newlines.
//
// Cell rendering is fixed and covered by tests: booleans as
// "true"/"false" (strconv.FormatBool), numbers as their exact source
// literal, strings verbatim, null and missing cells as the empty field.
func WriteCSV(w io.Writer, table *models.Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	if err := cw.Write(table.Columns); err != nil {
		return err
	}

	record := make([]string, len(table.Columns))
	for i := range table.Rows {
		for j, column := range table.Columns {
			record[j] = renderCell(table.CellAt(i, column))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// renderCell fixes the textual form of each scalar cell kind.
func renderCell(cell models.Cell) string {
	switch cell.Kind {
	case models.BoolCell:
		return strconv.FormatBool(cell.Bool)
	case models.NumberCell:
		return cell.Number.String()
	case models.StringCell:
		return cell.String
	default:
		// NullCell, and columns the row never produced
		return ""
	}
}
