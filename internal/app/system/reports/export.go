package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteAdminCSV writes the admin projection rows as CSV with a header.
func WriteAdminCSV(w io.Writer, rep AdminReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"#", "student", "month", "subject", "hours"}); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		rec := []string{
			strconv.Itoa(row.Index),
			row.DisplayName,
			row.Month.Label(),
			row.Subject,
			strconv.Itoa(row.Hours),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
