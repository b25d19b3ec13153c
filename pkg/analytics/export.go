package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the daily breakdown as CSV. Callers gate this behind the
// analytics-export capability; the writer itself does no entitlement checks.
func WriteCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "clicks"}); err != nil {
		return err
	}
	for _, day := range s.Days() {
		if err := cw.Write([]string{day, strconv.FormatInt(s.ByDay[day], 10)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
