package report

import (
	"encoding/csv"
	"io"
)

func renderCSV(w io.Writer, d Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return err
	}
	for _, r := range rows(d) {
		if err := cw.Write([]string{r.Section, r.Item, r.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
