package capacity

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type LedgerRenderer interface {
	RenderLedger(ledger Ledger) (string, error)
}

type CsvLedgerRenderer struct{}

func NewCsvLedgerRenderer() *CsvLedgerRenderer {
	return &CsvLedgerRenderer{}
}

// RenderLedger writes one row per day in date order followed by a totals row.
func (r *CsvLedgerRenderer) RenderLedger(ledger Ledger) (string, error) {
	data := make([][]string, 0, len(ledger)+2)
	data = append(data, []string{"Date", "Capacity", "Used", "Remaining"})
	for _, date := range ledger.Dates() {
		day := ledger[date]
		data = append(data, []string{date, hoursToString(day.Capacity), hoursToString(day.Used), hoursToString(day.Remaining)})
	}
	totals := ledger.Totals()
	data = append(data, []string{"Total", hoursToString(totals.Capacity), hoursToString(totals.Used), hoursToString(totals.Remaining)})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func hoursToString(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
