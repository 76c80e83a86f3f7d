package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeplan/timeplan/pkg/capacity"
)

func june(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func ledgerWithUsed(used map[string]float64) capacity.Ledger {
	ledger := capacity.Ledger{}
	for date, hours := range used {
		ledger[date] = capacity.DayLedger{Capacity: 8, Used: hours}
	}
	return ledger
}

func TestReconcile(t *testing.T) {
	ledger := ledgerWithUsed(map[string]float64{
		"2025-06-09": 8,
		"2025-06-10": 8,
		"2025-06-11": 4,
		"2025-06-12": 8,
		"2025-06-13": 0,
		"2025-06-14": 0,
	})
	tracked := map[string]float64{
		"2025-06-09": 7.6,
		"2025-06-10": 5,
		"2025-06-11": 7,
		"2025-06-13": 0.2,
	}

	result := Reconcile(ledger, tracked, 0.5)

	require.Len(t, result, 6)
	statuses := make(map[string]Status, len(result))
	for _, day := range result {
		statuses[day.Date] = day.Status
	}
	assert.Equal(t, map[string]Status{
		"2025-06-09": StatusMatch,
		"2025-06-10": StatusOverLogged,
		"2025-06-11": StatusUnderLogged,
		"2025-06-12": StatusUntracked,
		"2025-06-13": StatusMatch,
		"2025-06-14": StatusMatch,
	}, statuses)
	assert.Equal(t, "2025-06-09", result[0].Date)
	assert.InDelta(t, -3.0, result[1].Difference, 1e-9)
	assert.Equal(t, 4.0, result[2].LoggedHours)
}
