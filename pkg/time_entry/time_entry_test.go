package time_entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeEntry_Overlaps(t *testing.T) {
	entry := TimeEntry{StartDate: day(time.June, 10), EndDate: day(time.June, 12)}

	tests := []struct {
		name     string
		from, to time.Time
		expected bool
	}{
		{"window contains entry", day(time.June, 9), day(time.June, 13), true},
		{"window ends on entry start", day(time.June, 1), day(time.June, 10), true},
		{"window starts on entry end", day(time.June, 12), day(time.June, 20), true},
		{"window inside entry", day(time.June, 11), day(time.June, 11), true},
		{"window before entry", day(time.June, 1), day(time.June, 9), false},
		{"window after entry", day(time.June, 13), day(time.June, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, entry.Overlaps(tt.from, tt.to))
		})
	}
}

func TestTimeEntry_Validate(t *testing.T) {
	valid := TimeEntry{Category: CategoryMeeting, StartDate: day(time.June, 10), EndDate: day(time.June, 10), Hours: 2}

	assert.NoError(t, valid.Validate())

	unknownCategory := valid
	unknownCategory.Category = "Vacation"
	assert.ErrorIs(t, unknownCategory.Validate(), ErrInvalidEntry)

	reversed := valid
	reversed.StartDate = day(time.June, 11)
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidEntry)

	negative := valid
	negative.Hours = -1
	assert.ErrorIs(t, negative.Validate(), ErrInvalidEntry)

	zeroHours := valid
	zeroHours.Hours = 0
	assert.NoError(t, zeroHours.Validate())
}

func TestTimeEntry_IsLeave(t *testing.T) {
	assert.True(t, TimeEntry{Category: LeaveCategory}.IsLeave())
	assert.False(t, TimeEntry{Category: CategoryProject}.IsLeave())
	assert.Len(t, Categories(), 5)
}
