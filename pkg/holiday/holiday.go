package holiday

import "time"

type Region string

const (
	Poland  Region = "PL"
	Germany Region = "DE"
)

// Reason explains why a date is not a working day. It is empty for working days.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonWeekend       Reason = "weekend"
	ReasonPublicHoliday Reason = "public_holiday"
)

type Holiday struct {
	Date time.Time
	Name string
}

// Calendar classifies calendar dates of a single region.
type Calendar interface {
	IsWorkingDay(date time.Time) (bool, Reason)
	IsHoliday(date time.Time) (Holiday, bool)
	Holidays(year int) []Holiday
}
