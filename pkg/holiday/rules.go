package holiday

import (
	"strings"
	"time"
)

const (
	minSupportedYear = 1900
	maxSupportedYear = 2199
)

// rule produces the date of one holiday in a given year. Rules with a non-zero
// since/until are only observed within those years (inclusive).
type rule struct {
	name  string
	date  func(year int) time.Time
	since int
	until int
}

func (r rule) observedIn(year int) bool {
	if r.since != 0 && year < r.since {
		return false
	}
	if r.until != 0 && year > r.until {
		return false
	}
	return true
}

func fixed(month time.Month, day int) func(int) time.Time {
	return func(year int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
}

func easterOffset(days int) func(int) time.Time {
	return func(year int) time.Time {
		return Easter(year).AddDate(0, 0, days)
	}
}

var regionRules = map[Region][]rule{
	Poland: {
		{name: "New Year's Day", date: fixed(time.January, 1)},
		{name: "Epiphany", date: fixed(time.January, 6), since: 2011},
		{name: "Easter Sunday", date: easterOffset(0)},
		{name: "Easter Monday", date: easterOffset(1)},
		{name: "Labour Day", date: fixed(time.May, 1)},
		{name: "Constitution Day", date: fixed(time.May, 3)},
		{name: "Pentecost Sunday", date: easterOffset(49)},
		{name: "Corpus Christi", date: easterOffset(60)},
		{name: "Assumption Day", date: fixed(time.August, 15)},
		{name: "All Saints' Day", date: fixed(time.November, 1)},
		{name: "Independence Day", date: fixed(time.November, 11)},
		{name: "Christmas Eve", date: fixed(time.December, 24), since: 2025},
		{name: "Christmas Day", date: fixed(time.December, 25)},
		{name: "Second Day of Christmas", date: fixed(time.December, 26)},
	},
	Germany: {
		{name: "New Year's Day", date: fixed(time.January, 1)},
		{name: "Good Friday", date: easterOffset(-2)},
		{name: "Easter Monday", date: easterOffset(1)},
		{name: "Labour Day", date: fixed(time.May, 1)},
		{name: "Ascension Day", date: easterOffset(39)},
		{name: "Whit Monday", date: easterOffset(50)},
		{name: "German Unity Day", date: fixed(time.October, 3), since: 1990},
		{name: "Reformation Day", date: fixed(time.October, 31), since: 2017, until: 2017},
		{name: "Christmas Day", date: fixed(time.December, 25)},
		{name: "Second Day of Christmas", date: fixed(time.December, 26)},
	},
}

func ParseRegion(code string) Region {
	return Region(strings.ToUpper(strings.TrimSpace(code)))
}

// Supported reports whether a rule set exists for the region.
func (r Region) Supported() bool {
	_, ok := regionRules[r]
	return ok
}

// Easter returns Easter Sunday of the Gregorian calendar (anonymous Gregorian algorithm).
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// computeHolidays evaluates the region rules for one year. Unknown regions and
// years outside the supported range have no holidays.
func computeHolidays(region Region, year int) []Holiday {
	if year < minSupportedYear || year > maxSupportedYear {
		return nil
	}
	rules := regionRules[region]
	holidays := make([]Holiday, 0, len(rules))
	for _, r := range rules {
		if !r.observedIn(year) {
			continue
		}
		holidays = append(holidays, Holiday{Date: r.date(year), Name: r.name})
	}
	return holidays
}
