package holiday

import (
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/utils"
)

type yearHolidays struct {
	list   []Holiday
	byDate map[string]Holiday
}

// RegionCalendar answers working-day questions for one region. Holiday sets are
// computed lazily per year and kept in an LRU cache; a computed set never changes.
type RegionCalendar struct {
	region Region
	years  *lru.Cache[int, *yearHolidays]
}

func NewCalendar(region Region, cacheSize int) *RegionCalendar {
	if cacheSize <= 0 {
		cacheSize = 16
	}
	if !region.Supported() {
		log.Warnf("No public holiday rules for region %q, only weekends will be non-working days", region)
	}
	years, err := lru.New[int, *yearHolidays](cacheSize)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &RegionCalendar{region: region, years: years}
}

func (c *RegionCalendar) Region() Region {
	return c.region
}

// IsWorkingDay classifies the date ignoring its time of day. Weekends are
// checked before holidays, so a holiday falling on a Sunday reports ReasonWeekend.
func (c *RegionCalendar) IsWorkingDay(date time.Time) (bool, Reason) {
	if utils.IsWeekend(date) {
		return false, ReasonWeekend
	}
	if _, ok := c.IsHoliday(date); ok {
		return false, ReasonPublicHoliday
	}
	return true, ReasonNone
}

func (c *RegionCalendar) IsHoliday(date time.Time) (Holiday, bool) {
	set := c.forYear(date.Year())
	h, ok := set.byDate[utils.FormatDate(utils.DateOf(date))]
	return h, ok
}

// Holidays lists the year's public holidays sorted by date.
func (c *RegionCalendar) Holidays(year int) []Holiday {
	set := c.forYear(year)
	holidays := make([]Holiday, len(set.list))
	copy(holidays, set.list)
	return holidays
}

func (c *RegionCalendar) forYear(year int) *yearHolidays {
	if set, ok := c.years.Get(year); ok {
		return set
	}
	list := computeHolidays(c.region, year)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.Before(list[j].Date)
	})
	set := &yearHolidays{list: list, byDate: make(map[string]Holiday, len(list))}
	for _, h := range list {
		key := utils.FormatDate(h.Date)
		// Easter Sunday may coincide with a fixed-date holiday; keep the first name.
		if _, exists := set.byDate[key]; !exists {
			set.byDate[key] = h
		}
	}
	log.Tracef("Computed %d holidays for region %s in %d", len(list), c.region, year)
	c.years.Add(year, set)
	return set
}
