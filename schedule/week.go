package schedule

import "time"

// Override is the shop-wide switch that trumps every per-day schedule.
// When Open is false the storefront is closed no matter what the days
// say, and ClosedMessage is shown to customers.
type Override struct {
	Open          bool   `json:"open"`
	ClosedMessage string `json:"closed_message"`
}

// Week holds the full seven-day availability configuration plus the
// global override. Days is indexed by time.Weekday (Sunday = 0).
type Week struct {
	Days     [7]Day
	Override Override
}

// WeekdaysMondayFirst is the display and reporting order for weekdays.
var WeekdaysMondayFirst = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// DefaultOpen and DefaultClose are the seeded daily hours for a new week.
const (
	DefaultOpen  = 9 * 60  // 09:00
	DefaultClose = 21 * 60 // 21:00
)

// NewWeek returns a week with every day open 09:00-21:00 and the
// override set to open.
func NewWeek() Week {
	var w Week
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		w.Days[wd] = Day{
			Weekday: wd,
			Ranges:  []TimeRange{{Start: DefaultOpen, End: DefaultClose}},
		}
	}
	w.Override = Override{Open: true}
	return w
}

// Day returns the schedule for the given weekday.
func (w *Week) Day(wd time.Weekday) *Day {
	return &w.Days[wd]
}

// EffectiveOpen reports whether the shop is open at the given weekday and
// minute of day, taking the global override into account.
func (w Week) EffectiveOpen(wd time.Weekday, minute int) bool {
	if !w.Override.Open {
		return false
	}
	return w.Days[wd].OpenAt(minute)
}

// EffectiveOpenAt is EffectiveOpen for a wall-clock instant.
func (w Week) EffectiveOpenAt(t time.Time) bool {
	return w.EffectiveOpen(t.Weekday(), t.Hour()*60+t.Minute())
}
