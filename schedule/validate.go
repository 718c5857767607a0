package schedule

import "time"

// Warning messages. These are user-facing and stable; tests and the admin
// editor match on them.
const (
	MsgNoHours      = "no hours defined"
	MsgInvalidRange = "invalid time range"
	MsgOvernight    = "spans overnight"
)

// Warning is an advisory finding about a week schedule. Block is the
// 1-based position of the offending range in the day's stored order, or 0
// for day-level warnings.
type Warning struct {
	Weekday time.Weekday `json:"weekday"`
	Block   int          `json:"block,omitempty"`
	Message string       `json:"message"`
}

// Overnight heuristic bounds: a range starting after 22:00 and ending
// before 06:00 is flagged as spanning overnight.
const (
	overnightStartAfter = 22 * 60
	overnightEndBefore  = 6 * 60
)

// Validate inspects a week and returns human-readable warnings, in day
// order Monday through Sunday, then block order within each day. It is a
// pure function: it never mutates the week and the same input always
// yields the same warning sequence. Warnings are advisory; whether they
// block a save is the caller's decision.
//
// The overnight check is a compatibility heuristic, not a real
// midnight-crossing detector: a range like 23:00-05:00 also trips the
// inverted-range check, and genuine overnight hours are represented as
// two blocks on adjacent days.
func Validate(w Week) []Warning {
	var warnings []Warning

	for _, wd := range WeekdaysMondayFirst {
		day := w.Days[wd]

		if !day.Closed && !day.Open24h && len(day.Ranges) == 0 {
			warnings = append(warnings, Warning{Weekday: wd, Message: MsgNoHours})
			continue
		}

		// Sorted for reporting order only; the stored order on the day
		// is untouched and block indexes refer to it.
		for _, r := range day.sortedRanges() {
			if r.Start >= r.End {
				warnings = append(warnings, Warning{
					Weekday: wd,
					Block:   r.pos + 1,
					Message: MsgInvalidRange,
				})
			}
			if r.Start > overnightStartAfter && r.End < overnightEndBefore {
				warnings = append(warnings, Warning{
					Weekday: wd,
					Block:   r.pos + 1,
					Message: MsgOvernight,
				})
			}
		}
	}

	return warnings
}
