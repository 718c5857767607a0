package schedule

import "fmt"

// MinutesPerDay is the number of minutes in one day.
const MinutesPerDay = 1440

// TimeRange is a single contiguous open interval within one day.
// Start and End are minutes since midnight (0-1439). A range is intended
// to satisfy Start < End; inverted ranges are representable and reported
// by Validate rather than rejected at construction.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Inverted reports whether the range is empty or backwards.
func (r TimeRange) Inverted() bool {
	return r.Start >= r.End
}

// Duration returns the range length in minutes, or 0 for inverted ranges.
func (r TimeRange) Duration() int {
	if r.Inverted() {
		return 0
	}
	return r.End - r.Start
}

// ParseClock parses a zero-padded 24-hour "HH:MM" string into minutes
// since midnight. The format is strict: exactly two digits, a colon and
// two more digits, so values like "9:30" or "09:3a" are rejected.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock value %q: expected HH:MM", s)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid clock value %q: expected HH:MM", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q: out of range", s)
	}
	return h*60 + m, nil
}

// Clock formats minutes since midnight as a zero-padded "HH:MM" string.
func Clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
