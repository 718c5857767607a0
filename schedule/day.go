package schedule

import (
	"errors"
	"sort"
	"time"
)

// ErrOutOfRange is returned when a range index does not exist on a day.
var ErrOutOfRange = errors.New("schedule: range index out of bounds")

// Day is one weekday's availability: closed, open 24 hours, or a list of
// open time ranges. Closed and Open24h are mutually exclusive; when both
// are false an empty Ranges list means "hours not yet configured".
type Day struct {
	Weekday time.Weekday
	Closed  bool
	Open24h bool
	Ranges  []TimeRange
}

// SetClosed marks the day closed. Closing forces Open24h off.
func (d *Day) SetClosed(v bool) {
	d.Closed = v
	if v {
		d.Open24h = false
	}
}

// SetOpen24h marks the day open around the clock. Forces Closed off.
func (d *Day) SetOpen24h(v bool) {
	d.Open24h = v
	if v {
		d.Closed = false
	}
}

// AddRange appends a range to the day. No ordering is enforced at insert
// time and inverted or overlapping ranges are accepted; Validate reports
// them as warnings instead.
func (d *Day) AddRange(r TimeRange) {
	d.Ranges = append(d.Ranges, r)
}

// RemoveRange removes the range at position i in stored order.
func (d *Day) RemoveRange(i int) error {
	if i < 0 || i >= len(d.Ranges) {
		return ErrOutOfRange
	}
	d.Ranges = append(d.Ranges[:i], d.Ranges[i+1:]...)
	return nil
}

// UpdateRange partially updates the range at position i. A nil field is
// left unchanged.
func (d *Day) UpdateRange(i int, newStart, newEnd *int) error {
	if i < 0 || i >= len(d.Ranges) {
		return ErrOutOfRange
	}
	if newStart != nil {
		d.Ranges[i].Start = *newStart
	}
	if newEnd != nil {
		d.Ranges[i].End = *newEnd
	}
	return nil
}

// OpenAt reports whether the day is open at the given minute of day.
func (d Day) OpenAt(minute int) bool {
	if d.Closed {
		return false
	}
	if d.Open24h {
		return true
	}
	for _, r := range d.Ranges {
		if minute >= r.Start && minute < r.End {
			return true
		}
	}
	return false
}

// indexedRange carries a range together with its position in stored order
// so that sorting for reporting does not lose the block index.
type indexedRange struct {
	TimeRange
	pos int
}

// sortedRanges returns the day's ranges sorted ascending by start time.
// The sort is stable: ties keep their stored order. The stored order on
// the day itself is never touched.
func (d Day) sortedRanges() []indexedRange {
	out := make([]indexedRange, len(d.Ranges))
	for i, r := range d.Ranges {
		out[i] = indexedRange{TimeRange: r, pos: i}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Start < out[b].Start
	})
	return out
}
