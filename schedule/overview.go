package schedule

// SegmentKind classifies a timeline segment for the overview renderer.
type SegmentKind string

const (
	SegmentOccupied SegmentKind = "occupied"
	SegmentGap      SegmentKind = "gap"
	SegmentClosed   SegmentKind = "closed"
	SegmentOpen24   SegmentKind = "open"
	SegmentNoHours  SegmentKind = "no-hours"
)

// Segment is one bar on a day's timeline. Left and Width are percentages
// of the full day.
type Segment struct {
	Left  float64     `json:"left"`
	Width float64     `json:"width"`
	Kind  SegmentKind `json:"kind"`
}

func percent(minute int) float64 {
	return float64(minute) / MinutesPerDay * 100
}

// Overview derives the timeline segments for one day. It is a pure
// view-model computation: deterministic, no hidden state, safe to call on
// every render.
//
// Closed and 24h days collapse to a single full-width segment, as does a
// day with no configured hours. Otherwise ranges are sorted by start and
// rendered as occupied segments with gap segments strictly between
// consecutive blocks; the head before the first block and the tail after
// the last are not rendered.
func Overview(d Day) []Segment {
	if d.Closed {
		return []Segment{{Left: 0, Width: 100, Kind: SegmentClosed}}
	}
	if d.Open24h {
		return []Segment{{Left: 0, Width: 100, Kind: SegmentOpen24}}
	}
	if len(d.Ranges) == 0 {
		return []Segment{{Left: 0, Width: 100, Kind: SegmentNoHours}}
	}

	sorted := d.sortedRanges()
	segments := make([]Segment, 0, 2*len(sorted)-1)
	for i, r := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			if r.Start > prev.End {
				segments = append(segments, Segment{
					Left:  percent(prev.End),
					Width: percent(r.Start - prev.End),
					Kind:  SegmentGap,
				})
			}
		}
		segments = append(segments, Segment{
			Left:  percent(r.Start),
			Width: percent(r.End - r.Start),
			Kind:  SegmentOccupied,
		})
	}
	return segments
}
