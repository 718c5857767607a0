package schedule

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOverviewSingleRange(t *testing.T) {
	d := Day{
		Weekday: time.Monday,
		Ranges:  []TimeRange{{Start: 540, End: 1020}}, // 09:00-17:00
	}

	segments := Overview(d)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	seg := segments[0]
	if seg.Kind != SegmentOccupied {
		t.Errorf("expected occupied segment, got %s", seg.Kind)
	}
	if !almostEqual(seg.Left, 37.5) {
		t.Errorf("expected left 37.5%%, got %v", seg.Left)
	}
	if !almostEqual(seg.Width, float64(480)/1440*100) {
		t.Errorf("expected width 33.33%%, got %v", seg.Width)
	}
}

func TestOverviewTwoRangesWithGap(t *testing.T) {
	d := Day{
		Weekday: time.Monday,
		Ranges: []TimeRange{
			{Start: 540, End: 720},  // 09:00-12:00
			{Start: 840, End: 1080}, // 14:00-18:00
		},
	}

	segments := Overview(d)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments (occupied, gap, occupied), got %d", len(segments))
	}

	if segments[0].Kind != SegmentOccupied || segments[2].Kind != SegmentOccupied {
		t.Error("expected first and last segments occupied")
	}
	gap := segments[1]
	if gap.Kind != SegmentGap {
		t.Fatalf("expected middle segment to be a gap, got %s", gap.Kind)
	}
	if !almostEqual(gap.Left, 50) {
		t.Errorf("expected gap left 50%%, got %v", gap.Left)
	}
	if !almostEqual(gap.Width, float64(120)/1440*100) {
		t.Errorf("expected gap width 8.33%%, got %v", gap.Width)
	}
}

func TestOverviewClosedDay(t *testing.T) {
	d := Day{Weekday: time.Sunday}
	d.SetClosed(true)

	segments := Overview(d)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Kind != SegmentClosed || segments[0].Left != 0 || segments[0].Width != 100 {
		t.Errorf("expected full-width closed segment, got %+v", segments[0])
	}
}

func TestOverviewOpen24hDay(t *testing.T) {
	d := Day{Weekday: time.Saturday}
	d.SetOpen24h(true)

	segments := Overview(d)
	if len(segments) != 1 || segments[0].Kind != SegmentOpen24 {
		t.Fatalf("expected single full-width open segment, got %+v", segments)
	}
}

func TestOverviewNoHoursConfigured(t *testing.T) {
	d := Day{Weekday: time.Tuesday}

	segments := Overview(d)
	if len(segments) != 1 || segments[0].Kind != SegmentNoHours {
		t.Fatalf("expected single no-hours segment, got %+v", segments)
	}
}

func TestOverviewSortsRangesForDisplay(t *testing.T) {
	d := Day{
		Weekday: time.Monday,
		Ranges: []TimeRange{
			{Start: 840, End: 1080}, // stored first, later in the day
			{Start: 540, End: 720},
		},
	}

	segments := Overview(d)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if !almostEqual(segments[0].Left, percent(540)) {
		t.Error("expected earliest range rendered first")
	}
	if d.Ranges[0].Start != 840 {
		t.Error("expected stored order unchanged after rendering")
	}
}

func TestOverviewAdjacentRangesNoGap(t *testing.T) {
	d := Day{
		Weekday: time.Monday,
		Ranges: []TimeRange{
			{Start: 540, End: 720},
			{Start: 720, End: 1080}, // starts exactly at previous end
		},
	}

	segments := Overview(d)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments with no gap, got %d", len(segments))
	}
	for _, s := range segments {
		if s.Kind != SegmentOccupied {
			t.Errorf("expected only occupied segments, got %s", s.Kind)
		}
	}
}

func TestOverviewWidthsSumWithinDay(t *testing.T) {
	d := Day{
		Weekday: time.Monday,
		Ranges: []TimeRange{
			{Start: 0, End: 480},
			{Start: 480, End: 960},
			{Start: 1000, End: 1440},
		},
	}

	var total float64
	for _, s := range Overview(d) {
		total += s.Width
	}
	if total > 100+1e-9 {
		t.Errorf("expected total width <= 100%%, got %v", total)
	}
}

func TestOverviewDeterministic(t *testing.T) {
	d := Day{
		Weekday: time.Monday,
		Ranges: []TimeRange{
			{Start: 840, End: 1080},
			{Start: 540, End: 720},
		},
	}

	first := Overview(d)
	second := Overview(d)
	if len(first) != len(second) {
		t.Fatal("expected identical segment counts")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}
