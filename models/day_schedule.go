package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bistro-backend/schedule"
)

// DaySchedule persists one weekday of the opening-hours schedule. Day uses
// time.Weekday numbering (0 = Sunday). Times are stored as HH:MM strings
// and converted to minute offsets at the schedule package boundary.
type DaySchedule struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Day       int         `gorm:"uniqueIndex;not null" json:"day"`
	IsClosed  bool        `gorm:"default:false" json:"is_closed"`
	Is24h     bool        `gorm:"column:is_24h;default:false" json:"is_24h"`
	Blocks    []TimeBlock `gorm:"foreignKey:DayScheduleID" json:"blocks"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type TimeBlock struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DayScheduleID uuid.UUID `gorm:"type:uuid;not null;index" json:"day_schedule_id"`
	StartTime     string    `gorm:"not null" json:"start_time"`
	EndTime       string    `gorm:"not null" json:"end_time"`
	Position      int       `gorm:"default:0" json:"position"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d *DaySchedule) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (b *TimeBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ToDay converts a stored row into a schedule day. Blocks are taken in
// their stored Position order.
func (d DaySchedule) ToDay() (schedule.Day, error) {
	day := schedule.Day{
		Weekday: time.Weekday(d.Day),
		Closed:  d.IsClosed,
		Open24h: d.Is24h,
	}
	for _, b := range d.Blocks {
		start, err := schedule.ParseClock(b.StartTime)
		if err != nil {
			return schedule.Day{}, fmt.Errorf("day %d block %q: %w", d.Day, b.StartTime, err)
		}
		end, err := schedule.ParseClock(b.EndTime)
		if err != nil {
			return schedule.Day{}, fmt.Errorf("day %d block %q: %w", d.Day, b.EndTime, err)
		}
		day.Ranges = append(day.Ranges, schedule.TimeRange{Start: start, End: end})
	}
	return day, nil
}

// DayScheduleFrom builds a persistable row from a schedule day, formatting
// each range back to HH:MM and numbering positions from zero.
func DayScheduleFrom(day schedule.Day) DaySchedule {
	row := DaySchedule{
		Day:      int(day.Weekday),
		IsClosed: day.Closed,
		Is24h:    day.Open24h,
	}
	for i, r := range day.Ranges {
		row.Blocks = append(row.Blocks, TimeBlock{
			StartTime: schedule.Clock(r.Start),
			EndTime:   schedule.Clock(r.End),
			Position:  i,
		})
	}
	return row
}

// WeekFrom assembles a full schedule week from stored rows plus the shop
// profile's override. Days missing from rows keep the zero value for their
// weekday, which reads as open with no hours.
func WeekFrom(rows []DaySchedule, profile ShopProfile) (schedule.Week, error) {
	var w schedule.Week
	for i := range w.Days {
		w.Days[i].Weekday = time.Weekday(i)
	}
	for _, row := range rows {
		if row.Day < 0 || row.Day > 6 {
			return schedule.Week{}, fmt.Errorf("day out of range: %d", row.Day)
		}
		day, err := row.ToDay()
		if err != nil {
			return schedule.Week{}, err
		}
		w.Days[row.Day] = day
	}
	w.Override = schedule.Override{
		Open:          profile.IsOpen,
		ClosedMessage: profile.ClosedMessage,
	}
	return w, nil
}
