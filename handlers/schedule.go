package handlers

import (
	"net/http"
	"time"

	"bistro-backend/cache"
	"bistro-backend/models"
	"bistro-backend/schedule"
	"bistro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleHandler struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

// Wire types for the schedule endpoints. The API speaks HH:MM strings and
// camelCase keys; minute arithmetic stays inside the schedule package.

type timeBlockDTO struct {
	ID        uuid.UUID `json:"id,omitempty"`
	StartTime string    `json:"startTime" binding:"required"`
	EndTime   string    `json:"endTime" binding:"required"`
}

type dayScheduleDTO struct {
	Day        int            `json:"day"`
	DayName    string         `json:"dayName,omitempty"`
	IsClosed   bool           `json:"isClosed"`
	Is24h      bool           `json:"is24h"`
	TimeBlocks []timeBlockDTO `json:"timeBlocks"`
}

type warningDTO struct {
	Day     int    `json:"day"`
	DayName string `json:"dayName"`
	Block   int    `json:"block"`
	Message string `json:"message"`
}

type segmentDTO struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
	Kind  string  `json:"kind"`
}

// loadWeek assembles the stored schedule plus the profile override into a
// schedule week. Shared with the order handler's closed-shop check.
func loadWeek(db *gorm.DB) (schedule.Week, error) {
	var rows []models.DaySchedule
	if err := db.Preload("Blocks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&rows).Error; err != nil {
		return schedule.Week{}, err
	}

	var profile models.ShopProfile
	if err := db.First(&profile).Error; err != nil {
		return schedule.Week{}, err
	}

	return models.WeekFrom(rows, profile)
}

func dayToDTO(row models.DaySchedule) dayScheduleDTO {
	dto := dayScheduleDTO{
		Day:        row.Day,
		DayName:    time.Weekday(row.Day).String(),
		IsClosed:   row.IsClosed,
		Is24h:      row.Is24h,
		TimeBlocks: []timeBlockDTO{},
	}
	for _, b := range row.Blocks {
		dto.TimeBlocks = append(dto.TimeBlocks, timeBlockDTO{
			ID:        b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	return dto
}

func warningsToDTO(warnings []schedule.Warning) []warningDTO {
	out := make([]warningDTO, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, warningDTO{
			Day:     int(w.Weekday),
			DayName: w.Weekday.String(),
			Block:   w.Block,
			Message: w.Message,
		})
	}
	return out
}

// GetSchedule returns the stored week in Monday-first order.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	var rows []models.DaySchedule
	if err := h.DB.Preload("Blocks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	byDay := make(map[int]models.DaySchedule, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}

	days := make([]dayScheduleDTO, 0, 7)
	for _, wd := range schedule.WeekdaysMondayFirst {
		row, ok := byDay[int(wd)]
		if !ok {
			row = models.DaySchedule{Day: int(wd)}
		}
		days = append(days, dayToDTO(row))
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// UpdateSchedule replaces the whole week in one transaction. Any validation
// warning blocks the write with a 422 carrying the warning list.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req struct {
		Days []dayScheduleDTO `json:"days" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if len(req.Days) != 7 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schedule must cover all seven days"})
		return
	}

	seen := make(map[int]bool, 7)
	var week schedule.Week
	for i := range week.Days {
		week.Days[i].Weekday = time.Weekday(i)
	}
	for _, dto := range req.Days {
		if dto.Day < 0 || dto.Day > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Day must be between 0 and 6"})
			return
		}
		if seen[dto.Day] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate day in schedule"})
			return
		}
		seen[dto.Day] = true

		if dto.IsClosed && dto.Is24h {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A day cannot be both closed and open 24 hours"})
			return
		}

		day := schedule.Day{
			Weekday: time.Weekday(dto.Day),
			Closed:  dto.IsClosed,
			Open24h: dto.Is24h,
		}
		for _, block := range dto.TimeBlocks {
			start, err := schedule.ParseClock(block.StartTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Times must use HH:MM format"})
				return
			}
			end, err := schedule.ParseClock(block.EndTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Times must use HH:MM format"})
				return
			}
			day.AddRange(schedule.TimeRange{Start: start, End: end})
		}
		week.Days[dto.Day] = day
	}

	if warnings := schedule.Validate(week); len(warnings) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "Schedule has validation problems",
			"warnings": warningsToDTO(warnings),
		})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.TimeBlock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.DaySchedule{}).Error; err != nil {
			return err
		}
		for _, day := range week.Days {
			row := models.DayScheduleFrom(day)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save schedule"})
		return
	}

	h.Cache.InvalidateStatus(c.Request.Context())
	h.GetSchedule(c)
}

// GetWarnings validates the stored week without modifying it.
func (h *ScheduleHandler) GetWarnings(c *gin.Context) {
	week, err := loadWeek(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"warnings": warningsToDTO(schedule.Validate(week))})
}

// GetOverview renders each day as percentage segments for the admin
// timeline bar, Monday first.
func (h *ScheduleHandler) GetOverview(c *gin.Context) {
	week, err := loadWeek(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
		return
	}

	type dayOverview struct {
		Day      int          `json:"day"`
		DayName  string       `json:"dayName"`
		Segments []segmentDTO `json:"segments"`
	}

	days := make([]dayOverview, 0, 7)
	for _, wd := range schedule.WeekdaysMondayFirst {
		segments := schedule.Overview(*week.Day(wd))
		dtos := make([]segmentDTO, 0, len(segments))
		for _, s := range segments {
			dtos = append(dtos, segmentDTO{Left: s.Left, Width: s.Width, Kind: string(s.Kind)})
		}
		days = append(days, dayOverview{
			Day:      int(wd),
			DayName:  wd.String(),
			Segments: dtos,
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
