package models

import "time"

// TimeSlot is one cell of an area's weekly grid. The full grid is created
// together with the area and rows are only ever toggled, never inserted or
// removed through the API.
type TimeSlot struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	AreaID uint `gorm:"uniqueIndex:idx_area_day_band" json:"area"`

	DayOfWeek int `gorm:"uniqueIndex:idx_area_day_band" json:"day_of_week"`

	StartTime string `gorm:"size:5;uniqueIndex:idx_area_day_band" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	IsActive bool `gorm:"default:false" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
