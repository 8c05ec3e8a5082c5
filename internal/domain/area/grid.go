package area

import "github.com/LaundryServices01/laundry-admin/internal/models"

// Band is one collection/delivery window of the weekly grid.
type Band struct {
	Start string
	End   string
}

// DefaultBands is the canonical set of two-hour windows. Every area gets
// one slot per band per weekday, all starting out inactive.
func DefaultBands() []Band {
	return []Band{
		{Start: "09:00", End: "11:00"},
		{Start: "11:00", End: "13:00"},
		{Start: "13:00", End: "15:00"},
		{Start: "15:00", End: "17:00"},
		{Start: "17:00", End: "19:00"},
		{Start: "19:00", End: "21:00"},
	}
}

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func IsValidDay(day int) bool {
	return day >= 0 && day <= 6
}

func DayName(day int) string {
	if !IsValidDay(day) {
		return ""
	}
	return dayNames[day]
}

// BuildGrid returns the full weekly grid for one area: 7 days x len(bands)
// inactive slots.
func BuildGrid(areaID uint, bands []Band) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, 7*len(bands))
	for day := 0; day <= 6; day++ {
		for _, b := range bands {
			slots = append(slots, models.TimeSlot{
				AreaID:    areaID,
				DayOfWeek: day,
				StartTime: b.Start,
				EndTime:   b.End,
				IsActive:  false,
			})
		}
	}
	return slots
}
