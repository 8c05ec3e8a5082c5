package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainarea "github.com/LaundryServices01/laundry-admin/internal/domain/area"
	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/httpresp"
	"github.com/LaundryServices01/laundry-admin/internal/middleware"
	"github.com/LaundryServices01/laundry-admin/internal/models"
	ucArea "github.com/LaundryServices01/laundry-admin/internal/usecase/area"
)

type TimeSlotHandler struct {
	db           *gorm.DB
	toggleSlotUC *ucArea.ToggleSlot
	toggleDayUC  *ucArea.ToggleDay
}

func NewTimeSlotHandler(
	db *gorm.DB,
	toggleSlotUC *ucArea.ToggleSlot,
	toggleDayUC *ucArea.ToggleDay,
) *TimeSlotHandler {
	return &TimeSlotHandler{
		db:           db,
		toggleSlotUC: toggleSlotUC,
		toggleDayUC:  toggleDayUC,
	}
}

// --------- Requests ---------

type ToggleRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// --------- Helpers ---------

func slotDetailPayload(s *models.TimeSlot) gin.H {
	return gin.H{
		"id":          s.ID,
		"area":        s.AreaID,
		"day_of_week": s.DayOfWeek,
		"day_display": domainarea.DayName(s.DayOfWeek),
		"start_time":  s.StartTime,
		"end_time":    s.EndTime,
		"is_active":   s.IsActive,
	}
}

// --------- Handlers ---------

// List returns every slot, optionally filtered by area, day_of_week
// and is_active query parameters.
func (h *TimeSlotHandler) List(c *gin.Context) {
	q := h.db.Model(&models.TimeSlot{})

	if area := c.Query("area"); area != "" {
		id, err := strconv.ParseUint(area, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid area filter.")
			return
		}
		q = q.Where("area_id = ?", id)
	}
	if day := c.Query("day_of_week"); day != "" {
		d, err := strconv.Atoi(day)
		if err != nil || !domainarea.IsValidDay(d) {
			httperr.BadRequest(c, "invalid_filter", "Invalid day_of_week filter.")
			return
		}
		q = q.Where("day_of_week = ?", d)
	}
	if active := c.Query("is_active"); active != "" {
		b, err := strconv.ParseBool(active)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid is_active filter.")
			return
		}
		q = q.Where("is_active = ?", b)
	}

	var slots []models.TimeSlot
	if err := q.Order("area_id ASC, day_of_week ASC, start_time ASC").Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_slots", "Could not list time slots.")
		return
	}

	out := make([]gin.H, 0, len(slots))
	for i := range slots {
		out = append(out, slotDetailPayload(&slots[i]))
	}
	httpresp.OK(c, out)
}

// ListForArea returns the full weekly grid of one area.
func (h *TimeSlotHandler) ListForArea(c *gin.Context) {
	areaID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var area models.Area
	if err := h.db.First(&area, areaID).Error; err != nil {
		httperr.NotFound(c, "area_not_found", "Area not found.")
		return
	}

	var slots []models.TimeSlot
	if err := h.db.Where("area_id = ?", areaID).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_slots", "Could not list time slots.")
		return
	}

	out := make([]gin.H, 0, len(slots))
	for i := range slots {
		out = append(out, slotDetailPayload(&slots[i]))
	}

	httpresp.OK(c, gin.H{
		"area":       gin.H{"id": area.ID, "name": area.Name},
		"time_slots": out,
	})
}

// ToggleSlot sets the active flag of a single slot.
func (h *TimeSlotHandler) ToggleSlot(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	areaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	slotID, ok := parseID(c, "slotID")
	if !ok {
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"is_active": "This field is required."})
		return
	}

	slot, err := h.toggleSlotUC.Execute(c.Request.Context(), userID, areaID, slotID, *req.IsActive)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "time_slot_not_found"):
			httperr.NotFound(c, "time_slot_not_found", "Time slot not found.")
		default:
			httperr.Internal(c, "failed_to_update_time_slot", "Could not update time slot.")
		}
		return
	}

	httpresp.Message(c, http.StatusOK, "Time slot updated successfully.", "time_slot", slotDetailPayload(slot))
}

// ToggleDay sets the active flag of every slot of one weekday at once.
func (h *TimeSlotHandler) ToggleDay(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	areaID, ok := parseID(c, "id")
	if !ok {
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		httperr.BadRequest(c, "invalid_day_of_week", "Invalid day of week.")
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"is_active": "This field is required."})
		return
	}

	count, err := h.toggleDayUC.Execute(c.Request.Context(), userID, areaID, day, *req.IsActive)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_day_of_week"):
			httperr.BadRequest(c, "invalid_day_of_week", "Invalid day of week.")
		case httperr.IsBusiness(err, "area_not_found"):
			httperr.NotFound(c, "area_not_found", "Area not found.")
		default:
			httperr.Internal(c, "failed_to_update_time_slots", "Could not update time slots.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Successfully updated %d time slot(s).", count),
		"updated_count": count,
	})
}
