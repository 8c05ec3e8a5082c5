package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/httpresp"
	"github.com/LaundryServices01/laundry-admin/internal/middleware"
	"github.com/LaundryServices01/laundry-admin/internal/models"
	ucArea "github.com/LaundryServices01/laundry-admin/internal/usecase/area"
)

type AreaHandler struct {
	db       *gorm.DB
	createUC *ucArea.CreateArea
	deleteUC *ucArea.DeleteArea
}

func NewAreaHandler(
	db *gorm.DB,
	createUC *ucArea.CreateArea,
	deleteUC *ucArea.DeleteArea,
) *AreaHandler {
	return &AreaHandler{
		db:       db,
		createUC: createUC,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type AreaRequest struct {
	Name string `json:"name" binding:"required"`
}

// --------- Helpers ---------

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func slotPayload(s *models.TimeSlot) gin.H {
	return gin.H{
		"id":          s.ID,
		"area":        s.AreaID,
		"day_of_week": s.DayOfWeek,
		"start_time":  s.StartTime,
		"end_time":    s.EndTime,
		"is_active":   s.IsActive,
	}
}

// --------- Handlers ---------

// List returns the trimmed listing shape: id and name only.
func (h *AreaHandler) List(c *gin.Context) {
	var areas []models.Area
	if err := h.db.Order("name ASC").Find(&areas).Error; err != nil {
		httperr.Internal(c, "failed_to_list_areas", "Could not list areas.")
		return
	}

	out := make([]gin.H, 0, len(areas))
	for _, a := range areas {
		out = append(out, gin.H{"id": a.ID, "name": a.Name})
	}
	httpresp.OK(c, out)
}

func (h *AreaHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"name": "Area name is required."})
		return
	}

	a, err := h.createUC.Execute(c.Request.Context(), userID, req.Name)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "name_required"):
			httperr.Validation(c, map[string]string{"name": "Area name is required."})
		case httperr.IsBusiness(err, "area_already_exists"):
			httperr.Validation(c, map[string]string{"name": "Area '" + strings.TrimSpace(req.Name) + "' already exists."})
		default:
			httperr.Internal(c, "failed_to_create_area", "Could not create area.")
		}
		return
	}

	slots := make([]gin.H, 0, len(a.TimeSlots))
	for i := range a.TimeSlots {
		slots = append(slots, slotPayload(&a.TimeSlots[i]))
	}

	httpresp.Created(c, "Area created successfully.", "area", gin.H{
		"id":         a.ID,
		"name":       a.Name,
		"time_slots": slots,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	})
}

// Get returns the area with its postcodes in the trimmed list shape.
func (h *AreaHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var a models.Area
	if err := h.db.Preload("Postcodes").First(&a, id).Error; err != nil {
		httperr.NotFound(c, "area_not_found", "Area not found.")
		return
	}

	postcodes := make([]gin.H, 0, len(a.Postcodes))
	for _, p := range a.Postcodes {
		postcodes = append(postcodes, gin.H{"id": p.ID, "postcode": p.Postcode})
	}

	httpresp.OK(c, gin.H{
		"id":         a.ID,
		"name":       a.Name,
		"postcodes":  postcodes,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	})
}

// Update handles both PUT and PATCH; the only writable field is the name.
func (h *AreaHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var a models.Area
	if err := h.db.First(&a, id).Error; err != nil {
		httperr.NotFound(c, "area_not_found", "Area not found.")
		return
	}

	var req AreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"name": "Area name is required."})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.Validation(c, map[string]string{"name": "Area name is required."})
		return
	}

	var count int64
	if err := h.db.Model(&models.Area{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, a.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_update_area", "Could not update area.")
		return
	}
	if count > 0 {
		httperr.Validation(c, map[string]string{"name": "Area '" + name + "' already exists."})
		return
	}

	a.Name = name
	if err := h.db.Save(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"name": "Area '" + name + "' already exists."})
			return
		}
		httperr.Internal(c, "failed_to_update_area", "Could not update area.")
		return
	}

	httpresp.Message(c, http.StatusOK, "Area updated successfully.", "area", gin.H{
		"id":         a.ID,
		"name":       a.Name,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	})
}

func (h *AreaHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), userID, id); err != nil {
		switch {
		case httperr.IsBusiness(err, "area_not_found"):
			httperr.NotFound(c, "area_not_found", "Area not found.")
		case httperr.IsBusiness(err, "area_has_postcodes"):
			httperr.BadRequest(c, "area_has_postcodes", "Area still has postcodes assigned and cannot be deleted.")
		default:
			httperr.Internal(c, "failed_to_delete_area", "Could not delete area.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Area deleted successfully."})
}
