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
	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type PostcodeHandler struct {
	db *gorm.DB
}

func NewPostcodeHandler(db *gorm.DB) *PostcodeHandler {
	return &PostcodeHandler{db: db}
}

// --------- Requests ---------

type PostcodeRequest struct {
	Postcode string `json:"postcode" binding:"required"`
	Area     uint   `json:"area" binding:"required"`
}

// --------- Helpers ---------

func postcodePayload(p *models.Postcode) gin.H {
	return gin.H{
		"id":         p.ID,
		"postcode":   p.Postcode,
		"area":       p.AreaID,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

// normalizePostcode uppercases and trims so "sw1a 1aa " and "SW1A 1AA"
// are the same code.
func normalizePostcode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (h *PostcodeHandler) validate(req *PostcodeRequest, excludeID uint) (string, map[string]string, error) {
	fields := map[string]string{}

	code := normalizePostcode(req.Postcode)
	if code == "" {
		fields["postcode"] = "Postcode is required."
		return code, fields, nil
	}

	var area models.Area
	if err := h.db.First(&area, req.Area).Error; err != nil {
		fields["area"] = "Area not found."
	}

	var count int64
	if err := h.db.Model(&models.Postcode{}).
		Where("postcode = ? AND id <> ?", code, excludeID).
		Count(&count).Error; err != nil {
		return code, nil, err
	}
	if count > 0 {
		fields["postcode"] = "Postcode '" + code + "' already exists."
	}

	if len(fields) == 0 {
		return code, nil, nil
	}
	return code, fields, nil
}

// --------- Handlers ---------

func (h *PostcodeHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Postcode{})

	if area := c.Query("area"); area != "" {
		id, err := strconv.ParseUint(area, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid area filter.")
			return
		}
		q = q.Where("area_id = ?", id)
	}

	var postcodes []models.Postcode
	if err := q.Order("postcode ASC").Find(&postcodes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_postcodes", "Could not list postcodes.")
		return
	}

	out := make([]gin.H, 0, len(postcodes))
	for i := range postcodes {
		out = append(out, postcodePayload(&postcodes[i]))
	}
	httpresp.OK(c, out)
}

func (h *PostcodeHandler) Create(c *gin.Context) {
	var req PostcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"postcode": "Postcode and area are required."})
		return
	}

	code, fields, err := h.validate(&req, 0)
	if err != nil {
		httperr.Internal(c, "failed_to_create_postcode", "Could not create postcode.")
		return
	}
	if fields != nil {
		httperr.Validation(c, fields)
		return
	}

	p := models.Postcode{Postcode: code, AreaID: req.Area}
	if err := h.db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"postcode": "Postcode '" + code + "' already exists."})
			return
		}
		httperr.Internal(c, "failed_to_create_postcode", "Could not create postcode.")
		return
	}

	httpresp.Created(c, "Postcode created successfully.", "postcode", postcodePayload(&p))
}

func (h *PostcodeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var p models.Postcode
	if err := h.db.First(&p, id).Error; err != nil {
		httperr.NotFound(c, "postcode_not_found", "Postcode not found.")
		return
	}

	httpresp.OK(c, postcodePayload(&p))
}

func (h *PostcodeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var p models.Postcode
	if err := h.db.First(&p, id).Error; err != nil {
		httperr.NotFound(c, "postcode_not_found", "Postcode not found.")
		return
	}

	var req PostcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"postcode": "Postcode and area are required."})
		return
	}

	code, fields, err := h.validate(&req, p.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_update_postcode", "Could not update postcode.")
		return
	}
	if fields != nil {
		httperr.Validation(c, fields)
		return
	}

	p.Postcode = code
	p.AreaID = req.Area
	if err := h.db.Save(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"postcode": "Postcode '" + code + "' already exists."})
			return
		}
		httperr.Internal(c, "failed_to_update_postcode", "Could not update postcode.")
		return
	}

	httpresp.Message(c, http.StatusOK, "Postcode updated successfully.", "postcode", postcodePayload(&p))
}

func (h *PostcodeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var p models.Postcode
	if err := h.db.First(&p, id).Error; err != nil {
		httperr.NotFound(c, "postcode_not_found", "Postcode not found.")
		return
	}

	if err := h.db.Delete(&p).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_postcode", "Could not delete postcode.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Postcode deleted successfully."})
}
