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

type ItemHandler struct {
	db *gorm.DB
}

func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{db: db}
}

// --------- Requests ---------

type ItemRequest struct {
	Name             string   `json:"name" binding:"required"`
	Category         uint     `json:"category" binding:"required"`
	Description      string   `json:"description"`
	WashingPrice     *float64 `json:"washing_price"`
	DrycleaningPrice *float64 `json:"drycleaning_price"`
	Pieces           *int     `json:"pieces"`
}

// --------- Helpers ---------

func itemPayload(it *models.Item) gin.H {
	return gin.H{
		"id":                it.ID,
		"name":              it.Name,
		"category":          it.CategoryID,
		"description":       it.Description,
		"washing_price":     it.WashingPrice,
		"drycleaning_price": it.DrycleaningPrice,
		"pieces":            it.Pieces,
		"created_at":        it.CreatedAt,
		"updated_at":        it.UpdatedAt,
	}
}

func (h *ItemHandler) validate(req *ItemRequest, excludeID uint) (string, map[string]string, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fields["name"] = "Item name is required."
		return name, fields, nil
	}

	var cat models.Category
	if err := h.db.First(&cat, req.Category).Error; err != nil {
		fields["category"] = "Category not found."
	}

	if req.WashingPrice != nil && *req.WashingPrice < 0 {
		fields["washing_price"] = "Washing price cannot be negative."
	}
	if req.DrycleaningPrice != nil && *req.DrycleaningPrice < 0 {
		fields["drycleaning_price"] = "Drycleaning price cannot be negative."
	}
	if req.Pieces != nil && *req.Pieces < 1 {
		fields["pieces"] = "Pieces must be at least 1."
	}

	// Names only have to be unique inside their category.
	var count int64
	if err := h.db.Model(&models.Item{}).
		Where("category_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", req.Category, name, excludeID).
		Count(&count).Error; err != nil {
		return name, nil, err
	}
	if count > 0 {
		fields["name"] = "Item '" + name + "' already exists in this category."
	}

	if len(fields) == 0 {
		return name, nil, nil
	}
	return name, fields, nil
}

// --------- Handlers ---------

func (h *ItemHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Item{})

	if category := c.Query("category"); category != "" {
		id, err := strconv.ParseUint(category, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid category filter.")
			return
		}
		q = q.Where("category_id = ?", id)
	}

	var items []models.Item
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_items", "Could not list items.")
		return
	}

	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, itemPayload(&items[i]))
	}
	httpresp.OK(c, out)
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"name": "Item name and category are required."})
		return
	}

	name, fields, err := h.validate(&req, 0)
	if err != nil {
		httperr.Internal(c, "failed_to_create_item", "Could not create item.")
		return
	}
	if fields != nil {
		httperr.Validation(c, fields)
		return
	}

	it := models.Item{
		Name:        name,
		CategoryID:  req.Category,
		Description: req.Description,
		Pieces:      1,
	}
	if req.WashingPrice != nil {
		it.WashingPrice = *req.WashingPrice
	}
	if req.DrycleaningPrice != nil {
		it.DrycleaningPrice = *req.DrycleaningPrice
	}
	if req.Pieces != nil {
		it.Pieces = *req.Pieces
	}

	if err := h.db.Create(&it).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"name": "Item '" + name + "' already exists in this category."})
			return
		}
		httperr.Internal(c, "failed_to_create_item", "Could not create item.")
		return
	}

	httpresp.Created(c, "Item created successfully.", "item", itemPayload(&it))
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var it models.Item
	if err := h.db.First(&it, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	httpresp.OK(c, itemPayload(&it))
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var it models.Item
	if err := h.db.First(&it, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"name": "Item name and category are required."})
		return
	}

	name, fields, err := h.validate(&req, it.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_update_item", "Could not update item.")
		return
	}
	if fields != nil {
		httperr.Validation(c, fields)
		return
	}

	it.Name = name
	it.CategoryID = req.Category
	it.Description = req.Description
	if req.WashingPrice != nil {
		it.WashingPrice = *req.WashingPrice
	}
	if req.DrycleaningPrice != nil {
		it.DrycleaningPrice = *req.DrycleaningPrice
	}
	if req.Pieces != nil {
		it.Pieces = *req.Pieces
	}

	if err := h.db.Save(&it).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"name": "Item '" + name + "' already exists in this category."})
			return
		}
		httperr.Internal(c, "failed_to_update_item", "Could not update item.")
		return
	}

	httpresp.Message(c, http.StatusOK, "Item updated successfully.", "item", itemPayload(&it))
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var it models.Item
	if err := h.db.First(&it, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	if err := h.db.Delete(&it).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_item", "Could not delete item.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully."})
}
