package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/httpresp"
	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// --------- Helpers ---------

func categoryPayload(cat *models.Category) gin.H {
	return gin.H{
		"id":          cat.ID,
		"name":        cat.Name,
		"description": cat.Description,
		"created_at":  cat.CreatedAt,
		"updated_at":  cat.UpdatedAt,
	}
}

// --------- Handlers ---------

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	out := make([]gin.H, 0, len(categories))
	for i := range categories {
		out = append(out, categoryPayload(&categories[i]))
	}
	httpresp.OK(c, out)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"name": "Category name is required."})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.Validation(c, map[string]string{"name": "Category name is required."})
		return
	}

	var count int64
	if err := h.db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Could not create category.")
		return
	}
	if count > 0 {
		httperr.Validation(c, map[string]string{"name": "Category '" + name + "' already exists."})
		return
	}

	cat := models.Category{Name: name, Description: req.Description}
	if err := h.db.Create(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"name": "Category '" + name + "' already exists."})
			return
		}
		httperr.Internal(c, "failed_to_create_category", "Could not create category.")
		return
	}

	httpresp.Created(c, "Category created successfully.", "category", categoryPayload(&cat))
}

// Get returns the category with its items embedded.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var cat models.Category
	if err := h.db.Preload("Items").First(&cat, id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	items := make([]gin.H, 0, len(cat.Items))
	for i := range cat.Items {
		items = append(items, itemPayload(&cat.Items[i]))
	}

	payload := categoryPayload(&cat)
	payload["items"] = items
	httpresp.OK(c, payload)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var cat models.Category
	if err := h.db.First(&cat, id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, map[string]string{"name": "Category name is required."})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.Validation(c, map[string]string{"name": "Category name is required."})
		return
	}

	var count int64
	if err := h.db.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, cat.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "Could not update category.")
		return
	}
	if count > 0 {
		httperr.Validation(c, map[string]string{"name": "Category '" + name + "' already exists."})
		return
	}

	cat.Name = name
	cat.Description = req.Description
	if err := h.db.Save(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"name": "Category '" + name + "' already exists."})
			return
		}
		httperr.Internal(c, "failed_to_update_category", "Could not update category.")
		return
	}

	httpresp.Message(c, http.StatusOK, "Category updated successfully.", "category", categoryPayload(&cat))
}

// Delete removes the category; its items go with it.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var cat models.Category
	if err := h.db.First(&cat, id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", cat.ID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_category", "Could not delete category.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
