package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/httpresp"
	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns audit entries, newest first, filterable by action,
// entity and user.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if user := c.Query("user"); user != "" {
		id, err := strconv.ParseUint(user, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Invalid user filter.")
			return
		}
		q = q.Where("user_id = ?", id)
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			httperr.BadRequest(c, "invalid_filter", "Invalid limit.")
			return
		}
		limit = n
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, gin.H{
			"id":         l.ID,
			"user":       l.UserID,
			"action":     l.Action,
			"entity":     l.Entity,
			"entity_id":  l.EntityID,
			"metadata":   l.Metadata,
			"created_at": l.CreatedAt,
		})
	}
	httpresp.OK(c, out)
}
