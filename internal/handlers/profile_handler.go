package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/middleware"
	"github.com/LaundryServices01/laundry-admin/internal/models"
	"github.com/LaundryServices01/laundry-admin/internal/validators"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type AddressRequest struct {
	AddressLine1 string `json:"address_line_1" binding:"required"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city" binding:"required"`
	Country      string `json:"country" binding:"required"`
	Postcode     string `json:"postcode" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName    *string         `json:"full_name,omitempty"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	Address     *AddressRequest `json:"address,omitempty"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(&user)})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	fields := map[string]string{}
	if req.FullName != nil {
		if err := validators.ValidateFullName(*req.FullName); err != nil {
			fields["full_name"] = err.Error()
		}
	}
	if req.PhoneNumber != nil {
		if err := validators.ValidateUKPhone(*req.PhoneNumber); err != nil {
			fields["phone_number"] = err.Error()
		}
	}
	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.AddressLine1 = req.Address.AddressLine1
		user.AddressLine2 = req.Address.AddressLine2
		user.City = req.Address.City
		user.Country = req.Address.Country
		user.Postcode = req.Address.Postcode
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    userPayload(&user),
	})
}
