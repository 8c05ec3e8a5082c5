package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/mailer"
	"github.com/LaundryServices01/laundry-admin/internal/models"
	"github.com/LaundryServices01/laundry-admin/internal/validators"
)

type PasswordHandler struct {
	db     *gorm.DB
	mailer *mailer.Service
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewPasswordHandler(
	db *gorm.DB,
	mailService *mailer.Service,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *PasswordHandler {
	return &PasswordHandler{
		db:     db,
		mailer: mailService,
		audit:  auditDispatcher,
		log:    log,
	}
}

// --------- Requests ---------

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Code            string `json:"code" binding:"required,len=4"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// The same body goes out whether or not the account exists, so the
// endpoint cannot be used to enumerate registered emails.
const forgotPasswordMessage = "If the email exists, a password reset code has been sent."

// --------- Handlers ---------

func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email is required.")
		return
	}

	var user models.User
	err := h.db.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
			return
		}
		httperr.Internal(c, "internal_error", "Could not process request.")
		return
	}

	if !user.IsEmailVerified {
		httperr.BadRequest(c, "email_not_verified", "Please verify your email first before resetting password.")
		return
	}

	code := generateCode()
	if err := h.db.Model(&user).Update("password_reset_token", code).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not process request.")
		return
	}
	user.PasswordResetToken = &code

	if err := h.mailer.SendPasswordResetCode(c.Request.Context(), &user); err != nil {
		h.log.Warn("password reset email not sent",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_reset_requested",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	fields := map[string]string{}
	if err := validators.ValidatePassword(req.Password); err != nil {
		fields["password"] = err.Error()
	}
	if req.Password != req.ConfirmPassword {
		fields["confirm_password"] = "Passwords do not match."
	}
	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	var user models.User
	if err := h.db.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.PasswordResetToken == nil {
		httperr.BadRequest(c, "no_reset_request", "No password reset request found. Please request a new code.")
		return
	}

	if *user.PasswordResetToken != req.Code {
		httperr.BadRequest(c, "invalid_reset_code", "Invalid verification code.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	if err := h.db.Model(&user).Updates(map[string]any{
		"password_hash":        string(hashed),
		"password_reset_token": nil,
	}).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not reset password.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_reset",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful! You can now login with your new password."})
}
