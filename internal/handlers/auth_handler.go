package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	"github.com/LaundryServices01/laundry-admin/internal/auth"
	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/mailer"
	"github.com/LaundryServices01/laundry-admin/internal/models"
	"github.com/LaundryServices01/laundry-admin/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.TokenService
	mailer *mailer.Service
	audit  *audit.Dispatcher
	log    *zap.Logger

	// Overridable so tests run without DNS.
	domainCheck func(string) bool
}

func NewAuthHandler(
	db *gorm.DB,
	tokens *auth.TokenService,
	mailService *mailer.Service,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		db:          db,
		tokens:      tokens,
		mailer:      mailService,
		audit:       auditDispatcher,
		log:         log,
		domainCheck: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// --------- Helpers ---------

// generateCode returns a 4-digit verification/reset code, zero-padded.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// a constant would silently break verification, so give up loudly.
		panic(fmt.Sprintf("failed to generate code: %v", err))
	}
	return fmt.Sprintf("%04d", n.Int64())
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":                u.ID,
		"email":             u.Email,
		"full_name":         u.FullName,
		"phone_number":      u.PhoneNumber,
		"role":              u.Role,
		"is_email_verified": u.IsEmailVerified,
		"address": gin.H{
			"address_line_1": u.AddressLine1,
			"address_line_2": u.AddressLine2,
			"city":           u.City,
			"country":        u.Country,
			"postcode":       u.Postcode,
		},
	}
}

func (h *AuthHandler) findByEmail(email string) (*models.User, error) {
	var user models.User
	err := h.db.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	fields := map[string]string{}
	if err := validators.ValidateFullName(req.FullName); err != nil {
		fields["full_name"] = err.Error()
	}
	if err := validators.ValidateUKPhone(req.PhoneNumber); err != nil {
		fields["phone_number"] = err.Error()
	}
	if err := validators.ValidatePassword(req.Password); err != nil {
		fields["password"] = err.Error()
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, taken := fields["email"]; !taken && !h.domainCheck(email) {
		fields["email"] = "Email domain does not appear to accept mail."
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}
	if count > 0 {
		fields["email"] = "A user with this email already exists."
	}

	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	code := generateCode()
	user := models.User{
		Email:                  email,
		FullName:               strings.TrimSpace(req.FullName),
		PhoneNumber:            req.PhoneNumber,
		PasswordHash:           string(hashed),
		Role:                   "user",
		IsActive:               false,
		IsEmailVerified:        false,
		EmailVerificationToken: &code,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Validation(c, map[string]string{"email": "A user with this email already exists."})
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}

	// Best effort: the account exists either way, the code can be resent.
	if err := h.mailer.SendVerificationCode(c.Request.Context(), &user); err != nil {
		h.log.Warn("verification email not sent",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful! Please check your email for verification code.",
		"user":    userPayload(&user),
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and verification code are required.")
		return
	}

	user, err := h.findByEmail(req.Email)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.IsEmailVerified {
		c.JSON(http.StatusOK, gin.H{"message": "Email is already verified."})
		return
	}

	if user.EmailVerificationToken == nil || *user.EmailVerificationToken != req.Code {
		httperr.BadRequest(c, "invalid_verification_code", "Invalid verification code.")
		return
	}

	user.IsEmailVerified = true
	user.IsActive = true
	user.EmailVerificationToken = nil
	if err := h.db.Model(user).Select("is_email_verified", "is_active", "email_verification_token").
		Updates(map[string]any{
			"is_email_verified":        true,
			"is_active":                true,
			"email_verification_token": nil,
		}).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not verify email.")
		return
	}

	pair, err := h.tokens.IssuePair(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate tokens.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "email_verified",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully! You can now login.",
		"refresh": pair.Refresh,
		"access":  pair.Access,
		"user":    userPayload(user),
	})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email is required.")
		return
	}

	user, err := h.findByEmail(req.Email)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.IsEmailVerified {
		c.JSON(http.StatusOK, gin.H{"message": "Email is already verified."})
		return
	}

	code := generateCode()
	if err := h.db.Model(user).Update("email_verification_token", code).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not regenerate verification code.")
		return
	}
	user.EmailVerificationToken = &code

	if err := h.mailer.SendVerificationCode(c.Request.Context(), user); err != nil {
		httperr.Internal(c, "failed_to_send_email", "Could not send verification email.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code resent successfully."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	user, err := h.findByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if !user.IsEmailVerified {
		httperr.Forbidden(c, "email_not_verified", "Please verify your email before logging in.")
		return
	}

	pair, err := h.tokens.IssuePair(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate tokens.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refresh": pair.Refresh,
		"access":  pair.Access,
		"user":    userPayload(user),
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Refresh token is required.")
		return
	}

	access, err := h.tokens.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		httperr.Unauthorized(c, "token_not_valid", "Token is invalid or expired.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Refresh token is required.")
		return
	}

	if err := h.tokens.RevokeRefresh(c.Request.Context(), req.Refresh); err != nil {
		httperr.BadRequest(c, "invalid_token", "Invalid token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
}
