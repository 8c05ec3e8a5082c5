package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	"github.com/LaundryServices01/laundry-admin/internal/auth"
	dbpkg "github.com/LaundryServices01/laundry-admin/internal/db"
	"github.com/LaundryServices01/laundry-admin/internal/mailer"
	"github.com/LaundryServices01/laundry-admin/internal/models"
)

// capturingProvider records the last mail instead of delivering it.
type capturingProvider struct {
	To      string
	Subject string
	Body    string
	Err     error
	Sent    int
}

func (p *capturingProvider) Send(_ context.Context, to, subject, body string) error {
	if p.Err != nil {
		return p.Err
	}
	p.To = to
	p.Subject = subject
	p.Body = body
	p.Sent++
	return nil
}

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gdb
}

func newAuthRouter(t *testing.T, provider mailer.Provider) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := newHandlerTestDB(t)
	log := zap.NewNop()

	store := auth.NewMemoryTokenStore()
	tokens := auth.NewTokenService("test-secret", store, time.Hour, 24*time.Hour)
	mailService := mailer.NewWithProvider(provider, log)
	dispatcher := audit.NewDispatcher(audit.New(gdb), log)

	authHandler := NewAuthHandler(gdb, tokens, mailService, dispatcher, log)
	authHandler.domainCheck = func(string) bool { return true }
	passwordHandler := NewPasswordHandler(gdb, mailService, dispatcher, log)

	r := gin.New()
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/verify-email", authHandler.VerifyEmail)
	r.POST("/api/auth/resend-verification", authHandler.ResendVerification)
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/token/refresh", authHandler.RefreshToken)
	r.POST("/api/auth/logout", authHandler.Logout)
	r.POST("/api/auth/forgot-password", passwordHandler.ForgotPassword)
	r.POST("/api/auth/reset-password", passwordHandler.ResetPassword)

	return r, gdb
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// List endpoints answer with a bare array; those callers only check
	// the status code.
	var decoded any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	out, _ := decoded.(map[string]any)
	return w.Code, out
}

func registerUser(t *testing.T, r *gin.Engine, email string) {
	t.Helper()

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"full_name":    "Alice Smith",
		"phone_number": "+447911123456",
		"email":        email,
		"password":     "supersecret",
	})
	if code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", code, body)
	}
}

func verificationCode(t *testing.T, gdb *gorm.DB, email string) string {
	t.Helper()

	var user models.User
	if err := gdb.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("user not found: %v", err)
	}
	if user.EmailVerificationToken == nil {
		t.Fatal("expected a verification token on the user")
	}
	return *user.EmailVerificationToken
}

func verifyUser(t *testing.T, r *gin.Engine, gdb *gorm.DB, email string) {
	t.Helper()

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": email,
		"code":  verificationCode(t, gdb, email),
	})
	if code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d (%v)", code, body)
	}
}

// --------------------------------------------------
// Registration + verification
// --------------------------------------------------

func TestRegisterVerifyLoginFlow(t *testing.T) {
	provider := &capturingProvider{}
	r, gdb := newAuthRouter(t, provider)

	registerUser(t, r, "alice@example.com")

	if provider.To != "alice@example.com" {
		t.Fatalf("expected verification mail to alice, got %q", provider.To)
	}

	// Unverified users cannot log in yet.
	code, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 before verification, got %d", code)
	}

	status, body := doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": "alice@example.com",
		"code":  verificationCode(t, gdb, "alice@example.com"),
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}
	if body["access"] == "" || body["refresh"] == "" {
		t.Fatal("expected a token pair after verification")
	}

	var user models.User
	gdb.Where("email = ?", "alice@example.com").First(&user)
	if !user.IsEmailVerified || !user.IsActive {
		t.Fatal("expected user verified and active")
	}
	if user.EmailVerificationToken != nil {
		t.Fatal("expected verification token cleared")
	}

	code, body = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200 login, got %d (%v)", code, body)
	}
	if body["access"] == nil || body["refresh"] == nil {
		t.Fatal("expected tokens in login response")
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	r, _ := newAuthRouter(t, &capturingProvider{})

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"full_name":    "Al",
		"phone_number": "07911123456",
		"email":        "bob@example.com",
		"password":     "short",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected field error map, got %v", body)
	}
	for _, f := range []string{"full_name", "phone_number", "password"} {
		if fields[f] == nil {
			t.Fatalf("expected error for %s, got %v", f, fields)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newAuthRouter(t, &capturingProvider{})

	registerUser(t, r, "dup@example.com")

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"full_name":    "Alice Smith",
		"phone_number": "+447911123456",
		"email":        "DUP@example.com",
		"password":     "supersecret",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", code, body)
	}
	fields, _ := body["errors"].(map[string]any)
	if fields["email"] == nil {
		t.Fatalf("expected email error, got %v", body)
	}
}

func TestRegisterSucceedsWhenMailFails(t *testing.T) {
	provider := &capturingProvider{Err: errors.New("smtp down")}
	r, gdb := newAuthRouter(t, provider)

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"full_name":    "Alice Smith",
		"phone_number": "+447911123456",
		"email":        "offline@example.com",
		"password":     "supersecret",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201 even when mail fails, got %d (%v)", code, body)
	}

	// The account exists with its code; the user can ask for a resend.
	if got := verificationCode(t, gdb, "offline@example.com"); len(got) != 4 {
		t.Fatalf("expected 4-digit code, got %q", got)
	}
}

func TestVerifyEmailWrongCode(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "carol@example.com")

	real := verificationCode(t, gdb, "carol@example.com")
	wrong := "0000"
	if wrong == real {
		wrong = "0001"
	}

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": "carol@example.com",
		"code":  wrong,
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", code, body)
	}

	var user models.User
	gdb.Where("email = ?", "carol@example.com").First(&user)
	if user.IsEmailVerified {
		t.Fatal("expected user to stay unverified after wrong code")
	}
	if user.EmailVerificationToken == nil {
		t.Fatal("expected token kept for another attempt")
	}
}

func TestVerifyEmailAlreadyVerified(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "dave@example.com")
	verifyUser(t, r, gdb, "dave@example.com")

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": "dave@example.com",
		"code":  "1234",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["message"] != "Email is already verified." {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestResendVerificationRotatesCode(t *testing.T) {
	provider := &capturingProvider{}
	r, gdb := newAuthRouter(t, provider)
	registerUser(t, r, "erin@example.com")

	first := verificationCode(t, gdb, "erin@example.com")

	status, body := doJSON(t, r, http.MethodPost, "/api/auth/resend-verification", gin.H{
		"email": "erin@example.com",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}

	second := verificationCode(t, gdb, "erin@example.com")
	if provider.Sent != 2 {
		t.Fatalf("expected two mails, got %d", provider.Sent)
	}

	// The old code only keeps working when the rotation happened to
	// produce the same 4 digits.
	if first != second {
		code, _ := doJSON(t, r, http.MethodPost, "/api/auth/verify-email", gin.H{
			"email": "erin@example.com",
			"code":  first,
		})
		if code != http.StatusBadRequest {
			t.Fatalf("expected stale code rejected, got %d", code)
		}
	}
}

// --------------------------------------------------
// Login + tokens
// --------------------------------------------------

func TestLoginWrongPassword(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "frank@example.com")
	verifyUser(t, r, gdb, "frank@example.com")

	code, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "frank@example.com",
		"password": "wrongpassword",
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := newAuthRouter(t, &capturingProvider{})

	code, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "grace@example.com")
	verifyUser(t, r, gdb, "grace@example.com")

	_, body := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "grace@example.com",
		"password": "supersecret",
	})
	refresh, _ := body["refresh"].(string)
	if refresh == "" {
		t.Fatal("expected a refresh token")
	}

	code, _ := doJSON(t, r, http.MethodPost, "/api/auth/token/refresh", gin.H{"refresh": refresh})
	if code != http.StatusOK {
		t.Fatalf("expected refresh to work before logout, got %d", code)
	}

	code, _ = doJSON(t, r, http.MethodPost, "/api/auth/logout", gin.H{"refresh": refresh})
	if code != http.StatusOK {
		t.Fatalf("expected 200 logout, got %d", code)
	}

	code, _ = doJSON(t, r, http.MethodPost, "/api/auth/token/refresh", gin.H{"refresh": refresh})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected revoked refresh rejected, got %d", code)
	}
}

// --------------------------------------------------
// Password reset
// --------------------------------------------------

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "helen@example.com")
	verifyUser(t, r, gdb, "helen@example.com")

	codeKnown, bodyKnown := doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "helen@example.com",
	})
	codeUnknown, bodyUnknown := doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "ghost@example.com",
	})

	if codeKnown != http.StatusOK || codeUnknown != http.StatusOK {
		t.Fatalf("expected 200 for both, got %d and %d", codeKnown, codeUnknown)
	}
	if bodyKnown["message"] != bodyUnknown["message"] {
		t.Fatalf("responses differ: %v vs %v", bodyKnown["message"], bodyUnknown["message"])
	}
}

func TestForgotPasswordUnverifiedUser(t *testing.T) {
	r, _ := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "ivan@example.com")

	code, _ := doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "ivan@example.com",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unverified user, got %d", code)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "judy@example.com")
	verifyUser(t, r, gdb, "judy@example.com")

	status, _ := doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "judy@example.com",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var user models.User
	gdb.Where("email = ?", "judy@example.com").First(&user)
	if user.PasswordResetToken == nil {
		t.Fatal("expected a reset token on the user")
	}

	status, body := doJSON(t, r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"email":            "judy@example.com",
		"code":             *user.PasswordResetToken,
		"password":         "brandnewpass",
		"confirm_password": "brandnewpass",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}

	gdb.Where("email = ?", "judy@example.com").First(&user)
	if user.PasswordResetToken != nil {
		t.Fatal("expected reset token cleared after use")
	}

	status, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "judy@example.com",
		"password": "supersecret",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected old password rejected, got %d", status)
	}

	status, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "judy@example.com",
		"password": "brandnewpass",
	})
	if status != http.StatusOK {
		t.Fatalf("expected login with new password, got %d", status)
	}
}

func TestResetPasswordValidation(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "kate@example.com")
	verifyUser(t, r, gdb, "kate@example.com")

	doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "kate@example.com"})

	var user models.User
	gdb.Where("email = ?", "kate@example.com").First(&user)

	status, body := doJSON(t, r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"email":            "kate@example.com",
		"code":             *user.PasswordResetToken,
		"password":         "validpassword",
		"confirm_password": "differentpassword",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched confirmation, got %d (%v)", status, body)
	}

	// Wrong code leaves the stored token usable.
	wrong := "0000"
	if wrong == *user.PasswordResetToken {
		wrong = "0001"
	}
	status, _ = doJSON(t, r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"email":            "kate@example.com",
		"code":             wrong,
		"password":         "validpassword",
		"confirm_password": "validpassword",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong code, got %d", status)
	}

	gdb.Where("email = ?", "kate@example.com").First(&user)
	if user.PasswordResetToken == nil {
		t.Fatal("expected token kept after failed attempt")
	}
}

func TestResetPasswordWithoutRequest(t *testing.T) {
	r, gdb := newAuthRouter(t, &capturingProvider{})
	registerUser(t, r, "liam@example.com")
	verifyUser(t, r, gdb, "liam@example.com")

	status, _ := doJSON(t, r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"email":            "liam@example.com",
		"code":             "1234",
		"password":         "validpassword",
		"confirm_password": "validpassword",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 without a pending request, got %d", status)
	}
}
