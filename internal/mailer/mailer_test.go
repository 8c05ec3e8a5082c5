package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type MockProvider struct {
	To      string
	Subject string
	Body    string
	Err     error
}

func (m *MockProvider) Send(_ context.Context, to, subject, body string) error {
	if m.Err != nil {
		return m.Err
	}
	m.To = to
	m.Subject = subject
	m.Body = body
	return nil
}

func TestSendVerificationCode(t *testing.T) {
	mock := &MockProvider{}
	svc := NewWithProvider(mock, zap.NewNop())

	code := "0427"
	user := &models.User{
		ID:                     1,
		Email:                  "alice@example.com",
		FullName:               "Alice Smith",
		EmailVerificationToken: &code,
	}

	if err := svc.SendVerificationCode(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.To != "alice@example.com" {
		t.Fatalf("unexpected recipient: %s", mock.To)
	}
	if mock.Subject != "Verify Your Email Address" {
		t.Fatalf("unexpected subject: %s", mock.Subject)
	}
	if !strings.Contains(mock.Body, code) {
		t.Fatal("expected body to contain the verification code")
	}
	if !strings.Contains(mock.Body, "Alice Smith") {
		t.Fatal("expected body to greet the user by name")
	}
}

func TestSendVerificationCodeWithoutToken(t *testing.T) {
	svc := NewWithProvider(&MockProvider{}, zap.NewNop())

	user := &models.User{ID: 2, Email: "bob@example.com"}
	if err := svc.SendVerificationCode(context.Background(), user); err == nil {
		t.Fatal("expected error for user without token")
	}
}

func TestSendPasswordResetCode(t *testing.T) {
	mock := &MockProvider{}
	svc := NewWithProvider(mock, zap.NewNop())

	code := "9810"
	user := &models.User{
		ID:                 3,
		Email:              "carol@example.com",
		FullName:           "Carol Jones",
		PasswordResetToken: &code,
	}

	if err := svc.SendPasswordResetCode(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.Body, code) {
		t.Fatal("expected body to contain the reset code")
	}
}

func TestProviderFailureIsWrapped(t *testing.T) {
	sentinel := errors.New("smtp down")
	svc := NewWithProvider(&MockProvider{Err: sentinel}, zap.NewNop())

	code := "1234"
	user := &models.User{ID: 4, Email: "dan@example.com", EmailVerificationToken: &code}

	err := svc.SendVerificationCode(context.Background(), user)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}
