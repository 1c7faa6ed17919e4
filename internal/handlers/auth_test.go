package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/services"
)

// memStore is an in-memory services.UserStore for HTTP round-trip tests.
type memStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}}
}

func (s *memStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return errors.New("duplicate key")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *memStore) MarkVerified(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[email]; ok {
		user.EmailVerified = true
		user.OTP = nil
		user.OTPExpires = nil
	}
	return nil
}

func (s *memStore) SetChallenge(_ context.Context, email, code string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[email]; ok {
		user.OTP = &code
		user.OTPExpires = &expires
	}
	return nil
}

func (s *memStore) UpdatePassword(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[email]; ok {
		user.PasswordHash = passwordHash
		user.OTP = nil
		user.OTPExpires = nil
	}
	return nil
}

// silentMailer records the last code per address without sending anything.
type silentMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func newSilentMailer() *silentMailer {
	return &silentMailer{codes: map[string]string{}}
}

func (m *silentMailer) SendVerificationOTP(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func (m *silentMailer) SendPasswordResetOTP(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func newTestApp() (*fiber.App, *memStore, *silentMailer) {
	store := newMemStore()
	mailer := newSilentMailer()
	svc := services.NewAuthService(store, mailer, "test-secret", 24*time.Hour)
	h := NewAuthHandler(svc)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/verify-otp", h.VerifyOTP)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)
	return app, store, mailer
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"email":    "a@b.com",
		"password": "secret1",
		"country":  "US",
		"role":     "customer",
	}
}

func TestRegisterEndpoint_Created(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp()

	resp, body := postJSON(t, app, "/api/auth/register", registerPayload())

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered. Please verify your email with the OTP sent.", body["message"])
	assert.NotContains(t, body, "token", "registration must not issue a token")
}

func TestRegisterEndpoint_ValidationErrors(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp()

	resp, body := postJSON(t, app, "/api/auth/register", map[string]interface{}{
		"email":    "not-an-email",
		"password": "abc",
		"country":  "",
		"role":     "admin",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields, ok := body["errors"].([]interface{})
	require.True(t, ok, "expected field error list, got %v", body)
	assert.Len(t, fields, 4)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp()

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/api/auth/register", registerPayload())
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email already exists", body["error"])
}

func TestVerifyOTPEndpoint_HappyPath(t *testing.T) {
	t.Parallel()
	app, _, mailer := newTestApp()

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/api/auth/verify-otp", map[string]interface{}{
		"email": "a@b.com",
		"otp":   mailer.codes["a@b.com"],
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Email verified", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestVerifyOTPEndpoint_WrongCode(t *testing.T) {
	t.Parallel()
	app, _, mailer := newTestApp()

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	wrong := "000000"
	if mailer.codes["a@b.com"] == wrong {
		wrong = "000001"
	}

	resp, body := postJSON(t, app, "/api/auth/verify-otp", map[string]interface{}{
		"email": "a@b.com",
		"otp":   wrong,
	})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid or expired OTP", body["error"])
	assert.NotContains(t, body, "token")
}

func TestVerifyOTPEndpoint_UnknownEmail(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp()

	resp, body := postJSON(t, app, "/api/auth/verify-otp", map[string]interface{}{
		"email": "nobody@b.com",
		"otp":   "123456",
	})

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "user not found", body["error"])
}

func TestLoginEndpoint_CredentialErrorsIndistinguishable(t *testing.T) {
	t.Parallel()
	app, _, mailer := newTestApp()

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = postJSON(t, app, "/api/auth/verify-otp", map[string]interface{}{
		"email": "a@b.com", "otp": mailer.codes["a@b.com"],
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	respUnknown, bodyUnknown := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "nobody@b.com", "password": "secret1",
	})
	respWrong, bodyWrong := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "a@b.com", "password": "wrong-password",
	})

	assert.Equal(t, fiber.StatusUnauthorized, respUnknown.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, respWrong.StatusCode)
	assert.Equal(t, bodyUnknown, bodyWrong, "unknown email and wrong password must be indistinguishable")
}

func TestLoginEndpoint_UnverifiedDistinct(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp()

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "a@b.com", "password": "secret1",
	})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "please verify your email first", body["error"])
}

func TestForgotAndResetPasswordEndpoints(t *testing.T) {
	t.Parallel()
	app, _, mailer := newTestApp()

	resp, _ := postJSON(t, app, "/api/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = postJSON(t, app, "/api/auth/verify-otp", map[string]interface{}{
		"email": "a@b.com", "otp": mailer.codes["a@b.com"],
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, app, "/api/auth/forgot-password", map[string]interface{}{
		"email": "a@b.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Password reset OTP sent to your email", body["message"])

	resp, body = postJSON(t, app, "/api/auth/reset-password", map[string]interface{}{
		"email":       "a@b.com",
		"otp":         mailer.codes["a@b.com"],
		"newPassword": "newsecret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Password reset successfully", body["message"])
	assert.NotContains(t, body, "token")

	resp, body = postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "a@b.com", "password": "newsecret",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "a@b.com", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestForgotPasswordEndpoint_UnknownEmail(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp()

	resp, body := postJSON(t, app, "/api/auth/forgot-password", map[string]interface{}{
		"email": "nobody@b.com",
	})

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "user not found", body["error"])
}
