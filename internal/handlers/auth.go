package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/services"
	"github.com/example/skwermkt/internal/utils"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Country  string `json:"country"`
	Role     string `json:"role"`
	Title    string `json:"title"`
	About    string `json:"about"`
}

// Register creates a new unverified account and sends a verification OTP.
// No token is returned; the caller must verify the email first.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.Email("email", req.Email).
		MinLen("password", req.Password, 6).
		MinLen("country", req.Country, 1).
		OneOf("role", req.Role, models.RoleVendor, models.RoleCustomer)
	if err := v.Err(); err != nil {
		return err
	}

	err := h.auth.Register(c.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Country:  req.Country,
		Role:     req.Role,
		Title:    req.Title,
		About:    req.About,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			return fiber.NewError(fiber.StatusConflict, "email already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered. Please verify your email with the OTP sent.",
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP validates the emailed code and issues a session token.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.Email("email", req.Email).ExactLen("otp", req.OTP, 6)
	if err := v.Err(); err != nil {
		return err
	}

	token, err := h.auth.VerifyOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		return mapAuthError(err)
	}

	return c.JSON(fiber.Map{
		"message": "Email verified",
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified account.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.Email("email", req.Email).MinLen("password", req.Password, 6)
	if err := v.Err(); err != nil {
		return err
	}

	token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	return c.JSON(fiber.Map{"token": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a fresh password-reset OTP.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.Email("email", req.Email)
	if err := v.Err(); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.Context(), req.Email); err != nil {
		return mapAuthError(err)
	}

	return c.JSON(fiber.Map{"message": "Password reset OTP sent to your email"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword replaces the password after a successful OTP check.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	v := &utils.Validator{}
	v.Email("email", req.Email).
		ExactLen("otp", req.OTP, 6).
		MinLen("newPassword", req.NewPassword, 6)
	if err := v.Err(); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return mapAuthError(err)
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}

// mapAuthError translates service sentinels to HTTP errors. The credential
// and OTP errors carry deliberately generic messages; unrecognized errors
// bubble to the app-level error handler as a 500.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrInvalidOTP):
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired OTP")
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, services.ErrUnverifiedEmail):
		return fiber.NewError(fiber.StatusUnauthorized, "please verify your email first")
	default:
		return err
	}
}
