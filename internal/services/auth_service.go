package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/skwermkt/internal/models"
	"github.com/example/skwermkt/internal/utils"
)

// Sentinel errors returned by the auth flows. Handlers map these to HTTP
// statuses; anything else is treated as an internal failure.
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnverifiedEmail    = errors.New("email not verified")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
)

// UserStore is the persistence surface the auth flows need.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// MarkVerified sets email_verified and clears the OTP challenge in one update.
	MarkVerified(ctx context.Context, email string) error
	// SetChallenge stores a fresh OTP code and expiry, replacing any prior challenge.
	SetChallenge(ctx context.Context, email, code string, expires time.Time) error
	// UpdatePassword stores a new password hash and clears the OTP challenge in one update.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// Mailer delivers OTP codes out-of-band.
type Mailer interface {
	SendVerificationOTP(email, code string) error
	SendPasswordResetOTP(email, code string) error
}

// AuthService orchestrates registration, OTP verification, login and the
// password-reset flow.
type AuthService struct {
	store    UserStore
	mailer   Mailer
	secret   string
	tokenTTL time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(store UserStore, mailer Mailer, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:    store,
		mailer:   mailer,
		secret:   jwtSecret,
		tokenTTL: tokenTTL,
	}
}

// RegisterInput carries a validated registration payload.
type RegisterInput struct {
	Email    string
	Password string
	Country  string
	Role     string
	Title    string
	About    string
}

// Register creates an unverified account and dispatches the verification OTP.
// A failed email send does not roll the account back; the user can request a
// new code via ForgotPassword.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	_, err := s.store.ByEmail(ctx, in.Email)
	if err == nil {
		return ErrEmailExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	expires := utils.OTPExpiry()

	user := &models.User{
		Email:         in.Email,
		PasswordHash:  hash,
		Country:       in.Country,
		Role:          in.Role,
		EmailVerified: false,
		OTP:           &code,
		OTPExpires:    &expires,
		Loyalists:     []string{},
	}

	if in.Role == models.RoleVendor {
		banner, colors, fonts := models.DefaultVendorProfile()
		title := in.Title
		if title == "" {
			title = "New Brand"
		}
		about := in.About
		if about == "" {
			about = "New brand description"
		}
		user.Title = &title
		user.About = &about
		user.Banner = &banner
		user.Colors = &colors
		user.Fonts = &fonts
	}

	if err := s.store.Create(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationOTP(in.Email, code); err != nil {
		log.Printf("[Auth] failed to send verification OTP to %s: %v", in.Email, err)
	}

	return nil
}

// VerifyOTP checks the submitted code against the stored challenge, marks the
// email verified and issues a session token.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	user, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !challengeMatches(user, code) {
		return "", ErrInvalidOTP
	}

	if err := s.store.MarkVerified(ctx, email); err != nil {
		return "", err
	}

	return utils.GenerateToken(s.secret, user.ID, user.Role, s.tokenTTL)
}

// Login authenticates a verified account and issues a session token. Unknown
// email and wrong password return the same error so callers cannot enumerate
// accounts; an unverified email is reported distinctly to prompt
// re-verification.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !user.EmailVerified {
		return "", ErrUnverifiedEmail
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(s.secret, user.ID, user.Role, s.tokenTTL)
}

// ForgotPassword issues a fresh OTP challenge for the account, replacing any
// pending one, and dispatches it by email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.store.ByEmail(ctx, email); err != nil {
		return err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	if err := s.store.SetChallenge(ctx, email, code, utils.OTPExpiry()); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetOTP(email, code); err != nil {
		log.Printf("[Auth] failed to send password reset OTP to %s: %v", email, err)
	}

	return nil
}

// ResetPassword replaces the account password after a successful OTP check
// and clears the challenge. No token is issued; the caller logs in again.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !challengeMatches(user, code) {
		return ErrInvalidOTP
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.store.UpdatePassword(ctx, email, hash)
}

// challengeMatches reports whether the submitted code equals the stored one
// and the challenge has not expired. An expiry exactly equal to now counts as
// expired. Mismatch and expiry are indistinguishable to the caller.
func challengeMatches(user *models.User, code string) bool {
	if user.OTP == nil || user.OTPExpires == nil {
		return false
	}
	if *user.OTP != code {
		return false
	}
	return time.Now().Before(*user.OTPExpires)
}
