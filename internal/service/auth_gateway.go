package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/api"
	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/internal/session"
)

// User-facing messages for login failures. The connection error is kept
// distinct from server-rejected outcomes.
var (
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrAccessDenied       = errors.New("access denied")
	ErrLoginFailed        = errors.New("login failed, please try again")
	ErrConnection         = errors.New("connection error, please check your network")
)

// AuthGateway exposes the authentication flows over the HTTP client and
// normalizes failures into user-facing messages.
type AuthGateway struct {
	client *api.Client
	sess   *session.Session
	logger *zap.Logger
}

// NewAuthGateway builds the gateway.
func NewAuthGateway(client *api.Client, sess *session.Session, logger *zap.Logger) *AuthGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthGateway{client: client, sess: sess, logger: logger}
}

// Login posts credentials and, on success, persists the token and user
// record through the session context.
func (g *AuthGateway) Login(ctx context.Context, phoneNumber, password string) (*domain.User, error) {
	var resp domain.LoginResponse
	err := g.client.Post(ctx, "/auth/user-login", domain.LoginRequest{
		PhoneNumber: phoneNumber,
		Password:    password,
	}, &resp)
	if err != nil {
		if apiErr, ok := api.AsAPIError(err); ok && !apiErr.IsNetwork() {
			switch apiErr.Status {
			case http.StatusUnauthorized:
				return nil, ErrInvalidCredentials
			case http.StatusForbidden:
				return nil, ErrAccessDenied
			default:
				return nil, ErrLoginFailed
			}
		}
		return nil, ErrConnection
	}
	if resp.Token == "" || resp.User == nil {
		return nil, ErrLoginFailed
	}
	if err := g.sess.Establish(resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	g.logger.Info("logged in", zap.String("role", string(resp.User.UserRole)))
	return resp.User, nil
}

// SendOTP requests a verification code for a phone number about to register.
func (g *AuthGateway) SendOTP(ctx context.Context, phoneNumber string) error {
	err := g.client.Post(ctx, "/auth/verify-phone", map[string]string{"phoneNumber": phoneNumber}, nil)
	return surface(err, "failed to send OTP")
}

// VerifyOTP confirms the code delivered to the phone number.
func (g *AuthGateway) VerifyOTP(ctx context.Context, phoneNumber, otp string) error {
	err := g.client.Post(ctx, "/auth/verify-otp", map[string]string{
		"phoneNumber": phoneNumber,
		"otp":         otp,
	}, nil)
	return surface(err, "failed to verify OTP")
}

// Register creates a new customer account for a verified phone number.
func (g *AuthGateway) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := g.client.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, surface(err, "registration failed")
	}
	return resp.User, nil
}

// ForgotPassword starts the password reset flow for an existing account.
func (g *AuthGateway) ForgotPassword(ctx context.Context, phoneNumber string) error {
	err := g.client.Post(ctx, "/auth/forgot-password", map[string]string{"phoneNumber": phoneNumber}, nil)
	return surface(err, "failed to request password reset")
}

// ResetPassword completes the reset flow with the delivered code.
func (g *AuthGateway) ResetPassword(ctx context.Context, phoneNumber, otp, newPassword string) error {
	err := g.client.Post(ctx, "/auth/reset-password", map[string]string{
		"phoneNumber": phoneNumber,
		"otp":         otp,
		"newPassword": newPassword,
	}, nil)
	return surface(err, "failed to reset password")
}

// RequestPhoneChange asks for a verification code on the replacement number.
// The endpoint is on the 401 allow-list: a stale session must not be
// destroyed by this call failing.
func (g *AuthGateway) RequestPhoneChange(ctx context.Context, newPhoneNumber string) error {
	err := g.client.Post(ctx, "/auth/request-phone-change", map[string]string{"newPhoneNumber": newPhoneNumber}, nil)
	return surface(err, "failed to request phone change")
}

// VerifyPhoneChange confirms the replacement number and updates the stored
// user record.
func (g *AuthGateway) VerifyPhoneChange(ctx context.Context, newPhoneNumber, otp string) error {
	var resp struct {
		User *domain.User `json:"user"`
	}
	err := g.client.Post(ctx, "/auth/verify-phone-change", map[string]string{
		"newPhoneNumber": newPhoneNumber,
		"otp":            otp,
	}, &resp)
	if err != nil {
		return surface(err, "failed to verify phone change")
	}
	if resp.User != nil {
		_ = g.sess.UpdateUser(resp.User)
	}
	return nil
}

// Logout clears the session. Safe to call when already logged out.
func (g *AuthGateway) Logout() error {
	return g.sess.Terminate()
}

// CurrentUser reads the stored user record. Never fails.
func (g *AuthGateway) CurrentUser() *domain.User {
	return g.sess.CurrentUser()
}

// Token reads the stored token. Never fails.
func (g *AuthGateway) Token() string {
	return g.sess.Token()
}

// IsAuthenticated reports whether an unexpired session is stored.
func (g *AuthGateway) IsAuthenticated() bool {
	return g.sess.IsAuthenticated()
}

// surface returns the server-provided message when there is one, or the
// per-operation fallback.
func surface(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := api.AsAPIError(err); ok && !apiErr.IsNetwork() && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	return errors.New(fallback)
}
