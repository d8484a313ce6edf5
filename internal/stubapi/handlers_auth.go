package stubapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/pkg/util"
)

type phonePayload struct {
	PhoneNumber string `json:"phoneNumber"`
}

type otpPayload struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// handleLogin implements POST /auth/user-login.
func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	if req.PhoneNumber == "" || req.Password == "" {
		return util.NewValidationError("phoneNumber and password required")
	}

	user, err := s.store.Authenticate(req.PhoneNumber, req.Password)
	if err != nil {
		return err
	}
	token, _, err := s.tokens.Generate(user)
	if err != nil {
		return util.NewInternalError(err)
	}
	return c.JSON(fiber.Map{
		"data": domain.LoginResponse{Token: token, User: user},
	})
}

// handleVerifyPhone implements POST /auth/verify-phone. The OTP is written
// to the log instead of an SMS gateway.
func (s *Server) handleVerifyPhone(c *fiber.Ctx) error {
	var req phonePayload
	if err := c.BodyParser(&req); err != nil || req.PhoneNumber == "" {
		return util.NewValidationError("phoneNumber required")
	}
	if s.store.HasPhone(req.PhoneNumber) {
		return util.NewConflict("phone number already registered")
	}
	code := s.store.IssueOTP(req.PhoneNumber)
	s.logger.Info("otp issued", zap.String("phone", req.PhoneNumber), zap.String("otp", code))
	return c.JSON(fiber.Map{"message": "OTP sent"})
}

// handleVerifyOTP implements POST /auth/verify-otp.
func (s *Server) handleVerifyOTP(c *fiber.Ctx) error {
	var req otpPayload
	if err := c.BodyParser(&req); err != nil || req.PhoneNumber == "" || req.OTP == "" {
		return util.NewValidationError("phoneNumber and otp required")
	}
	if err := s.store.VerifyOTP(req.PhoneNumber, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "phone number verified"})
}

// handleRegister implements POST /auth/register.
func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	user, err := s.store.Register(req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": user},
	})
}

// handleForgotPassword implements POST /auth/forgot-password.
func (s *Server) handleForgotPassword(c *fiber.Ctx) error {
	var req phonePayload
	if err := c.BodyParser(&req); err != nil || req.PhoneNumber == "" {
		return util.NewValidationError("phoneNumber required")
	}
	if !s.store.HasPhone(req.PhoneNumber) {
		return util.NewNotFound("account")
	}
	code := s.store.IssueOTP(req.PhoneNumber)
	s.logger.Info("reset otp issued", zap.String("phone", req.PhoneNumber), zap.String("otp", code))
	return c.JSON(fiber.Map{"message": "reset code sent"})
}

// handleResetPassword implements POST /auth/reset-password.
func (s *Server) handleResetPassword(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	if err := s.store.ResetPassword(req.PhoneNumber, req.OTP, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// handleRequestPhoneChange implements POST /auth/request-phone-change.
func (s *Server) handleRequestPhoneChange(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req struct {
		NewPhoneNumber string `json:"newPhoneNumber"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	code, err := s.store.RequestPhoneChange(principal.UserID, req.NewPhoneNumber)
	if err != nil {
		return err
	}
	s.logger.Info("phone change otp issued", zap.String("phone", req.NewPhoneNumber), zap.String("otp", code))
	return c.JSON(fiber.Map{"message": "OTP sent to new number"})
}

// handleVerifyPhoneChange implements POST /auth/verify-phone-change.
func (s *Server) handleVerifyPhoneChange(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req struct {
		NewPhoneNumber string `json:"newPhoneNumber"`
		OTP            string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	user, err := s.store.VerifyPhoneChange(principal.UserID, req.NewPhoneNumber, req.OTP)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": user}})
}
