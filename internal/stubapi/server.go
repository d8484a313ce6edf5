// Package stubapi is an in-process rendition of the remote reservation API.
// It exists for tests and local development; the real backend is consumed,
// never implemented, by the client.
package stubapi

import (
	"net"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/config"
	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

// Server bundles the fiber app with its in-memory store and token manager.
type Server struct {
	app    *fiber.App
	store  *Store
	tokens *TokenManager
	logger *zap.Logger
}

// New builds a seeded stub server.
func New(cfg config.StubConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewStore(cfg.BcryptCost)
	if err := store.Seed(); err != nil {
		return nil, err
	}

	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		store:  store,
		tokens: NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		logger: logger,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	app := s.app
	app.Use(errorHandlingMiddleware(s.logger))
	app.Use(requestLogger(s.logger))

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
	})

	authed := s.requireAuth()

	auth := app.Group("/auth")
	auth.Post("/user-login", s.handleLogin)
	auth.Post("/verify-phone", s.handleVerifyPhone)
	auth.Post("/verify-otp", s.handleVerifyOTP)
	auth.Post("/register", s.handleRegister)
	auth.Post("/forgot-password", s.handleForgotPassword)
	auth.Post("/reset-password", s.handleResetPassword)
	auth.Post("/request-phone-change", authed, s.handleRequestPhoneChange)
	auth.Post("/verify-phone-change", authed, s.handleVerifyPhoneChange)

	app.Get("/trips/search", s.handleSearchTrips)
	app.Get("/trip-seats/trip/:id", s.handleTripSeats)
	app.Get("/trips/my-trips/:userId", authed, requireRoles(domain.RoleDriver, domain.RoleAssistant), s.handleMyTrips)
	app.Put("/trips/:id/status", authed, requireRoles(domain.RoleDriver, domain.RoleAssistant), s.handleUpdateTripStatus)

	app.Post("/invoices", authed, requireRoles(domain.RoleCustomer), s.handleCreateInvoice)
	app.Get("/invoices/customer", authed, requireRoles(domain.RoleCustomer), s.handleCustomerInvoices)

	app.Get("/customers/:id", authed, s.handleGetCustomer)
	app.Put("/customers/:id", authed, s.handleUpdateCustomer)
}

// App exposes the fiber app, for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Store exposes the backing store, for seeding and OTP retrieval in tests.
func (s *Server) Store() *Store {
	return s.store
}

// Listen serves on the given address until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Listener serves on an existing listener, used by tests with port 0.
func (s *Server) Listener(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
