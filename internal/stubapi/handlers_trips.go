package stubapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/pkg/util"
)

// handleSearchTrips implements GET /trips/search.
func (s *Server) handleSearchTrips(c *fiber.Ctx) error {
	trips := s.store.SearchTrips(c.Query("origin"), c.Query("destination"), c.Query("date"))
	return c.JSON(fiber.Map{"data": trips})
}

// handleTripSeats implements GET /trip-seats/trip/:id.
func (s *Server) handleTripSeats(c *fiber.Ctx) error {
	seats, err := s.store.TripSeats(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": seats})
}

// handleMyTrips implements GET /trips/my-trips/:userId for crew members.
func (s *Server) handleMyTrips(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	userID := c.Params("userId")
	if principal.UserID != userID {
		return util.NewForbidden("cannot read another user's trips")
	}
	return c.JSON(fiber.Map{"data": s.store.MyTrips(userID)})
}

// handleUpdateTripStatus implements PUT /trips/:id/status.
func (s *Server) handleUpdateTripStatus(c *fiber.Ctx) error {
	var req domain.TripStatusUpdate
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	trip, err := s.store.UpdateTripStatus(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": trip})
}
