package stubapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/pkg/util"
)

// handleGetCustomer implements GET /customers/:id. Customers can only read
// their own profile.
func (s *Server) handleGetCustomer(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	customerID := c.Params("id")
	if principal.CustomerID != customerID {
		return util.NewForbidden("cannot read another customer's profile")
	}
	customer, err := s.store.Customer(customerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customer})
}

// handleUpdateCustomer implements PUT /customers/:id.
func (s *Server) handleUpdateCustomer(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	customerID := c.Params("id")
	if principal.CustomerID != customerID {
		return util.NewForbidden("cannot update another customer's profile")
	}
	var req domain.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	customer, err := s.store.UpdateCustomer(customerID, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customer})
}
