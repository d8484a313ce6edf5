package stubapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/pkg/util"
)

// handleCreateInvoice implements POST /invoices.
func (s *Server) handleCreateInvoice(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req domain.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}
	invoice, err := s.store.CreateInvoice(principal.CustomerID, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": invoice})
}

// handleCustomerInvoices implements GET /invoices/customer.
func (s *Server) handleCustomerInvoices(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": s.store.InvoicesByCustomer(principal.CustomerID)})
}
