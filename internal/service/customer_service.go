package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dungnt9/bus-reservation-client/internal/api"
	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/internal/session"
)

// ErrNoCustomer is returned by profile operations when no customer account
// is signed in.
var ErrNoCustomer = errors.New("no customer account signed in")

// CustomerService covers trip search, seat lookup, booking, invoices and
// profile management. Each method is a single-attempt call through the HTTP
// client; failures are wrapped with a descriptive message.
type CustomerService struct {
	client *api.Client
	sess   *session.Session
}

// NewCustomerService builds the service.
func NewCustomerService(client *api.Client, sess *session.Session) *CustomerService {
	return &CustomerService{client: client, sess: sess}
}

// SearchTrips passes the filters through verbatim to GET /trips/search.
func (s *CustomerService) SearchTrips(ctx context.Context, filters domain.TripSearchFilters) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := s.client.Get(ctx, "/trips/search", filters.Values(), &trips); err != nil {
		return nil, fmt.Errorf("failed to search trips: %w", err)
	}
	return trips, nil
}

// TripSeats fetches the seat map for a trip.
func (s *CustomerService) TripSeats(ctx context.Context, tripID string) ([]domain.Seat, error) {
	var seats []domain.Seat
	if err := s.client.Get(ctx, "/trip-seats/trip/"+tripID, nil, &seats); err != nil {
		return nil, fmt.Errorf("failed to get trip seats: %w", err)
	}
	return seats, nil
}

// BookTickets creates an invoice for the requested seats.
func (s *CustomerService) BookTickets(ctx context.Context, req domain.BookingRequest) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := s.client.Post(ctx, "/invoices", req, &invoice); err != nil {
		return nil, fmt.Errorf("failed to book tickets: %w", err)
	}
	return &invoice, nil
}

// Invoices lists the signed-in customer's invoices.
func (s *CustomerService) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := s.client.Get(ctx, "/invoices/customer", nil, &invoices); err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}
	return invoices, nil
}

// Profile fetches the signed-in customer's profile record.
func (s *CustomerService) Profile(ctx context.Context) (*domain.Customer, error) {
	user := s.sess.CurrentUser()
	if user == nil || user.CustomerID == "" {
		return nil, ErrNoCustomer
	}
	var customer domain.Customer
	if err := s.client.Get(ctx, "/customers/"+user.CustomerID, nil, &customer); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &customer, nil
}

// UpdateProfile applies the update and mutates the stored user record in
// place so the display name stays consistent across the session.
func (s *CustomerService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Customer, error) {
	user := s.sess.CurrentUser()
	if user == nil || user.CustomerID == "" {
		return nil, ErrNoCustomer
	}
	var customer domain.Customer
	if err := s.client.Put(ctx, "/customers/"+user.CustomerID, update, &customer); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if customer.FullName != "" && customer.FullName != user.FullName {
		user.FullName = customer.FullName
		_ = s.sess.UpdateUser(user)
	}
	return &customer, nil
}
