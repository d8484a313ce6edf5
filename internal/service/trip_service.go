package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dungnt9/bus-reservation-client/internal/api"
	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/internal/session"
)

// ErrNotSignedIn is returned when a crew operation runs without a session.
var ErrNotSignedIn = errors.New("user not authenticated")

// TripService covers the crew-facing tracking operations.
type TripService struct {
	client *api.Client
	sess   *session.Session
}

// NewTripService builds the service.
func NewTripService(client *api.Client, sess *session.Session) *TripService {
	return &TripService{client: client, sess: sess}
}

// MyTrips lists trips assigned to the signed-in crew member.
func (s *TripService) MyTrips(ctx context.Context) ([]domain.Trip, error) {
	user := s.sess.CurrentUser()
	if user == nil {
		return nil, ErrNotSignedIn
	}
	var trips []domain.Trip
	if err := s.client.Get(ctx, "/trips/my-trips/"+user.UserID, nil, &trips); err != nil {
		return nil, fmt.Errorf("failed to fetch my trips: %w", err)
	}
	return trips, nil
}

// UpdateStatus moves a trip through its lifecycle from the tracking screen.
func (s *TripService) UpdateStatus(ctx context.Context, tripID string, update domain.TripStatusUpdate) (*domain.Trip, error) {
	var trip domain.Trip
	if err := s.client.Put(ctx, "/trips/"+tripID+"/status", update, &trip); err != nil {
		return nil, fmt.Errorf("failed to update trip status: %w", err)
	}
	return &trip, nil
}
