package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

func TestMyTrips_Driver(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Login(ctx, driverPhone, seedPassword); err != nil {
		t.Fatalf("login driver: %v", err)
	}
	trips, err := env.trips.MyTrips(ctx)
	if err != nil {
		t.Fatalf("my trips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("driver trips: got %d want 2", len(trips))
	}
}

func TestMyTrips_Assistant(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Login(ctx, assistantPhone, seedPassword); err != nil {
		t.Fatalf("login assistant: %v", err)
	}
	trips, err := env.trips.MyTrips(ctx)
	if err != nil {
		t.Fatalf("my trips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("assistant trips: got %d want 2", len(trips))
	}
}

func TestMyTrips_NotSignedIn(t *testing.T) {
	env := newEnv(t)
	if _, err := env.trips.MyTrips(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestUpdateStatus_Driver(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Login(ctx, driverPhone, seedPassword); err != nil {
		t.Fatalf("login driver: %v", err)
	}
	trip, err := env.trips.UpdateStatus(ctx, "T-001", domain.TripStatusUpdate{Status: domain.TripStatusDeparted})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if trip.Status != domain.TripStatusDeparted {
		t.Fatalf("status: got %s want %s", trip.Status, domain.TripStatusDeparted)
	}
}

func TestUpdateStatus_CustomerForbidden(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Login(ctx, customerPhone, seedPassword); err != nil {
		t.Fatalf("login customer: %v", err)
	}
	_, err := env.trips.UpdateStatus(ctx, "T-001", domain.TripStatusUpdate{Status: domain.TripStatusDeparted})
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	// A 403 must not destroy the session the way a 401 would.
	if env.sess.Token() == "" {
		t.Fatal("session should survive a 403")
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Login(ctx, driverPhone, seedPassword); err != nil {
		t.Fatalf("login driver: %v", err)
	}
	if _, err := env.trips.UpdateStatus(ctx, "T-001", domain.TripStatusUpdate{Status: "FLYING"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
