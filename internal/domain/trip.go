package domain

import (
	"net/url"
	"time"
)

// TripStatus enumerates lifecycle states for a scheduled trip.
type TripStatus string

const (
	TripStatusScheduled TripStatus = "SCHEDULED"
	TripStatusBoarding  TripStatus = "BOARDING"
	TripStatusDeparted  TripStatus = "DEPARTED"
	TripStatusArrived   TripStatus = "ARRIVED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// Valid reports whether the status is a known lifecycle state.
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusScheduled, TripStatusBoarding, TripStatusDeparted, TripStatusArrived, TripStatusCancelled:
		return true
	}
	return false
}

// Trip is a scheduled departure on a route.
type Trip struct {
	TripID         string     `json:"tripId"`
	RouteName      string     `json:"routeName"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	DepartureTime  time.Time  `json:"departureTime"`
	ArrivalTime    time.Time  `json:"arrivalTime"`
	Price          float64    `json:"price"`
	VehiclePlate   string     `json:"vehiclePlate,omitempty"`
	Status         TripStatus `json:"status"`
	AvailableSeats int        `json:"availableSeats"`
	DriverID       string     `json:"driverId,omitempty"`
	AssistantID    string     `json:"assistantId,omitempty"`
}

// Seat is a single seat on a trip's vehicle.
type Seat struct {
	SeatID     string `json:"seatId"`
	TripID     string `json:"tripId"`
	SeatNumber string `json:"seatNumber"`
	Booked     bool   `json:"isBooked"`
}

// TripSearchFilters are passed through verbatim as query parameters on
// GET /trips/search. The Date field is a calendar day in YYYY-MM-DD form.
type TripSearchFilters struct {
	Origin      string
	Destination string
	Date        string
}

// Values encodes the non-empty filters as URL query parameters.
func (f TripSearchFilters) Values() url.Values {
	v := url.Values{}
	if f.Origin != "" {
		v.Set("origin", f.Origin)
	}
	if f.Destination != "" {
		v.Set("destination", f.Destination)
	}
	if f.Date != "" {
		v.Set("date", f.Date)
	}
	return v
}

// TripStatusUpdate is the payload for PUT /trips/:id/status, issued by the
// crew from the tracking screen.
type TripStatusUpdate struct {
	Status TripStatus `json:"status"`
	Note   string     `json:"note,omitempty"`
}
