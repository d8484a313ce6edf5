package domain

import "time"

// Invoice is a paid booking covering one or more seats on a trip.
type Invoice struct {
	InvoiceID     string    `json:"invoiceId"`
	CustomerID    string    `json:"customerId"`
	TripID        string    `json:"tripId"`
	SeatNumbers   []string  `json:"seatNumbers"`
	TotalAmount   float64   `json:"totalAmount"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookingRequest is the payload for POST /invoices.
type BookingRequest struct {
	TripID        string   `json:"tripId"`
	SeatNumbers   []string `json:"seatNumbers"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
}
