package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

func bookCmd() *cobra.Command {
	var tripID, seats, payment string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book seats on a trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.ensureScreen("/book"); err != nil {
				return err
			}
			invoice, err := app.customers.BookTickets(cmd.Context(), domain.BookingRequest{
				TripID:        tripID,
				SeatNumbers:   splitSeats(seats),
				PaymentMethod: payment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Booked %s on %s, total %.0f VND (invoice %s)\n",
				strings.Join(invoice.SeatNumbers, ", "), invoice.TripID,
				invoice.TotalAmount, invoice.InvoiceID)
			return nil
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "", "Trip ID")
	cmd.Flags().StringVar(&seats, "seats", "", "Comma-separated seat numbers, e.g. A1,A2")
	cmd.Flags().StringVar(&payment, "payment", "cash", "Payment method")
	_ = cmd.MarkFlagRequired("trip")
	_ = cmd.MarkFlagRequired("seats")
	return cmd
}

func invoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "List your invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.ensureScreen("/invoice"); err != nil {
				return err
			}
			invoices, err := app.customers.Invoices(cmd.Context())
			if err != nil {
				return err
			}
			if len(invoices) == 0 {
				fmt.Println("No invoices")
				return nil
			}
			for _, invoice := range invoices {
				fmt.Printf("%s  trip %s  seats %s  %.0f VND  %s\n",
					invoice.InvoiceID, invoice.TripID,
					strings.Join(invoice.SeatNumbers, ","),
					invoice.TotalAmount,
					invoice.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func splitSeats(raw string) []string {
	var seats []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			seats = append(seats, trimmed)
		}
	}
	return seats
}
