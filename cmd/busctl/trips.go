package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

func searchCmd() *cobra.Command {
	var origin, destination, date string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			trips, err := app.customers.SearchTrips(cmd.Context(), domain.TripSearchFilters{
				Origin:      origin,
				Destination: destination,
				Date:        date,
			})
			if err != nil {
				return err
			}
			if len(trips) == 0 {
				fmt.Println("No trips found")
				return nil
			}
			for _, trip := range trips {
				fmt.Printf("%s  %s -> %s  %s  %.0f VND  %d seats free  [%s]\n",
					trip.TripID, trip.Origin, trip.Destination,
					trip.DepartureTime.Format("2006-01-02 15:04"),
					trip.Price, trip.AvailableSeats, trip.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "from", "", "Origin")
	cmd.Flags().StringVar(&destination, "to", "", "Destination")
	cmd.Flags().StringVar(&date, "date", "", "Departure date (YYYY-MM-DD)")
	return cmd
}

func tripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trip <trip-id>",
		Short: "Show trip details and seat availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			tripID := args[0]

			var seats []domain.Seat
			var trips []domain.Trip
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				seats, err = app.customers.TripSeats(ctx, tripID)
				return err
			})
			g.Go(func() error {
				var err error
				trips, err = app.customers.SearchTrips(ctx, domain.TripSearchFilters{})
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			for _, trip := range trips {
				if trip.TripID == tripID {
					fmt.Printf("%s  %s -> %s  %s  %.0f VND\n",
						trip.RouteName, trip.Origin, trip.Destination,
						trip.DepartureTime.Format("2006-01-02 15:04"), trip.Price)
					break
				}
			}
			fmt.Println("Seats:")
			for _, seat := range seats {
				mark := " "
				if seat.Booked {
					mark = "x"
				}
				fmt.Printf("  [%s] %s\n", mark, seat.SeatNumber)
			}
			return nil
		},
	}
}

func myTripsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-trips",
		Short: "List trips assigned to you (crew only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.ensureScreen("/track"); err != nil {
				return err
			}
			trips, err := app.trips.MyTrips(cmd.Context())
			if err != nil {
				return err
			}
			if len(trips) == 0 {
				fmt.Println("No assigned trips")
				return nil
			}
			for _, trip := range trips {
				fmt.Printf("%s  %s -> %s  %s  [%s]\n",
					trip.TripID, trip.Origin, trip.Destination,
					trip.DepartureTime.Format("2006-01-02 15:04"), trip.Status)
			}
			return nil
		},
	}
}

func tripStatusCmd() *cobra.Command {
	var status, note string

	cmd := &cobra.Command{
		Use:   "trip-status <trip-id>",
		Short: "Update a trip's status (crew only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.ensureScreen("/track"); err != nil {
				return err
			}
			trip, err := app.trips.UpdateStatus(cmd.Context(), args[0], domain.TripStatusUpdate{
				Status: domain.TripStatus(status),
				Note:   note,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Trip %s is now %s\n", trip.TripID, trip.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (SCHEDULED, BOARDING, DEPARTED, ARRIVED, CANCELLED)")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
