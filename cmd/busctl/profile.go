package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your customer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.ensureScreen("/account"); err != nil {
				return err
			}
			customer, err := app.customers.Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Name:    %s\n", customer.FullName)
			fmt.Printf("Phone:   %s\n", customer.PhoneNumber)
			if customer.Email != "" {
				fmt.Printf("Email:   %s\n", customer.Email)
			}
			if customer.Address != "" {
				fmt.Printf("Address: %s\n", customer.Address)
			}
			return nil
		},
	}

	cmd.AddCommand(profileUpdateCmd())
	return cmd
}

func profileUpdateCmd() *cobra.Command {
	var name, email, address string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.ensureScreen("/account"); err != nil {
				return err
			}
			customer, err := app.customers.UpdateProfile(cmd.Context(), domain.ProfileUpdate{
				FullName: name,
				Email:    email,
				Address:  address,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Profile updated: %s\n", customer.FullName)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&address, "address", "", "Address")
	return cmd
}
