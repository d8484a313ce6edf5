package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

func loginCmd() *cobra.Command {
	var phone, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with phone number and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			user, err := app.auth.Login(cmd.Context(), phone, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s (%s)\n", user.FullName, user.UserRole)
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.auth.Logout(); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if !app.auth.IsAuthenticated() {
				fmt.Println("Not signed in")
				return nil
			}
			user := app.auth.CurrentUser()
			if user == nil {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("%s (%s)\n", user.FullName, user.UserRole)
			if user.CustomerID != "" {
				fmt.Printf("Customer ID: %s\n", user.CustomerID)
			}
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var name, phone, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account (phone must be OTP-verified first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			user, err := app.auth.Register(cmd.Context(), domain.RegisterRequest{
				FullName:    name,
				PhoneNumber: phone,
				Email:       email,
				Password:    password,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Account created for %s, you can sign in now\n", user.PhoneNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func otpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Phone verification codes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "send <phone>",
			Short: "Request a verification code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp()
				if err != nil {
					return err
				}
				if err := app.auth.SendOTP(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("OTP sent")
				return nil
			},
		},
		&cobra.Command{
			Use:   "verify <phone> <code>",
			Short: "Verify a received code",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp()
				if err != nil {
					return err
				}
				if err := app.auth.VerifyOTP(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("Phone number verified")
				return nil
			},
		},
	)
	return cmd
}

func passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password recovery",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "forgot <phone>",
			Short: "Request a password reset code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp()
				if err != nil {
					return err
				}
				if err := app.auth.ForgotPassword(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("Reset code sent")
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset <phone> <code> <new-password>",
			Short: "Reset the password with a received code",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp()
				if err != nil {
					return err
				}
				if err := app.auth.ResetPassword(cmd.Context(), args[0], args[1], args[2]); err != nil {
					return err
				}
				fmt.Println("Password updated")
				return nil
			},
		},
	)
	return cmd
}
