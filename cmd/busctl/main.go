package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/api"
	"github.com/dungnt9/bus-reservation-client/internal/config"
	"github.com/dungnt9/bus-reservation-client/internal/nav"
	"github.com/dungnt9/bus-reservation-client/internal/observability"
	"github.com/dungnt9/bus-reservation-client/internal/service"
	"github.com/dungnt9/bus-reservation-client/internal/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "busctl",
		Short: "Command-line client for the bus reservation service",
		Long: `busctl talks to the bus reservation API: search trips, book seats,
view invoices, track trips, and manage your account. Credentials are kept in
a local session file until they expire or you log out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		registerCmd(),
		otpCmd(),
		passwordCmd(),
		searchCmd(),
		tripCmd(),
		bookCmd(),
		invoicesCmd(),
		profileCmd(),
		myTripsCmd(),
		tripStatusCmd(),
		openCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// app bundles the wired SDK for command handlers. One instance per
// invocation, constructed lazily so config errors surface per command.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	sess      *session.Session
	client    *api.Client
	auth      *service.AuthGateway
	customers *service.CustomerService
	trips     *service.TripService
	guard     *nav.Guard
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "error"})
	if err != nil {
		return nil, err
	}

	sess := session.New(session.NewFileStore(cfg.Client.StateFile), logger)
	sess.Events().Subscribe(session.EventNavigate, func(e session.Event) {
		fmt.Fprintf(os.Stderr, "session expired, please sign in again (%s)\n", e.Target)
	})

	client := api.New(api.Options{
		BaseURL:    cfg.Client.APIBaseURL,
		Session:    sess,
		HTTPClient: &http.Client{Timeout: cfg.Client.Timeout()},
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		sess:      sess,
		client:    client,
		auth:      service.NewAuthGateway(client, sess, logger),
		customers: service.NewCustomerService(client, sess),
		trips:     service.NewTripService(client, sess),
		guard:     nav.NewGuard(sess, nil),
	}, nil
}

// ensureScreen runs the navigation guard for the screen backing a command.
func (a *app) ensureScreen(path string) error {
	decision := a.guard.Decide(path)
	if decision.Allowed {
		return nil
	}
	if decision.Redirect == nav.LoginPath {
		return fmt.Errorf("you need to sign in first (busctl login)")
	}
	return fmt.Errorf("your account cannot open %s", path)
}
