package service

import (
	"net"
	"testing"

	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/api"
	"github.com/dungnt9/bus-reservation-client/internal/config"
	"github.com/dungnt9/bus-reservation-client/internal/session"
	"github.com/dungnt9/bus-reservation-client/internal/stubapi"
)

// Seeded stub accounts.
const (
	customerPhone  = "0900000001"
	driverPhone    = "0900000002"
	assistantPhone = "0900000003"
	seedPassword   = "password123"
)

// startStub runs the stub API on a loopback listener and returns its base URL.
func startStub(t *testing.T) (*stubapi.Server, string) {
	t.Helper()
	srv, err := stubapi.New(config.StubConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
		BcryptCost:      4,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("build stub: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = srv.Listener(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return srv, "http://" + ln.Addr().String()
}

type testEnv struct {
	stub      *stubapi.Server
	sess      *session.Session
	auth      *AuthGateway
	customers *CustomerService
	trips     *TripService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	stub, base := startStub(t)
	sess := session.New(session.NewMemoryStore(), nil)
	client := api.New(api.Options{BaseURL: base, Session: sess})
	return &testEnv{
		stub:      stub,
		sess:      sess,
		auth:      NewAuthGateway(client, sess, nil),
		customers: NewCustomerService(client, sess),
		trips:     NewTripService(client, sess),
	}
}
