package stubapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/config"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(config.StubConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
		BcryptCost:      4,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthLive(t *testing.T) {
	srv := newServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/health/live", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want 200", resp.StatusCode)
	}
	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	if body.Data.Status != "ok" {
		t.Fatalf("health status: got %q", body.Data.Status)
	}
}

func TestLogin_EnvelopeShape(t *testing.T) {
	srv := newServer(t)
	resp := doJSON(t, srv, http.MethodPost, "/auth/user-login", "", map[string]string{
		"phoneNumber": "0900000001",
		"password":    "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want 200", resp.StatusCode)
	}
	var body struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				UserID   string `json:"userId"`
				UserRole string `json:"userRole"`
			} `json:"user"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	if body.Data.Token == "" {
		t.Fatal("expected a token under data.token")
	}
	if body.Data.User.UserRole != "customer" {
		t.Fatalf("role: got %q want customer", body.Data.User.UserRole)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newServer(t)
	resp := doJSON(t, srv, http.MethodPost, "/auth/user-login", "", map[string]string{
		"phoneNumber": "0900000001",
		"password":    "nope",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", resp.StatusCode)
	}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	if body.Code == "" || body.Message == "" {
		t.Fatalf("error body should carry code and message, got %+v", body)
	}
}

func TestProtectedRoute_NoToken(t *testing.T) {
	srv := newServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/invoices/customer", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", resp.StatusCode)
	}
}

func TestProtectedRoute_GarbageToken(t *testing.T) {
	srv := newServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/invoices/customer", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", resp.StatusCode)
	}
}

func TestRoleEnforcement(t *testing.T) {
	srv := newServer(t)

	var login struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				UserID string `json:"userId"`
			} `json:"user"`
		} `json:"data"`
	}
	resp := doJSON(t, srv, http.MethodPost, "/auth/user-login", "", map[string]string{
		"phoneNumber": "0900000001",
		"password":    "password123",
	})
	decodeBody(t, resp, &login)

	// A customer token must not reach the crew-only trip list.
	resp = doJSON(t, srv, http.MethodGet, "/trips/my-trips/"+login.Data.User.UserID, login.Data.Token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status: got %d want 403", resp.StatusCode)
	}
}

func TestSearchTrips_Public(t *testing.T) {
	srv := newServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/trips/search?destination=hai+phong", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want 200", resp.StatusCode)
	}
	var body struct {
		Data []struct {
			TripID string `json:"tripId"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	if len(body.Data) != 1 || body.Data[0].TripID != "T-001" {
		t.Fatalf("search result: got %+v", body.Data)
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	srv := newServer(t)
	user, err := srv.Store().Authenticate("0900000002", "password123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	token, _, err := srv.tokens.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := srv.tokens.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != user.UserID {
		t.Fatalf("subject: got %s want %s", claims.Subject, user.UserID)
	}
	if claims.Role != user.UserRole {
		t.Fatalf("role: got %s want %s", claims.Role, user.UserRole)
	}
}
