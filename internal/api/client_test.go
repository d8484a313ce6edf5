package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New(session.NewMemoryStore(), nil)
	claims := jwt.RegisteredClaims{
		Subject:   "U-001",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	user := &domain.User{UserID: "U-001", UserRole: domain.RoleCustomer, CustomerID: "CUS-001"}
	if err := sess.Establish(token, user); err != nil {
		t.Fatal(err)
	}
	return sess
}

func TestClient_AttachesBearerToken(t *testing.T) {
	sess := testSession(t)
	want := "Bearer " + sess.Token()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, Session: sess})
	if err := client.Get(context.Background(), "/trips/search", nil, &struct{}{}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != want {
		t.Fatalf("authorization header: got %q want %q", gotAuth, want)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasRequestID bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		hasRequestID = r.Header.Get("X-Request-ID") != ""
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	sess := session.New(session.NewMemoryStore(), nil)
	client := New(Options{BaseURL: srv.URL, Session: sess})
	if err := client.Get(context.Background(), "/trips/search", nil, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
	if !hasRequestID {
		t.Fatal("expected an X-Request-ID header")
	}
}

func TestClient_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"tripId":"T-001","origin":"Ha Noi"},"message":"ok"}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, Session: session.New(session.NewMemoryStore(), nil)})
	var trip domain.Trip
	if err := client.Get(context.Background(), "/trips/T-001", nil, &trip); err != nil {
		t.Fatalf("get: %v", err)
	}
	if trip.TripID != "T-001" || trip.Origin != "Ha Noi" {
		t.Fatalf("payload not unwrapped: got %+v", trip)
	}
}

func TestClient_QueryParamsEncoded(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, Session: session.New(session.NewMemoryStore(), nil)})
	params := url.Values{}
	params.Set("origin", "Ha Noi")
	var out []domain.Trip
	if err := client.Get(context.Background(), "/trips/search", params, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotQuery.Get("origin") != "Ha Noi" {
		t.Fatalf("query: got %v", gotQuery)
	}
}

func TestClient_UnauthorizedClearsSessionAndNavigates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"invalid token"}`))
	}))
	defer srv.Close()

	sess := testSession(t)
	var target string
	sess.Events().Subscribe(session.EventNavigate, func(e session.Event) { target = e.Target })

	client := New(Options{BaseURL: srv.URL, Session: sess})
	err := client.Get(context.Background(), "/invoices/customer", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if sess.Token() != "" {
		t.Fatal("session should be cleared after 401")
	}
	if target != "/login" {
		t.Fatalf("navigate target: got %q want /login", target)
	}
}

func TestClient_UnauthorizedOnAllowListedEndpointKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","message":"stale session"}`))
	}))
	defer srv.Close()

	sess := testSession(t)
	token := sess.Token()
	var navigated bool
	sess.Events().Subscribe(session.EventNavigate, func(session.Event) { navigated = true })

	client := New(Options{BaseURL: srv.URL, Session: sess})
	err := client.Post(context.Background(), "/auth/verify-phone-change", map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if sess.Token() != token {
		t.Fatal("session must survive a 401 on an allow-listed endpoint")
	}
	if navigated {
		t.Fatal("no navigation command expected")
	}
}

func TestClient_ServerMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"CONFLICT","message":"seat A1 already booked"}`))
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, Session: session.New(session.NewMemoryStore(), nil)})
	err := client.Post(context.Background(), "/invoices", map[string]string{}, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "seat A1 already booked" {
		t.Fatalf("got %+v", apiErr)
	}
}

func TestClient_ForbiddenDoesNotClearSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"FORBIDDEN","message":"insufficient role"}`))
	}))
	defer srv.Close()

	sess := testSession(t)
	client := New(Options{BaseURL: srv.URL, Session: sess})
	err := client.Put(context.Background(), "/trips/T-001/status", map[string]string{}, nil)
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if sess.Token() == "" {
		t.Fatal("403 must not clear the session")
	}
}

func TestClient_NetworkErrorIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := New(Options{BaseURL: base, Session: session.New(session.NewMemoryStore(), nil)})
	err := client.Get(context.Background(), "/trips/search", nil, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !apiErr.IsNetwork() {
		t.Fatalf("expected network failure, got status %d", apiErr.Status)
	}
}
