package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	user := &domain.User{
		UserID:     "U-001",
		FullName:   "Tran Thi Khach",
		UserRole:   domain.RoleCustomer,
		CustomerID: "CUS-001",
	}
	if err := store.Save("some-token", user); err != nil {
		t.Fatalf("save: unexpected error: %v", err)
	}

	if got := store.Token(); got != "some-token" {
		t.Fatalf("token: got %q want %q", got, "some-token")
	}
	got := store.User()
	if got == nil {
		t.Fatal("user: got nil after save")
	}
	if got.UserID != user.UserID || got.FullName != user.FullName || got.UserRole != user.UserRole {
		t.Fatalf("user: got %+v want %+v", got, user)
	}
}

func TestFileStore_ClearRemovesBothValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	if err := store.Save("tok", &domain.User{UserID: "U-001"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if got := store.Token(); got != "" {
		t.Fatalf("token after clear: got %q want empty", got)
	}
	if got := store.User(); got != nil {
		t.Fatalf("user after clear: got %+v want nil", got)
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Clear(); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStore_AbsentReturnsZeroValues(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	if got := store.Token(); got != "" {
		t.Fatalf("token: got %q want empty", got)
	}
	if got := store.User(); got != nil {
		t.Fatalf("user: got %+v want nil", got)
	}
}

func TestFileStore_CorruptUserDataReturnsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	doc := `{"user_token":"tok","user_data":"{not valid json"}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)

	if got := store.Token(); got != "tok" {
		t.Fatalf("token: got %q want %q", got, "tok")
	}
	if got := store.User(); got != nil {
		t.Fatalf("user: got %+v want nil for corrupt data", got)
	}
}

func TestFileStore_CorruptDocumentReturnsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)

	if got := store.Token(); got != "" {
		t.Fatalf("token: got %q want empty", got)
	}
	if got := store.User(); got != nil {
		t.Fatalf("user: got %+v want nil", got)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	user := &domain.User{UserID: "U-002", UserRole: domain.RoleDriver}

	if err := store.Save("tok", user); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := store.Token(); got != "tok" {
		t.Fatalf("token: got %q want %q", got, "tok")
	}
	if got := store.User(); got == nil || got.UserID != "U-002" {
		t.Fatalf("user: got %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Token() != "" || store.User() != nil {
		t.Fatal("expected empty store after clear")
	}
}
