package domain

// User is the denormalized snapshot of the authenticated principal that the
// client persists alongside the session token. It is replaced wholesale on
// login, mutated in place when profile fields change, and deleted on logout.
type User struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	UserRole    Role   `json:"userRole"`
	CustomerID  string `json:"customerId,omitempty"`
}

// Customer is the full profile record behind a customer account.
type Customer struct {
	CustomerID  string `json:"customerId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Empty fields are left
// unchanged by the server.
type ProfileUpdate struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}
