package domain

// Role is the closed set of account roles issued by the reservation API.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleDriver    Role = "driver"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleAssistant:
		return true
	}
	return false
}

// Crew reports whether the role rides the vehicle (driver or assistant).
func (r Role) Crew() bool {
	return r == RoleDriver || r == RoleAssistant
}
