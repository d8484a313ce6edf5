package nav

import (
	"strings"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

// Well-known navigation targets.
const (
	HomePath  = "/"
	LoginPath = "/login"
	TrackPath = "/track"
)

// Route is the static access-control metadata for a navigable screen. It is
// consulted, never mutated, by the Guard.
type Route struct {
	Path         string
	Name         string
	Public       bool
	RequiresAuth bool
	Roles        []domain.Role
}

// AllowsRole reports whether the role is in the route's allowed set. An
// empty set allows any authenticated role.
func (r Route) AllowsRole(role domain.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Table is the declarative permission table for every screen the client
// knows about. Booking and invoices are customer screens, tracking belongs
// to the crew, the account screen needs any authenticated role.
func Table() []Route {
	return []Route{
		{Path: HomePath, Name: "Home", Public: true},
		{Path: "/search", Name: "SearchTrip", Public: true},
		{Path: "/trip/:id", Name: "TripDetail", Public: true},
		{Path: "/about", Name: "About", Public: true},
		{Path: "/register", Name: "Register", Public: true},
		{Path: LoginPath, Name: "Login"},
		{Path: "/book", Name: "BookTicket", RequiresAuth: true, Roles: []domain.Role{domain.RoleCustomer}},
		{Path: "/invoice", Name: "Invoice", RequiresAuth: true, Roles: []domain.Role{domain.RoleCustomer}},
		{Path: "/account", Name: "Account", RequiresAuth: true},
		{Path: TrackPath, Name: "TrackTrip", RequiresAuth: true, Roles: []domain.Role{domain.RoleDriver, domain.RoleAssistant}},
	}
}

// Lookup finds the route descriptor matching a concrete path. Path segments
// starting with ':' match any single segment.
func Lookup(routes []Route, path string) (Route, bool) {
	for _, route := range routes {
		if matchPath(route.Path, path) {
			return route, true
		}
	}
	return Route{}, false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}
