package nav

import (
	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/internal/session"
)

// Decision is the outcome of evaluating a navigation attempt.
type Decision struct {
	Allowed  bool
	Redirect string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}

// Guard evaluates route-level authorization once per navigation attempt,
// reading authentication state from the session context.
type Guard struct {
	sess   *session.Session
	routes []Route
}

// NewGuard builds a guard over the given route table; nil uses Table().
func NewGuard(sess *session.Session, routes []Route) *Guard {
	if routes == nil {
		routes = Table()
	}
	return &Guard{sess: sess, routes: routes}
}

// Lookup resolves a concrete path against the guard's route table.
func (g *Guard) Lookup(path string) (Route, bool) {
	return Lookup(g.routes, path)
}

// Decide evaluates the rules in strict order; the first matching rule wins.
//
//  1. Public routes are allowed unconditionally.
//  2. Unauthenticated visitors are sent to the login screen (which itself
//     stays reachable).
//  3. Authenticated visitors outside the route's allowed roles go home.
//  4. Authenticated visitors at the login screen are sent away from it:
//     customers home, crew to the tracking screen.
//  5. Everything else is allowed.
func (g *Guard) Decide(path string) Decision {
	route, ok := g.Lookup(path)
	if !ok {
		return redirect(HomePath)
	}
	if route.Public {
		return allow()
	}
	if !g.sess.IsAuthenticated() {
		if route.Path == LoginPath {
			return allow()
		}
		return redirect(LoginPath)
	}
	role := g.sess.Role()
	if len(route.Roles) > 0 && !route.AllowsRole(role) {
		return redirect(HomePath)
	}
	if route.Path == LoginPath {
		switch role {
		case domain.RoleDriver, domain.RoleAssistant:
			return redirect(TrackPath)
		default:
			return redirect(HomePath)
		}
	}
	return allow()
}
