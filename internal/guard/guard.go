// Package guard is the client-side half of the dual route guard: it
// reads the auth state and decides whether a role-scoped page tree may
// render. The edge guard (cookie presence only) lives in the request
// middleware; both must independently allow a request.
package guard

import (
	"github.com/cypher125/siwes/internal/authstate"
	"github.com/cypher125/siwes/internal/domain"
)

type Decision int

const (
	// Allow renders the tree.
	Allow Decision = iota
	// Placeholder renders a loading stub while the state resolves.
	Placeholder
	// Redirect sends the user to Result.Location.
	Redirect
)

type Result struct {
	Decision Decision
	Location string
}

// Evaluate applies the guard rules for a tree requiring the given role:
// still loading -> placeholder; unauthenticated -> landing page; wrong
// role -> that role's own dashboard (never the landing page).
func Evaluate(snap authstate.Snapshot, required domain.Role) Result {
	if snap.IsLoading {
		return Result{Decision: Placeholder}
	}
	if !snap.IsAuthenticated {
		return Result{Decision: Redirect, Location: "/"}
	}
	if snap.Role != required {
		return Result{Decision: Redirect, Location: snap.Role.DashboardPath()}
	}
	return Result{Decision: Allow}
}
