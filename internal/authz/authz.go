// Package authz is the single authorization policy for every mutation path.
// It replaces per-endpoint ownership and role conditionals with one ordered,
// state-free decision function that is total: it always returns a decision,
// never an error.
package authz

import "github.com/Ping-Win-Info/insavente/internal/domain/entity"

// Deny reasons. Unauthenticated maps to 401 at the boundary, Forbidden to 403.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonForbidden       Reason = "forbidden"
)

// Identity is the authenticated caller as established by the token service.
type Identity struct {
	ID   string
	Role string
}

// Request describes one access decision. Zero values mean "no requirement":
// an empty MinRole skips the role rule, an empty OwnerID skips the ownership
// rule, and RequireAuth false permits anonymous callers.
type Request struct {
	Identity    *Identity
	RequireAuth bool
	MinRole     string
	OwnerID     string
}

// Decision is the outcome of evaluating a Request.
type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(r Reason) Decision { return Decision{Reason: r} }

// Evaluate applies the three rules in order:
//
//  1. An action that requires authentication denies anonymous callers.
//  2. An action with a minimum role denies identities below it.
//  3. An ownership-gated action denies non-owners, unless the identity is an
//     admin. Admins bypass ownership but never bypass authentication.
//
// Keeping the rules separate and ordered makes each independently testable
// and the combined policy monotonic in privilege.
func Evaluate(req Request) Decision {
	id := req.Identity

	needsAuth := req.RequireAuth || req.MinRole != "" || req.OwnerID != ""
	if needsAuth && id == nil {
		return deny(ReasonUnauthenticated)
	}

	if req.MinRole != "" && !meetsRole(id.Role, req.MinRole) {
		return deny(ReasonForbidden)
	}

	if req.OwnerID != "" && id.ID != req.OwnerID && id.Role != entity.RoleAdmin {
		return deny(ReasonForbidden)
	}

	return allow
}

// OwnerOrAdmin is shorthand for the common mutation gate: the caller must be
// authenticated and either own the resource or hold the admin role.
func OwnerOrAdmin(id *Identity, ownerID string) Decision {
	return Evaluate(Request{Identity: id, RequireAuth: true, OwnerID: ownerID})
}

// AdminOnly gates moderation actions such as locking or pinning a thread.
func AdminOnly(id *Identity) Decision {
	return Evaluate(Request{Identity: id, RequireAuth: true, MinRole: entity.RoleAdmin})
}

// meetsRole compares roles on the member < admin ladder.
func meetsRole(have, want string) bool {
	if want == entity.RoleAdmin {
		return have == entity.RoleAdmin
	}
	return have == entity.RoleMember || have == entity.RoleAdmin
}
