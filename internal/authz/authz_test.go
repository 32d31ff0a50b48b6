package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
)

var (
	alice = &Identity{ID: "alice", Role: entity.RoleMember}
	bob   = &Identity{ID: "bob", Role: entity.RoleMember}
	root  = &Identity{ID: "root", Role: entity.RoleAdmin}
)

func TestEvaluateAnonymous(t *testing.T) {
	// No requirements at all: anonymous access is allowed.
	d := Evaluate(Request{})
	assert.True(t, d.Allowed)
	assert.Equal(t, ReasonNone, d.Reason)

	// Any requirement at all denies the anonymous caller as unauthenticated,
	// never as forbidden.
	for _, req := range []Request{
		{RequireAuth: true},
		{MinRole: entity.RoleAdmin},
		{OwnerID: "alice"},
		{MinRole: entity.RoleAdmin, OwnerID: "alice"},
	} {
		d := Evaluate(req)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonUnauthenticated, d.Reason)
	}
}

func TestEvaluateRole(t *testing.T) {
	d := Evaluate(Request{Identity: alice, MinRole: entity.RoleAdmin})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForbidden, d.Reason)

	assert.True(t, Evaluate(Request{Identity: root, MinRole: entity.RoleAdmin}).Allowed)
	assert.True(t, Evaluate(Request{Identity: alice, MinRole: entity.RoleMember}).Allowed)
	assert.True(t, Evaluate(Request{Identity: root, MinRole: entity.RoleMember}).Allowed)
}

func TestEvaluateOwnership(t *testing.T) {
	assert.True(t, Evaluate(Request{Identity: alice, OwnerID: "alice"}).Allowed)

	d := Evaluate(Request{Identity: bob, OwnerID: "alice"})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForbidden, d.Reason)

	// Admin bypasses ownership but not authentication.
	assert.True(t, Evaluate(Request{Identity: root, OwnerID: "alice"}).Allowed)
	assert.False(t, Evaluate(Request{Identity: nil, OwnerID: "alice"}).Allowed)
}

func TestEvaluateRuleOrder(t *testing.T) {
	// Role is checked before ownership: a member failing both gets forbidden
	// from the role rule, and fixing the role still leaves ownership denial.
	d := Evaluate(Request{Identity: bob, MinRole: entity.RoleAdmin, OwnerID: "alice"})
	assert.Equal(t, ReasonForbidden, d.Reason)

	// An owner below the required role is still denied.
	d = Evaluate(Request{Identity: alice, MinRole: entity.RoleAdmin, OwnerID: "alice"})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForbidden, d.Reason)
}

func TestMutationScenario(t *testing.T) {
	// A member edits their own item, another member is denied, an admin may
	// moderate anything.
	const owner = "alice"

	assert.True(t, OwnerOrAdmin(alice, owner).Allowed)

	d := OwnerOrAdmin(bob, owner)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForbidden, d.Reason)

	assert.True(t, OwnerOrAdmin(root, owner).Allowed)
}

func TestAdminOnly(t *testing.T) {
	assert.True(t, AdminOnly(root).Allowed)

	d := AdminOnly(alice)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForbidden, d.Reason)

	d = AdminOnly(nil)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnauthenticated, d.Reason)
}
