package authz

import (
	"errors"
	"testing"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
)

func actor(role entities.Role, perms ...entities.Permission) entities.Actor {
	return entities.Actor{ID: "u-1", BusinessID: "b-1", Role: role, Permissions: perms}
}

func TestAuthorize_RoleHierarchy(t *testing.T) {
	cases := []struct {
		name  string
		actor entities.Actor
		op    Operation
		want  Decision
	}{
		{name: "viewer reads summary", actor: actor(entities.RoleViewer), op: OpBillingSummaryRead, want: Allowed},
		{name: "viewer cannot create quote", actor: actor(entities.RoleViewer), op: OpQuoteCreate, want: Denied},
		{name: "member cannot transition quote", actor: actor(entities.RoleMember), op: OpQuoteTransition, want: Denied},
		{name: "member creates project", actor: actor(entities.RoleMember), op: OpProjectCreate, want: Allowed},
		{name: "admin transitions quote", actor: actor(entities.RoleAdmin), op: OpQuoteTransition, want: Allowed},
		{name: "owner starts project", actor: actor(entities.RoleOwner), op: OpProjectStart, want: Allowed},
		{name: "unknown role denied reads", actor: actor(entities.Role("GUEST")), op: OpProjectRead, want: Denied},
		{name: "unknown operation denied", actor: actor(entities.RoleOwner), op: Operation("project.teleport"), want: Denied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.actor, tc.op); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAuthorize_PermissionGrantsWithoutRoleUpgrade(t *testing.T) {
	member := actor(entities.RoleMember, entities.PermissionTeamEdit)

	if Decide(member, OpProjectUpdate) != Allowed {
		t.Fatalf("expected TEAM_EDIT to grant project.update to a member")
	}
	if Decide(member, OpProjectServiceWrite) != Denied {
		t.Fatalf("expected TEAM_EDIT not to grant project_service.write")
	}
	if Decide(member, OpQuoteTransition) != Denied {
		t.Fatalf("expected permission-less operation to stay denied")
	}
}

func TestAuthorize_ReturnsAuthorizationError(t *testing.T) {
	err := Authorize(actor(entities.RoleMember), OpQuoteTransition)
	if !errors.Is(err, errs.ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization, got %v", err)
	}
	var ae *errs.AuthorizationError
	if !errors.As(err, &ae) || ae.Operation != string(OpQuoteTransition) || ae.Role != "MEMBER" {
		t.Fatalf("unexpected error details: %+v", ae)
	}
	if err := Authorize(actor(entities.RoleAdmin), OpQuoteTransition); err != nil {
		t.Fatalf("expected admin allowed, got %v", err)
	}
}

func TestCapabilities_MutationsNeedAdmin(t *testing.T) {
	reads := map[Operation]bool{
		OpProjectRead: true, OpProjectServiceRead: true, OpQuoteRead: true,
		OpInvoiceRead: true, OpBillingSummaryRead: true, OpProjectCreate: true,
	}
	for op, capability := range Capabilities {
		if reads[op] {
			continue
		}
		if capability.MinRole.Rank() < entities.RoleAdmin.Rank() {
			t.Errorf("%s requires %s, want ADMIN or above", op, capability.MinRole)
		}
	}
}
