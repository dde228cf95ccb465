// Package authz is the single capability table gating every engine command.
//
// An operation declares a minimum role and, optionally, a permission that grants it
// independently of role. The check is: role meets minimum OR actor holds the permission.
package authz

import (
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
)

// Operation names a command or query of the engine.
type Operation string

const (
	OpProjectRead             Operation = "project.read"
	OpProjectCreate           Operation = "project.create"
	OpProjectUpdate           Operation = "project.update"
	OpProjectDelete           Operation = "project.delete"
	OpProjectSetStatus        Operation = "project.set_status"
	OpProjectSetQuoteStatus   Operation = "project.set_quote_status"
	OpProjectSetDepositStatus Operation = "project.set_deposit_status"
	OpProjectBindBillingQuote Operation = "project.bind_billing_quote"
	OpProjectStart            Operation = "project.start"
	OpProjectArchive          Operation = "project.archive"
	OpProjectUnarchive        Operation = "project.unarchive"

	OpProjectServiceRead  Operation = "project_service.read"
	OpProjectServiceWrite Operation = "project_service.write"

	OpQuoteRead       Operation = "quote.read"
	OpQuoteCreate     Operation = "quote.create"
	OpQuoteTransition Operation = "quote.transition"
	OpQuoteExpire     Operation = "quote.expire"

	OpInvoiceRead         Operation = "invoice.read"
	OpInvoiceCreate       Operation = "invoice.create"
	OpInvoiceTransition   Operation = "invoice.transition"
	OpInvoiceApplyPayment Operation = "invoice.apply_payment"
	OpInvoiceMarkPaid     Operation = "invoice.mark_paid"

	OpBillingSummaryRead Operation = "billing_summary.read"
)

func (o Operation) String() string { return string(o) }

// Capability is the requirement attached to an operation.
type Capability struct {
	MinRole    entities.Role
	Permission entities.Permission
}

// Capabilities is the capability table. Operations missing from it are denied.
var Capabilities = map[Operation]Capability{
	OpProjectRead:             {MinRole: entities.RoleViewer},
	OpProjectCreate:           {MinRole: entities.RoleMember},
	OpProjectUpdate:           {MinRole: entities.RoleAdmin, Permission: entities.PermissionTeamEdit},
	OpProjectDelete:           {MinRole: entities.RoleAdmin},
	OpProjectSetStatus:        {MinRole: entities.RoleAdmin},
	OpProjectSetQuoteStatus:   {MinRole: entities.RoleAdmin},
	OpProjectSetDepositStatus: {MinRole: entities.RoleAdmin, Permission: entities.PermissionBillingEdit},
	OpProjectBindBillingQuote: {MinRole: entities.RoleAdmin},
	OpProjectStart:            {MinRole: entities.RoleAdmin},
	OpProjectArchive:          {MinRole: entities.RoleAdmin},
	OpProjectUnarchive:        {MinRole: entities.RoleAdmin},

	OpProjectServiceRead:  {MinRole: entities.RoleViewer},
	OpProjectServiceWrite: {MinRole: entities.RoleAdmin, Permission: entities.PermissionServicesEdit},

	OpQuoteRead:       {MinRole: entities.RoleViewer},
	OpQuoteCreate:     {MinRole: entities.RoleAdmin},
	OpQuoteTransition: {MinRole: entities.RoleAdmin},
	OpQuoteExpire:     {MinRole: entities.RoleAdmin},

	OpInvoiceRead:         {MinRole: entities.RoleViewer},
	OpInvoiceCreate:       {MinRole: entities.RoleAdmin},
	OpInvoiceTransition:   {MinRole: entities.RoleAdmin},
	OpInvoiceApplyPayment: {MinRole: entities.RoleAdmin, Permission: entities.PermissionBillingEdit},
	OpInvoiceMarkPaid:     {MinRole: entities.RoleAdmin},

	OpBillingSummaryRead: {MinRole: entities.RoleViewer},
}

// Decision is the outcome of an authorization check.
type Decision bool

const (
	Denied  Decision = false
	Allowed Decision = true
)

// Decide evaluates the capability table without building an error.
func Decide(actor entities.Actor, op Operation) Decision {
	capability, ok := Capabilities[op]
	if !ok {
		return Denied
	}
	if actor.Role.AtLeast(capability.MinRole) {
		return Allowed
	}
	if capability.Permission != "" && actor.Role.Valid() && actor.Has(capability.Permission) {
		return Allowed
	}
	return Denied
}

// Authorize returns an AuthorizationError when actor may not perform op.
func Authorize(actor entities.Actor, op Operation) error {
	if Decide(actor, op) == Allowed {
		return nil
	}
	return &errs.AuthorizationError{Role: string(actor.Role), Operation: string(op)}
}
