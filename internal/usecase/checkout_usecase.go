package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"project_billing/internal/domain/authz"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/usecase/interfaces"
)

var (
	ErrInvalidGatewayPayload          = &errs.ValidationError{Field: "payload", Message: "invalid payment gateway payload"}
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

const (
	providerStatusApproved = "approved"
	settleAttempts         = 3
)

// CheckoutConfig carries the gateway settings the checkout needs. In mock mode the
// external gateway is never called and every charge is approved.
type CheckoutConfig struct {
	Mock            bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (c CheckoutConfig) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(c.AccessToken), "TEST-")
}

// CheckoutResult is the outcome of one charge attempt.
type CheckoutResult struct {
	Invoice           entities.Invoice
	ProviderPaymentID string
	ProviderStatus    string
	ProviderResponse  json.RawMessage
	AppliedCents      money.Cents
	// NeedsReconciliation is set when the provider approved the charge but the
	// invoice could not take it. The charge is kept on the invoice unapplied.
	NeedsReconciliation bool
}

// ICheckoutUseCase charges an invoice's remaining amount through the payment gateway.
//
// The amount is always taken from the stored invoice, never from the payload. Charges are
// sent with an idempotency key derived from the invoice id and version. An approved
// charge is recorded on the invoice and applied as a payment; any other provider status
// leaves the invoice untouched.
type ICheckoutUseCase interface {
	Checkout(ctx context.Context, actor entities.Actor, invoiceID string, payload json.RawMessage) (CheckoutResult, error)
}

type CheckoutUseCase struct {
	base
	gateway interfaces.IPaymentGateway
	cfg     CheckoutConfig
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(store interfaces.IStore, gateway interfaces.IPaymentGateway, cfg CheckoutConfig, log *logger.Logger, opts ...Option) *CheckoutUseCase {
	return &CheckoutUseCase{base: newBase(store, log, opts), gateway: gateway, cfg: cfg}
}

func (u *CheckoutUseCase) Checkout(ctx context.Context, actor entities.Actor, invoiceID string, payload json.RawMessage) (res CheckoutResult, err error) {
	defer func() { metrics.RecordError("invoice.checkout", err) }()

	if err := authz.Authorize(actor, authz.OpInvoiceApplyPayment); err != nil {
		return CheckoutResult{}, err
	}
	if err := checkActor(actor); err != nil {
		return CheckoutResult{}, err
	}
	invoiceID, err = cleanID("invoice_id", invoiceID)
	if err != nil {
		return CheckoutResult{}, err
	}
	log := u.log.With("business_id", actor.BusinessID, "invoice_id", invoiceID, "mock", u.cfg.Mock)
	log.Debug("checkout start", "payload_len", len(payload))

	if len(payload) == 0 || !json.Valid(payload) {
		if !u.cfg.Mock {
			return CheckoutResult{}, ErrInvalidGatewayPayload
		}
		payload = json.RawMessage("{}")
	}
	if u.gateway == nil && !u.cfg.Mock {
		return CheckoutResult{}, ErrPaymentGatewayNotConfigured
	}

	inv, err := loadInvoice(ctx, u.store, actor.BusinessID, invoiceID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if inv.Status != entities.InvoiceStatusSent || inv.RemainingCents <= 0 {
		return CheckoutResult{}, ErrInvoiceNotAwaitingPay
	}
	amount := inv.RemainingCents

	payload, err = u.enrichPayload(payload, inv, amount)
	if err != nil {
		log.Warn("checkout payload rejected", "error", err)
		return CheckoutResult{}, err
	}

	if u.cfg.Mock {
		res, err = u.mockCharge(payload, inv, amount)
	} else {
		var charge interfaces.PaymentCharge
		charge, err = u.gateway.Charge(ctx, payload, checkoutIdempotencyKey(inv))
		res.ProviderPaymentID, res.ProviderStatus, res.ProviderResponse = charge.ProviderPaymentID, charge.Status, charge.Response
		err = classifyGatewayError(err)
	}
	if err != nil {
		log.Error("payment gateway failed", "error", err)
		return CheckoutResult{}, err
	}
	log.Info("payment gateway answered", "provider_payment_id", res.ProviderPaymentID, "provider_status", res.ProviderStatus)

	if res.ProviderStatus != providerStatusApproved {
		res.Invoice = inv
		return res, nil
	}
	updated, charge, err := u.settleCharge(ctx, actor.BusinessID, inv.ID, res.ProviderPaymentID, amount)
	if err != nil {
		log.Error("approved charge could not be recorded", "provider_payment_id", res.ProviderPaymentID, "amount_cents", amount, "error", err)
		res.Invoice = inv
		res.NeedsReconciliation = true
		return res, err
	}
	res.Invoice = updated
	if !charge.Applied {
		log.Error("approved charge not applied, reconcile with provider",
			"provider_payment_id", res.ProviderPaymentID,
			"amount_cents", amount,
			"invoice_status", updated.Status,
			"remaining_cents", updated.RemainingCents)
		res.NeedsReconciliation = true
		return res, nil
	}
	if inv.Status != updated.Status && updated.Status == entities.InvoiceStatusPaid {
		metrics.RecordTransition("invoice", inv.Status, updated.Status)
	}
	res.AppliedCents = charge.AmountCents
	log.Info("invoice payment applied", "paid_cents", updated.PaidCents, "remaining_cents", updated.RemainingCents, "status", updated.Status)
	return res, nil
}

// checkoutIdempotencyKey identifies one charge attempt per invoice version. Concurrent
// checkouts of an unchanged invoice share the key and are charged once.
func checkoutIdempotencyKey(inv entities.Invoice) string {
	return fmt.Sprintf("invoice-%s-v%d", inv.ID, inv.Version)
}

// settleCharge records an approved provider charge on the invoice and applies it when
// the invoice still awaits at least amount. A charge already recorded is returned as is.
func (u *CheckoutUseCase) settleCharge(ctx context.Context, businessID, invoiceID, providerPaymentID string, amount money.Cents) (inv entities.Invoice, charge entities.ProviderCharge, err error) {
	now := u.clock()
	for attempt := 1; ; attempt++ {
		err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
			current, err := loadInvoice(ctx, tx, businessID, invoiceID)
			if err != nil {
				return err
			}
			if c, ok := current.Charge(providerPaymentID); ok {
				inv, charge = current, c
				return nil
			}
			charge = entities.ProviderCharge{ProviderPaymentID: providerPaymentID, AmountCents: amount, ChargedAt: now}
			ok, err := chargeApplicable(ctx, tx, current, amount)
			if err != nil {
				return err
			}
			if ok {
				if _, err := applyInvoicePayment(&current, amount, now); err != nil {
					return err
				}
				charge.Applied = true
			}
			current.Charges = append(current.Charges, charge)
			current.UpdatedAt = now
			inv, err = tx.Invoices().Update(ctx, current)
			return err
		})
		if err == nil || !errors.Is(err, errs.ErrConflict) || attempt == settleAttempts {
			return inv, charge, err
		}
		u.log.Warn("charge settlement conflicted, retrying", "invoice_id", invoiceID, "attempt", attempt)
	}
}

func chargeApplicable(ctx context.Context, tx interfaces.IRepositories, inv entities.Invoice, amount money.Cents) (bool, error) {
	if inv.Status != entities.InvoiceStatusSent || inv.RemainingCents < amount {
		return false, nil
	}
	_, err := loadActiveProject(ctx, tx, inv.BusinessID, inv.ProjectID)
	switch {
	case errors.Is(err, ErrProjectArchived):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// enrichPayload links the charge to the invoice and pins the amount to the stored
// remaining balance.
func (u *CheckoutUseCase) enrichPayload(payload json.RawMessage, inv entities.Invoice, amount money.Cents) (json.RawMessage, error) {
	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil || req == nil {
		if !u.cfg.Mock {
			return nil, ErrInvalidGatewayPayload
		}
		req = map[string]any{}
	}
	if !u.cfg.Mock {
		if !hasNonEmptyString(req, "payment_method_id") {
			return nil, ErrInvalidGatewayPayload
		}
		u.normalizeSandboxPayer(req)
		u.ensurePayerDefaults(req)
		if !hasPayer(req) {
			return nil, ErrInvalidGatewayPayload
		}
	}
	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = inv.ID
	}
	if _, ok := req["description"]; !ok {
		label := inv.ID
		if inv.Number != nil {
			label = *inv.Number
		}
		req["description"] = fmt.Sprintf("Invoice %s", label)
	}
	req["transaction_amount"] = json.Number(money.Format(amount, inv.Currency))
	if _, ok := req["currency_id"]; !ok {
		req["currency_id"] = string(inv.Currency)
	}
	return json.Marshal(req)
}

func (u *CheckoutUseCase) mockCharge(payload json.RawMessage, inv entities.Invoice, amount money.Cents) (CheckoutResult, error) {
	now := u.clock()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := map[string]any{}
	_ = json.Unmarshal(payload, &resp)
	resp["id"] = id
	resp["status"] = providerStatusApproved
	resp["status_detail"] = "accredited"
	resp["date_created"] = now.Format(time.RFC3339Nano)
	resp["date_approved"] = resp["date_created"]
	if _, ok := resp["transaction_amount"]; !ok {
		resp["transaction_amount"] = json.Number(money.Format(amount, inv.Currency))
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{ProviderPaymentID: id, ProviderStatus: providerStatusApproved, ProviderResponse: b}, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// ensurePayerDefaults fills the payer type, and in sandbox a test email when the caller
// gave neither id nor email.
func (u *CheckoutUseCase) ensurePayerDefaults(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		if m["payer"] != nil {
			return
		}
		payer = map[string]any{}
		m["payer"] = payer
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	switch {
	case u.cfg.TestPayerEmail != "":
		payer["email"] = u.cfg.TestPayerEmail
	case u.cfg.sandbox():
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email; the sandbox
// rejects charges addressed by test user id.
func (u *CheckoutUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if !u.cfg.sandbox() || u.cfg.TestPayerUserID == "" || u.cfg.TestPayerEmail == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.cfg.TestPayerUserID {
		return
	}
	payer["email"] = u.cfg.TestPayerEmail
	delete(payer, "id")
}

// classifyGatewayError maps provider error bodies to the gateway sentinels.
func classifyGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayInvalidUsers, err)
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	}
	return err
}
