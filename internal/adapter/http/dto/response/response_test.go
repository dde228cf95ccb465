package response

import (
	"testing"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
	"project_billing/internal/usecase"
)

func TestFromInvoice_FormatsAmounts(t *testing.T) {
	inv := entities.Invoice{
		ID:             "inv-1",
		Status:         entities.InvoiceStatusSent,
		Currency:       "EUR",
		TotalCents:     10000,
		DepositCents:   3000,
		BalanceCents:   7000,
		PaidCents:      2550,
		RemainingCents: 7450,
		Items: []entities.LineItem{
			{Label: "Design", Quantity: 2, UnitPriceCents: 5000, TotalCents: 10000},
		},
	}

	got := FromInvoice(inv)
	if got.Total.Display != "100.00" || got.Remaining.Display != "74.50" || got.Paid.Cents != 2550 {
		t.Fatalf("unexpected amounts %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].UnitPrice.Display != "50.00" {
		t.Fatalf("unexpected items %+v", got.Items)
	}
	if got.Status != "SENT" {
		t.Fatalf("expected SENT, got %q", got.Status)
	}
}

func TestFromQuote_ZeroDecimalCurrency(t *testing.T) {
	q := entities.Quote{Currency: "JPY", TotalCents: 1500, DepositCents: 450, BalanceCents: 1050}
	got := FromQuote(q)
	if got.Total.Display != "1500" || got.Deposit.Display != "450" {
		t.Fatalf("unexpected JPY rendering %+v", got)
	}
	if got.Items == nil {
		t.Fatalf("expected empty items slice, got nil")
	}
}

func TestFromProject(t *testing.T) {
	p := entities.Project{
		ID:            "p-1",
		Status:        entities.ProjectStatusPlanned,
		QuoteStatus:   entities.ProjectQuoteSigned,
		DepositStatus: entities.DepositNotRequired,
	}
	got := FromProject(p)
	if !got.CanStart {
		t.Fatalf("expected can_start true")
	}
	if got.TagIDs == nil {
		t.Fatalf("expected non-nil tags")
	}
}

func TestFromProjectService_Override(t *testing.T) {
	override := money.Cents(1234)
	got := FromProjectService(entities.ProjectService{ID: "ps-1", Quantity: 2, PriceCentsOverride: &override})
	if got.PriceCentsOverride == nil || *got.PriceCentsOverride != 1234 {
		t.Fatalf("unexpected override %v", got.PriceCentsOverride)
	}
	if FromProjectService(entities.ProjectService{}).PriceCentsOverride != nil {
		t.Fatalf("expected nil override")
	}
}

func TestFromBillingSummaryAndCheckout(t *testing.T) {
	s := FromBillingSummary(entities.BillingSummary{Currency: "EUR", RemainingCents: 999})
	if s.Remaining.Display != "9.99" || s.CountedInvoiceIDs == nil {
		t.Fatalf("unexpected summary %+v", s)
	}

	c := FromCheckout(usecase.CheckoutResult{
		Invoice:        entities.Invoice{ID: "inv-1", Currency: "EUR"},
		ProviderStatus: "approved",
		AppliedCents:   5000,
	})
	if c.Applied.Display != "50.00" || c.Invoice.ID != "inv-1" {
		t.Fatalf("unexpected checkout %+v", c)
	}
}
