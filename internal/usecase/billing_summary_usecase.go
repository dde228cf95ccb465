package usecase

import (
	"context"
	"time"

	"project_billing/internal/domain/authz"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

// Summarize derives the billing summary of a project from its quotes, invoices and
// finance lines. snapshot is the project's live pricing; it is the fallback source and
// always the planned value. Summarize is pure: equal inputs give equal summaries.
func Summarize(project entities.Project, quotes []entities.Quote, invoices []entities.Invoice, lines []entities.FinanceLine, snapshot entities.PricingSnapshot) (entities.BillingSummary, error) {
	s := entities.BillingSummary{
		ProjectID:         project.ID,
		PlannedValueCents: snapshot.TotalCents,
		CountedInvoiceIDs: []string{},
	}

	if ref, source, ok := selectQuote(project, quotes); ok {
		id := ref.ID
		s.Source = source
		s.ReferenceQuoteID = &id
		s.Currency = ref.Currency
		s.TotalCents = ref.TotalCents
		s.DepositPercent = ref.DepositPercent
		s.DepositCents = ref.DepositCents
		s.BalanceCents = ref.BalanceCents
	} else {
		s.Source = entities.SourcePricingSnapshot
		s.Currency = snapshot.Currency
		s.TotalCents = snapshot.TotalCents
		s.DepositPercent = snapshot.DepositPercent
		s.DepositCents = snapshot.DepositCents
		s.BalanceCents = snapshot.BalanceCents
	}

	var invoiced, paid []money.Cents
	for _, inv := range invoices {
		if inv.ProjectID != project.ID || inv.Status == entities.InvoiceStatusCancelled {
			continue
		}
		invoiced = append(invoiced, inv.TotalCents)
		paid = append(paid, inv.PaidCents)
		s.CountedInvoiceIDs = append(s.CountedInvoiceIDs, inv.ID)
	}
	var err error
	if s.AlreadyInvoicedCents, err = money.Sum(invoiced...); err != nil {
		return entities.BillingSummary{}, err
	}
	if s.AlreadyPaidCents, err = money.Sum(paid...); err != nil {
		return entities.BillingSummary{}, err
	}
	s.RemainingToInvoiceCents = money.SubtractClamped(s.TotalCents, s.AlreadyInvoicedCents)
	s.RemainingToCollectCents = money.SubtractClamped(s.TotalCents, s.AlreadyPaidCents)
	s.RemainingCents = s.RemainingToCollectCents

	var income, expense []money.Cents
	for _, l := range lines {
		if l.ProjectID == nil || *l.ProjectID != project.ID {
			continue
		}
		switch l.Type {
		case entities.FinanceIncome:
			income = append(income, l.AmountCents)
		case entities.FinanceExpense:
			expense = append(expense, l.AmountCents)
		}
	}
	if s.IncomeCents, err = money.Sum(income...); err != nil {
		return entities.BillingSummary{}, err
	}
	if s.ExpenseCents, err = money.Sum(expense...); err != nil {
		return entities.BillingSummary{}, err
	}
	return s, nil
}

// selectQuote picks the bound billing quote when it is signed, otherwise the most
// recently signed quote of the project.
func selectQuote(project entities.Project, quotes []entities.Quote) (entities.Quote, entities.SummarySource, bool) {
	if project.BillingQuoteID != nil {
		for _, q := range quotes {
			if q.ID == *project.BillingQuoteID && q.ProjectID == project.ID && q.Status == entities.QuoteStatusSigned {
				return q, entities.SourceSignedQuote, true
			}
		}
	}
	var (
		best  entities.Quote
		found bool
	)
	for _, q := range quotes {
		if q.ProjectID != project.ID || q.Status != entities.QuoteStatusSigned {
			continue
		}
		if !found || signedLater(q, best) {
			best, found = q, true
		}
	}
	return best, entities.SourceOtherQuote, found
}

func signedAt(q entities.Quote) time.Time {
	if q.SignedAt != nil {
		return *q.SignedAt
	}
	return q.UpdatedAt
}

func signedLater(a, b entities.Quote) bool {
	ta, tb := signedAt(a), signedAt(b)
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// IBillingSummaryUseCase computes billing summaries on demand.
type IBillingSummaryUseCase interface {
	Get(ctx context.Context, actor entities.Actor, projectID string) (entities.BillingSummary, error)
}

type BillingSummaryUseCase struct {
	base
}

var _ IBillingSummaryUseCase = (*BillingSummaryUseCase)(nil)

func NewBillingSummaryUseCase(store interfaces.IStore, log *logger.Logger, opts ...Option) *BillingSummaryUseCase {
	return &BillingSummaryUseCase{base: newBase(store, log, opts)}
}

// Get loads the project's billing inputs concurrently and summarizes them. Reads are not
// synchronized with writers; the summary reflects whatever each read observed.
func (u *BillingSummaryUseCase) Get(ctx context.Context, actor entities.Actor, projectID string) (s entities.BillingSummary, err error) {
	defer func() { metrics.RecordError("billing_summary.read", err) }()

	if err := authz.Authorize(actor, authz.OpBillingSummaryRead); err != nil {
		return entities.BillingSummary{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.BillingSummary{}, err
	}
	projectID, err = cleanID("project_id", projectID)
	if err != nil {
		return entities.BillingSummary{}, err
	}
	started := time.Now()

	project, err := loadProject(ctx, u.store, actor.BusinessID, projectID)
	if err != nil {
		return entities.BillingSummary{}, err
	}

	var (
		quotes   []entities.Quote
		invoices []entities.Invoice
		lines    []entities.FinanceLine
		snapshot entities.PricingSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quotes, err = u.store.Quotes().ListByProject(gctx, actor.BusinessID, project.ID)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = u.store.Invoices().ListByProject(gctx, actor.BusinessID, project.ID)
		return err
	})
	g.Go(func() error {
		var err error
		lines, err = u.store.FinanceLines().ListByProject(gctx, actor.BusinessID, project.ID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot, err = pricingSnapshot(gctx, u.store, actor.BusinessID, project.ID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Error("billing summary load failed", "business_id", actor.BusinessID, "project_id", project.ID, "error", err)
		return entities.BillingSummary{}, err
	}

	s, err = Summarize(project, quotes, invoices, lines, snapshot)
	if err != nil {
		return entities.BillingSummary{}, err
	}
	metrics.ObserveSummary(string(s.Source), time.Since(started))
	u.log.Debug("billing summary computed", "business_id", actor.BusinessID, "project_id", project.ID, "source", s.Source)
	return s, nil
}
