package usecase

import (
	"context"
	"sort"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
	"project_billing/internal/usecase/interfaces"
)

// PriceServices projects a project's sold services into a pricing snapshot.
//
// The override price wins over the catalog default; a service with neither yields a
// zero-priced line. Lines are ordered by position, then creation time, then id, so the
// result does not depend on the order services were loaded in.
func PriceServices(services []entities.ProjectService, catalog map[string]entities.CatalogService, currency money.Currency, depositPercent int) (entities.PricingSnapshot, error) {
	if err := money.ValidatePercent(depositPercent); err != nil {
		return entities.PricingSnapshot{}, err
	}

	ordered := make([]entities.ProjectService, len(services))
	copy(ordered, services)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	items := make([]entities.LineItem, 0, len(ordered))
	totals := make([]money.Cents, 0, len(ordered))
	for _, ps := range ordered {
		svc, known := catalog[ps.ServiceID]

		var unit money.Cents
		switch {
		case ps.PriceCentsOverride != nil:
			unit = *ps.PriceCentsOverride
		case known && svc.DefaultPriceCents != nil:
			unit = *svc.DefaultPriceCents
		}

		lineTotal, err := money.Multiply(unit, ps.Quantity)
		if err != nil {
			return entities.PricingSnapshot{}, err
		}

		label := ps.ServiceID
		if known && svc.Name != "" {
			label = svc.Name
		}
		items = append(items, entities.LineItem{
			ProjectServiceID: ps.ID,
			ServiceID:        ps.ServiceID,
			Label:            label,
			Quantity:         ps.Quantity,
			UnitPriceCents:   unit,
			TotalCents:       lineTotal,
		})
		totals = append(totals, lineTotal)
	}

	total, err := money.Sum(totals...)
	if err != nil {
		return entities.PricingSnapshot{}, err
	}
	deposit, balance, err := money.Split(total, depositPercent)
	if err != nil {
		return entities.PricingSnapshot{}, err
	}

	return entities.PricingSnapshot{
		Currency:       currency,
		Items:          items,
		TotalCents:     total,
		DepositPercent: depositPercent,
		DepositCents:   deposit,
		BalanceCents:   balance,
	}, nil
}

// LineItemInput is a manually priced invoice line.
type LineItemInput struct {
	Label          string
	Quantity       int
	UnitPriceCents money.Cents
}

// PriceLines totals manually entered lines the same way PriceServices does.
func PriceLines(lines []LineItemInput, currency money.Currency, depositPercent int) (entities.PricingSnapshot, error) {
	if err := money.ValidatePercent(depositPercent); err != nil {
		return entities.PricingSnapshot{}, err
	}
	items := make([]entities.LineItem, 0, len(lines))
	totals := make([]money.Cents, 0, len(lines))
	for _, l := range lines {
		lineTotal, err := money.Multiply(l.UnitPriceCents, l.Quantity)
		if err != nil {
			return entities.PricingSnapshot{}, err
		}
		items = append(items, entities.LineItem{
			Label:          l.Label,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			TotalCents:     lineTotal,
		})
		totals = append(totals, lineTotal)
	}
	total, err := money.Sum(totals...)
	if err != nil {
		return entities.PricingSnapshot{}, err
	}
	deposit, balance, err := money.Split(total, depositPercent)
	if err != nil {
		return entities.PricingSnapshot{}, err
	}
	return entities.PricingSnapshot{
		Currency:       currency,
		Items:          items,
		TotalCents:     total,
		DepositPercent: depositPercent,
		DepositCents:   deposit,
		BalanceCents:   balance,
	}, nil
}

// pricingSnapshot loads everything PriceServices needs for one project. depositPercent
// nil means the business default.
func pricingSnapshot(ctx context.Context, repos interfaces.IRepositories, businessID, projectID string, depositPercent *int) (entities.PricingSnapshot, error) {
	settings, err := loadSettings(ctx, repos, businessID)
	if err != nil {
		return entities.PricingSnapshot{}, err
	}
	services, err := repos.ProjectServices().ListByProject(ctx, businessID, projectID)
	if err != nil {
		return entities.PricingSnapshot{}, err
	}
	ids := make([]string, 0, len(services))
	seen := make(map[string]struct{}, len(services))
	for _, s := range services {
		if _, ok := seen[s.ServiceID]; ok {
			continue
		}
		seen[s.ServiceID] = struct{}{}
		ids = append(ids, s.ServiceID)
	}
	catalog := map[string]entities.CatalogService{}
	if len(ids) > 0 {
		catalog, err = repos.Catalog().GetServices(ctx, businessID, ids)
		if err != nil {
			return entities.PricingSnapshot{}, err
		}
	}
	percent := settings.DefaultDepositPercent
	if depositPercent != nil {
		percent = *depositPercent
	}
	return PriceServices(services, catalog, settings.Currency, percent)
}
