package repository

import (
	"context"
	"sort"
	"strconv"
	"time"

	"project_billing/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// batchGetLimit is the DynamoDB limit of keys per BatchGetItem call.
const batchGetLimit = 100

type (
	projectRepo        repos
	projectServiceRepo repos
	quoteRepo          repos
	invoiceRepo        repos
	financeLineRepo    repos
	taskRepo           repos
	businessRepo       repos
	catalogRepo        repos
	sequenceRepo       repos
)

func (r projectRepo) GetByID(ctx context.Context, businessID, id string) (entities.Project, error) {
	it, ok, err := loadItem[projectItem](ctx, repos(r), r.s.tables.Projects, "project", id)
	if err != nil || !ok || it.BusinessID != businessID {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r projectRepo) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	p.Version = 1
	if err := repos(r).put(ctx, r.s.tables.Projects, "project", p.ID, p.BusinessID, 0, toProjectItem(p)); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r projectRepo) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	expected := p.Version
	p.Version++
	if err := repos(r).put(ctx, r.s.tables.Projects, "project", p.ID, p.BusinessID, expected, toProjectItem(p)); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r projectRepo) Delete(ctx context.Context, p entities.Project) error {
	return repos(r).remove(ctx, r.s.tables.Projects, "project", p.ID, p.BusinessID, p.Version)
}

func (r projectServiceRepo) GetByID(ctx context.Context, businessID, id string) (entities.ProjectService, error) {
	it, ok, err := loadItem[projectServiceItem](ctx, repos(r), r.s.tables.ProjectServices, "project_service", id)
	if err != nil || !ok || it.BusinessID != businessID {
		return entities.ProjectService{}, err
	}
	return fromProjectServiceItem(it), nil
}

func (r projectServiceRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.ProjectService, error) {
	items, err := listByProject[projectServiceItem](ctx, repos(r), r.s.tables.ProjectServices, businessID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.ProjectService, 0, len(items))
	for _, it := range items {
		out = append(out, fromProjectServiceItem(it))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r projectServiceRepo) Create(ctx context.Context, s entities.ProjectService) (entities.ProjectService, error) {
	s.Version = 1
	if err := repos(r).put(ctx, r.s.tables.ProjectServices, "project_service", s.ID, s.BusinessID, 0, toProjectServiceItem(s)); err != nil {
		return entities.ProjectService{}, err
	}
	return s, nil
}

func (r projectServiceRepo) Update(ctx context.Context, s entities.ProjectService) (entities.ProjectService, error) {
	expected := s.Version
	s.Version++
	if err := repos(r).put(ctx, r.s.tables.ProjectServices, "project_service", s.ID, s.BusinessID, expected, toProjectServiceItem(s)); err != nil {
		return entities.ProjectService{}, err
	}
	return s, nil
}

func (r projectServiceRepo) Delete(ctx context.Context, s entities.ProjectService) error {
	return repos(r).remove(ctx, r.s.tables.ProjectServices, "project_service", s.ID, s.BusinessID, s.Version)
}

func (r projectServiceRepo) DeleteByProject(ctx context.Context, businessID, projectID string) error {
	services, err := r.ListByProject(ctx, businessID, projectID)
	if err != nil {
		return err
	}
	writes := make([]pendingWrite, 0, len(services))
	for _, s := range services {
		writes = append(writes, pendingWrite{
			table: r.s.tables.ProjectServices, entity: "project_service",
			id: s.ID, businessID: s.BusinessID, expected: s.Version,
		})
	}
	return repos(r).apply(ctx, writes...)
}

func (r quoteRepo) GetByID(ctx context.Context, businessID, id string) (entities.Quote, error) {
	it, ok, err := loadItem[quoteItem](ctx, repos(r), r.s.tables.Quotes, "quote", id)
	if err != nil || !ok || it.BusinessID != businessID {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r quoteRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Quote, error) {
	items, err := listByProject[quoteItem](ctx, repos(r), r.s.tables.Quotes, businessID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(items))
	for _, it := range items {
		out = append(out, fromQuoteItem(it))
	}
	sortByCreated(out, func(q entities.Quote) (time.Time, string) { return q.CreatedAt, q.ID })
	return out, nil
}

// ListSentExpiredBefore scans the whole quotes table; it backs the periodic expiry job.
func (r quoteRepo) ListSentExpiredBefore(ctx context.Context, t time.Time) ([]entities.Quote, error) {
	var items []quoteItem
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.s.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.s.tables.Quotes),
			FilterExpression: aws.String("#status = :sent AND #expires_at < :before"),
			ExpressionAttributeNames: map[string]string{
				"#status":     "status",
				"#expires_at": "expires_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sent":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusSent)},
				":before": &types.AttributeValueMemberS{Value: formatTime(t)},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []quoteItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	out := make([]entities.Quote, 0, len(items))
	for _, it := range items {
		out = append(out, fromQuoteItem(it))
	}
	sortByCreated(out, func(q entities.Quote) (time.Time, string) { return q.CreatedAt, q.ID })
	return out, nil
}

func (r quoteRepo) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version = 1
	if err := repos(r).put(ctx, r.s.tables.Quotes, "quote", q.ID, q.BusinessID, 0, toQuoteItem(q)); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r quoteRepo) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	expected := q.Version
	q.Version++
	if err := repos(r).put(ctx, r.s.tables.Quotes, "quote", q.ID, q.BusinessID, expected, toQuoteItem(q)); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r invoiceRepo) GetByID(ctx context.Context, businessID, id string) (entities.Invoice, error) {
	it, ok, err := loadItem[invoiceItem](ctx, repos(r), r.s.tables.Invoices, "invoice", id)
	if err != nil || !ok || it.BusinessID != businessID {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r invoiceRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Invoice, error) {
	items, err := listByProject[invoiceItem](ctx, repos(r), r.s.tables.Invoices, businessID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, 0, len(items))
	for _, it := range items {
		out = append(out, fromInvoiceItem(it))
	}
	sortByCreated(out, func(inv entities.Invoice) (time.Time, string) { return inv.CreatedAt, inv.ID })
	return out, nil
}

func (r invoiceRepo) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	inv.Version = 1
	if err := repos(r).put(ctx, r.s.tables.Invoices, "invoice", inv.ID, inv.BusinessID, 0, toInvoiceItem(inv)); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r invoiceRepo) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	expected := inv.Version
	inv.Version++
	if err := repos(r).put(ctx, r.s.tables.Invoices, "invoice", inv.ID, inv.BusinessID, expected, toInvoiceItem(inv)); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r financeLineRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.FinanceLine, error) {
	items, err := listByProject[financeLineItem](ctx, repos(r), r.s.tables.FinanceLines, businessID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.FinanceLine, 0, len(items))
	for _, it := range items {
		out = append(out, fromFinanceLineItem(it))
	}
	sortByCreated(out, func(f entities.FinanceLine) (time.Time, string) { return f.Date, f.ID })
	return out, nil
}

func (r taskRepo) CreateBatch(ctx context.Context, tasks []entities.Task) error {
	writes := make([]pendingWrite, 0, len(tasks))
	for _, t := range tasks {
		w, err := repos(r).putWrite(r.s.tables.Tasks, "task", t.ID, t.BusinessID, 0, toTaskItem(t))
		if err != nil {
			return err
		}
		writes = append(writes, w)
	}
	return repos(r).apply(ctx, writes...)
}

func (r taskRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Task, error) {
	items, err := listByProject[taskItem](ctx, repos(r), r.s.tables.Tasks, businessID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Task, 0, len(items))
	for _, it := range items {
		out = append(out, fromTaskItem(it))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r businessRepo) GetSettings(ctx context.Context, businessID string) (entities.BusinessSettings, error) {
	it, ok, err := loadItem[businessItem](ctx, repos(r), r.s.tables.Businesses, "business", businessID)
	if err != nil || !ok {
		return entities.BusinessSettings{}, err
	}
	return fromBusinessItem(it), nil
}

func (r catalogRepo) GetServices(ctx context.Context, businessID string, ids []string) (map[string]entities.CatalogService, error) {
	out := make(map[string]entities.CatalogService, len(ids))
	seen := make(map[string]bool, len(ids))
	var keys []map[string]types.AttributeValue
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, idKey(id))
	}

	table := r.s.tables.Catalog
	for start := 0; start < len(keys); start += batchGetLimit {
		end := min(start+batchGetLimit, len(keys))
		request := map[string]types.KeysAndAttributes{
			table: {Keys: keys[start:end], ConsistentRead: aws.Bool(true)},
		}
		for len(request) > 0 {
			res, err := r.s.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, err
			}
			var page []catalogItem
			if err := attributevalue.UnmarshalListOfMaps(res.Responses[table], &page); err != nil {
				return nil, err
			}
			for _, it := range page {
				if it.BusinessID == businessID {
					out[it.ID] = fromCatalogItem(it)
				}
			}
			request = res.UnprocessedKeys
		}
	}
	return out, nil
}

// Next increments the counter outside any open transaction; a rolled back command
// leaves a gap in the numbering.
func (r sequenceRepo) Next(ctx context.Context, businessID, name string) (int64, error) {
	out, err := r.s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.s.tables.Sequences),
		Key:                       idKey(businessID + "#" + name),
		UpdateExpression:          aws.String("ADD #value :one"),
		ExpressionAttributeNames:  map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	v, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errSequenceValue
	}
	return strconv.ParseInt(v.Value, 10, 64)
}

func sortByCreated[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})
}
