package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	items      map[string]map[string]map[string]types.AttributeValue
	queries    map[string][]map[string]types.AttributeValue
	getCalls   int
	txInputs   []*dynamodb.TransactWriteItemsInput
	txErr      error
	batchCalls int
	unprocOnce map[string]types.KeysAndAttributes
	counter    int64
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		items:   map[string]map[string]map[string]types.AttributeValue{},
		queries: map[string][]map[string]types.AttributeValue{},
	}
}

func (f *fakeDynamo) put(t *testing.T, table, id string, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if f.items[table] == nil {
		f.items[table] = map[string]map[string]types.AttributeValue{}
	}
	f.items[table][id] = av
	return av
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getCalls++
	id := attrS(in.Key, "id")
	return &dynamodb.GetItemOutput{Item: f.items[aws.ToString(in.TableName)][id]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{Items: f.queries[aws.ToString(in.TableName)]}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{Items: f.queries[aws.ToString(in.TableName)]}, nil
}

func (f *fakeDynamo) BatchGetItem(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.batchCalls++
	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{}}
	for table, ka := range in.RequestItems {
		for _, key := range ka.Keys {
			if item, ok := f.items[table][attrS(key, "id")]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	if f.unprocOnce != nil {
		out.UnprocessedKeys = f.unprocOnce
		f.unprocOnce = nil
	}
	return out, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, _ *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.counter++
	return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
		"value": &types.AttributeValueMemberN{Value: itoa(f.counter)},
	}}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.txInputs = append(f.txInputs, in)
	if f.txErr != nil {
		return nil, f.txErr
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

var testTables = config.Tables{
	Projects:        "projects",
	ProjectServices: "project_services",
	Quotes:          "quotes",
	Invoices:        "invoices",
	FinanceLines:    "finance_lines",
	Tasks:           "tasks",
	Businesses:      "businesses",
	Catalog:         "catalog_services",
	Sequences:       "sequences",
}

func testProject() entities.Project {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return entities.Project{
		ID:            "p-1",
		BusinessID:    "b-1",
		Name:          "Website",
		Status:        entities.ProjectStatusPlanned,
		QuoteStatus:   entities.ProjectQuoteDraft,
		DepositStatus: entities.DepositNotRequired,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestStore_CreateOutsideTransactionCommitsImmediately(t *testing.T) {
	ddb := newFakeDynamo()
	store := NewStore(ddb, testTables)

	p, err := store.Projects().Create(context.Background(), testProject())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Version != 1 {
		t.Fatalf("expected version 1, got %d", p.Version)
	}
	if len(ddb.txInputs) != 1 || len(ddb.txInputs[0].TransactItems) != 1 {
		t.Fatalf("expected one single-item transaction, got %+v", ddb.txInputs)
	}
	put := ddb.txInputs[0].TransactItems[0].Put
	if put == nil || aws.ToString(put.ConditionExpression) != "attribute_not_exists(#id)" {
		t.Fatalf("expected conditional create, got %+v", ddb.txInputs[0].TransactItems[0])
	}
	if ddb.txInputs[0].ClientRequestToken == nil {
		t.Fatalf("expected idempotency token")
	}
}

func TestStore_TransactionStagesAndCollapsesWrites(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	store := NewStore(ddb, testTables)

	err := store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		p, err := tx.Projects().Create(ctx, testProject())
		if err != nil {
			return err
		}
		got, err := tx.Projects().GetByID(ctx, "b-1", p.ID)
		if err != nil || got.Name != "Website" {
			t.Fatalf("expected staged project to be readable, got %+v err=%v", got, err)
		}
		p.Name = "Website v2"
		if _, err := tx.Projects().Update(ctx, p); err != nil {
			return err
		}
		if _, err := tx.Projects().Update(ctx, p); !errors.Is(err, errs.ErrConflict) {
			t.Fatalf("expected stale update to conflict, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ddb.getCalls != 0 {
		t.Fatalf("expected staged reads, got %d GetItem calls", ddb.getCalls)
	}
	if len(ddb.txInputs) != 1 || len(ddb.txInputs[0].TransactItems) != 1 {
		t.Fatalf("expected one collapsed write, got %+v", ddb.txInputs)
	}
	put := ddb.txInputs[0].TransactItems[0].Put
	var it projectItem
	if err := attributevalue.UnmarshalMap(put.Item, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Version != 2 || it.Name != "Website v2" || aws.ToString(put.ConditionExpression) != "attribute_not_exists(#id)" {
		t.Fatalf("expected create condition with final state, got %+v", it)
	}
}

func TestStore_RollbackWritesNothing(t *testing.T) {
	ddb := newFakeDynamo()
	store := NewStore(ddb, testTables)
	boom := errors.New("boom")

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx interfaces.IRepositories) error {
		if _, err := tx.Projects().Create(ctx, testProject()); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(ddb.txInputs) != 0 {
		t.Fatalf("expected no transaction on rollback")
	}
}

func TestStore_ConditionFailuresMapToDomainErrors(t *testing.T) {
	ctx := context.Background()
	p := testProject()
	p.Version = 3

	cases := []struct {
		name string
		old  map[string]types.AttributeValue
		want error
	}{
		{name: "stale version", old: map[string]types.AttributeValue{
			"business_id": &types.AttributeValueMemberS{Value: "b-1"},
			"version":     &types.AttributeValueMemberN{Value: "4"},
		}, want: errs.ErrConflict},
		{name: "missing item", old: nil, want: errs.ErrNotFound},
		{name: "other business", old: map[string]types.AttributeValue{
			"business_id": &types.AttributeValueMemberS{Value: "b-2"},
		}, want: errs.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ddb := newFakeDynamo()
			ddb.txErr = &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed"), Item: tc.old},
			}}
			_, err := NewStore(ddb, testTables).Projects().Update(ctx, p)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStore_ListByProjectOverlaysStagedWrites(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	stored := []entities.ProjectService{
		{ID: "ps-1", BusinessID: "b-1", ProjectID: "p-1", ServiceID: "svc", Quantity: 1, Position: 0, Version: 1},
		{ID: "ps-2", BusinessID: "b-1", ProjectID: "p-1", ServiceID: "svc", Quantity: 1, Position: 1, Version: 1},
	}
	for _, s := range stored {
		av, _ := attributevalue.MarshalMap(toProjectServiceItem(s))
		ddb.queries[testTables.ProjectServices] = append(ddb.queries[testTables.ProjectServices], av)
	}
	store := NewStore(ddb, testTables)

	err := store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		if err := tx.ProjectServices().Delete(ctx, stored[0]); err != nil {
			return err
		}
		override := money.Cents(900)
		if _, err := tx.ProjectServices().Create(ctx, entities.ProjectService{
			ID: "ps-3", BusinessID: "b-1", ProjectID: "p-1", ServiceID: "svc", Quantity: 2, Position: 2, PriceCentsOverride: &override,
		}); err != nil {
			return err
		}
		list, err := tx.ProjectServices().ListByProject(ctx, "b-1", "p-1")
		if err != nil {
			return err
		}
		if len(list) != 2 || list[0].ID != "ps-2" || list[1].ID != "ps-3" || *list[1].PriceCentsOverride != 900 {
			t.Fatalf("unexpected overlay: %+v", list)
		}
		return tx.ProjectServices().DeleteByProject(ctx, "b-1", "p-1")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := ddb.txInputs[0].TransactItems
	if len(items) != 2 || items[0].Delete == nil || items[1].Delete == nil {
		t.Fatalf("expected two deletes of stored services, got %+v", items)
	}
}

func TestStore_TransactionWriteLimit(t *testing.T) {
	ddb := newFakeDynamo()
	tasks := make([]entities.Task, maxTransactItems+1)
	for i := range tasks {
		tasks[i] = entities.Task{ID: "t-" + itoa(int64(i)), BusinessID: "b-1", ProjectID: "p-1"}
	}
	if err := NewStore(ddb, testTables).Tasks().CreateBatch(context.Background(), tasks); err == nil {
		t.Fatalf("expected transaction size error")
	}
	if len(ddb.txInputs) != 0 {
		t.Fatalf("expected nothing written")
	}
}

func TestStore_ReferenceReads(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	price := int64(5000)
	ddb.put(t, testTables.Catalog, "svc-1", catalogItem{ID: "svc-1", BusinessID: "b-1", Name: "Dev", DefaultPriceCents: &price,
		TaskTemplate: &taskTemplateItem{Title: "Build", Phase: string(entities.PhaseDev)}})
	ddb.put(t, testTables.Catalog, "svc-2", catalogItem{ID: "svc-2", BusinessID: "b-2", Name: "Other"})
	ddb.put(t, testTables.Businesses, "b-1", businessItem{ID: "b-1", Currency: "EUR", DefaultDepositPercent: 30, PaymentTermsDays: 30, QuoteValidityDays: 30})
	ddb.unprocOnce = map[string]types.KeysAndAttributes{testTables.Catalog: {Keys: []map[string]types.AttributeValue{idKey("svc-1")}}}
	store := NewStore(ddb, testTables)

	catalog, err := store.Catalog().GetServices(ctx, "b-1", []string{"svc-1", "svc-2", "svc-1", "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != 1 || *catalog["svc-1"].DefaultPriceCents != 5000 || catalog["svc-1"].TaskTemplate.Phase != entities.PhaseDev {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
	if ddb.batchCalls != 2 {
		t.Fatalf("expected unprocessed keys to be retried, got %d calls", ddb.batchCalls)
	}

	settings, err := store.Businesses().GetSettings(ctx, "b-1")
	if err != nil || settings.Currency != "EUR" || settings.DefaultDepositPercent != 30 {
		t.Fatalf("unexpected settings: %+v err=%v", settings, err)
	}
	missing, err := store.Businesses().GetSettings(ctx, "b-9")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero settings, got %+v err=%v", missing, err)
	}

	first, _ := store.Sequences().Next(ctx, "b-1", "quote")
	second, _ := store.Sequences().Next(ctx, "b-1", "quote")
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 and 2, got %d and %d", first, second)
	}
}

func TestStore_GetByIDScopesToBusiness(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.put(t, testTables.Quotes, "q-1", toQuoteItem(entities.Quote{ID: "q-1", BusinessID: "b-1", ProjectID: "p-1", Status: entities.QuoteStatusDraft}))
	store := NewStore(ddb, testTables)

	q, err := store.Quotes().GetByID(context.Background(), "b-2", "q-1")
	if err != nil || q.ID != "" {
		t.Fatalf("expected not found for other business, got %+v err=%v", q, err)
	}
	q, err = store.Quotes().GetByID(context.Background(), "b-1", "q-1")
	if err != nil || q.Status != entities.QuoteStatusDraft {
		t.Fatalf("unexpected quote: %+v err=%v", q, err)
	}
}

func TestTimeFormatRoundTripsAndSorts(t *testing.T) {
	a := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b := a.Add(time.Millisecond)
	if formatTime(a) >= formatTime(b) {
		t.Fatalf("expected lexical order to follow time order: %s %s", formatTime(a), formatTime(b))
	}
	if got := parseTime(formatTime(b)); !got.Equal(b) {
		t.Fatalf("expected round trip, got %v", got)
	}
	if parseTimePtr("") != nil {
		t.Fatalf("expected nil for empty time")
	}
}

func TestInvoiceItemKeepsProviderCharges(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	inv := entities.Invoice{
		ID: "i-1", BusinessID: "b-1", ProjectID: "p-1", Status: entities.InvoiceStatusSent, Currency: "EUR",
		TotalCents: 5000, RemainingCents: 5000, Version: 2, CreatedAt: at, UpdatedAt: at,
		Charges: []entities.ProviderCharge{{ProviderPaymentID: "mp-9", AmountCents: 5000, ChargedAt: at}},
	}
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var it invoiceItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := fromInvoiceItem(it)
	c, ok := got.Charge("mp-9")
	if !ok || c.Applied || c.AmountCents != money.Cents(5000) || !c.ChargedAt.Equal(at) {
		t.Fatalf("expected charge round trip, got %+v", got.Charges)
	}

	inv.Charges = nil
	av, _ = attributevalue.MarshalMap(toInvoiceItem(inv))
	if _, ok := av["charges"]; ok {
		t.Fatalf("expected no charges attribute, got %v", av["charges"])
	}
}

func seedProject(t *testing.T, ddb *fakeDynamo, version int64) entities.Project {
	t.Helper()
	p := testProject()
	p.Version = version
	ddb.put(t, testTables.Projects, p.ID, toProjectItem(p))
	return p
}

func TestStore_TransactionGuardsItemsReadButNotWritten(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	seedProject(t, ddb, 4)
	store := NewStore(ddb, testTables)

	err := store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		p, err := tx.Projects().GetByID(ctx, "b-1", "p-1")
		if err != nil || p.ID == "" {
			t.Fatalf("expected project, got %+v err=%v", p, err)
		}
		return tx.Tasks().CreateBatch(ctx, []entities.Task{{ID: "t-1", BusinessID: "b-1", ProjectID: p.ID}})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ddb.txInputs) != 1 {
		t.Fatalf("expected one transaction, got %d", len(ddb.txInputs))
	}
	items := ddb.txInputs[0].TransactItems
	if len(items) != 2 || items[0].Put == nil {
		t.Fatalf("expected the task put and one check, got %+v", items)
	}
	check := items[1].ConditionCheck
	if check == nil {
		t.Fatalf("expected a condition check on the project, got %+v", items[1])
	}
	if aws.ToString(check.TableName) != testTables.Projects || attrS(check.Key, "id") != "p-1" {
		t.Fatalf("unexpected check target %s %v", aws.ToString(check.TableName), check.Key)
	}
	if aws.ToString(check.ConditionExpression) != "#version = :expected AND #business_id = :business" {
		t.Fatalf("unexpected condition %q", aws.ToString(check.ConditionExpression))
	}
	if attrN(check.ExpressionAttributeValues, ":expected") != 4 || attrS(check.ExpressionAttributeValues, ":business") != "b-1" {
		t.Fatalf("expected version 4 of b-1, got %v", check.ExpressionAttributeValues)
	}
}

func TestStore_TransactionDoesNotGuardWrittenItems(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	seedProject(t, ddb, 4)

	err := NewStore(ddb, testTables).WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		p, err := tx.Projects().GetByID(ctx, "b-1", "p-1")
		if err != nil {
			return err
		}
		p.Name = "Renamed"
		_, err = tx.Projects().Update(ctx, p)
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := ddb.txInputs[0].TransactItems
	if len(items) != 1 || items[0].Put == nil {
		t.Fatalf("expected a single conditional put, got %+v", items)
	}
	if attrN(items[0].Put.ExpressionAttributeValues, ":expected") != 4 {
		t.Fatalf("expected put conditioned on version 4, got %v", items[0].Put.ExpressionAttributeValues)
	}
}

func TestStore_ReadOnlyTransactionCommitsNothing(t *testing.T) {
	ddb := newFakeDynamo()
	seedProject(t, ddb, 2)

	err := NewStore(ddb, testTables).WithinTransaction(context.Background(), func(ctx context.Context, tx interfaces.IRepositories) error {
		_, err := tx.Projects().GetByID(ctx, "b-1", "p-1")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ddb.txInputs) != 0 {
		t.Fatalf("expected no transaction, got %d", len(ddb.txInputs))
	}
}

func TestStore_ChangedReadItemFailsCommitWithConflict(t *testing.T) {
	ddb := newFakeDynamo()
	seedProject(t, ddb, 4)
	ddb.txErr = &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
		{Code: aws.String("None")},
		{Code: aws.String("ConditionalCheckFailed"), Item: map[string]types.AttributeValue{
			"business_id": &types.AttributeValueMemberS{Value: "b-1"},
			"version":     &types.AttributeValueMemberN{Value: "5"},
		}},
	}}

	err := NewStore(ddb, testTables).WithinTransaction(context.Background(), func(ctx context.Context, tx interfaces.IRepositories) error {
		if _, err := tx.Projects().GetByID(ctx, "b-1", "p-1"); err != nil {
			return err
		}
		return tx.Tasks().CreateBatch(ctx, []entities.Task{{ID: "t-1", BusinessID: "b-1", ProjectID: "p-1"}})
	})
	var conflict *errs.ConflictError
	if !errors.As(err, &conflict) || conflict.Entity != "project" || conflict.ID != "p-1" {
		t.Fatalf("expected project conflict, got %v", err)
	}
}
