package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"project_billing/internal/domain/errs"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// maxTransactItems is the DynamoDB limit of items in one TransactWriteItems call.
const maxTransactItems = 100

const projectIndex = "project_id-index"

// DynamoAPI is the subset of the DynamoDB client used by the store.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchGetItem(ctx context.Context, in *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store persists the billing aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string) on every table
//   - GSI project_id-index (PK project_id) on project services, quotes, invoices,
//     finance lines and tasks
//
// Writes made inside WithinTransaction are staged and committed with a single
// TransactWriteItems call. Every versioned item read by id inside the transaction and
// not written is committed as a ConditionCheck on the version read, so the commit fails
// with a conflict when a concurrent writer changed it. Writes and checks together are
// limited to 100 per transaction. Reads inside a transaction see the staged writes.
// Index queries are eventually consistent and are not guarded.
type Store struct {
	ddb    DynamoAPI
	tables config.Tables
}

var _ interfaces.IStore = (*Store)(nil)

func NewStore(ddb DynamoAPI, tables config.Tables) *Store {
	return &Store{ddb: ddb, tables: tables}
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.IRepositories) error) error {
	u := newUnitOfWork()
	if err := fn(ctx, repos{s: s, uow: u}); err != nil {
		return err
	}
	return s.commit(ctx, u)
}

func (s *Store) Projects() interfaces.IProjectRepository { return repos{s: s}.Projects() }
func (s *Store) ProjectServices() interfaces.IProjectServiceRepository {
	return repos{s: s}.ProjectServices()
}
func (s *Store) Quotes() interfaces.IQuoteRepository             { return repos{s: s}.Quotes() }
func (s *Store) Invoices() interfaces.IInvoiceRepository         { return repos{s: s}.Invoices() }
func (s *Store) FinanceLines() interfaces.IFinanceLineRepository { return repos{s: s}.FinanceLines() }
func (s *Store) Tasks() interfaces.ITaskRepository               { return repos{s: s}.Tasks() }
func (s *Store) Businesses() interfaces.IBusinessRepository      { return repos{s: s}.Businesses() }
func (s *Store) Catalog() interfaces.ICatalogRepository          { return repos{s: s}.Catalog() }
func (s *Store) Sequences() interfaces.ISequenceRepository       { return repos{s: s}.Sequences() }

// pendingWrite is one staged put or delete. expected is the version the caller read;
// zero means the write creates the item.
type pendingWrite struct {
	table      string
	entity     string
	id         string
	businessID string
	expected   int64
	item       map[string]types.AttributeValue
}

func (w pendingWrite) deleted() bool { return w.item == nil }

// readGuard is the version of an item read inside a transaction.
type readGuard struct {
	table      string
	entity     string
	id         string
	businessID string
	version    int64
}

type unitOfWork struct {
	writes    map[string]*pendingWrite
	order     []string
	reads     map[string]readGuard
	readOrder []string
}

func newUnitOfWork() *unitOfWork {
	return &unitOfWork{writes: map[string]*pendingWrite{}, reads: map[string]readGuard{}}
}

// guard records the first version seen for an item.
func (u *unitOfWork) guard(g readGuard) {
	if u == nil || g.version <= 0 {
		return
	}
	k := writeKey(g.table, g.id)
	if _, seen := u.reads[k]; seen {
		return
	}
	u.reads[k] = g
	u.readOrder = append(u.readOrder, k)
}

// checks returns the guards of items the transaction read but does not write.
func (u *unitOfWork) checks() []readGuard {
	var out []readGuard
	for _, k := range u.readOrder {
		if _, written := u.writes[k]; !written {
			out = append(out, u.reads[k])
		}
	}
	return out
}

func writeKey(table, id string) string { return table + "#" + id }

func (u *unitOfWork) lookup(table, id string) (*pendingWrite, bool) {
	if u == nil {
		return nil, false
	}
	w, ok := u.writes[writeKey(table, id)]
	return w, ok
}

// stage records w, checking it against an earlier write to the same item. Repeated
// writes collapse into one and keep the condition of the first.
func (u *unitOfWork) stage(w pendingWrite) error {
	k := writeKey(w.table, w.id)
	prev, ok := u.writes[k]
	if !ok {
		u.writes[k] = &w
		u.order = append(u.order, k)
		return nil
	}

	switch {
	case w.expected == 0 && !prev.deleted():
		return errs.Conflict(w.entity, w.id)
	case w.expected > 0 && prev.deleted():
		return errs.NotFound(w.entity, w.id)
	case w.expected > 0 && attrS(prev.item, "business_id") != w.businessID:
		return errs.NotFound(w.entity, w.id)
	case w.expected > 0 && attrN(prev.item, "version") != w.expected:
		return errs.Conflict(w.entity, w.id)
	}

	if prev.expected == 0 && prev.item != nil && w.deleted() {
		delete(u.writes, k)
		for i, key := range u.order {
			if key == k {
				u.order = append(u.order[:i], u.order[i+1:]...)
				break
			}
		}
		return nil
	}
	prev.item = w.item
	return nil
}

func (w pendingWrite) transactItem() types.TransactWriteItem {
	names := map[string]string{"#id": "id"}
	var values map[string]types.AttributeValue
	cond := "attribute_not_exists(#id)"
	if w.expected > 0 {
		cond = "#version = :expected AND #business_id = :business"
		names = map[string]string{"#version": "version", "#business_id": "business_id"}
		values = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(w.expected, 10)},
			":business": &types.AttributeValueMemberS{Value: w.businessID},
		}
	}

	if w.deleted() {
		return types.TransactWriteItem{Delete: &types.Delete{
			TableName:                           aws.String(w.table),
			Key:                                 idKey(w.id),
			ConditionExpression:                 aws.String(cond),
			ExpressionAttributeNames:            names,
			ExpressionAttributeValues:           values,
			ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
		}}
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:                           aws.String(w.table),
		Item:                                w.item,
		ConditionExpression:                 aws.String(cond),
		ExpressionAttributeNames:            names,
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}}
}

func (g readGuard) transactItem() types.TransactWriteItem {
	return types.TransactWriteItem{ConditionCheck: &types.ConditionCheck{
		TableName:           aws.String(g.table),
		Key:                 idKey(g.id),
		ConditionExpression: aws.String("#version = :expected AND #business_id = :business"),
		ExpressionAttributeNames: map[string]string{
			"#version":     "version",
			"#business_id": "business_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(g.version, 10)},
			":business": &types.AttributeValueMemberS{Value: g.businessID},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}}
}

// txTarget identifies the item behind one entry of a TransactWriteItems call.
type txTarget struct {
	entity     string
	id         string
	businessID string
	expected   int64
}

func (s *Store) commit(ctx context.Context, u *unitOfWork) error {
	if len(u.order) == 0 {
		return nil
	}
	checks := u.checks()
	if n := len(u.order) + len(checks); n > maxTransactItems {
		return fmt.Errorf("transaction has %d writes and checks, dynamodb allows at most %d", n, maxTransactItems)
	}

	targets := make([]txTarget, 0, len(u.order)+len(checks))
	items := make([]types.TransactWriteItem, 0, len(u.order)+len(checks))
	for _, k := range u.order {
		w := *u.writes[k]
		targets = append(targets, txTarget{entity: w.entity, id: w.id, businessID: w.businessID, expected: w.expected})
		items = append(items, w.transactItem())
	}
	for _, g := range checks {
		targets = append(targets, txTarget{entity: g.entity, id: g.id, businessID: g.businessID, expected: g.version})
		items = append(items, g.transactItem())
	}

	_, err := s.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(uuid.NewString()),
	})
	if err != nil {
		return translateTransactError(err, targets)
	}
	return nil
}

// translateTransactError maps a failed condition to the domain error of the write or
// check that caused it.
func translateTransactError(err error, targets []txTarget) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return err
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) != "ConditionalCheckFailed" || i >= len(targets) {
			continue
		}
		t := targets[i]
		if t.expected == 0 {
			return errs.Conflict(t.entity, t.id)
		}
		if len(reason.Item) == 0 || attrS(reason.Item, "business_id") != t.businessID {
			return errs.NotFound(t.entity, t.id)
		}
		return errs.Conflict(t.entity, t.id)
	}
	return err
}

type repos struct {
	s   *Store
	uow *unitOfWork
}

func (r repos) Projects() interfaces.IProjectRepository               { return projectRepo(r) }
func (r repos) ProjectServices() interfaces.IProjectServiceRepository { return projectServiceRepo(r) }
func (r repos) Quotes() interfaces.IQuoteRepository                   { return quoteRepo(r) }
func (r repos) Invoices() interfaces.IInvoiceRepository               { return invoiceRepo(r) }
func (r repos) FinanceLines() interfaces.IFinanceLineRepository       { return financeLineRepo(r) }
func (r repos) Tasks() interfaces.ITaskRepository                     { return taskRepo(r) }
func (r repos) Businesses() interfaces.IBusinessRepository            { return businessRepo(r) }
func (r repos) Catalog() interfaces.ICatalogRepository                { return catalogRepo(r) }
func (r repos) Sequences() interfaces.ISequenceRepository             { return sequenceRepo(r) }

// apply stages w in the open transaction, or commits it on its own.
func (r repos) apply(ctx context.Context, ws ...pendingWrite) error {
	u := r.uow
	if u == nil {
		u = newUnitOfWork()
	}
	for _, w := range ws {
		if err := u.stage(w); err != nil {
			return err
		}
	}
	if r.uow == nil {
		return r.s.commit(ctx, u)
	}
	return nil
}

func (r repos) putWrite(table, entity, id, businessID string, expected int64, item any) (pendingWrite, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pendingWrite{}, err
	}
	return pendingWrite{table: table, entity: entity, id: id, businessID: businessID, expected: expected, item: av}, nil
}

func (r repos) put(ctx context.Context, table, entity, id, businessID string, expected int64, item any) error {
	w, err := r.putWrite(table, entity, id, businessID, expected, item)
	if err != nil {
		return err
	}
	return r.apply(ctx, w)
}

func (r repos) remove(ctx context.Context, table, entity, id, businessID string, expected int64) error {
	return r.apply(ctx, pendingWrite{table: table, entity: entity, id: id, businessID: businessID, expected: expected})
}

// loadItem reads one item by id, preferring a staged write. Inside a transaction the
// version read is guarded until commit.
func loadItem[T any](ctx context.Context, r repos, table, entity, id string) (T, bool, error) {
	var it T
	var raw map[string]types.AttributeValue
	if w, ok := r.uow.lookup(table, id); ok {
		raw = w.item
	} else {
		out, err := r.s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
			TableName:      aws.String(table),
			Key:            idKey(id),
			ConsistentRead: aws.Bool(true),
		})
		if err != nil {
			return it, false, err
		}
		raw = out.Item
		r.uow.guard(readGuard{
			table:      table,
			entity:     entity,
			id:         id,
			businessID: attrS(raw, "business_id"),
			version:    attrN(raw, "version"),
		})
	}
	if len(raw) == 0 {
		return it, false, nil
	}
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return it, false, err
	}
	return it, true, nil
}

// listByProject queries the project index and overlays the staged writes of table.
func listByProject[T any](ctx context.Context, r repos, table, businessID, projectID string) ([]T, error) {
	var rows []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.s.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(table),
			IndexName:              aws.String(projectIndex),
			KeyConditionExpression: aws.String("#project_id = :project_id"),
			FilterExpression:       aws.String("#business_id = :business_id"),
			ExpressionAttributeNames: map[string]string{
				"#project_id":  "project_id",
				"#business_id": "business_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":project_id":  &types.AttributeValueMemberS{Value: projectID},
				":business_id": &types.AttributeValueMemberS{Value: businessID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		rows = append(rows, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	rows = r.uow.overlay(table, rows, func(m map[string]types.AttributeValue) bool {
		return attrS(m, "business_id") == businessID && attrS(m, "project_id") == projectID
	})

	var out []T
	if err := attributevalue.UnmarshalListOfMaps(rows, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// overlay replaces rows of table by their staged version and appends staged items
// matching keep.
func (u *unitOfWork) overlay(table string, rows []map[string]types.AttributeValue, keep func(map[string]types.AttributeValue) bool) []map[string]types.AttributeValue {
	if u == nil {
		return rows
	}
	out := make([]map[string]types.AttributeValue, 0, len(rows))
	for _, row := range rows {
		if _, staged := u.writes[writeKey(table, attrS(row, "id"))]; !staged {
			out = append(out, row)
		}
	}
	for _, k := range u.order {
		w := u.writes[k]
		if w.table == table && !w.deleted() && keep(w.item) {
			out = append(out, w.item)
		}
	}
	return out
}

func attrS(m map[string]types.AttributeValue, name string) string {
	if v, ok := m[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func attrN(m map[string]types.AttributeValue, name string) int64 {
	if v, ok := m[name].(*types.AttributeValueMemberN); ok {
		n, _ := strconv.ParseInt(v.Value, 10, 64)
		return n
	}
	return 0
}
