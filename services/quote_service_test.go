package services

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"orcado_server/database"
	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoteStore struct {
	quotes        map[uuid.UUID]*tables.Quote
	insertErrs    []error // popped per Insert call
	inserted      []string
	updateErr     error
	lastUpdate    *database.QuoteStatusUpdate
	lastExpected  []tables.QuoteStatus
	updatedQuotes []uuid.UUID
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{quotes: make(map[uuid.UUID]*tables.Quote)}
}

func (f *fakeQuoteStore) Insert(ctx context.Context, quote *tables.Quote) error {
	f.inserted = append(f.inserted, quote.OrderNumber)
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	f.quotes[quote.Id] = quote
	return nil
}

func (f *fakeQuoteStore) GetByID(ctx context.Context, id uuid.UUID) (*tables.Quote, error) {
	quote, ok := f.quotes[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return quote, nil
}

func (f *fakeQuoteStore) List(ctx context.Context) ([]tables.Quote, error) {
	var out []tables.Quote
	for _, q := range f.quotes {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuoteStore) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected []tables.QuoteStatus, update database.QuoteStatusUpdate) error {
	f.lastExpected = expected
	f.lastUpdate = &update
	f.updatedQuotes = append(f.updatedQuotes, id)

	if f.updateErr != nil {
		return f.updateErr
	}

	quote, ok := f.quotes[id]
	if !ok || !slices.Contains(expected, quote.Status) {
		return lib.ErrConflict
	}

	quote.Status = update.Status
	if update.ExternalOrderId != nil {
		quote.ExternalOrderId = *update.ExternalOrderId
	}
	if update.LastError != nil {
		quote.LastError = *update.LastError
	}
	if update.ProcessedAt != nil {
		quote.ProcessedAt = update.ProcessedAt
	}
	return nil
}

type fakeResolver struct {
	contact *structs.BlingContact
	err     error
	calls   int
}

func (f *fakeResolver) Resolve(ctx context.Context, quote *tables.Quote) (*structs.BlingContact, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.contact, nil
}

type fakeSubmitter struct {
	externalId string
	err        error
	calls      int
}

func (f *fakeSubmitter) SubmitSalesOrder(ctx context.Context, order *structs.BlingOrder) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.externalId, nil
}

func newQuoteService(store QuoteStore, resolver contactResolver, submitter orderSubmitter) *QuoteService {
	cfg := &structs.Config{Bling: &structs.BlingConfig{}}
	return NewQuoteService(gecho.NewDefaultLogger(), cfg, store, resolver, submitter, nil)
}

func sampleQuoteRequest() *structs.QuoteRequest {
	return &structs.QuoteRequest{
		ClientName:    "ACME Corp",
		ClientEmail:   "Buyer@ACME.com",
		ClientCompany: "ACME",
		ClientPhone:   "11 99999-0000",
		Items: []structs.QuoteItemRequest{
			{ProductName: "Widget", Quantity: 3, UnitPrice: 19.99},
			{ProductName: "Gadget", Quantity: 1, UnitPrice: 5.50},
		},
	}
}

func storedQuote(store *fakeQuoteStore, status tables.QuoteStatus) *tables.Quote {
	quote := &tables.Quote{
		Id:          uuid.New(),
		OrderNumber: "ORC-20260901-222",
		ClientName:  "ACME Corp",
		ClientEmail: "buyer@acme.com",
		TotalCents:  6547,
		Status:      status,
		Items: []*tables.QuoteItem{
			{ProductName: "Widget", Quantity: 3, UnitCents: 1999, SubtotalCents: 5997},
		},
	}
	store.quotes[quote.Id] = quote
	return quote
}

func TestCreateQuoteComputesCents(t *testing.T) {
	store := newFakeQuoteStore()
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	quote, err := qs.CreateQuoteFromRequest(context.Background(), sampleQuoteRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, tables.QuoteStatusPending, quote.Status)
	assert.Equal(t, "buyer@acme.com", quote.ClientEmail)
	require.Len(t, quote.Items, 2)
	assert.Equal(t, uint64(1999), quote.Items[0].UnitCents)
	assert.Equal(t, uint64(5997), quote.Items[0].SubtotalCents)
	assert.Equal(t, uint64(550), quote.Items[1].SubtotalCents)
	assert.Equal(t, uint64(6547), quote.TotalCents)
	assert.Regexp(t, `^ORC-\d{8}-\d{3}$`, quote.OrderNumber)
}

func TestCreateQuoteRegeneratesOrderNumberOnCollision(t *testing.T) {
	store := newFakeQuoteStore()
	store.insertErrs = []error{lib.ErrConflict, nil}
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	quote, err := qs.CreateQuoteFromRequest(context.Background(), sampleQuoteRequest(), nil)
	require.NoError(t, err)

	require.Len(t, store.inserted, 2)
	assert.NotEmpty(t, quote.OrderNumber)
}

func TestCreateQuoteGivesUpAfterRepeatedCollisions(t *testing.T) {
	store := newFakeQuoteStore()
	store.insertErrs = []error{lib.ErrConflict, lib.ErrConflict, lib.ErrConflict}
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	_, err := qs.CreateQuoteFromRequest(context.Background(), sampleQuoteRequest(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, lib.ErrConflict)
	assert.Len(t, store.inserted, 3)
}

func TestCreateQuoteNonConflictInsertErrorStops(t *testing.T) {
	store := newFakeQuoteStore()
	boom := errors.New("connection lost")
	store.insertErrs = []error{boom}
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	_, err := qs.CreateQuoteFromRequest(context.Background(), sampleQuoteRequest(), nil)
	require.ErrorIs(t, err, boom)
	assert.Len(t, store.inserted, 1, "a non-collision failure must not retry")
}

func TestApproveSendsOrderAndMarksSent(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusPending)
	resolver := &fakeResolver{contact: &structs.BlingContact{Id: 42, Nome: "ACME"}}
	submitter := &fakeSubmitter{externalId: "987654"}
	qs := newQuoteService(store, resolver, submitter)

	approved, err := qs.Approve(context.Background(), quote.Id)
	require.NoError(t, err)

	assert.Equal(t, tables.QuoteStatusSent, approved.Status)
	assert.Equal(t, "987654", approved.ExternalOrderId)
	assert.NotNil(t, approved.ProcessedAt)
	assert.Equal(t, 1, submitter.calls)
	assert.Equal(t, tables.QuoteStatusSent, store.quotes[quote.Id].Status)
}

func TestApproveAlreadySentIsRefusedBeforeSubmit(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusSent)
	quote.ExternalOrderId = "111"
	resolver := &fakeResolver{contact: &structs.BlingContact{Id: 42}}
	submitter := &fakeSubmitter{externalId: "dup"}
	qs := newQuoteService(store, resolver, submitter)

	_, err := qs.Approve(context.Background(), quote.Id)
	require.ErrorIs(t, err, lib.ErrConflict)
	assert.Zero(t, resolver.calls, "no outbound call for an already sent quote")
	assert.Zero(t, submitter.calls)
}

func TestApproveRejectedQuoteIsRefused(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusRejected)
	submitter := &fakeSubmitter{externalId: "x"}
	qs := newQuoteService(store, &fakeResolver{contact: &structs.BlingContact{Id: 1}}, submitter)

	_, err := qs.Approve(context.Background(), quote.Id)
	require.ErrorIs(t, err, lib.ErrConflict)
	assert.Zero(t, submitter.calls)
}

func TestApproveFailedQuoteCanBeRetried(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusFailed)
	quote.LastError = "previous failure"
	qs := newQuoteService(store, &fakeResolver{contact: &structs.BlingContact{Id: 42}}, &fakeSubmitter{externalId: "555"})

	approved, err := qs.Approve(context.Background(), quote.Id)
	require.NoError(t, err)
	assert.Equal(t, tables.QuoteStatusSent, approved.Status)
	assert.Equal(t, "555", approved.ExternalOrderId)
}

func TestApproveSubmitFailureMarksFailed(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusPending)
	submitErr := lib.NewIntegrationError(500, "ERP exploded")
	qs := newQuoteService(store, &fakeResolver{contact: &structs.BlingContact{Id: 42}}, &fakeSubmitter{err: submitErr})

	_, err := qs.Approve(context.Background(), quote.Id)
	require.Error(t, err)

	var integ *lib.IntegrationError
	require.ErrorAs(t, err, &integ)

	stored := store.quotes[quote.Id]
	assert.Equal(t, tables.QuoteStatusFailed, stored.Status)
	assert.Contains(t, stored.LastError, "ERP exploded")
}

func TestApproveResolverFailureMarksFailed(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusPending)
	submitter := &fakeSubmitter{externalId: "never"}
	qs := newQuoteService(store, &fakeResolver{err: lib.ErrContactResolution}, submitter)

	_, err := qs.Approve(context.Background(), quote.Id)
	require.ErrorIs(t, err, lib.ErrContactResolution)
	assert.Zero(t, submitter.calls)
	assert.Equal(t, tables.QuoteStatusFailed, store.quotes[quote.Id].Status)
}

func TestApproveQuoteWithoutItemsFailsBeforeResolving(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusPending)
	quote.Items = nil
	resolver := &fakeResolver{contact: &structs.BlingContact{Id: 1}}
	qs := newQuoteService(store, resolver, &fakeSubmitter{externalId: "x"})

	_, err := qs.Approve(context.Background(), quote.Id)
	require.ErrorIs(t, err, lib.ErrInvalidQuote)
	assert.Zero(t, resolver.calls)
	assert.Equal(t, tables.QuoteStatusFailed, store.quotes[quote.Id].Status)
}

func TestApproveUnknownQuote(t *testing.T) {
	qs := newQuoteService(newFakeQuoteStore(), &fakeResolver{}, &fakeSubmitter{})

	_, err := qs.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestRejectPendingQuote(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusPending)
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	rejected, err := qs.Reject(context.Background(), quote.Id)
	require.NoError(t, err)
	assert.Equal(t, tables.QuoteStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.ProcessedAt)
}

func TestRejectSentQuoteIsRefused(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusSent)
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	_, err := qs.Reject(context.Background(), quote.Id)
	require.ErrorIs(t, err, lib.ErrConflict)
	assert.Equal(t, tables.QuoteStatusSent, store.quotes[quote.Id].Status)
}

func TestRejectIsIdempotent(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusRejected)
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	rejected, err := qs.Reject(context.Background(), quote.Id)
	require.NoError(t, err)
	assert.Equal(t, tables.QuoteStatusRejected, rejected.Status)
	assert.Empty(t, store.updatedQuotes, "no status write for an already rejected quote")
}

func TestListQuotesSummaries(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusPending)
	qs := newQuoteService(store, &fakeResolver{}, &fakeSubmitter{})

	summaries, err := qs.ListQuotes(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, quote.Id.String(), summary.Id)
	assert.Equal(t, "PENDING", summary.Status)
	assert.Equal(t, "ACME Corp", summary.Payload.CustomerName)
	assert.Equal(t, "ORC-20260901-222", summary.Payload.OrderNumber)
	assert.InDelta(t, 65.47, summary.Payload.Total, 1e-9)
	require.Len(t, summary.Payload.Items, 1)
	assert.InDelta(t, 59.97, summary.Payload.Items[0].Subtotal, 1e-9)
}

func TestApproveStatusUpdateUsesCompareAndSwap(t *testing.T) {
	store := newFakeQuoteStore()
	quote := storedQuote(store, tables.QuoteStatusPending)
	qs := newQuoteService(store, &fakeResolver{contact: &structs.BlingContact{Id: 1}}, &fakeSubmitter{externalId: "1"})

	_, err := qs.Approve(context.Background(), quote.Id)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]tables.QuoteStatus{tables.QuoteStatusPending, tables.QuoteStatusFailed},
		store.lastExpected)
	require.NotNil(t, store.lastUpdate.ProcessedAt)
	assert.WithinDuration(t, time.Now(), *store.lastUpdate.ProcessedAt, time.Minute)
}
