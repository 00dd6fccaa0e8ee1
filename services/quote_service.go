package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orcado_server/database"
	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// orderNumberAttempts bounds how often a colliding order number is
// regenerated before the request fails.
const orderNumberAttempts = 3

// QuoteStore is the persistence capability the lifecycle needs; implemented
// by database.QuoteRepository.
type QuoteStore interface {
	Insert(ctx context.Context, quote *tables.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*tables.Quote, error)
	List(ctx context.Context) ([]tables.Quote, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected []tables.QuoteStatus, update database.QuoteStatusUpdate) error
}

type contactResolver interface {
	Resolve(ctx context.Context, quote *tables.Quote) (*structs.BlingContact, error)
}

type orderSubmitter interface {
	SubmitSalesOrder(ctx context.Context, order *structs.BlingOrder) (string, error)
}

type quoteMailer interface {
	SendQuoteReceived(ctx context.Context, quote *tables.Quote) error
}

// QuoteService owns the quote lifecycle: intake from the storefront,
// admin listing, and the approve/reject transitions that push approved
// quotes into the ERP as sales orders.
type QuoteService struct {
	logger    *gecho.Logger
	cfg       *structs.Config
	store     QuoteStore
	contacts  contactResolver
	submitter orderSubmitter
	mailer    quoteMailer
}

func NewQuoteService(logger *gecho.Logger, cfg *structs.Config, store QuoteStore, contacts contactResolver, submitter orderSubmitter, mailer quoteMailer) *QuoteService {
	return &QuoteService{
		logger:    logger,
		cfg:       cfg,
		store:     store,
		contacts:  contacts,
		submitter: submitter,
		mailer:    mailer,
	}
}

// approvable are the statuses an approve or reject may start from. SENT is
// terminal for both: the order already exists in the ERP.
var approvable = []tables.QuoteStatus{tables.QuoteStatusPending, tables.QuoteStatusFailed}

// CreateQuoteFromRequest converts the storefront request into a persisted
// PENDING quote. Prices are snapshotted as integer cents and the total is
// computed here, never trusted from the client. The generated order number
// is unique per day; on the rare collision a fresh number is generated and
// the insert retried.
func (qs *QuoteService) CreateQuoteFromRequest(ctx context.Context, request *structs.QuoteRequest, createdBy *uuid.UUID) (*tables.Quote, error) {
	items := make([]*tables.QuoteItem, 0, len(request.Items))
	var total uint64
	for _, item := range request.Items {
		unit := lib.ToCents(item.UnitPrice)
		subtotal := unit * uint64(item.Quantity)
		total += subtotal

		items = append(items, &tables.QuoteItem{
			Id:            uuid.New(),
			ProductId:     item.ProductId,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			UnitCents:     unit,
			SubtotalCents: subtotal,
			CreatedAt:     time.Now(),
		})
	}

	quote := &tables.Quote{
		Id:             uuid.New(),
		ClientName:     request.ClientName,
		ClientEmail:    lib.NormalizeEmail(request.ClientEmail),
		ClientCompany:  request.ClientCompany,
		ClientPhone:    request.ClientPhone,
		ClientDocument: request.ClientDocument,
		Observations:   request.Observations,
		TotalCents:     total,
		Status:         tables.QuoteStatusPending,
		CreatedById:    createdBy,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		Items:          items,
	}

	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		quote.OrderNumber = lib.GenerateOrderNumber()

		err = qs.store.Insert(ctx, quote)
		if err == nil {
			break
		}
		if !errors.Is(err, lib.ErrConflict) {
			return nil, err
		}
		qs.logger.Warn("Order number collision, regenerating",
			gecho.Field("order_number", quote.OrderNumber))
	}
	if err != nil {
		return nil, fmt.Errorf("could not allocate a unique order number: %w", err)
	}

	qs.logger.Info("Quote created",
		gecho.Field("quote_id", quote.Id),
		gecho.Field("order_number", quote.OrderNumber),
		gecho.Field("total_cents", quote.TotalCents))

	if qs.mailer != nil {
		go qs.notifyQuoteReceived(quote)
	}

	return quote, nil
}

// notifyQuoteReceived sends the confirmation email off the request path; a
// delivery failure never fails the quote.
func (qs *QuoteService) notifyQuoteReceived(quote *tables.Quote) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := qs.mailer.SendQuoteReceived(ctx, quote); err != nil {
		qs.logger.Warn("Failed to send quote confirmation email",
			gecho.Field("quote_id", quote.Id),
			gecho.Field("error", err))
	}
}

// GetQuote loads a single quote with its items.
func (qs *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*tables.Quote, error) {
	return qs.store.GetByID(ctx, id)
}

// ListQuotes returns the admin listing, newest first.
func (qs *QuoteService) ListQuotes(ctx context.Context) ([]structs.QuoteSummary, error) {
	quotes, err := qs.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]structs.QuoteSummary, 0, len(quotes))
	for i := range quotes {
		summaries = append(summaries, summarize(&quotes[i]))
	}

	return summaries, nil
}

// Approve pushes a quote into the ERP as a sales order and marks it SENT.
// An already-sent quote is refused before any outbound call is made, so a
// double approval can never submit the order twice. When the pipeline fails
// the quote is marked FAILED with the cause and the approval may be retried
// later. Two concurrent approvals race on the final status write; the loser
// of that race still submitted an order, which is logged for manual cleanup.
func (qs *QuoteService) Approve(ctx context.Context, id uuid.UUID) (*tables.Quote, error) {
	quote, err := qs.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == tables.QuoteStatusSent {
		return nil, fmt.Errorf("%w: quote %s was already sent as order %s", lib.ErrConflict, quote.OrderNumber, quote.ExternalOrderId)
	}
	if quote.Status == tables.QuoteStatusRejected {
		return nil, fmt.Errorf("%w: quote %s was rejected", lib.ErrConflict, quote.OrderNumber)
	}

	externalId, err := qs.submit(ctx, quote)
	if err != nil {
		qs.markFailed(ctx, quote, err)
		return nil, err
	}

	now := time.Now()
	err = qs.store.UpdateStatusIf(ctx, id, approvable, database.QuoteStatusUpdate{
		Status:          tables.QuoteStatusSent,
		ExternalOrderId: &externalId,
		ProcessedAt:     &now,
	})
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			qs.logger.Error("Order submitted but quote was concurrently processed; duplicate order needs manual review",
				gecho.Field("quote_id", id),
				gecho.Field("external_order_id", externalId))
		}
		return nil, err
	}

	quote.Status = tables.QuoteStatusSent
	quote.ExternalOrderId = externalId
	quote.ProcessedAt = &now

	qs.logger.Info("Quote approved and sent",
		gecho.Field("quote_id", id),
		gecho.Field("order_number", quote.OrderNumber),
		gecho.Field("external_order_id", externalId))

	return quote, nil
}

func (qs *QuoteService) submit(ctx context.Context, quote *tables.Quote) (string, error) {
	// An unsubmittable quote fails before any outbound call.
	if quote.ClientName == "" {
		return "", fmt.Errorf("%w: quote has no client name", lib.ErrInvalidQuote)
	}
	if len(quote.Items) == 0 {
		return "", fmt.Errorf("%w: quote has no items", lib.ErrInvalidQuote)
	}

	contact, err := qs.contacts.Resolve(ctx, quote)
	if err != nil {
		return "", err
	}

	order, err := BuildBlingOrder(quote, contact, qs.cfg)
	if err != nil {
		return "", err
	}

	return qs.submitter.SubmitSalesOrder(ctx, order)
}

// markFailed records the failure cause; losing the status race here just
// means another transition already landed, which is fine.
func (qs *QuoteService) markFailed(ctx context.Context, quote *tables.Quote, cause error) {
	message := cause.Error()
	if len(message) > 500 {
		message = message[:500]
	}

	err := qs.store.UpdateStatusIf(ctx, quote.Id, approvable, database.QuoteStatusUpdate{
		Status:    tables.QuoteStatusFailed,
		LastError: &message,
	})
	if err != nil && !errors.Is(err, lib.ErrConflict) {
		qs.logger.Error("Failed to record quote failure",
			gecho.Field("quote_id", quote.Id),
			gecho.Field("error", err))
	}
}

// Reject marks a quote REJECTED. A quote that already became a sales order
// cannot be rejected anymore.
func (qs *QuoteService) Reject(ctx context.Context, id uuid.UUID) (*tables.Quote, error) {
	quote, err := qs.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == tables.QuoteStatusSent {
		return nil, fmt.Errorf("%w: quote %s was already sent as order %s", lib.ErrConflict, quote.OrderNumber, quote.ExternalOrderId)
	}
	if quote.Status == tables.QuoteStatusRejected {
		return quote, nil
	}

	now := time.Now()
	err = qs.store.UpdateStatusIf(ctx, id, approvable, database.QuoteStatusUpdate{
		Status:      tables.QuoteStatusRejected,
		ProcessedAt: &now,
	})
	if err != nil {
		return nil, err
	}

	quote.Status = tables.QuoteStatusRejected
	quote.ProcessedAt = &now

	qs.logger.Info("Quote rejected",
		gecho.Field("quote_id", id),
		gecho.Field("order_number", quote.OrderNumber))

	return quote, nil
}

func summarize(quote *tables.Quote) structs.QuoteSummary {
	items := make([]structs.QuoteItemSummary, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, structs.QuoteItemSummary{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Subtotal:    lib.FromCents(item.SubtotalCents),
		})
	}

	return structs.QuoteSummary{
		Id:     quote.Id.String(),
		Status: string(quote.Status),
		Payload: structs.QuotePayload{
			CustomerName: quote.ClientName,
			OrderNumber:  quote.OrderNumber,
			Total:        lib.FromCents(quote.TotalCents),
			Items:        items,
		},
	}
}
