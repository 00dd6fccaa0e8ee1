package tables

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a customer's requested purchase, tracked through an approval
// lifecycle. Client fields are a snapshot captured at creation time and never
// updated afterwards; TotalCents is computed once from the item subtotals.
type Quote struct {
	tableName   struct{}  `bun:"table:quotes,alias:q"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number"`

	// Client snapshot
	ClientName     string `bun:"client_name,notnull" json:"client_name"`
	ClientEmail    string `bun:"client_email,notnull" json:"client_email"`
	ClientCompany  string `bun:"client_company,notnull" json:"client_company"`
	ClientPhone    string `bun:"client_phone,notnull" json:"client_phone"`
	ClientDocument string `bun:"client_document" json:"client_document,omitempty"`
	Observations   string `bun:"observations" json:"observations,omitempty"`

	TotalCents uint64      `bun:"total_cents,notnull" json:"total_cents"`
	Status     QuoteStatus `bun:"status,notnull,default:'PENDING'" json:"status"`

	// External correlation, filled once the order reaches the ERP
	ExternalOrderId string `bun:"external_order_id,nullzero" json:"external_order_id,omitempty"`
	LastError       string `bun:"last_error,nullzero" json:"last_error,omitempty"`

	CreatedById *uuid.UUID `bun:"created_by_id,type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	ProcessedAt *time.Time `bun:"processed_at,nullzero" json:"processed_at,omitempty"`

	Items []*QuoteItem `bun:"rel:has-many,join:id=quote_id" json:"items"`
}

// QuoteItem snapshots the product name and unit price at quote-creation time,
// so later catalog changes never alter a submitted quote.
type QuoteItem struct {
	tableName struct{}  `bun:"table:quote_items,alias:qi"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	QuoteId   uuid.UUID `bun:"quote_id,notnull,type:uuid" json:"quote_id"`

	ProductId     string    `bun:"product_id,nullzero" json:"product_id,omitempty"` // external catalog reference, may be absent
	ProductName   string    `bun:"product_name,notnull" json:"product_name"`
	Quantity      int       `bun:"quantity,notnull" json:"quantity"`
	UnitCents     uint64    `bun:"unit_cents,notnull" json:"unit_cents"`
	SubtotalCents uint64    `bun:"subtotal_cents,notnull" json:"subtotal_cents"` // quantity * unit_cents
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "PENDING"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusApproved QuoteStatus = "APPROVED" // reserved; no transition assigns it
	QuoteStatusRejected QuoteStatus = "REJECTED"
	QuoteStatusFailed   QuoteStatus = "FAILED"
)
