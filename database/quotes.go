package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"orcado_server/lib"
	"orcado_server/structs/tables"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// QuoteStatusUpdate carries the fields written together with a status
// transition. Nil pointers leave the column untouched.
type QuoteStatusUpdate struct {
	Status          tables.QuoteStatus
	ExternalOrderId *string
	LastError       *string
	ProcessedAt     *time.Time
}

// QuoteRepository persists quotes and their items.
type QuoteRepository struct {
	db *DB
}

func NewQuoteRepository(db *DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Insert stores a quote with its items in one transaction. A duplicate order
// number surfaces as lib.ErrConflict so the caller can regenerate and retry.
func (r *QuoteRepository) Insert(ctx context.Context, quote *tables.Quote) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return lib.MapPgError(err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.NewInsert().Model(quote).Exec(ctx); err != nil {
		return lib.MapPgError(err)
	}

	if len(quote.Items) > 0 {
		for _, item := range quote.Items {
			item.QuoteId = quote.Id
		}
		if _, err = tx.NewInsert().Model(&quote.Items).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
	}

	return nil
}

// GetByID loads a quote with its items.
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*tables.Quote, error) {
	quote := new(tables.Quote)

	err := WithRetry(ctx, func() error {
		return r.db.NewSelect().
			Model(quote).
			Relation("Items").
			Where("q.id = ?", id).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}

	return quote, nil
}

// List returns all quotes with items, newest first.
func (r *QuoteRepository) List(ctx context.Context) ([]tables.Quote, error) {
	var quotes []tables.Quote

	err := WithRetry(ctx, func() error {
		quotes = nil
		return r.db.NewSelect().
			Model(&quotes).
			Relation("Items").
			Order("created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return quotes, nil
}

// UpdateStatusIf performs the status transition as a compare-and-swap: the
// row is updated only when its current status is one of expected. Zero rows
// matched means another caller won the race (or the quote is gone) and the
// caller gets lib.ErrConflict.
func (r *QuoteRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected []tables.QuoteStatus, update QuoteStatusUpdate) error {
	if len(expected) == 0 {
		return fmt.Errorf("no expected statuses given")
	}

	q := r.db.NewUpdate().
		Model((*tables.Quote)(nil)).
		Set("status = ?", update.Status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("status IN (?)", bun.In(expected))

	if update.ExternalOrderId != nil {
		q = q.Set("external_order_id = ?", *update.ExternalOrderId)
	}
	if update.LastError != nil {
		q = q.Set("last_error = ?", *update.LastError)
	}
	if update.ProcessedAt != nil {
		q = q.Set("processed_at = ?", *update.ProcessedAt)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrConflict
	}

	return nil
}
