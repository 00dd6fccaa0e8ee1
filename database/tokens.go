package database

import (
	"context"
	"database/sql"
	"errors"
	"orcado_server/lib"
	"orcado_server/structs/tables"
)

// TokenRepository persists the singleton Bling OAuth token row.
type TokenRepository struct {
	db *DB
}

func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Get returns the stored token, or (nil, nil) when the integration has never
// been connected.
func (r *TokenRepository) Get(ctx context.Context) (*tables.BlingToken, error) {
	token := new(tables.BlingToken)

	err := WithRetry(ctx, func() error {
		return r.db.NewSelect().
			Model(token).
			Where("bt.id = ?", tables.BlingTokenID).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, lib.MapPgError(err)
	}

	return token, nil
}

// Upsert replaces the singleton row atomically. The fixed primary key keeps
// the table at a single record; a refresh never appends.
func (r *TokenRepository) Upsert(ctx context.Context, token *tables.BlingToken) error {
	token.Id = tables.BlingTokenID

	_, err := r.db.NewInsert().
		Model(token).
		On("CONFLICT (id) DO UPDATE").
		Set("access_token = EXCLUDED.access_token").
		Set("refresh_token = EXCLUDED.refresh_token").
		Set("expires_at = EXCLUDED.expires_at").
		Set("token_type = EXCLUDED.token_type").
		Set("scope = EXCLUDED.scope").
		Set("created_at = EXCLUDED.created_at").
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	return nil
}
