package database

import (
	"context"
	"database/sql"
	"errors"
	"orcado_server/lib"
	"orcado_server/structs/tables"

	"github.com/google/uuid"
)

// ProductRepository persists catalog products.
type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Insert(ctx context.Context, product *tables.Product) error {
	_, err := r.db.NewInsert().Model(product).Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product := new(tables.Product)

	err := WithRetry(ctx, func() error {
		return r.db.NewSelect().
			Model(product).
			Where("p.id = ?", id).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}

	return product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]tables.Product, error) {
	var products []tables.Product

	err := WithRetry(ctx, func() error {
		products = nil
		return r.db.NewSelect().
			Model(&products).
			Order("created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return products, nil
}
