package database

import (
	"context"
	"database/sql"
	"errors"
	"orcado_server/lib"
	"orcado_server/structs/tables"
	"time"

	"github.com/google/uuid"
)

// UserRepository persists user accounts.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, user *tables.User) error {
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*tables.User, error) {
	user := new(tables.User)

	err := WithRetry(ctx, func() error {
		return r.db.NewSelect().
			Model(user).
			Where("u.email = ?", email).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*tables.User, error) {
	user := new(tables.User)

	err := WithRetry(ctx, func() error {
		return r.db.NewSelect().
			Model(user).
			Where("u.id = ?", id).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, lib.MapPgError(err)
	}

	return user, nil
}

// ListPending returns accounts waiting for admin approval.
func (r *UserRepository) ListPending(ctx context.Context) ([]tables.User, error) {
	var users []tables.User

	err := WithRetry(ctx, func() error {
		users = nil
		return r.db.NewSelect().
			Model(&users).
			Where("approved = ?", false).
			Order("created_at ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return users, nil
}

func (r *UserRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	res, err := r.db.NewUpdate().
		Model((*tables.User)(nil)).
		Set("approved = ?", approved).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*tables.User)(nil)).
		Set("last_login = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}
