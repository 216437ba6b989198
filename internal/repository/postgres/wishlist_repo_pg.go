package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

type WishlistRepository struct {
	db *sqlx.DB
}

func NewWishlistRepo(db *sqlx.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(ctx context.Context, userID uuid.UUID, packageID string) (*domain.WishlistEntry, error) {
	const query = `
		INSERT INTO user_wishlist (user_id, package_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, package_id) DO NOTHING
		RETURNING id, user_id, package_id, created_at
	`

	var entry domain.WishlistEntry
	if err := r.db.GetContext(ctx, &entry, query, userID, packageID); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID uuid.UUID, packageID string) error {
	const query = `
		DELETE FROM user_wishlist
		WHERE user_id = $1 AND package_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, packageID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *WishlistRepository) Contains(ctx context.Context, userID uuid.UUID, packageID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM user_wishlist
			WHERE user_id = $1 AND package_id = $2
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, packageID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WishlistEntry, error) {
	const query = `
		SELECT id, user_id, package_id, created_at
		FROM user_wishlist
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.WishlistEntry, 0)
	for rows.Next() {
		var entry domain.WishlistEntry
		if err := rows.StructScan(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ ports.WishlistRepository = (*WishlistRepository)(nil)
