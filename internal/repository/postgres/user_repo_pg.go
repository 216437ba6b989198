package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/repository/ports"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateEmailUser(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	const query = `
		INSERT INTO users (email, password_hash, password_salt)
		VALUES ($1, $2, $3)
		RETURNING id, email, full_name, avatar_url, password_hash, password_salt, created_at, updated_at
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, passwordHash, passwordSalt); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email string, fullName *string) (*domain.User, error) {
	const query = `
		INSERT INTO users (email, full_name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
		SET full_name = COALESCE(users.full_name, EXCLUDED.full_name),
		    updated_at = NOW()
		RETURNING id, email, full_name, avatar_url, password_hash, password_salt, created_at, updated_at
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, fullName); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT id, email, full_name, avatar_url, password_hash, password_salt, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
		SELECT id, email, full_name, avatar_url, password_hash, password_salt, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string, avatarURL *string) (*domain.User, error) {
	const query = `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
		    avatar_url = COALESCE($3, avatar_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, full_name, avatar_url, password_hash, password_salt, created_at, updated_at
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id, fullName, avatarURL); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
