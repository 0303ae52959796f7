package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/signin-labs/account-service/internal/domain"
)

// UserRepository defines persistence access for users keyed by provider subject id.
type UserRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)
	// Upsert creates the user on first login or refreshes the profile fields otherwise.
	// The boolean reports whether a new row was inserted.
	Upsert(ctx context.Context, identity domain.Identity) (*domain.User, bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// xmax is zero only for rows inserted by the current statement.
func (r *userRepository) Upsert(ctx context.Context, identity domain.Identity) (*domain.User, bool, error) {
	if r.pool == nil {
		return nil, false, fmt.Errorf("%w: no postgres pool configured", domain.ErrStoreUnavailable)
	}
	if identity.SubjectID == "" {
		return nil, false, errors.New("subject id is required")
	}

	const query = `
        INSERT INTO users (id, subject_id, name, email, picture_url)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (subject_id) DO UPDATE
            SET name=EXCLUDED.name, email=EXCLUDED.email, picture_url=EXCLUDED.picture_url, updated_at=NOW()
        RETURNING id, subject_id, name, email, picture_url, created_at, updated_at, (xmax = 0) AS inserted`

	var (
		user     domain.User
		inserted bool
	)
	if err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		identity.SubjectID,
		identity.Name,
		identity.Email,
		identity.PictureURL,
	).Scan(
		&user.ID,
		&user.SubjectID,
		&user.Name,
		&user.Email,
		&user.PictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
		&inserted,
	); err != nil {
		return nil, false, fmt.Errorf("%w: upsert user: %w", domain.ErrStoreUnavailable, err)
	}
	return &user, inserted, nil
}

func (r *userRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("%w: no postgres pool configured", domain.ErrStoreUnavailable)
	}

	const query = `
        SELECT id, subject_id, name, email, picture_url, created_at, updated_at
        FROM users WHERE subject_id=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, subjectID).Scan(
		&user.ID,
		&user.SubjectID,
		&user.Name,
		&user.Email,
		&user.PictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get user: %w", domain.ErrStoreUnavailable, err)
	}
	return &user, nil
}
