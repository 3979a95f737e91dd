package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AnjaliPai16/Welly-sub000/internal/db"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresStore persists user identities in Postgres. Email uniqueness
// is enforced by the users_email_lower_unique index.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, u NewUser) (*UserIdentity, error) {
	out := UserIdentity{
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		PhotoURL:     u.PhotoURL,
	}

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, first_name, last_name, password_hash, photo_url)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id, created_at, updated_at
	`, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.PhotoURL).
		Scan(&id, &out.CreatedAt, &out.UpdatedAt)

	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	out.ID = id.String()
	return &out, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*UserIdentity, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name,
		       COALESCE(password_hash, ''), COALESCE(photo_url, ''),
		       created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email))
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*UserIdentity, error) {
	// Reject non-UUID subjects before they reach the driver.
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name,
		       COALESCE(password_hash, ''), COALESCE(photo_url, ''),
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`, uid))
}

func (s *PostgresStore) UpdatePhotoURL(ctx context.Context, id string, photoURL string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET photo_url = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $1
	`, id, photoURL)
	return err
}

func (s *PostgresStore) LinkProvider(ctx context.Context, userID, provider, providerUserID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identities (user_id, provider, provider_user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT identities_provider_unique DO NOTHING
	`, userID, provider, providerUserID)
	return err
}

func (s *PostgresStore) scanOne(row *sql.Row) (*UserIdentity, error) {
	var (
		u  UserIdentity
		id uuid.UUID
	)
	err := row.Scan(&id, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.ID = id.String()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
