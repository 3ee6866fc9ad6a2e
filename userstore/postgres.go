package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	sessauth "github.com/mreznik/sessauth"
)

const findCredentialsQuery = `
SELECT id, password_hash
FROM users
WHERE username = $1 OR email = $1`

// Postgres resolves login identifiers against a users table. An
// identifier matches either the username or the email column.
//
// Postgres instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing database handle. The caller keeps
// ownership of db and is responsible for closing it.
func NewPostgres(db *sql.DB) (*Postgres, error) {
	if db == nil {
		return nil, errors.New("userstore requires a database handle")
	}

	return &Postgres{db: db}, nil
}

// Open connects to Postgres at dsn and returns a store owning the handle.
func Open(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("userstore: open postgres: %w", err)
	}

	return &Postgres{db: db}, nil
}

// FindCredentials implements sessauth.UserStore. A missing account
// returns sessauth.ErrUserNotFound; any other error is an infrastructure
// failure the engine will refuse to mask as a credential mismatch.
func (p *Postgres) FindCredentials(ctx context.Context, identifier string) (sessauth.CredentialRecord, error) {
	var (
		id   uuid.UUID
		hash string
	)

	err := p.db.QueryRowContext(ctx, findCredentialsQuery, identifier).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return sessauth.CredentialRecord{}, sessauth.ErrUserNotFound
	}
	if err != nil {
		return sessauth.CredentialRecord{}, fmt.Errorf("userstore: find credentials: %w", err)
	}

	return sessauth.CredentialRecord{UserID: id, PasswordHash: hash}, nil
}

// Close releases the underlying database handle.
func (p *Postgres) Close() error {
	return p.db.Close()
}
