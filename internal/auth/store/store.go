package store

import (
	"context"
	"errors"

	"github.com/vidora-app/vidora/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn errors,
	// committed otherwise. Use it for multi-step operations that must be
	// atomic, such as refresh rotation's compare-and-replace.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername looks up by the lowercase unique username.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail looks up by the lowercase unique email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists on a username or email collision.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateRefreshToken writes the single session slot and bumps
	// updated_at. nil clears the slot (logout).
	UpdateRefreshToken(ctx context.Context, userID string, token *string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateAccountDetails mutates fullname and email together.
	UpdateAccountDetails(ctx context.Context, userID, fullName, email string) error

	// UpdateAvatar replaces the avatar URL.
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error

	// UpdateCoverImage replaces the cover image URL.
	UpdateCoverImage(ctx context.Context, userID, coverURL string) error
}
