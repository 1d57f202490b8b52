package store

import (
	"context"
	"errors"

	"github.com/ovenbird/recipebox/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Tokens() Tokens
	Recipes() Recipes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate email fails with ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateName mutates the display name and bumps updated_at.
	UpdateName(ctx context.Context, userID string, name string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetActive flips the is_active flag.
	SetActive(ctx context.Context, userID string, active bool) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Tokens interface {
	// GetTokenByKey returns the token record for an opaque key.
	GetTokenByKey(ctx context.Context, key string) (domain.Token, error)

	// GetTokenByUserID returns the user's current token, if any. The
	// one-token-per-user invariant is a UNIQUE constraint on user_id.
	GetTokenByUserID(ctx context.Context, userID string) (domain.Token, error)

	// CreateToken stores a new token record.
	CreateToken(ctx context.Context, t domain.Token) error

	// DeleteTokenForUser invalidates a user's token.
	DeleteTokenForUser(ctx context.Context, userID string) error

	// DeleteTokensForInactiveUsers purges tokens whose owning user has been
	// deactivated. Used by housekeeping.
	DeleteTokensForInactiveUsers(ctx context.Context) (int64, error)
}

type Recipes interface {
	// GetRecipeByID resolves a recipe globally, regardless of owner.
	GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error)

	// ListRecipesByUser returns the user's recipes ordered by descending id
	// (most recently created first).
	ListRecipesByUser(ctx context.Context, userID string) ([]domain.Recipe, error)

	// CreateRecipe inserts a new recipe (id is ULID, owner already set).
	CreateRecipe(ctx context.Context, r domain.Recipe) error

	// UpdateRecipe persists the writable fields of an existing recipe and
	// bumps updated_at.
	UpdateRecipe(ctx context.Context, r domain.Recipe) error

	// DeleteRecipe permanently removes the row.
	DeleteRecipe(ctx context.Context, id string) error
}
