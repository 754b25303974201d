package port

import (
	"context"

	"rems-service/internal/core/domain"
)

// ResetCodeStorePort is the ephemeral storage of the password-recovery
// flow. At most one pending code exists at a time; issuing a new one
// replaces the previous code and its expiry window.
type ResetCodeStorePort interface {
	// Put stores the pending code, replacing any previous one.
	Put(ctx context.Context, code domain.ResetCode) error

	// Get returns the pending code. Returns domain.ErrNoPendingReset when
	// nothing is stored.
	Get(ctx context.Context) (domain.ResetCode, error)

	// Clear drops the pending code, if any.
	Clear(ctx context.Context) error
}

// PasswordStorePort records the outcome of a completed reset. The mocked
// flow keeps bcrypt hashes in memory keyed by email.
type PasswordStorePort interface {
	SetPassword(ctx context.Context, email, passwordHash string) error
}
