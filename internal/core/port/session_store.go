package port

import (
	"context"

	"rems-service/internal/core/domain"
)

// SessionStorePort persists the signed-in user under a fixed key in durable
// client-side storage. Load returns (nil, nil) when no session is stored.
type SessionStorePort interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
