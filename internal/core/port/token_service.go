package port

import (
	"context"
	"time"

	"rems-service/internal/core/domain"
)

// TokenServicePort issues and validates session tokens.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, session domain.Session, ttl time.Duration) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}
