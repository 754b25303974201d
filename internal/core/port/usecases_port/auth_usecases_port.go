package usecases_port

import (
	"context"

	"rems-service/internal/core/domain"
)

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.Session, string, error)
}

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, name, email, password string) (*domain.Session, string, error)
}

type LogoutUserUseCasePort interface {
	Execute(ctx context.Context) error
}

type RestoreSessionUseCasePort interface {
	Execute(ctx context.Context) (*domain.Session, error)
}
