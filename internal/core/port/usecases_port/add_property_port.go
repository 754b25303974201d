package usecases_port

import (
	"context"

	"rems-service/internal/core/domain"
)

type AddPropertyUseCasePort interface {
	Execute(ctx context.Context, draft domain.PropertyDraft, images []string) (domain.Property, error)
}

type GetPropertyDetailsUseCasePort interface {
	Execute(ctx context.Context, id string) (domain.Property, error)
}
