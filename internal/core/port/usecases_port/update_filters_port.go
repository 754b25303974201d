package usecases_port

import (
	"context"

	"rems-service/internal/core/domain"
)

type UpdateFiltersUseCasePort interface {
	Execute(ctx context.Context, patch domain.CriteriaPatch) domain.FilterCriteria
}

type ResetFiltersUseCasePort interface {
	Execute(ctx context.Context) domain.FilterCriteria
}
