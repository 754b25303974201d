package usecases_port

import (
	"context"

	"rems-service/internal/core/domain"
)

type SearchPropertiesUseCasePort interface {
	Execute(ctx context.Context, sort domain.SortOption) ([]domain.Property, domain.FilterCriteria)
}
