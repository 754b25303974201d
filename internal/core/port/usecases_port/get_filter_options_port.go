package usecases_port

import (
	"context"

	"rems-service/internal/core/domain"
)

// FilterOptions summarizes what the current result set offers: the coarse
// localities (capped), the distinct type labels and the price bounds.
type FilterOptions struct {
	Localities []string
	Types      []string
	PriceRange domain.PriceRange
	Count      int
}

type GetFilterOptionsUseCasePort interface {
	Execute(ctx context.Context) FilterOptions
}
