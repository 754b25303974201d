package usecase

import (
	"context"
	"sort"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/filter"
	"rems-service/internal/core/port"
)

// SearchPropertiesUseCase reads the engine's current view and applies the
// caller's sort option on top. The engine output itself stays in store
// order; sorting never happens inside the engine.
type SearchPropertiesUseCase struct {
	engine *filter.Engine
}

func NewSearchPropertiesUseCase(engine *filter.Engine) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{engine: engine}
}

func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, sortBy domain.SortOption) ([]domain.Property, domain.FilterCriteria) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchProperties",
		"sort":     string(sortBy),
	})

	results := uc.engine.Results()
	applySort(results, sortBy)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found": len(results),
	})
	return results, uc.engine.Filters()
}

// applySort orders the result slice in place. Unknown options leave the
// store order untouched. SortStable keeps ties in store order, so sorted
// views stay deterministic as listings are appended.
func applySort(results []domain.Property, sortBy domain.SortOption) {
	switch sortBy {
	case domain.SortPriceAsc:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Price < results[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Price > results[j].Price })
	case domain.SortNewest:
		sort.SliceStable(results, func(i, j int) bool { return results[i].YearBuilt > results[j].YearBuilt })
	}
}
