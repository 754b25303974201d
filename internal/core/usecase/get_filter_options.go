package usecase

import (
	"context"

	"rems-service/internal/constants"
	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/filter"
	"rems-service/internal/core/port"
	"rems-service/internal/core/port/usecases_port"
)

// GetFilterOptionsUseCase summarizes the current result set for the filter
// panel: distinct coarse localities (first comma segment of the location,
// capped), distinct type labels and the observed price bounds.
type GetFilterOptionsUseCase struct {
	engine *filter.Engine
}

func NewGetFilterOptionsUseCase(engine *filter.Engine) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{engine: engine}
}

func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) usecases_port.FilterOptions {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetFilterOptions"})

	results := uc.engine.Results()
	options := usecases_port.FilterOptions{Count: len(results)}

	seenLocality := map[string]struct{}{}
	seenType := map[string]struct{}{}
	for i, p := range results {
		if key := p.LocalityKey(); key != "" {
			if _, ok := seenLocality[key]; !ok && len(options.Localities) < constants.MaxLocalityOptions {
				seenLocality[key] = struct{}{}
				options.Localities = append(options.Localities, key)
			}
		}
		if _, ok := seenType[p.Type]; !ok {
			seenType[p.Type] = struct{}{}
			options.Types = append(options.Types, p.Type)
		}
		if i == 0 {
			options.PriceRange = domain.PriceRange{Min: p.Price, Max: p.Price}
			continue
		}
		if p.Price < options.PriceRange.Min {
			options.PriceRange.Min = p.Price
		}
		if p.Price > options.PriceRange.Max {
			options.PriceRange.Max = p.Price
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"localities": len(options.Localities),
		"types":      len(options.Types),
	})
	return options
}
