package usecase

import (
	"context"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/filter"
	"rems-service/internal/core/port"
)

type UpdateFiltersUseCase struct {
	engine *filter.Engine
}

func NewUpdateFiltersUseCase(engine *filter.Engine) *UpdateFiltersUseCase {
	return &UpdateFiltersUseCase{engine: engine}
}

func (uc *UpdateFiltersUseCase) Execute(ctx context.Context, patch domain.CriteriaPatch) domain.FilterCriteria {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateFilters"})

	criteria, changed := uc.engine.Update(ctx, patch)
	ucLogger.Info("Use case finished successfully", port.Fields{"changed": changed})
	return criteria
}

type ResetFiltersUseCase struct {
	engine *filter.Engine
}

func NewResetFiltersUseCase(engine *filter.Engine) *ResetFiltersUseCase {
	return &ResetFiltersUseCase{engine: engine}
}

func (uc *ResetFiltersUseCase) Execute(ctx context.Context) domain.FilterCriteria {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ResetFilters"})

	criteria := uc.engine.Reset(ctx)
	ucLogger.Info("Use case finished successfully", nil)
	return criteria
}
