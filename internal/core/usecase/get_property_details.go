package usecase

import (
	"context"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

type GetPropertyDetailsUseCase struct {
	store port.PropertyStorePort
}

func NewGetPropertyDetailsUseCase(store port.PropertyStorePort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{store: store}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, id string) (domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyDetails",
		"property_id": id,
	})

	record, err := uc.store.Get(ctx, id)
	if err != nil {
		ucLogger.Warn("Listing not found", nil)
		return domain.Property{}, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return record, nil
}
