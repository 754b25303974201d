package usecase

import (
	"context"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// AddPropertyUseCase is the add-listing workflow: it validates nothing on
// its own beyond delegating to the store's single mutation entry point,
// and broadcasts the new record to subscribed clients on success.
type AddPropertyUseCase struct {
	store    port.PropertyStorePort
	notifier port.NotifierPort
}

func NewAddPropertyUseCase(store port.PropertyStorePort, notifier port.NotifierPort) *AddPropertyUseCase {
	return &AddPropertyUseCase{store: store, notifier: notifier}
}

func (uc *AddPropertyUseCase) Execute(ctx context.Context, draft domain.PropertyDraft, images []string) (domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "AddProperty",
		"title":    draft.Title,
		"images":   len(images),
	})
	ucLogger.Info("Use case started", nil)

	record, err := uc.store.Append(ctx, draft, images)
	if err != nil {
		ucLogger.Warn("Store rejected the listing", port.Fields{"error": err.Error()})
		return domain.Property{}, err
	}

	if uc.notifier != nil {
		uc.notifier.Notify(ctx, port.ListingEvent{Type: "property_added", Property: record})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": record.ID})
	return record, nil
}
