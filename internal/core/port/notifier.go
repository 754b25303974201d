package port

import (
	"context"

	"rems-service/internal/core/domain"
)

// ListingEvent is pushed to subscribed clients when the store changes.
type ListingEvent struct {
	Type     string          `json:"type"`
	Property domain.Property `json:"property"`
}

// NotifierPort broadcasts listing events to connected clients.
type NotifierPort interface {
	Notify(ctx context.Context, event ListingEvent)
}
