package port

import (
	"context"

	"rems-service/internal/core/domain"
)

// StoreListener is invoked synchronously after every successful store
// mutation. Implementations must be quick; the store holds no lock while
// notifying but calls listeners on the mutating goroutine.
type StoreListener func()

// PropertyStorePort is the authoritative ordered collection of listings.
// The only mutation is Append; records are never removed or edited in
// place, so insertion order is stable for the lifetime of the process.
type PropertyStorePort interface {
	// List returns the full collection in insertion order.
	List(ctx context.Context) []domain.Property

	// Get looks a listing up by ID. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (domain.Property, error)

	// Append constructs a new listing from the draft: the ID is one greater
	// than the current maximum numeric ID, the primary image is the first
	// element of images, and all draft fields are copied verbatim. Fails
	// with a ValidationError when images is empty or a required field
	// (title, location, price, type) is missing.
	Append(ctx context.Context, draft domain.PropertyDraft, images []string) (domain.Property, error)

	// Version increments on every successful Append. Independent engine
	// instances use it to detect store changes without sharing references.
	Version() uint64

	// Subscribe registers a listener for store mutations.
	Subscribe(listener StoreListener)
}
