// Package memstore holds the authoritative in-memory listing collection.
// The collection is append-only: records are never removed or mutated in
// place, and insertion order is the order every reader observes.
package memstore

import (
	"context"
	"strconv"
	"sync"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// PropertyStore implements port.PropertyStorePort over a process-owned
// slice seeded at startup.
type PropertyStore struct {
	mu        sync.RWMutex
	records   []domain.Property
	version   uint64
	listeners []port.StoreListener
	logger    port.LoggerPort
}

// NewPropertyStore creates a store pre-populated with the seed records.
func NewPropertyStore(seed []domain.Property, baseLogger port.LoggerPort) *PropertyStore {
	records := make([]domain.Property, len(seed))
	copy(records, seed)
	return &PropertyStore{
		records: records,
		logger:  baseLogger.WithFields(port.Fields{"component": "property_store"}),
	}
}

// List returns a copy of the full collection in insertion order.
func (s *PropertyStore) List(ctx context.Context) []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, len(s.records))
	copy(out, s.records)
	return out
}

// Get looks a listing up by ID.
func (s *PropertyStore) Get(ctx context.Context, id string) (domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.records {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Property{}, domain.ErrNotFound
}

// Append validates the draft, assigns the next numeric ID, wires up the
// image list and appends the record at the end of the collection. Listeners
// are notified after the mutation is visible.
func (s *PropertyStore) Append(ctx context.Context, draft domain.PropertyDraft, images []string) (domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "property_store"})

	if err := validateDraft(draft, images); err != nil {
		logger.Warn("Rejected listing draft", port.Fields{"error": err.Error()})
		return domain.Property{}, err
	}

	s.mu.Lock()
	nextID, err := s.nextID()
	if err != nil {
		s.mu.Unlock()
		logger.Error("Could not compute next listing ID", err, nil)
		return domain.Property{}, err
	}

	record := domain.Property{
		ID:            nextID,
		Title:         draft.Title,
		Description:   draft.Description,
		Location:      draft.Location,
		Price:         draft.Price,
		Bedrooms:      draft.Bedrooms,
		Bathrooms:     draft.Bathrooms,
		Area:          draft.Area,
		Type:          draft.Type,
		ImageURL:      images[0],
		Images:        append([]string(nil), images...),
		Features:      append([]string(nil), draft.Features...),
		Status:        draft.Status,
		YearBuilt:     draft.YearBuilt,
		ParkingSpaces: draft.ParkingSpaces,
	}
	s.records = append(s.records, record)
	s.version++
	listeners := make([]port.StoreListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	logger.Info("Listing appended", port.Fields{
		"property_id": record.ID,
		"type":        record.Type,
		"price":       record.Price,
	})

	for _, notify := range listeners {
		notify()
	}
	return record, nil
}

// Version increments on every successful Append.
func (s *PropertyStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers a listener for store mutations.
func (s *PropertyStore) Subscribe(listener port.StoreListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// nextID is one greater than the current maximum numeric ID. A stored
// record whose ID does not parse as an integer cannot participate in the
// computation and is surfaced as a ValidationError instead of a crash.
func (s *PropertyStore) nextID() (string, error) {
	maxID := 0
	for _, p := range s.records {
		n, err := strconv.Atoi(p.ID)
		if err != nil {
			return "", domain.NewValidationError("store contains a non-numeric listing id %q", p.ID)
		}
		if n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1), nil
}

func validateDraft(draft domain.PropertyDraft, images []string) error {
	if len(images) == 0 {
		return domain.NewValidationError("at least one image is required")
	}
	if draft.Title == "" || draft.Location == "" || draft.Type == "" {
		return domain.NewValidationError("title, location and type are required")
	}
	if draft.Price <= 0 {
		return domain.NewValidationError("price must be greater than zero")
	}
	if draft.Status != "" && !domain.ValidStatus(draft.Status) {
		return domain.NewValidationError("unknown listing status %q", draft.Status)
	}
	return nil
}
