// Package filter owns the current search criteria and derives the filtered
// view of the property store. The engine recomputes synchronously on every
// effective mutation (criteria update, reset, store append) and notifies
// its subscribers afterwards; reads always see the latest recomputation.
package filter

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"rems-service/internal/constants"
	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// Subscriber is called after every effective engine mutation. Subscribers
// run on the mutating goroutine, outside the engine lock, in registration
// order.
type Subscriber func(criteria domain.FilterCriteria, results []domain.Property)

// Engine derives the filtered result set from (store contents, criteria).
// Several independent engines may observe the same store; each one
// subscribes to store mutations on its own rather than assuming a single
// global instance.
type Engine struct {
	store  port.PropertyStorePort
	logger port.LoggerPort

	mu              sync.RWMutex
	criteria        domain.FilterCriteria
	criteriaVersion uint64
	results         []domain.Property
	subscribers     []Subscriber
}

// NewEngine creates an engine over the given store, initialized to the
// unconstrained default criteria, and registers it for store mutations.
func NewEngine(store port.PropertyStorePort, baseLogger port.LoggerPort) *Engine {
	e := &Engine{
		store:    store,
		logger:   baseLogger.WithFields(port.Fields{"component": "filter_engine"}),
		criteria: domain.DefaultCriteria(),
	}
	e.results = e.derive(context.Background(), e.criteria)
	store.Subscribe(e.onStoreChanged)
	return e
}

// Filters returns a snapshot of the current criteria.
func (e *Engine) Filters() domain.FilterCriteria {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshotCriteria(e.criteria)
}

// CriteriaVersion increments only on effective criteria changes. A no-op
// update leaves it untouched, which is what change-detecting consumers key
// their re-render decision on.
func (e *Engine) CriteriaVersion() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.criteriaVersion
}

// Results returns the filtered view in store order. The slice is a copy;
// callers may sort it freely.
func (e *Engine) Results() []domain.Property {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.Property, len(e.results))
	copy(out, e.results)
	return out
}

// Subscribe registers a subscriber for effective mutations.
func (e *Engine) Subscribe(s Subscriber) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, s)
}

// Update merges the patch into the current criteria. When the merged state
// is structurally identical to the current one the call is a no-op: no
// recomputation, no notification, criteria version unchanged. Returns the
// resulting criteria and whether anything changed.
func (e *Engine) Update(ctx context.Context, patch domain.CriteriaPatch) (domain.FilterCriteria, bool) {
	logger := contextkeys.LoggerFromContext(ctx)

	e.mu.Lock()
	merged := e.criteria.Merge(patch)
	if merged.Equal(e.criteria) {
		current := snapshotCriteria(e.criteria)
		e.mu.Unlock()
		logger.Debug("Filter update is a no-op, state unchanged", nil)
		return current, false
	}
	e.criteria = merged
	e.criteriaVersion++
	e.results = e.derive(ctx, merged)
	current := snapshotCriteria(merged)
	matched := len(e.results)
	subs := e.snapshotSubscribers()
	e.mu.Unlock()

	logger.Debug("Filters updated", port.Fields{"matched": matched})
	e.notify(subs)
	return current, true
}

// Reset puts the criteria back to the unconstrained default and recomputes.
func (e *Engine) Reset(ctx context.Context) domain.FilterCriteria {
	criteria, _ := e.resetLocked(ctx)
	return criteria
}

func (e *Engine) resetLocked(ctx context.Context) (domain.FilterCriteria, bool) {
	defaults := domain.DefaultCriteria()

	e.mu.Lock()
	if defaults.Equal(e.criteria) {
		current := snapshotCriteria(e.criteria)
		e.mu.Unlock()
		return current, false
	}
	e.criteria = defaults
	e.criteriaVersion++
	e.results = e.derive(ctx, defaults)
	subs := e.snapshotSubscribers()
	e.mu.Unlock()

	contextkeys.LoggerFromContext(ctx).Debug("Filters reset to defaults", nil)
	e.notify(subs)
	return defaults, true
}

// onStoreChanged recomputes the cached view after a store append so the
// next read reflects the new record.
func (e *Engine) onStoreChanged() {
	e.mu.Lock()
	e.results = e.derive(context.Background(), e.criteria)
	subs := e.snapshotSubscribers()
	e.mu.Unlock()

	e.logger.Debug("Store changed, results recomputed", port.Fields{"matched": len(e.results)})
	e.notify(subs)
}

func (e *Engine) snapshotSubscribers() []Subscriber {
	subs := make([]Subscriber, len(e.subscribers))
	copy(subs, e.subscribers)
	return subs
}

func (e *Engine) notify(subs []Subscriber) {
	if len(subs) == 0 {
		return
	}
	criteria := e.Filters()
	results := e.Results()
	for _, s := range subs {
		s(criteria, results)
	}
}

// derive is the pure filtering pass: O(N) over the store, stable, keeping
// insertion order. Sorting is the caller's concern.
func (e *Engine) derive(ctx context.Context, criteria domain.FilterCriteria) []domain.Property {
	all := e.store.List(ctx)
	filtered := make([]domain.Property, 0, len(all))
	for _, p := range all {
		if Matches(p, criteria) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Matches reports whether the property satisfies every active constraint.
// All predicates are ANDed; inactive constraints always pass.
func Matches(p domain.Property, c domain.FilterCriteria) bool {
	if !c.PriceRange.Contains(p.Price) {
		return false
	}
	if !minCountSatisfied(c.Bedrooms, p.Bedrooms) {
		return false
	}
	if !minCountSatisfied(c.Bathrooms, p.Bathrooms) {
		return false
	}
	if !matchesHomeType(p, c.HomeType) {
		return false
	}
	if c.Status != "" && p.Status != c.Status {
		return false
	}
	if !matchesQuery(p, c.SearchQuery) {
		return false
	}
	return true
}

// minCountSatisfied applies the bedrooms/bathrooms rule: an empty or "any"
// token is unconstrained, otherwise the listing needs at least the parsed
// count. Malformed tokens fail open to keep the surfaces responsive.
func minCountSatisfied(token string, actual int) bool {
	if token == "" || token == constants.TokenAny {
		return true
	}
	minCount, err := strconv.Atoi(token)
	if err != nil {
		return true
	}
	return actual >= minCount
}

// matchesHomeType applies the deliberately loose OR-of-substring rule: the
// listing matches when, for any selected token, its type contains the
// localized label for that token, or contains the token itself
// case-insensitively. The "any" token matches everything.
func matchesHomeType(p domain.Property, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	loweredType := strings.ToLower(p.Type)
	for _, token := range tokens {
		if token == constants.TokenAny {
			return true
		}
		if label, ok := constants.PropertyTypeLabels[token]; ok && strings.Contains(p.Type, label) {
			return true
		}
		if strings.Contains(loweredType, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

// matchesQuery looks the lower-cased query up as a substring of the title,
// location, description and type.
func matchesQuery(p domain.Property, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Location), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Type), q)
}

func snapshotCriteria(c domain.FilterCriteria) domain.FilterCriteria {
	out := c
	if c.HomeType != nil {
		out.HomeType = make([]string, len(c.HomeType))
		copy(out.HomeType, c.HomeType)
	}
	return out
}
