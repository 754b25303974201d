package domain

import "slices"

// PriceCeiling spans the full representable price domain of the dataset
// (VND). The default criteria constrain nothing.
const PriceCeiling = 30_000_000_000

// PriceRange is an inclusive [Min, Max] interval. The engine never clamps;
// keeping Min <= Max is the caller's responsibility.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the inclusive interval.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterCriteria is the full set of active search constraints.
// Bedrooms and Bathrooms hold minimum counts as string tokens; "" and "any"
// mean unconstrained, and malformed tokens fail open. An empty HomeType set
// and an empty SearchQuery are likewise unconstrained.
type FilterCriteria struct {
	PriceRange  PriceRange
	Bedrooms    string
	Bathrooms   string
	HomeType    []string
	SearchQuery string
	Status      PropertyStatus
}

// CriteriaPatch is a partial FilterCriteria for merge-style updates. Only
// non-nil fields are applied; everything else is left untouched.
type CriteriaPatch struct {
	PriceRange  *PriceRange
	Bedrooms    *string
	Bathrooms   *string
	HomeType    []string
	SearchQuery *string
	Status      *PropertyStatus
}

// DefaultCriteria returns the unconstrained filter state.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		PriceRange: PriceRange{Min: 0, Max: PriceCeiling},
	}
}

// Merge applies the patch on top of c and returns the result. The merge is
// shallow: a present patch field replaces the corresponding field wholesale.
func (c FilterCriteria) Merge(patch CriteriaPatch) FilterCriteria {
	merged := c
	if patch.PriceRange != nil {
		merged.PriceRange = *patch.PriceRange
	}
	if patch.Bedrooms != nil {
		merged.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		merged.Bathrooms = *patch.Bathrooms
	}
	if patch.HomeType != nil {
		merged.HomeType = slices.Clone(patch.HomeType)
	}
	if patch.SearchQuery != nil {
		merged.SearchQuery = *patch.SearchQuery
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	return merged
}

// Equal compares two criteria by value, including the home-type set and the
// price interval. Consumers rely on this for no-op update detection.
func (c FilterCriteria) Equal(other FilterCriteria) bool {
	return c.PriceRange == other.PriceRange &&
		c.Bedrooms == other.Bedrooms &&
		c.Bathrooms == other.Bathrooms &&
		c.SearchQuery == other.SearchQuery &&
		c.Status == other.Status &&
		slices.Equal(c.HomeType, other.HomeType)
}

// SortOption orders a filtered result set. Sorting is applied on top of the
// engine output; the engine itself always preserves store order.
type SortOption string

const (
	SortDefault   SortOption = "default"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNewest    SortOption = "newest"
)
