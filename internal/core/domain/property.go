package domain

import "strings"

// PropertyStatus describes the listing state of a property.
// A property without a status never matches a status-constrained filter.
type PropertyStatus string

const (
	StatusForSale PropertyStatus = "for_sale"
	StatusForRent PropertyStatus = "for_rent"
	StatusSold    PropertyStatus = "sold"
	StatusPending PropertyStatus = "pending"
)

// ValidStatus reports whether s is one of the known listing states.
func ValidStatus(s PropertyStatus) bool {
	switch s {
	case StatusForSale, StatusForRent, StatusSold, StatusPending:
		return true
	}
	return false
}

// Property is a single real-estate listing record. The ID is unique within
// the store for the lifetime of the process and never changes once assigned.
type Property struct {
	ID            string
	Title         string
	Description   string
	Location      string
	Price         float64
	Bedrooms      int
	Bathrooms     int
	Area          float64
	Type          string
	ImageURL      string
	Images        []string
	Features      []string
	Status        PropertyStatus
	YearBuilt     int
	ParkingSpaces int
}

// PropertyDraft carries the user-provided fields of a new listing before the
// store assigns an ID and wires up the image list.
type PropertyDraft struct {
	Title         string
	Description   string
	Location      string
	Price         float64
	Bedrooms      int
	Bathrooms     int
	Area          float64
	Type          string
	Features      []string
	Status        PropertyStatus
	YearBuilt     int
	ParkingSpaces int
}

// ImageList returns the ordered image references of the property, falling
// back to a single-element list containing the primary image when the
// listing carries none.
func (p Property) ImageList() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.ImageURL == "" {
		return nil
	}
	return []string{p.ImageURL}
}

// LocalityKey returns the coarse locality of the listing: the first
// comma-delimited segment of the free-text location.
func (p Property) LocalityKey() string {
	segment, _, _ := strings.Cut(p.Location, ",")
	return strings.TrimSpace(segment)
}
