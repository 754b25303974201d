package rest

import "time"

// PropertyResponse is the wire shape of a listing, matching the camelCase
// naming of the original client.
type PropertyResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Location      string   `json:"location"`
	Price         float64  `json:"price"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Area          float64  `json:"area"`
	Type          string   `json:"type"`
	ImageURL      string   `json:"imageUrl"`
	Images        []string `json:"images"`
	Features      []string `json:"features,omitempty"`
	Status        string   `json:"status,omitempty"`
	YearBuilt     int      `json:"yearBuilt,omitempty"`
	ParkingSpaces int      `json:"parkingSpaces,omitempty"`
}

// FilterCriteriaResponse mirrors the search context's filter state.
type FilterCriteriaResponse struct {
	PriceRange  [2]float64 `json:"priceRange"`
	Bedrooms    string     `json:"bedrooms"`
	Bathrooms   string     `json:"bathrooms"`
	HomeType    []string   `json:"homeType"`
	SearchQuery string     `json:"searchQuery"`
	Status      string     `json:"status,omitempty"`
}

// SearchResponse carries a filtered (and possibly sorted) result page.
type SearchResponse struct {
	Total   int                    `json:"total"`
	Filters FilterCriteriaResponse `json:"filters"`
	Sort    string                 `json:"sort"`
	Data    []PropertyResponse     `json:"data"`
}

// UpdateFiltersRequest is a merge-style partial update; absent fields are
// left untouched. The price range is the original [min, max] tuple.
type UpdateFiltersRequest struct {
	PriceRange  *[2]float64 `json:"priceRange"`
	Bedrooms    *string     `json:"bedrooms"`
	Bathrooms   *string     `json:"bathrooms"`
	HomeType    []string    `json:"homeType"`
	SearchQuery *string     `json:"searchQuery"`
	Status      *string     `json:"status"`
}

// FilterOptionsResponse summarizes the current result set for the panel.
type FilterOptionsResponse struct {
	Localities []string `json:"localities"`
	Types      []string `json:"types"`
	PriceMin   float64  `json:"priceMin"`
	PriceMax   float64  `json:"priceMax"`
	Count      int      `json:"count"`
}

// CreatePropertyRequest is the add-listing payload.
type CreatePropertyRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Price         float64  `json:"price"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Area          float64  `json:"area"`
	Type          string   `json:"type"`
	Features      []string `json:"features"`
	Status        string   `json:"status"`
	YearBuilt     int      `json:"yearBuilt"`
	ParkingSpaces int      `json:"parkingSpaces"`
	Images        []string `json:"images"`
}

// Auth DTOs.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Token  string `json:"token,omitempty"`
}

// Recovery DTOs.
type RequestCodeRequest struct {
	Email string `json:"email"`
}

type RequestCodeResponse struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

type ResetPasswordRequest struct {
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
