package rest

import (
	"encoding/json"
	"net/http"

	"rems-service/internal/core/domain"
)

// WriteJSONError sends a JSON error envelope with the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// RespondWithJSON serializes the payload and sends it with the given status.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		Price:         p.Price,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Area:          p.Area,
		Type:          p.Type,
		ImageURL:      p.ImageURL,
		Images:        p.ImageList(),
		Features:      p.Features,
		Status:        string(p.Status),
		YearBuilt:     p.YearBuilt,
		ParkingSpaces: p.ParkingSpaces,
	}
}

func toCriteriaResponse(c domain.FilterCriteria) FilterCriteriaResponse {
	homeType := c.HomeType
	if homeType == nil {
		homeType = []string{}
	}
	return FilterCriteriaResponse{
		PriceRange:  [2]float64{c.PriceRange.Min, c.PriceRange.Max},
		Bedrooms:    c.Bedrooms,
		Bathrooms:   c.Bathrooms,
		HomeType:    homeType,
		SearchQuery: c.SearchQuery,
		Status:      string(c.Status),
	}
}
