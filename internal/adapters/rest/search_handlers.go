package rest

import (
	"encoding/json"
	"net/http"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
	"rems-service/internal/core/port/usecases_port"
)

// SearchHandlers serves the search page surfaces: the filtered listing
// view, the filter state and its update/reset operations, and the
// filter-options summary.
type SearchHandlers struct {
	searchUC  usecases_port.SearchPropertiesUseCasePort
	updateUC  usecases_port.UpdateFiltersUseCasePort
	resetUC   usecases_port.ResetFiltersUseCasePort
	optionsUC usecases_port.GetFilterOptionsUseCasePort
}

func NewSearchHandlers(searchUC usecases_port.SearchPropertiesUseCasePort,
	updateUC usecases_port.UpdateFiltersUseCasePort,
	resetUC usecases_port.ResetFiltersUseCasePort,
	optionsUC usecases_port.GetFilterOptionsUseCasePort) *SearchHandlers {
	return &SearchHandlers{
		searchUC:  searchUC,
		updateUC:  updateUC,
		resetUC:   resetUC,
		optionsUC: optionsUC,
	}
}

// SearchProperties handles GET /api/v1/properties.
//
// The navigation-style query parameters mirror the original search page:
// `query` seeds the free-text filter, `type=buy` maps to status=for_sale
// and `type=rent` to status=for_rent. When present they are merged into
// the engine state before the results are read, so opening a search URL
// behaves exactly like typing the same filters in.
func (h *SearchHandlers) SearchProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	params := r.URL.Query()

	patch := domain.CriteriaPatch{}
	hasPatch := false
	if query := params.Get("query"); query != "" {
		patch.SearchQuery = &query
		hasPatch = true
	}
	switch params.Get("type") {
	case "buy":
		status := domain.StatusForSale
		patch.Status = &status
		hasPatch = true
	case "rent":
		status := domain.StatusForRent
		patch.Status = &status
		hasPatch = true
	}
	if hasPatch {
		h.updateUC.Execute(r.Context(), patch)
	}

	sortBy := domain.SortOption(params.Get("sort"))
	if sortBy == "" {
		sortBy = domain.SortDefault
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "SearchProperties",
		"sort":    string(sortBy),
	})
	handlerLogger.Debug("Processing search request", nil)

	results, criteria := h.searchUC.Execute(r.Context(), sortBy)

	response := SearchResponse{
		Total:   len(results),
		Filters: toCriteriaResponse(criteria),
		Sort:    string(sortBy),
		Data:    make([]PropertyResponse, len(results)),
	}
	for i, p := range results {
		response.Data[i] = toPropertyResponse(p)
	}

	handlerLogger.Info("Search finished", port.Fields{"total_found": response.Total})
	RespondWithJSON(w, http.StatusOK, response)
}

// GetFilters handles GET /api/v1/filters.
func (h *SearchHandlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	_, criteria := h.searchUC.Execute(r.Context(), domain.SortDefault)
	RespondWithJSON(w, http.StatusOK, toCriteriaResponse(criteria))
}

// UpdateFilters handles PUT /api/v1/filters with a merge-style partial
// body; omitted fields keep their current values.
func (h *SearchHandlers) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateFilters"})

	var req UpdateFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode filters body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch, err := toCriteriaPatch(req)
	if err != nil {
		logger.Warn("Rejected filters body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	criteria := h.updateUC.Execute(r.Context(), patch)
	RespondWithJSON(w, http.StatusOK, toCriteriaResponse(criteria))
}

// ResetFilters handles DELETE /api/v1/filters.
func (h *SearchHandlers) ResetFilters(w http.ResponseWriter, r *http.Request) {
	criteria := h.resetUC.Execute(r.Context())
	RespondWithJSON(w, http.StatusOK, toCriteriaResponse(criteria))
}

// GetFilterOptions handles GET /api/v1/filters/options.
func (h *SearchHandlers) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options := h.optionsUC.Execute(r.Context())
	RespondWithJSON(w, http.StatusOK, FilterOptionsResponse{
		Localities: options.Localities,
		Types:      options.Types,
		PriceMin:   options.PriceRange.Min,
		PriceMax:   options.PriceRange.Max,
		Count:      options.Count,
	})
}

func toCriteriaPatch(req UpdateFiltersRequest) (domain.CriteriaPatch, error) {
	patch := domain.CriteriaPatch{
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		HomeType:    req.HomeType,
		SearchQuery: req.SearchQuery,
	}
	if req.PriceRange != nil {
		if req.PriceRange[0] > req.PriceRange[1] {
			return domain.CriteriaPatch{}, domain.NewValidationError("price range minimum exceeds maximum")
		}
		patch.PriceRange = &domain.PriceRange{Min: req.PriceRange[0], Max: req.PriceRange[1]}
	}
	if req.Status != nil {
		status := domain.PropertyStatus(*req.Status)
		if status != "" && !domain.ValidStatus(status) {
			return domain.CriteriaPatch{}, domain.NewValidationError("unknown status %q", *req.Status)
		}
		patch.Status = &status
	}
	return patch, nil
}
