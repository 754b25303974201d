package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
	"rems-service/internal/core/port/usecases_port"
)

// PropertyHandlers serves the listing details page and the add-listing
// workflow.
type PropertyHandlers struct {
	detailsUC usecases_port.GetPropertyDetailsUseCasePort
	addUC     usecases_port.AddPropertyUseCasePort
}

func NewPropertyHandlers(detailsUC usecases_port.GetPropertyDetailsUseCasePort,
	addUC usecases_port.AddPropertyUseCasePort) *PropertyHandlers {
	return &PropertyHandlers{detailsUC: detailsUC, addUC: addUC}
}

// GetPropertyDetails handles GET /api/v1/properties/{propertyID}.
func (h *PropertyHandlers) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID := chi.URLParam(r, "propertyID")
	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "GetPropertyDetails",
		"property_id": propertyID,
	})
	handlerLogger.Debug("Processing request for listing details", nil)

	record, err := h.detailsUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve property")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(record))
}

// CreateProperty handles POST /api/v1/properties. Validation failures come
// back as 400 with the message the add-listing form surfaces to the user;
// the form keeps its input and retries.
func (h *PropertyHandlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode listing body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft := domain.PropertyDraft{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Price:         req.Price,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Area:          req.Area,
		Type:          req.Type,
		Features:      req.Features,
		Status:        domain.PropertyStatus(req.Status),
		YearBuilt:     req.YearBuilt,
		ParkingSpaces: req.ParkingSpaces,
	}

	record, err := h.addUC.Execute(r.Context(), draft, req.Images)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			logger.Warn("Listing rejected", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create property")
		return
	}

	logger.Info("Listing created", port.Fields{"property_id": record.ID})
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(record))
}
