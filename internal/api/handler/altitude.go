package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andinolabs/altura/internal/altitude"
	"github.com/andinolabs/altura/internal/api/models"
	"github.com/andinolabs/altura/internal/api/response"
)

// AltitudeHandler handles the city altitude table endpoints.
type AltitudeHandler struct {
	altitudeService *altitude.Service
}

// NewAltitudeHandler creates a new AltitudeHandler.
func NewAltitudeHandler(altitudeService *altitude.Service) *AltitudeHandler {
	return &AltitudeHandler{altitudeService: altitudeService}
}

// ListCities handles GET /v1/altitudes - list all resolvable cities.
func (h *AltitudeHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.altitudeService.Cities(r.Context())
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, models.CitiesResponse{Cities: cities})
}

// GetAltitude handles GET /v1/altitudes/{city} - resolve a city's altitude.
func (h *AltitudeHandler) GetAltitude(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	meters, err := h.altitudeService.Resolve(r.Context(), city)
	if err != nil {
		if errors.Is(err, altitude.ErrCityNotFound) {
			response.NotFound(w, r, "city")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, models.AltitudeResponse{City: city, AltitudeM: meters})
}

// SetAltitude handles PUT /v1/altitudes/{city} - add or update a city.
func (h *AltitudeHandler) SetAltitude(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	var input models.SetAltitudeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	if err := h.altitudeService.SetAltitude(r.Context(), city, input.AltitudeM); err != nil {
		if errors.Is(err, altitude.ErrCityNotFound) {
			response.BadRequest(w, r, "city name must not be empty", nil)
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, models.AltitudeResponse{City: city, AltitudeM: input.AltitudeM})
}
