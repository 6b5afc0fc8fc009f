package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andinolabs/altura/internal/api/models"
	"github.com/andinolabs/altura/internal/api/response"
	"github.com/andinolabs/altura/internal/profile"
)

// ProfileHandler handles user profile endpoints.
type ProfileHandler struct {
	profileService *profile.Service
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Create handles POST /v1/profiles - initialize a profile.
//
// Initialization is idempotent: posting for a user that already has a
// profile returns the stored profile unchanged. A location the altitude
// table cannot resolve is a 422.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	p, err := h.profileService.Init(r.Context(), input.UserID, &profile.InitRequest{
		Age:           input.Age,
		Sex:           input.Sex,
		WeightKg:      input.WeightKg,
		HeightM:       input.HeightM,
		Location:      input.Location,
		ActivityLevel: input.ActivityLevel,
	})
	if err != nil {
		if errors.Is(err, profile.ErrInvalidLocation) {
			response.Unprocessable(w, r, err.Error(), nil)
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.Created(w, r, "/v1/profiles/"+p.UserID, p)
}

// Get handles GET /v1/profiles/{userId}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	p, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.NotFound(w, r, "profile")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}

// Update handles PATCH /v1/profiles/{userId} - targeted field edits.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var input models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	p, err := h.profileService.Update(r.Context(), userID, &profile.UpdateRequest{
		Age:           input.Age,
		Sex:           input.Sex,
		WeightKg:      input.WeightKg,
		HeightM:       input.HeightM,
		Location:      input.Location,
		ActivityLevel: input.ActivityLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrProfileNotFound):
			response.NotFound(w, r, "profile")
		case errors.Is(err, profile.ErrInvalidLocation):
			response.Unprocessable(w, r, err.Error(), nil)
		default:
			response.InternalError(w, r, "internal server error")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}

// Delete handles DELETE /v1/profiles/{userId}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.profileService.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.NotFound(w, r, "profile")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.NoContent(w, r)
}
