package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andinolabs/altura/internal/api/models"
	"github.com/andinolabs/altura/internal/api/response"
	"github.com/andinolabs/altura/internal/fatigue"
	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/pipeline"
	"github.com/andinolabs/altura/internal/plan"
	"github.com/andinolabs/altura/internal/profile"
	"github.com/andinolabs/altura/internal/records"
)

// History query bounds. Days defaults to a week and is capped so a single
// request cannot sweep the whole collection.
const (
	historyDefaultDays = 7
	historyMaxDays     = 90
	historyMaxRecords  = 100
)

// historyKinds maps the public kind names to stored record kinds.
var historyKinds = map[string]records.Kind{
	"physio":  records.KindPhysioState,
	"fatigue": records.KindFatigueAnalysis,
	"plan":    records.KindRecoveryPlan,
}

// AnalysisHandler handles the per-user analysis endpoints: the three
// pipeline stages, the combined run and the record history.
type AnalysisHandler struct {
	physioService  *physio.Service
	fatigueService *fatigue.Service
	planService    *plan.Service
	runner         *pipeline.Runner
	records        records.Repository
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	physioService *physio.Service,
	fatigueService *fatigue.Service,
	planService *plan.Service,
	runner *pipeline.Runner,
	recordsRepo records.Repository,
) *AnalysisHandler {
	return &AnalysisHandler{
		physioService:  physioService,
		fatigueService: fatigueService,
		planService:    planService,
		runner:         runner,
		records:        recordsRepo,
	}
}

// EvaluatePhysio handles POST /v1/users/{userId}/physio - evaluate and
// persist the day's physiological state.
func (h *AnalysisHandler) EvaluatePhysio(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var input models.DailyInputsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	state, err := h.physioService.Evaluate(r.Context(), userID, physio.DailyInputs{
		WaterConsumedML: input.WaterConsumedML,
		SleepHours:      input.SleepHours,
		ActiveMinutes:   input.ActiveMinutes,
		EnergyLevel:     input.EnergyLevel,
	})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.NotFound(w, r, "profile")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, state)
}

// AnalyzeFatigue handles POST /v1/users/{userId}/fatigue - run a fatigue
// analysis against the most recent physiological state. A user with no
// evaluated state yet is a 409.
func (h *AnalysisHandler) AnalyzeFatigue(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	// The context body is optional; an absent body means no context.
	var input models.ContextRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	state, err := h.physioService.Latest(r.Context(), userID, time.Time{})
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			response.MissingPrerequisite(w, r, "no physiological state evaluated for this user")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	analysis, err := h.fatigueService.Analyze(r.Context(), userID, state, input.MentalActivity, input.EmotionalState)
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, analysis)
}

// GeneratePlan handles POST /v1/users/{userId}/plan - generate a recovery
// plan from the latest fatigue analysis.
func (h *AnalysisHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	recovery, err := h.planService.Generate(r.Context(), userID)
	if err != nil {
		if errors.Is(err, plan.ErrMissingPrerequisite) {
			response.MissingPrerequisite(w, r, err.Error())
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, recovery)
}

// RunAnalysis handles POST /v1/users/{userId}/analysis:run - the full
// pipeline in one call: physiological evaluation, fatigue analysis and
// recovery plan.
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var input models.RunAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	result, err := h.runner.Run(r.Context(), userID, pipeline.Input{
		Daily: physio.DailyInputs{
			WaterConsumedML: input.WaterConsumedML,
			SleepHours:      input.SleepHours,
			ActiveMinutes:   input.ActiveMinutes,
			EnergyLevel:     input.EnergyLevel,
		},
		MentalActivity: input.MentalActivity,
		EmotionalState: input.EmotionalState,
	})
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrProfileNotFound):
			response.NotFound(w, r, "profile")
		case errors.Is(err, plan.ErrMissingPrerequisite):
			response.MissingPrerequisite(w, r, err.Error())
		default:
			response.InternalError(w, r, "internal server error")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// History handles GET /v1/users/{userId}/history?kind=&days= - stored
// records of one kind, most recent first.
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	kindName := r.URL.Query().Get("kind")
	kind, ok := historyKinds[kindName]
	if !ok {
		response.BadRequest(w, r, "kind must be one of: physio, fatigue, plan", []models.FieldError{
			{Field: "kind", Message: "unknown kind", Code: "INVALID_VALUE"},
		})
		return
	}

	days := historyDefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > historyMaxDays {
			response.BadRequest(w, r, "days must be between 1 and 90", []models.FieldError{
				{Field: "days", Message: "must be between 1 and 90", Code: "OUT_OF_RANGE"},
			})
			return
		}
		days = parsed
	}

	recs, err := h.records.FindRecent(r.Context(), userID, kind, records.FindOptions{
		Since: time.Now().UTC().AddDate(0, 0, -days),
		Limit: historyMaxRecords,
	})
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	payloads := make([]json.RawMessage, 0, len(recs))
	for _, rec := range recs {
		payloads = append(payloads, rec.Payload)
	}

	response.JSON(w, r, http.StatusOK, models.HistoryResponse{
		UserID:  userID,
		Kind:    kindName,
		Days:    days,
		Count:   len(payloads),
		Records: payloads,
	})
}
