// Package handler provides HTTP handlers for the Altura API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/andinolabs/altura/internal/api/models"
	"github.com/andinolabs/altura/internal/api/response"
)

// readinessTimeout bounds the total time spent pinging backing stores.
const readinessTimeout = 5 * time.Second

// Subsystem is a named backing store the readiness check pings.
type Subsystem struct {
	Name string
	Ping func(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version    string
	buildTime  string
	subsystems []Subsystem
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, subsystems ...Subsystem) *OpsHandler {
	return &OpsHandler{
		version:    version,
		buildTime:  buildTime,
		subsystems: subsystems,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - pings every backing store and
// reports per-subsystem status. Any failing store makes the whole check fail
// with a 503.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := models.HealthStatusOK
	subsystems := make([]models.SubsystemStatus, 0, len(h.subsystems))
	for _, sub := range h.subsystems {
		s := models.SubsystemStatus{Name: sub.Name, Status: models.HealthStatusOK}
		if err := sub.Ping(ctx); err != nil {
			detail := err.Error()
			s.Status = models.HealthStatusFail
			s.Detail = &detail
			status = models.HealthStatusFail
		}
		subsystems = append(subsystems, s)
	}

	readiness := models.Readiness{
		Status:     status,
		Time:       models.Timestamp(time.Now()),
		Subsystems: subsystems,
	}

	code := http.StatusOK
	if status != models.HealthStatusOK {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, readiness)
}
