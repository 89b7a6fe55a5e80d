// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// StepsDependencies defines the interface for step discovery operations.
type StepsDependencies interface {
	AvailableSteps(ctx context.Context) (map[string][]int64, error)
}

// StepsHandler handles step discovery requests.
type StepsHandler struct {
	deps StepsDependencies
}

// NewStepsHandler creates a new steps handler.
func NewStepsHandler(deps StepsDependencies) *StepsHandler {
	return &StepsHandler{deps: deps}
}

// HandleGetSteps handles GET {RoutePrefix}/available_steps requests. The
// response maps each run with relevant data to the step values that drive
// the step slider; runs without relevant tags are omitted.
func (h *StepsHandler) HandleGetSteps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	steps, err := h.deps.AvailableSteps(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, steps)
}
