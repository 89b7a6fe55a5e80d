// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/curveboard/curveboard/internal/app"
)

// CurvesDependencies defines the interface for curve data operations.
type CurvesDependencies interface {
	Curves(ctx context.Context, runs []string, tag string) (map[string][]CurveEntry, error)
}

// CurvesHandler handles curve data requests.
type CurvesHandler struct {
	deps CurvesDependencies
}

// NewCurvesHandler creates a new curves handler.
func NewCurvesHandler(deps CurvesDependencies) *CurvesHandler {
	return &CurvesHandler{deps: deps}
}

// HandleGetCurves handles GET {RoutePrefix}/pr_curves?run=R&run=S&tag=T
// requests. Missing parameters and unknown run/tag pairs both answer 400
// with a plain-text message; a lookup failure on any requested run fails
// the whole request rather than returning partial data.
func (h *CurvesHandler) HandleGetCurves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	runs := query["run"]
	if len(runs) == 0 {
		http.Error(w, "No runs provided when fetching PR curve data", http.StatusBadRequest)
		return
	}
	tag := query.Get("tag")
	if tag == "" {
		http.Error(w, "No tag provided when fetching PR curve data", http.StatusBadRequest)
		return
	}

	curves, err := h.deps.Curves(r.Context(), runs, tag)
	if err != nil {
		var lookupErr *service.LookupError
		if errors.As(err, &lookupErr) {
			http.Error(w, lookupErr.Error(), http.StatusBadRequest)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, curves)
}
