// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/curveboard/curveboard/internal/domain/types"
)

// RoutePrefix is the route namespace reserved for the PR curves plugin.
const RoutePrefix = "/data/plugin/pr_curves"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// TagsPerRun maps every known run to its tags and display metadata.
	TagsPerRun(ctx context.Context) (map[string]map[string]types.TagInfo, error)

	// AvailableSteps maps each run with relevant data to its logged steps.
	AvailableSteps(ctx context.Context) (map[string][]int64, error)

	// Curves fetches curve entries for tag on each requested run,
	// all-or-nothing.
	Curves(ctx context.Context, runs []string, tag string) (map[string][]types.CurveEntry, error)

	// Active reports whether any run carries relevant data.
	Active(ctx context.Context) bool
}

// CurveEntry mirrors the read shape returned by curve queries.
type CurveEntry = types.CurveEntry

// TagInfo mirrors the tag metadata shape returned by tag discovery.
type TagInfo = types.TagInfo

// Server wires HTTP routes for the curve data API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	tagsHandler   *TagsHandler
	curvesHandler *CurvesHandler
	stepsHandler  *StepsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		tagsHandler:   NewTagsHandler(deps),
		curvesHandler: NewCurvesHandler(deps),
		stepsHandler:  NewStepsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. The plugin's data routes live
// under RoutePrefix; health and stats sit at the root as host-level surface.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc(RoutePrefix+"/tags", MetricsMiddleware(s.tagsHandler.HandleGetTags, "tags"))
	mux.HandleFunc(RoutePrefix+"/pr_curves", MetricsMiddleware(s.curvesHandler.HandleGetCurves, "pr_curves"))
	mux.HandleFunc(RoutePrefix+"/available_steps", MetricsMiddleware(s.stepsHandler.HandleGetSteps, "available_steps"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
