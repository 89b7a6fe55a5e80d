// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// TagsDependencies defines the interface for tag discovery operations.
type TagsDependencies interface {
	TagsPerRun(ctx context.Context) (map[string]map[string]TagInfo, error)
}

// TagsHandler handles tag discovery requests.
type TagsHandler struct {
	deps TagsDependencies
}

// NewTagsHandler creates a new tags handler.
func NewTagsHandler(deps TagsDependencies) *TagsHandler {
	return &TagsHandler{deps: deps}
}

// HandleGetTags handles GET {RoutePrefix}/tags requests. The response maps
// every known run to its tags and their display metadata; runs without
// relevant tags map to an empty object.
func (h *TagsHandler) HandleGetTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	runTags, err := h.deps.TagsPerRun(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, runTags)
}
