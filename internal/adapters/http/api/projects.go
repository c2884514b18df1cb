package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/consultmatch/internal/domain/types"
)

const defaultShortlistLimit = 10

// ProjectDependencies defines the project operations used by handlers.
type ProjectDependencies interface {
	Projects(ctx context.Context) ([]types.Project, error)
	Project(ctx context.Context, id string) (types.Project, error)
	SaveProject(ctx context.Context, p types.Project) (types.Project, error)
	Shortlist(ctx context.Context, projectID string, limit int) ([]types.ShortlistEntry, error)
}

// ProjectsHandler handles project requests.
type ProjectsHandler struct {
	deps     ProjectDependencies
	maxLimit int
}

// NewProjectsHandler creates a new projects handler. maxLimit caps the
// shortlist size.
func NewProjectsHandler(deps ProjectDependencies, maxLimit int) *ProjectsHandler {
	return &ProjectsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleList handles GET /projects.
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_projects"
	projects, err := h.deps.Projects(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleGet handles GET /projects/{id}.
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_project"
	p, err := h.deps.Project(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /projects. An existing id is replaced.
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_project"
	var in types.Project
	if err := decodeJSON(w, r, &in); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.SaveProject(r.Context(), in)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// HandleShortlist handles GET /projects/{id}/shortlist?limit=N.
func (h *ProjectsHandler) HandleShortlist(w http.ResponseWriter, r *http.Request) {
	const op = "api.shortlist"
	n := min(defaultShortlistLimit, h.maxLimit)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
	}
	entries, err := h.deps.Shortlist(r.Context(), chi.URLParam(r, "id"), n)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
