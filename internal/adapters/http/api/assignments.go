package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/consultmatch/internal/domain/types"
)

// Headers used by the staffing endpoints.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// AssignmentDependencies defines the staffing operations used by handlers.
type AssignmentDependencies interface {
	Recommend(ctx context.Context, projectID string) (types.Assignment, error)
	StaffOnce(ctx context.Context, projectID, key string) (types.Assignment, bool, error)
	SubmitJob(ctx context.Context, projectID, key string) (types.Job, error)
	Assignment(ctx context.Context, id string) (types.Assignment, error)
	Job(ctx context.Context, id string) (types.Job, error)
}

// AssignmentsHandler handles recommendation, staffing and job requests.
type AssignmentsHandler struct {
	deps AssignmentDependencies
}

// NewAssignmentsHandler creates a new assignments handler.
func NewAssignmentsHandler(deps AssignmentDependencies) *AssignmentsHandler {
	return &AssignmentsHandler{deps: deps}
}

// HandleRecommend handles POST /projects/{id}/recommendation. Nothing is
// committed.
func (h *AssignmentsHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	a, err := h.deps.Recommend(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleStaff handles POST /projects/{id}/assignments. With ?async=true the
// request is queued and a job is returned with 202.
func (h *AssignmentsHandler) HandleStaff(w http.ResponseWriter, r *http.Request) {
	const op = "api.staff"
	projectID := chi.URLParam(r, "id")
	key := r.Header.Get(HeaderIdempotencyKey)

	async := false
	if v := r.URL.Query().Get("async"); v != "" {
		var err error
		if async, err = strconv.ParseBool(v); err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, err))
			return
		}
	}

	if async {
		job, err := h.deps.SubmitJob(r.Context(), projectID, key)
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		w.Header().Set("Location", "/jobs/"+job.ID)
		writeJSON(w, http.StatusAccepted, job)
		return
	}

	a, replay, err := h.deps.StaffOnce(r.Context(), projectID, key)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.Header().Set("Location", "/assignments/"+a.ID)
	if replay {
		w.Header().Set(HeaderReplayed, "true")
		writeJSON(w, http.StatusOK, a)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// HandleGetAssignment handles GET /assignments/{id}.
func (h *AssignmentsHandler) HandleGetAssignment(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_assignment"
	a, err := h.deps.Assignment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleGetJob handles GET /jobs/{id}.
func (h *AssignmentsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_job"
	job, err := h.deps.Job(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, job)
}
