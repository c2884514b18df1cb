package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/consultmatch/internal/domain/types"
)

// ConsultantDependencies defines the consultant operations used by handlers.
type ConsultantDependencies interface {
	Consultants(ctx context.Context) ([]types.Consultant, error)
	Consultant(ctx context.Context, id string) (types.Consultant, error)
	SaveConsultant(ctx context.Context, c types.Consultant) (types.Consultant, error)
}

// ConsultantsHandler handles consultant requests.
type ConsultantsHandler struct {
	deps ConsultantDependencies
}

// NewConsultantsHandler creates a new consultants handler.
func NewConsultantsHandler(deps ConsultantDependencies) *ConsultantsHandler {
	return &ConsultantsHandler{deps: deps}
}

// HandleList handles GET /consultants.
func (h *ConsultantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_consultants"
	pool, err := h.deps.Consultants(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

// HandleGet handles GET /consultants/{id}.
func (h *ConsultantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_consultant"
	c, err := h.deps.Consultant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleCreate handles POST /consultants. An existing id is replaced.
func (h *ConsultantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_consultant"
	var in types.Consultant
	if err := decodeJSON(w, r, &in); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.SaveConsultant(r.Context(), in)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, out)
}
