package votes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"plenario/pkg/handlers"
	"plenario/pkg/routes"
)

// Handler provides HTTP endpoints for vote operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "votes"),
	}
}

// Routes returns the route group definition for vote endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/votes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "GET", Pattern: "/case/{sessionCaseId}", Handler: h.ListForCase},
			{Method: "POST", Pattern: "/case/{sessionCaseId}", Handler: h.Record},
			{Method: "GET", Pattern: "/templates", Handler: h.Templates},
		},
	}
}

// Find returns a single vote by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	v, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// ListForCase returns all votes of a case appearance.
func (h *Handler) ListForCase(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("sessionCaseId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	vs, err := h.sys.ListForCase(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, vs)
}

// Record casts a vote on a case appearance.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("sessionCaseId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var cmd RecordCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	v, err := h.sys.Record(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, v)
}

// Update edits an existing vote while its session is open.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	v, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Templates returns the active decision template catalog.
func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	var kind *TemplateKind
	if k := r.URL.Query().Get("kind"); k != "" {
		tk := TemplateKind(k)
		kind = &tk
	}

	ts, err := h.sys.Templates(r.Context(), kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ts)
}
