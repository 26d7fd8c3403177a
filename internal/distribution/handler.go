package distribution

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"plenario/pkg/handlers"
	"plenario/pkg/routes"
)

// Handler provides HTTP endpoints for distribution operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "distribution"),
	}
}

// Routes returns the route group definition for distribution endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/distributions",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{sessionCaseId}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{sessionCaseId}", Handler: h.Assign},
		},
	}
}

// Find returns the distribution for a case appearance.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("sessionCaseId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	d, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}

// Assign creates or replaces the distribution for a case appearance.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("sessionCaseId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var cmd AssignCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	d, err := h.sys.Assign(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}
