package notifications

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"plenario/pkg/handlers"
	"plenario/pkg/pagination"
	"plenario/pkg/routes"
)

// Handler provides HTTP endpoints for notification tracking operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "notifications"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for notification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/notifications",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/lists", Handler: h.Lists},
			{Method: "POST", Pattern: "/lists", Handler: h.CreateList},
			{Method: "GET", Pattern: "/lists/{id}", Handler: h.FindList},
			{Method: "GET", Pattern: "/lists/{id}/items", Handler: h.Items},
			{Method: "POST", Pattern: "/lists/{id}/items", Handler: h.AddItem},
			{Method: "GET", Pattern: "/items/{id}/attempts", Handler: h.Attempts},
			{Method: "POST", Pattern: "/items/{id}/attempts", Handler: h.AddAttempt},
			{Method: "PUT", Pattern: "/attempts/{id}/status", Handler: h.SetAttemptStatus},
			{Method: "POST", Pattern: "/attempts/expire", Handler: h.ExpireSweep},
		},
	}
}

// Lists returns a paginated list of notification lists.
func (h *Handler) Lists(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.Lists(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// FindList returns a single notification list by its UUID path parameter.
func (h *Handler) FindList(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	l, err := h.sys.FindList(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, l)
}

// CreateList opens a new notification list.
func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	var cmd CreateListCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	l, err := h.sys.CreateList(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, l)
}

// Items returns the items of a notification list.
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	is, err := h.sys.Items(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, is)
}

// AddItem enrolls a case in a notification list.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var cmd AddItemCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	i, err := h.sys.AddItem(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, i)
}

// Attempts returns the delivery attempts of a notification item.
func (h *Handler) Attempts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	as, err := h.sys.Attempts(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, as)
}

// AddAttempt opens a delivery attempt on a notification item.
func (h *Handler) AddAttempt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var cmd AddAttemptCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	a, err := h.sys.AddAttempt(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

// SetAttemptStatus applies a delivery outcome to an attempt.
func (h *Handler) SetAttemptStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var body struct {
		Status AttemptStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	a, err := h.sys.SetAttemptStatus(r.Context(), id, body.Status)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// ExpireSweep expires every open attempt whose deadline has passed and
// reports how many were affected.
func (h *Handler) ExpireSweep(w http.ResponseWriter, r *http.Request) {
	count, err := h.sys.ExpireSweep(r.Context(), time.Now())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"expired": count})
}
