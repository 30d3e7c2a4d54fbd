package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"buglog/internal/domain"
	"buglog/internal/dto"
	"buglog/internal/httpx"
	"buglog/internal/netutil"
	"buglog/internal/observability/middleware"
	"buglog/internal/service"
)

// appHandler writes its own success response and returns failures for
// handler.wrap to turn into an envelope.
type appHandler func(w http.ResponseWriter, r *http.Request) error

type handler struct {
	users  service.UserService
	events service.EventService
	health service.HealthService
	log    *slog.Logger
}

func (h *handler) wrap(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.writeError(w, r, err)
		}
	}
}

func (h *handler) getAllUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, dto.OK(users))
	return nil
}

func (h *handler) ingestEvent(w http.ResponseWriter, r *http.Request) error {
	payload, err := dto.DecodeEvent(r.URL.Query().Get("event"))
	if err != nil {
		return err
	}
	if _, err := h.events.IngestEvent(r.Context(), payload, netutil.ClientIP(r)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *handler) getBugs(w http.ResponseWriter, r *http.Request) error {
	req, err := dto.ParsePageRequest(r.URL.Query())
	if err != nil {
		return err
	}
	page, err := h.events.ListEvents(r.Context(), req)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, dto.OK(page))
	return nil
}

type healthStatus struct {
	Status string `json:"status"`
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) error {
	if err := h.health.Health(r.Context()); err != nil {
		return err
	}
	httpx.WriteJSON(w, http.StatusOK, dto.OK(healthStatus{Status: "up"}))
	return nil
}

func (h *handler) fallback(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, fmt.Errorf("%w: %s %s", domain.ErrRouteNotMatched, r.Method, r.URL.Path))
}

func (h *handler) rateLimited(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusTooManyRequests, dto.Err("too many requests", http.StatusTooManyRequests))
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.log.Log(r.Context(), level, "request failed",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	httpx.WriteJSON(w, status, dto.Err(message, status))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrDecode):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrDB):
		return http.StatusInternalServerError, domain.ErrDB.Error()
	default:
		return http.StatusInternalServerError, dto.MessageFailed
	}
}
