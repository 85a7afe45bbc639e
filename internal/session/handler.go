package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizdeck/internal/config"
)

// DeleteHook runs after a session has been removed.
type DeleteHook func(ctx context.Context, id string)

type Handler struct {
	service  SessionService
	onDelete []DeleteHook
}

func NewHandler(s SessionService, hooks ...DeleteHook) *Handler {
	return &Handler{service: s, onDelete: hooks}
}

type listResponse struct {
	Sessions         []Session `json:"sessions"`
	CurrentSessionID *string   `json:"currentSessionId"`
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	resp := listResponse{Sessions: h.service.List()}
	if current, ok := h.service.Current(); ok {
		resp.CurrentSessionID = &current.ID
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(chi.URLParam(r, "id"))
	if errors.Is(err, ErrSessionNotFound) {
		config.Error(w, http.StatusNotFound, err.Error())
		return
	}
	config.JSON(w, http.StatusOK, sess)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			config.Error(w, http.StatusNotFound, err.Error())
			return
		}
		log.WithError(err).Error("Failed to delete session")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	for _, hook := range h.onDelete {
		hook(r.Context(), id)
	}
	w.WriteHeader(http.StatusNoContent)
}
