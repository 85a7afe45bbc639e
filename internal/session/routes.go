package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListSessions)
	r.Get("/{id}", h.GetSession)
	r.Delete("/{id}", h.DeleteSession)
	return r
}
