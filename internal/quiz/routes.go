package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetState)
	r.Post("/start", h.Start)
	r.Post("/resume", h.Resume)

	r.Post("/toggle", h.Toggle)
	r.Post("/text", h.SetText)
	r.Post("/submit", h.Submit)
	r.Post("/next", h.Next)
	r.Post("/previous", h.Previous)
	r.Post("/jump", h.Jump)

	r.Post("/review", h.Review)
	r.Get("/review", h.GetReview)
	r.Post("/restart", h.Restart)
	r.Post("/explain", h.Explain)
	return r
}
