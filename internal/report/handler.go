package report

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/quiz"
)

type Handler struct {
	controller quiz.Controller
}

func NewHandler(c quiz.Controller) *Handler {
	return &Handler{controller: c}
}

func (h *Handler) ReviewPDF(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	state := h.controller.State()
	if state.Phase() != quiz.PhaseComplete && state.Phase() != quiz.PhaseReviewing {
		config.Error(w, http.StatusConflict, "quiz is not complete")
		return
	}

	data, err := GeneratePDF(FromState(state, time.Now()))
	if err != nil {
		log.WithError(err).Error("Failed to render review PDF")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quiz-review.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.WithError(err).Warn("Failed to write review PDF")
	}
}
