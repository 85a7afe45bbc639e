package quiz

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

type Handler struct {
	controller Controller
}

func NewHandler(c Controller) *Handler {
	return &Handler{controller: c}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.controller.State().View())
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload struct {
		Mode  string `json:"mode"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Invalid request body to start quiz")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := session.ParseMode(payload.Mode)
	if err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.controller.Start(r.Context(), mode, payload.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, state.View())
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.controller.Resume(r.Context(), payload.SessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, state.View())
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Option *int `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Option == nil {
		config.Error(w, http.StatusBadRequest, "option is required")
		return
	}
	h.dispatch(w, r, Toggle{Option: *payload.Option})
}

func (h *Handler) SetText(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.dispatch(w, r, SetText{Text: payload.Text})
}

func (h *Handler) Jump(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		QuestionIndex *int `json:"questionIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.QuestionIndex == nil {
		config.Error(w, http.StatusBadRequest, "questionIndex is required")
		return
	}
	h.dispatch(w, r, Jump{QuestionIndex: *payload.QuestionIndex})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request)   { h.dispatch(w, r, Submit{}) }
func (h *Handler) Next(w http.ResponseWriter, r *http.Request)     { h.dispatch(w, r, Next{}) }
func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) { h.dispatch(w, r, Previous{}) }
func (h *Handler) Review(w http.ResponseWriter, r *http.Request)   { h.dispatch(w, r, Review{}) }
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request)  { h.dispatch(w, r, Restart{}) }

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	state := h.controller.State()
	if state.Phase() != PhaseComplete && state.Phase() != PhaseReviewing {
		config.Error(w, http.StatusConflict, "quiz is not complete")
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"summary": state.Summary(),
		"entries": state.ReviewEntries(),
	})
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Position *int `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Position == nil {
		config.Error(w, http.StatusBadRequest, "position is required")
		return
	}

	text, err := h.controller.Explain(r.Context(), *payload.Position)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"position":    *payload.Position,
		"explanation": text,
	})
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, a Action) {
	state, err := h.controller.Dispatch(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, state.View())
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrSessionMismatch):
		config.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNoAnswer), errors.Is(err, ErrInvalidOption),
		errors.Is(err, ErrNotInSession), errors.Is(err, session.ErrInvalidMode),
		errors.Is(err, session.ErrEmptyPool):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, ErrNoActiveSession),
		errors.Is(err, ErrNothingToExplain):
		config.Error(w, http.StatusNotFound, err.Error())
	default:
		config.WithContext(r.Context()).WithError(err).Error("Quiz request failed")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
