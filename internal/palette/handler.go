package palette

import (
	"net/http"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/question"
)

// RunQuestions returns the questions of the active run, or nil when no run
// accepts jumps.
type RunQuestions func() []question.Question

type Handler struct {
	questions question.QuestionService
	run       RunQuestions
}

func NewHandler(q question.QuestionService, run RunQuestions) *Handler {
	return &Handler{questions: q, run: run}
}

type match struct {
	Index  int    `json:"index"`
	Number int    `json:"number"`
	Text   string `json:"question"`
}

// Search filters the whole store, or only the active run with ?scope=run.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	pool := h.questions.All()
	if r.URL.Query().Get("scope") == "run" {
		pool = nil
		if h.run != nil {
			pool = h.run()
		}
	}
	results := Filter(pool, r.URL.Query().Get("q"))

	out := make([]match, 0, len(results))
	for _, q := range results {
		out = append(out, match{Index: q.Index, Number: q.Number(), Text: q.Text})
	}
	config.JSON(w, http.StatusOK, out)
}
