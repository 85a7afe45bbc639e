package question

import (
	"net/http"

	"github.com/saulo-duarte/quizdeck/internal/config"
)

type Handler struct {
	service QuestionService
}

func NewHandler(s QuestionService) *Handler {
	return &Handler{service: s}
}

type listItem struct {
	Index   int      `json:"index"`
	Number  int      `json:"number"`
	Text    string   `json:"question"`
	Kind    Kind     `json:"kind"`
	Answers []string `json:"answers"`
}

// ListQuestions exposes the store without the expected answers.
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	all := h.service.All()
	out := make([]listItem, 0, len(all))
	for _, q := range all {
		answers := q.Options
		if answers == nil {
			answers = []string{}
		}
		out = append(out, listItem{Index: q.Index, Number: q.Number(), Text: q.Text, Kind: q.Kind, Answers: answers})
	}
	config.JSON(w, http.StatusOK, out)
}
