package quiz

import (
	"github.com/saulo-duarte/quizdeck/internal/explain"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

type QuizContainer struct {
	Controller Controller
	Handler    *Handler
}

func NewQuizContainer(questions question.QuestionService, sessions session.SessionService, explainer explain.ExplainService) *QuizContainer {
	controller := NewController(questions, sessions, explainer)
	handler := NewHandler(controller)

	return &QuizContainer{
		Controller: controller,
		Handler:    handler,
	}
}
