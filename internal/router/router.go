package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/palette"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/quiz"
	"github.com/saulo-duarte/quizdeck/internal/report"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

type RouterConfig struct {
	QuestionHandler *question.Handler
	PaletteHandler  *palette.Handler
	SessionHandler  *session.Handler
	QuizHandler     *quiz.Handler
	ReportHandler   *report.Handler
	AllowedOrigins  string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins(cfg.AllowedOrigins),
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/questions", question.Routes(cfg.QuestionHandler))
	r.Mount("/palette", palette.Routes(cfg.PaletteHandler))
	r.Mount("/sessions", session.Routes(cfg.SessionHandler))
	r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
	r.Mount("/reports", report.Routes(cfg.ReportHandler))
	return r
}

func origins(list string) []string {
	if list == "" {
		return []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	return strings.Split(list, ",")
}
