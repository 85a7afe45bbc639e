package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/explain"
	"github.com/saulo-duarte/quizdeck/internal/palette"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/quiz"
	"github.com/saulo-duarte/quizdeck/internal/report"
	"github.com/saulo-duarte/quizdeck/internal/router"
	"github.com/saulo-duarte/quizdeck/internal/session"
	"github.com/saulo-duarte/quizdeck/internal/storage"
)

type Container struct {
	Config *config.Config
	Store  storage.KV

	QuestionContainer *question.QuestionContainer
	SessionContainer  *session.SessionContainer
	ExplainContainer  *explain.ExplainContainer
	QuizContainer     *quiz.QuizContainer
}

// New wires the store, the question set and the services. A question load
// failure is returned; unreadable saved sessions are logged and the app
// starts with no sessions.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := config.WithContext(ctx)

	kv, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	questionContainer := question.NewQuestionContainer(cfg.QuestionsSource, kv, nil)
	if err := questionContainer.Service.Load(ctx); err != nil {
		kv.Close()
		return nil, fmt.Errorf("load questions: %w", err)
	}

	sessionContainer := session.NewSessionContainer(kv)
	if err := sessionContainer.Service.Load(ctx); err != nil {
		log.WithError(err).Warn("Saved sessions could not be read, starting with an empty list")
	}

	explainContainer := explain.NewExplainContainer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	quizContainer := quiz.NewQuizContainer(
		questionContainer.Service,
		sessionContainer.Service,
		explainContainer.Service,
	)

	return &Container{
		Config:            cfg,
		Store:             kv,
		QuestionContainer: questionContainer,
		SessionContainer:  sessionContainer,
		ExplainContainer:  explainContainer,
		QuizContainer:     quizContainer,
	}, nil
}

// OpenStore picks postgres when DATABASE_DSN is set and the local sqlite file
// otherwise, sealing values when a crypto key is configured.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	log := config.WithContext(ctx)

	if err := config.InitCrypto(cfg.CryptoKey); err != nil {
		return nil, err
	}

	var (
		kv  storage.KV
		err error
	)
	if cfg.DatabaseDSN != "" {
		kv, err = storage.OpenPostgres(ctx, cfg.DatabaseDSN)
		log.Info("Using postgres store")
	} else {
		kv, err = storage.OpenSQLite(ctx, cfg.DBPath)
		log.WithField("path", cfg.DBPath).Info("Using sqlite store")
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if config.CryptoEnabled() {
		kv = storage.Sealed(kv)
	}
	return kv, nil
}

func (c *Container) Router() http.Handler {
	questions := c.QuestionContainer.Service
	controller := c.QuizContainer.Controller

	return router.New(router.RouterConfig{
		QuestionHandler: question.NewHandler(questions),
		PaletteHandler:  palette.NewHandler(questions, runQuestions(controller)),
		SessionHandler:  session.NewHandler(c.SessionContainer.Service, controller.Forget),
		QuizHandler:     c.QuizContainer.Handler,
		ReportHandler:   report.NewHandler(controller),
		AllowedOrigins:  c.Config.AllowedOrigins,
	})
}

// Close drains pending session writes and background explanations before
// closing the store.
func (c *Container) Close() error {
	c.ExplainContainer.Service.Wait()
	c.SessionContainer.Service.Close()
	return c.Store.Close()
}

func runQuestions(controller quiz.Controller) palette.RunQuestions {
	return func() []question.Question {
		st := controller.State()
		if st.Phase() != quiz.PhaseAnswering && st.Phase() != quiz.PhaseSubmitted {
			return nil
		}
		return st.Questions()
	}
}
