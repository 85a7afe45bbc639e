package main

import (
	"os"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "quizdeck",
		Usage: "practice and test yourself on a question set from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "questions", Aliases: []string{"q"}, Usage: "question set: file path or http(s) URL", EnvVars: []string{"QUIZ_QUESTIONS"}},
			&cli.StringFlag{Name: "db", Usage: "sqlite file for sessions and caches", EnvVars: []string{"QUIZ_DB_PATH"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			cfg := loadConfig(c)
			config.InitLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			return nil
		},
		Commands: []*cli.Command{
			playCommand(),
			sessionsCommand(),
			serveCommand(),
			cacheCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		config.Logger.WithError(err).Error("quizdeck failed")
		os.Exit(1)
	}
}

// loadConfig reads the environment and lets global flags override it.
func loadConfig(c *cli.Context) *config.Config {
	cfg := config.Load()
	if v := c.String("questions"); v != "" {
		cfg.QuestionsSource = v
	}
	if v := c.String("db"); v != "" {
		cfg.DBPath = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}
