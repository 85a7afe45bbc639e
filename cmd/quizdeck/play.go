package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/container"
	"github.com/saulo-duarte/quizdeck/internal/session"
	"github.com/saulo-duarte/quizdeck/internal/terminal"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "start or resume a quiz run",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "count", Aliases: []string{"n"}, Usage: `number of questions or "all"`},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: string(session.ModePractice), Usage: "practice or test"},
			&cli.BoolFlag{Name: "resume", Aliases: []string{"r"}, Usage: "resume the current session"},
			&cli.StringFlag{Name: "session", Usage: "resume a session by id"},
			&cli.StringFlag{Name: "pdf", Usage: "write the wrong-answer review to this PDF file when the run completes"},
			&cli.StringFlag{Name: "theme", Usage: "light or dark", EnvVars: []string{"QUIZ_THEME"}},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	ctx := c.Context
	cfg := loadConfig(c)
	if !c.IsSet("log-level") && os.Getenv("LOG_LEVEL") == "" {
		config.Logger.SetLevel(logrus.WarnLevel)
	}

	mode, err := session.ParseMode(c.String("mode"))
	if err != nil {
		return cli.Exit(err, 2)
	}
	count, err := parseCount(c.String("count"), mode, cfg.TestSize)
	if err != nil {
		return cli.Exit(err, 2)
	}

	app, err := container.New(ctx, cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer app.Close()

	theme := cfg.Theme
	if c.IsSet("theme") {
		theme = c.String("theme")
	}
	runner := terminal.NewRunner(app.QuizContainer.Controller, os.Stdin, c.App.Writer, terminal.Options{
		Theme:   theme,
		PDFPath: c.String("pdf"),
	})

	ctl := app.QuizContainer.Controller
	switch {
	case c.IsSet("session"):
		_, err = ctl.Resume(ctx, c.String("session"))
	case c.Bool("resume"):
		_, err = ctl.Resume(ctx, "")
	default:
		_, err = ctl.Start(ctx, mode, count)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	for {
		again, err := runner.Play(ctx)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		if _, err := ctl.Start(ctx, mode, count); err != nil {
			return err
		}
	}
}

// parseCount maps "all" (and zero) to the whole pool. Test mode defaults to
// the configured test size, practice mode to all questions.
func parseCount(raw string, mode session.Mode, testSize int) (int, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch raw {
	case "":
		if mode == session.ModeTest {
			return testSize, nil
		}
		return 0, nil
	case "all":
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	return n, nil
}
