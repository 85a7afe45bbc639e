package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/container"
	"github.com/saulo-duarte/quizdeck/internal/session"
	"github.com/urfave/cli/v2"
)

func sessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "list or delete saved sessions",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list saved sessions",
				Action: listSessions,
			},
			{
				Name:      "delete",
				Usage:     "delete a session",
				ArgsUsage: "<id>",
				Action:    deleteSession,
			},
		},
	}
}

// openSessions opens only the store, so it works without the question set.
func openSessions(ctx context.Context, cfg *config.Config) (session.SessionService, func(), error) {
	kv, err := container.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := session.NewSessionContainer(kv).Service
	if err := svc.Load(ctx); err != nil {
		svc.Close()
		kv.Close()
		return nil, nil, err
	}
	return svc, func() {
		svc.Close()
		kv.Close()
	}, nil
}

func listSessions(c *cli.Context) error {
	svc, closeFn, err := openSessions(c.Context, loadConfig(c))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closeFn()

	sessions := svc.List()
	if len(sessions) == 0 {
		fmt.Fprintln(c.App.Writer, "No saved sessions.")
		return nil
	}

	current, _ := svc.Current()
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tSTARTED\tMODE\tPROGRESS\tSCORE\tSTATUS")
	for _, s := range sessions {
		marker := ""
		if s.ID == current.ID {
			marker = "*"
		}
		status := "in progress"
		if s.Completed {
			status = color.GreenString("completed")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%d\t%s\n",
			marker, s.ID,
			time.UnixMilli(s.Timestamp).Format("2006-01-02 15:04"),
			s.Mode(), len(s.AnsweredQuestions), s.TotalQuestions, s.Score, status)
	}
	return w.Flush()
}

func deleteSession(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return cli.Exit("session id is required", 2)
	}

	svc, closeFn, err := openSessions(c.Context, loadConfig(c))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closeFn()

	if err := svc.Delete(c.Context, id); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintf(c.App.Writer, "Deleted session %s\n", id)
	return nil
}
