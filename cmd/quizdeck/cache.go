package main

import (
	"fmt"

	"github.com/saulo-duarte/quizdeck/internal/container"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/urfave/cli/v2"
)

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "manage the cached remote question set",
		Subcommands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "drop the cached question set so the next run refetches it",
				Action: func(c *cli.Context) error {
					kv, err := container.OpenStore(c.Context, loadConfig(c))
					if err != nil {
						return cli.Exit(err, 1)
					}
					defer kv.Close()

					if err := question.NewCache(kv).Clear(c.Context); err != nil {
						return cli.Exit(err, 1)
					}
					fmt.Fprintln(c.App.Writer, "Question cache cleared.")
					return nil
				},
			},
		},
	}
}
