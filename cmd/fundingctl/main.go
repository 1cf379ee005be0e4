package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := newApp(logger).Run(os.Args); err != nil {
		logger.Error("fundingctl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newApp(logger *slog.Logger) *cli.App {
	app := cli.NewApp()
	app.Name = "fundingctl"
	app.Usage = "operate the merchant funding ledger"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "operator",
			Value:  "fundingctl",
			Usage:  "operator id recorded as the actor of every change",
			EnvVar: "FUNDINGCTL_OPERATOR",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "migrate",
			Usage:  "apply pending database migrations",
			Action: withConfig(logger, migrateAction),
		},
		{
			Name:  "seed",
			Usage: "open demo merchants and fund them through create and approve",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "merchants", Value: 5, Usage: "number of merchants to open"},
				cli.StringFlag{Name: "amount", Value: "1000", Usage: "initial funding per merchant"},
			},
			Action: withApp(logger, seedAction),
		},
		{
			Name:      "create",
			Usage:     "create a pending funding request",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.Int64Flag{Name: "merchant", Usage: "merchant id"},
				cli.StringFlag{Name: "amount", Usage: "amount to credit"},
				cli.StringFlag{Name: "description", Usage: "free text description"},
				cli.StringFlag{Name: "source", Usage: "where the money came from"},
				cli.BoolFlag{Name: "auto-approve", Usage: "approve right after creating"},
			},
			Action: withApp(logger, createAction),
		},
		{
			Name:      "approve",
			Usage:     "approve a pending request and credit the merchant",
			ArgsUsage: "FUNDING_REF",
			Action:    withApp(logger, approveAction),
		},
		{
			Name:      "reject",
			Usage:     "reject a pending request",
			ArgsUsage: "FUNDING_REF",
			Action:    withApp(logger, rejectAction),
		},
		{
			Name:      "amend",
			Usage:     "change the amount of a pending request",
			ArgsUsage: "FUNDING_REF",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "amount", Usage: "new amount"},
			},
			Action: withApp(logger, amendAction),
		},
		{
			Name:  "list",
			Usage: "list funding requests, newest first",
			Flags: []cli.Flag{
				cli.Int64Flag{Name: "merchant", Usage: "only this merchant"},
				cli.StringSliceFlag{Name: "status", Usage: "PENDING, APPROVED or REJECTED (repeatable)"},
				cli.StringFlag{Name: "q", Usage: "search reference, description and source"},
				cli.IntFlag{Name: "limit", Value: 20, Usage: "page size"},
				cli.StringFlag{Name: "next-token", Usage: "cursor printed by the previous page"},
			},
			Action: withApp(logger, listAction),
		},
	}
	return app
}
