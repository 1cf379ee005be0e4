package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
	"github.com/SscSPs/vas_funding_ledger/internal/platform/bootstrap"
	"github.com/SscSPs/vas_funding_ledger/internal/platform/config"
	"github.com/SscSPs/vas_funding_ledger/internal/utils"
	"github.com/SscSPs/vas_funding_ledger/pkg/database"
	"github.com/urfave/cli"
)

type commandEnv struct {
	ctx      context.Context
	app      *bootstrap.App
	operator string
	out      io.Writer
}

func withConfig(logger *slog.Logger, action func(*cli.Context, *config.Config, *slog.Logger) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return action(c, cfg, logger)
	}
}

func withApp(logger *slog.Logger, action func(*cli.Context, *commandEnv) error) cli.ActionFunc {
	return withConfig(logger, func(c *cli.Context, cfg *config.Config, logger *slog.Logger) error {
		ctx := context.Background()
		app, err := bootstrap.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		return action(c, &commandEnv{
			ctx:      ctx,
			app:      app,
			operator: c.GlobalString("operator"),
			out:      os.Stdout,
		})
	})
}

func migrateAction(_ *cli.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.StorageDriver != config.StoragePostgres {
		return cli.NewExitError("migrate needs STORAGE_DRIVER=postgres", 2)
	}
	return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
}

func requireRef(c *cli.Context) (string, error) {
	ref := c.Args().First()
	if ref == "" {
		return "", cli.NewExitError("FUNDING_REF argument is required", 2)
	}
	return ref, nil
}

func requireAmount(c *cli.Context) (string, error) {
	raw := c.String("amount")
	if raw == "" {
		return "", cli.NewExitError("--amount is required", 2)
	}
	return raw, nil
}

func createAction(c *cli.Context, env *commandEnv) error {
	raw, err := requireAmount(c)
	if err != nil {
		return err
	}
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("invalid amount %q", raw), 2)
	}

	f, err := env.app.Services.Funding.CreateFunding(env.ctx, dto.CreateFundingRequest{
		MerchantID:  c.Int64("merchant"),
		Amount:      amount,
		Description: c.String("description"),
		Source:      c.String("source"),
		AutoApprove: c.Bool("auto-approve"),
	}, env.operator)
	if f != nil {
		printFunding(env.out, f)
	}
	return err
}

func approveAction(c *cli.Context, env *commandEnv) error {
	ref, err := requireRef(c)
	if err != nil {
		return err
	}
	f, err := env.app.Services.Funding.ApproveFunding(env.ctx, dto.ApproveFundingRequest{FundingRef: ref}, env.operator)
	if err != nil {
		return err
	}
	printFunding(env.out, f)
	return nil
}

func rejectAction(c *cli.Context, env *commandEnv) error {
	ref, err := requireRef(c)
	if err != nil {
		return err
	}
	f, err := env.app.Services.Funding.RejectFunding(env.ctx, dto.RejectFundingRequest{FundingRef: ref}, env.operator)
	if err != nil {
		return err
	}
	printFunding(env.out, f)
	return nil
}

func amendAction(c *cli.Context, env *commandEnv) error {
	ref, err := requireRef(c)
	if err != nil {
		return err
	}
	raw, err := requireAmount(c)
	if err != nil {
		return err
	}
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("invalid amount %q", raw), 2)
	}
	f, err := env.app.Services.Funding.AmendFundingAmount(env.ctx, dto.AmendFundingAmountRequest{FundingRef: ref, NewAmount: amount}, env.operator)
	if err != nil {
		return err
	}
	printFunding(env.out, f)
	return nil
}

func listAction(c *cli.Context, env *commandEnv) error {
	params := dto.ListFundingParams{
		Status: c.StringSlice("status"),
		Query:  c.String("q"),
		Limit:  c.Int("limit"),
	}
	if id := c.Int64("merchant"); id != 0 {
		params.MerchantID = &id
	}
	if token := c.String("next-token"); token != "" {
		params.NextToken = &token
	}

	resp, err := env.app.Services.FundingQuery.ListFunding(env.ctx, params)
	if err != nil {
		return err
	}
	return printFundingTable(env.out, resp)
}

func seedAction(c *cli.Context, env *commandEnv) error {
	amount, err := utils.ParseAmount(c.String("amount"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("invalid amount %q", c.String("amount")), 2)
	}
	if env.app.Repos.MerchantAdmin == nil {
		return errors.New("storage driver cannot register merchants")
	}
	seeder := &merchantSeeder{
		merchants: env.app.Repos.MerchantAdmin,
		funding:   env.app.Services.Funding,
		operator:  env.operator,
	}
	seeded, err := seeder.Seed(env.ctx, c.Int("merchants"), amount)
	for _, s := range seeded {
		fmt.Fprintf(env.out, "merchant %d %q funded %s via %s\n", s.Merchant.MerchantID, s.Merchant.Name, utils.FormatAmount(s.Funding.Amount), s.Funding.FundingRef)
	}
	return err
}

func printFunding(w io.Writer, f *domain.FundingRequest) {
	fmt.Fprintf(w, "funding_ref:    %s\n", f.FundingRef)
	fmt.Fprintf(w, "merchant_id:    %d\n", f.MerchantID)
	fmt.Fprintf(w, "status:         %s\n", f.Status)
	fmt.Fprintf(w, "amount:         %s\n", utils.FormatAmount(f.Amount))
	fmt.Fprintf(w, "balance_before: %s\n", utils.FormatAmount(f.BalanceBefore))
	fmt.Fprintf(w, "balance_after:  %s\n", utils.FormatAmount(f.BalanceAfter))
	fmt.Fprintf(w, "version:        %d\n", f.Version)
}

func printFundingTable(w io.Writer, resp *dto.ListFundingResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FUNDING_REF\tMERCHANT\tSTATUS\tAMOUNT\tCREATED_AT\tCREATED_BY")
	for _, f := range resp.Fundings {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			f.FundingRef, f.MerchantID, f.Status, utils.FormatAmount(f.Amount),
			f.CreatedAt.Format("2006-01-02 15:04:05"), f.CreatedBy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if resp.NextToken != nil {
		fmt.Fprintf(w, "next-token: %s\n", *resp.NextToken)
	}
	return nil
}
