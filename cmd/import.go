package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/preseries/api-examples/internal/country"
	"github.com/preseries/api-examples/internal/query"
	"github.com/preseries/api-examples/internal/resolver"
	"github.com/preseries/api-examples/internal/sheet"
)

var (
	importFile          fileFlags
	importPortfolioName string
	importKnownOut      string
	importUnknownOut    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Resolve companies from an XLSX file and build a portfolio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := importFile.validate(); err != nil {
			return err
		}

		file, rows, err := importFile.open()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		res := resolver.New(api, query.NewBuilder(country.NewResolver()))
		matched, unmatched := res.ResolveAll(ctx, rows)

		portfolio, err := api.CreatePortfolio(ctx, importPortfolioName, resolver.MatchedIDs(matched))
		if err != nil {
			return eris.Wrap(err, "create portfolio")
		}

		known, err := knownResults(file, matched, importFile.summaryColumns)
		if err != nil {
			return err
		}
		unknown, err := unknownResults(file, unmatched, importFile.summaryColumns)
		if err != nil {
			return err
		}

		if err := sheet.WriteResults(importKnownOut, known, importFile.summaryColumns); err != nil {
			return err
		}
		if err := sheet.WriteResults(importUnknownOut, unknown, importFile.summaryColumns); err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.Int("known", len(known)),
			zap.Int("unknown", len(unknown)),
			zap.String("portfolio_id", portfolio.ID),
		)
		fmt.Printf("Portfolio: https://preseries.com/dashboard/portfolio/companies?portfolio_id=%s\n", portfolio.ID)
		return nil
	},
}

func init() {
	importFile.register(importCmd)
	importCmd.Flags().StringVar(&importPortfolioName, "portfolio-name", "", "name of the portfolio to create (required)")
	importCmd.Flags().StringVar(&importKnownOut, "known-out", "Known_companies.xlsx", "output file for the matched companies")
	importCmd.Flags().StringVar(&importUnknownOut, "unknown-out", "Unknown_companies.xlsx", "output file for the unmatched companies")
	_ = importCmd.MarkFlagRequired("portfolio-name")
	rootCmd.AddCommand(importCmd)
}
