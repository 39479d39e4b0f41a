package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Manage PreSeries portfolios",
}

var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the portfolios of the account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := api.GetPortfolios(cmd.Context(), url.Values{})
		if err != nil {
			return err
		}

		for _, p := range resp.Resources {
			name, _ := p.Field("name")
			fmt.Printf("%s\t%s\n", p.ID, name)
		}
		return nil
	},
}

var portfolioShowCmd = &cobra.Command{
	Use:   "show <portfolio-id>",
	Short: "Show one portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		p, err := api.GetPortfolio(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\t%v\n", p.ID, p.Body["name"])
		return nil
	},
}

var portfolioRenameCmd = &cobra.Command{
	Use:   "rename <portfolio-id> <new-name>",
	Short: "Rename a portfolio",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		if _, err := api.UpdatePortfolio(cmd.Context(), args[0], map[string]any{"name": args[1]}); err != nil {
			return err
		}

		zap.L().Info("portfolio renamed", zap.String("portfolio_id", args[0]), zap.String("name", args[1]))
		return nil
	},
}

var portfolioDeleteCmd = &cobra.Command{
	Use:   "delete <portfolio-id>",
	Short: "Delete a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		if err := api.DeletePortfolio(cmd.Context(), args[0]); err != nil {
			return err
		}

		zap.L().Info("portfolio deleted", zap.String("portfolio_id", args[0]))
		return nil
	},
}

var portfolioAddCmd = &cobra.Command{
	Use:   "add <portfolio-id> <company-id>",
	Short: "Add a company to a portfolio",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		if _, err := api.AddPortfolioCompany(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}

		zap.L().Info("company added", zap.String("portfolio_id", args[0]), zap.String("company_id", args[1]))
		return nil
	},
}

var portfolioRemoveCmd = &cobra.Command{
	Use:   "remove <portfolio-id> <company-id>",
	Short: "Remove a company from a portfolio",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		if err := api.RemovePortfolioCompany(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}

		zap.L().Info("company removed", zap.String("portfolio_id", args[0]), zap.String("company_id", args[1]))
		return nil
	},
}

func init() {
	portfolioCmd.AddCommand(portfolioListCmd, portfolioShowCmd, portfolioRenameCmd,
		portfolioDeleteCmd, portfolioAddCmd, portfolioRemoveCmd)
	rootCmd.AddCommand(portfolioCmd)
}
