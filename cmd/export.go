package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/preseries/api-examples/internal/country"
	"github.com/preseries/api-examples/internal/export"
	"github.com/preseries/api-examples/internal/query"
	"github.com/preseries/api-examples/internal/resolver"
	"github.com/preseries/api-examples/internal/sheet"
)

var (
	exportFile       fileFlags
	exportOut        string
	exportUnknownOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Resolve companies from an XLSX file and export their PreSeries data",
	Long:  "Resolves each row to a PreSeries company, downloads its detailed record plus competitors and similar companies, and writes everything into a multi-sheet workbook.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := exportFile.validate(); err != nil {
			return err
		}

		file, rows, err := exportFile.open()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		res := resolver.New(api, query.NewBuilder(country.NewResolver()))
		matched, unmatched := res.ResolveAll(ctx, rows)
		ids := resolver.MatchedIDs(matched)

		enricher := resolver.NewEnricher(api, cfg.Enrich.BatchSize)

		details, err := enricher.CompanyDetails(ctx, ids)
		if err != nil {
			return err
		}
		competitors, err := enricher.Competitors(ctx, ids)
		if err != nil {
			return err
		}
		similar, err := enricher.Similar(ctx, ids)
		if err != nil {
			return err
		}

		profiles, err := loadProfiles()
		if err != nil {
			return err
		}
		if err := export.NewWriter(profiles).WriteEnrichment(exportOut, details, competitors, similar); err != nil {
			return err
		}

		unknown, err := unknownResults(file, unmatched, exportFile.summaryColumns)
		if err != nil {
			return err
		}
		if err := sheet.WriteResults(exportUnknownOut, unknown, exportFile.summaryColumns); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.Int("companies", len(details)),
			zap.Int("unknown", len(unknown)),
			zap.String("file", exportOut),
		)
		return nil
	},
}

func loadProfiles() (*export.Profiles, error) {
	if cfg.Enrich.ProfilesPath != "" {
		return export.LoadProfiles(cfg.Enrich.ProfilesPath)
	}
	return export.DefaultProfiles()
}

func init() {
	exportFile.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "Companies_data.xlsx", "output file for the exported data")
	exportCmd.Flags().StringVar(&exportUnknownOut, "unknown-out", "Unknown_companies.xlsx", "output file for the unmatched companies")
	rootCmd.AddCommand(exportCmd)
}
