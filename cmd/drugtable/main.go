// drugtable builds the enriched drug table once and writes it out, without
// running the API server. Useful for batch pipelines and for loading the
// table into Postgres.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/drugdata/drugclass-api/drugparser"
	"github.com/drugdata/drugclass-api/export"
	"github.com/drugdata/drugclass-api/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	var (
		dataDir      string
		outPath      string
		postgresDSN  string
		skipDownload bool
		envFile      string
	)

	rootCmd := &cobra.Command{
		Use:   "drugtable",
		Short: "Build the enriched drug classification table",
		Long: `drugtable downloads the public reference datasets (Part D spending,
the RxNorm name registry, the drug profile sample and the class tables),
resolves every drug name to its RXCUIs and classes, and writes the enriched
table as CSV and optionally into Postgres.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("failed to load env file %s: %w", envFile, err)
				}
			}

			logging.InitLogger("logs")

			if postgresDSN == "" {
				postgresDSN = os.Getenv("POSTGRES_DSN")
			}

			dataset, err := drugparser.ParseAll(dataDir, skipDownload)
			if err != nil {
				return err
			}

			if err := export.WriteCSVFile(outPath, dataset.Drugs); err != nil {
				return err
			}
			logging.Info("Drug table written", "path", outPath, "rows", len(dataset.Drugs))

			if postgresDSN != "" {
				if err := export.LoadPostgres(cmd.Context(), postgresDSN, dataset.Drugs); err != nil {
					return err
				}
			}

			return nil
		},
	}

	rootCmd.Flags().StringVar(&dataDir, "data-dir", "files", "Directory for the downloaded reference files")
	rootCmd.Flags().StringVar(&outPath, "out", "drug_table.csv", "Path of the CSV output")
	rootCmd.Flags().StringVar(&postgresDSN, "postgres-dsn", "", "Optional Postgres connection string to bulk-load the table into")
	rootCmd.Flags().BoolVar(&skipDownload, "skip-download", false, "Use reference files already present in the data directory")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "Optional .env file to load")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logging.Error("drugtable failed", "error", err)
		os.Exit(1)
	}
}
