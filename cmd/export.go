package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmlee-dev/reportdeck/internal/config"
	"github.com/jmlee-dev/reportdeck/internal/db"
	"github.com/jmlee-dev/reportdeck/internal/export"
	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the site as static print-layout pages",
	Long:  `Renders the print layout for both device modes into a directory, copying every locally hosted asset the configuration references.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "reportdeck.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		site, err := sitecfg.NewStore(database).FetchOrDefault(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading site configuration: %w", err)
		}

		exp := export.NewExporter(cfg.ResolvedAssetsDir(), exportOut, cfg.ResolvedBaseURL())
		written, err := exp.Export(site, export.NewReporter())
		if err != nil {
			return fmt.Errorf("exporting site: %w", err)
		}

		fmt.Printf("Exported %d files to %s\n", written, exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "export", "Output directory")
	rootCmd.AddCommand(exportCmd)
}
