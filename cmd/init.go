package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmlee-dev/reportdeck/internal/config"
	"github.com/jmlee-dev/reportdeck/internal/db"
	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize reportdeck configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure reportdeck, writes a .reportdeck.yml file, and seeds the site configuration record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, adminPassword, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		return seedSiteConfig(cmd.Context(), cfg, adminPassword)
	},
}

// seedSiteConfig creates the initial site configuration record if none
// exists yet. An existing record is left alone so re-running init never
// clobbers live content.
func seedSiteConfig(ctx context.Context, cfg *config.Config, adminPassword string) error {
	database, err := db.Open(filepath.Join(cfg.DataDir, "reportdeck.db"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := sitecfg.NewStore(database)
	existing, err := store.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("checking site configuration: %w", err)
	}
	if existing != nil {
		fmt.Println("Site configuration already exists, leaving it unchanged.")
		return nil
	}

	seed := sitecfg.DefaultConfig()
	if adminPassword != "" {
		seed.AdminPassword = adminPassword
	}
	if err := store.Save(ctx, seed); err != nil {
		return fmt.Errorf("seeding site configuration: %w", err)
	}
	fmt.Println("Seeded the initial site configuration.")
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
