package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "reportdeck",
	Short: "Single-page report site with an embedded admin editor",
	Long: `Reportdeck serves a single-page marketing/report site whose content is
managed through a password-gated admin editor. Content is stored as a
single configuration record, images are uploaded to a local asset
store, and the site can be exported as a static print layout.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".reportdeck.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
