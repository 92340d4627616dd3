package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jmlee-dev/reportdeck/internal/assets"
	"github.com/jmlee-dev/reportdeck/internal/auth"
	"github.com/jmlee-dev/reportdeck/internal/config"
	"github.com/jmlee-dev/reportdeck/internal/db"
	"github.com/jmlee-dev/reportdeck/internal/editor"
	"github.com/jmlee-dev/reportdeck/internal/server"
	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
	"github.com/jmlee-dev/reportdeck/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reportdeck server",
	Long:  `Starts the reportdeck HTTP server: the public viewer page, the admin editor API, authentication, and asset uploads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort > 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer log.Sync()

		// Open database.
		dbPath := filepath.Join(cfg.DataDir, "reportdeck.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			DataDir:  cfg.DataDir,
			AllowAll: cfg.AllowAllCORS,
		}, database, log)

		registerAllRoutes(srv, cfg, database, log)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "reportdeck v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Assets:   %s\n", cfg.ResolvedAssetsDir())

		return srv.Start()
	},
}

// registerAllRoutes wires up all feature routes.
func registerAllRoutes(srv *server.Server, cfg *config.Config, database *db.DB, log *zap.Logger) {
	r := srv.Router()

	// Site configuration record.
	configStore := sitecfg.NewStore(database)

	// Access gate and sessions.
	sessions := auth.NewSessionStore(database)
	gate := auth.NewGate(sessions, configStore, cfg.SessionCookie)
	gate.RegisterRoutes(r)

	sitecfg.RegisterRoutes(r, configStore, gate.RequireSession)

	// Server-side draft editor.
	ed := editor.New(configStore)
	editor.RegisterRoutes(r, ed, gate.RequireSession)

	// Asset uploads and static serving.
	store := assets.NewLocalStore(cfg.ResolvedAssetsDir(), cfg.ResolvedBaseURL(), database, log)
	assets.RegisterRoutes(r, store, store.Dir(), assets.Options{
		MaxUploadSize:   int64(cfg.MaxUploadMB) << 20,
		AllowedPatterns: cfg.AllowedUploads,
	}, gate.RequireSession)

	// Viewer/admin UI and the print layout.
	pages := web.New(configStore)
	pages.RegisterRoutes(r)
}

// newLogger builds the process logger. Verbose mode switches to the
// human-readable development encoder.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
