package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/config"
	"github.com/kalpruh/enrol/internal/infrastructure/sqlite"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/metrics"
	"github.com/kalpruh/enrol/internal/server"
)

const shutdownGrace = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the registration service",
	Long: `Run the HTTP service the wizard submits to. Registrations are
validated, sanitized and inserted into the SQLite store.

Endpoints:
  POST /api/register            create a registration
  GET  /api/registrations       list registrations, newest first
  GET  /api/registrations/{id}  fetch one registration
  GET  /healthz                 liveness
  GET  /metrics                 Prometheus metrics

Example:
  enrol serve                   # listen on server.addr (default :8080)
  enrol serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
	serveCmd.Flags().String("db", "", "SQLite database path (overrides config)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("storage.path", serveCmd.Flags().Lookup("db"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	defer closeLogs()

	if err := config.ValidateStorage(cfg.Storage); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.ValidateServer(cfg.Server); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, shutdownTracing, err := newTracer("enrol-server")
	if err != nil {
		return err
	}
	defer shutdownTracing()

	db, err := sqlite.NewDB(cfg.Storage.Path, sqlite.WithTracer(provider.Tracer()))
	if err != nil {
		return fmt.Errorf("opening registration store: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newCatalogStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	handler := server.NewHandler(server.HandlerConfig{
		Repository: db.RegistrationRepository(),
		Known:      store.Contains,
		Metrics:    metrics.New(),
		Tracer:     provider.Tracer(),
		CacheTTL:   cfg.Server.CacheTTL,
	})
	srv, err := server.NewServer(server.ServerConfig{Addr: cfg.Server.Addr, Handler: handler})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Registration service listening on port %d (store %s)\n", srv.Port(), db.Path())
	fmt.Fprintln(out, "Press Ctrl+C to stop")
	log.Info(log.CatHTTP, "Serving", "addr", cfg.Server.Addr, "db", db.Path(), "catalog", catalogSource(store))

	if err := srv.Run(ctx, shutdownGrace); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	fmt.Fprintln(out, "Registration service stopped")
	return nil
}

func catalogSource(s *catalog.Store) string {
	if s.Path() == "" {
		return "built-in"
	}
	return s.Path()
}
