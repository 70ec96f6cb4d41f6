package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kalpruh/enrol/internal/app"
	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/config"
	"github.com/kalpruh/enrol/internal/infrastructure/sqlite"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/submit"
	"github.com/kalpruh/enrol/internal/tracing"
	"github.com/kalpruh/enrol/internal/wizard"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply does not land in the first text input.
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".enrol/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "enrol",
	Short: "Register for an embedded systems solution",
	Long: `A terminal wizard that collects your details, the solution category,
OS delivery preference and the algorithms you need, then saves the
registration to the registration service.`,
	Version:           version,
	PersistentPreRunE: setupLogging,
	RunE:              runApp,
	SilenceUsage:      true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .enrol/config.yaml or ~/.config/enrol/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by ENROL_DEBUG)")
	rootCmd.Flags().String("mode", "", `submit mode: "remote" or "local" (overrides config)`)
	rootCmd.Flags().String("endpoint", "", "registration service URL (overrides config)")

	_ = viper.BindPFlag("submit.mode", rootCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("submit.endpoint", rootCmd.Flags().Lookup("endpoint"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .enrol/config.yaml (current directory)
		// 2. ~/.config/enrol/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "enrol"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				viper.SetConfigFile(defaultConfigPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		loaded = config.Defaults()
	}
	cfg = loaded
}

// configPath is the file settings are written back to.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return defaultConfigPath
}

var logCleanup func()

func setupLogging(cmd *cobra.Command, _ []string) error {
	if os.Getenv("ENROL_DEBUG") == "" && !debugFlag {
		return nil
	}
	logPath := os.Getenv("ENROL_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "enrol")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "enrol starting", "command", cmd.Name(), "config", viper.ConfigFileUsed())
	return nil
}

// newTracer builds the provider from the tracing config section. Callers
// must call shutdown.
func newTracer(service string) (*tracing.Provider, func(), error) {
	provider, err := tracing.NewProvider(tracing.FromConfig(cfg.Tracing, service))
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatConfig, "Tracing shutdown failed", err)
		}
	}
	return provider, shutdown, nil
}

// newCollaborator returns the configured persistence collaborator and a
// close function for any store it opened.
func newCollaborator(provider *tracing.Provider) (wizard.Collaborator, func(), error) {
	switch cfg.Submit.Mode {
	case config.SubmitModeLocal:
		db, err := sqlite.NewDB(cfg.Storage.Path, sqlite.WithTracer(provider.Tracer()))
		if err != nil {
			return nil, nil, fmt.Errorf("opening registration store: %w", err)
		}
		log.Info(log.CatSubmit, "Saving registrations locally", "path", db.Path())
		return submit.NewStoreCollaborator(db.RegistrationRepository()), func() { _ = db.Close() }, nil
	default:
		c := submit.NewHTTPCollaborator(cfg.Submit.Endpoint, cfg.Submit.Timeout, submit.WithTracer(provider.Tracer()))
		log.Info(log.CatSubmit, "Saving registrations remotely", "endpoint", c.Endpoint())
		return c, func() {}, nil
	}
}

// newCatalogStore loads the catalog and, when configured, watches the
// override file until ctx is done.
func newCatalogStore(ctx context.Context) (*catalog.Store, error) {
	store, err := catalog.NewStore(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if cfg.Catalog.Watch && store.Path() != "" {
		if err := store.Watch(ctx); err != nil {
			log.Warn(log.CatCatalog, "Catalog hot reload disabled", "error", err)
		}
	}
	return store, nil
}

// newWizard wires the wizard to the configured collaborator and catalog.
func newWizard(ctx context.Context, service string) (*wizard.Wizard, *catalog.Store, func(), error) {
	if err := config.ValidateSubmit(cfg.Submit); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.ValidateTracing(cfg.Tracing); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, shutdownTracing, err := newTracer(service)
	if err != nil {
		return nil, nil, nil, err
	}
	collab, closeCollab, err := newCollaborator(provider)
	if err != nil {
		shutdownTracing()
		return nil, nil, nil, err
	}
	store, err := newCatalogStore(ctx)
	if err != nil {
		closeCollab()
		shutdownTracing()
		return nil, nil, nil, err
	}

	w := wizard.New(collab, store.Contains, wizard.WithTracer(provider.Tracer()))
	cleanup := func() {
		store.Close()
		closeCollab()
		shutdownTracing()
	}
	return w, store, cleanup, nil
}

func runApp(_ *cobra.Command, _ []string) error {
	defer closeLogs()

	if err := config.ValidateUI(cfg.UI); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, store, cleanup, err := newWizard(ctx, "enrol")
	if err != nil {
		return err
	}
	defer cleanup()

	zone.NewGlobal()
	model := app.New(ctx, w, store, cfg)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if status := w.Submitter.Status(); status.State == wizard.StateSucceeded {
		fmt.Printf("%s (id %s)\n", status.Message, status.ID)
	}
	return nil
}

func closeLogs() {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
