// Package config provides configuration types and defaults for enrol.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kalpruh/enrol/internal/log"
)

// Submit modes.
const (
	SubmitModeRemote = "remote" // POST to the registration service
	SubmitModeLocal  = "local"  // write straight to the local store
)

// Config holds all configuration options for enrol.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	Submit  SubmitConfig  `mapstructure:"submit"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Tracing TracingConfig `mapstructure:"tracing"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StorageConfig locates the registration database.
type StorageConfig struct {
	// Path is the SQLite database file.
	// Default: ~/.enrol/enrol.db
	Path string `mapstructure:"path"`
}

// ServerConfig holds the registration service options.
type ServerConfig struct {
	Addr string `mapstructure:"addr"` // listen address, default ":8080"

	// CacheTTL is how long fetched registrations stay cached. Zero disables
	// the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// SubmitConfig selects how the wizard persists a registration.
type SubmitConfig struct {
	Mode     string        `mapstructure:"mode"`     // "remote" (default) or "local"
	Endpoint string        `mapstructure:"endpoint"` // base URL of the service in remote mode
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CatalogConfig points at an optional algorithm catalog override.
type CatalogConfig struct {
	Path  string `mapstructure:"path"`  // empty uses the built-in catalog
	Watch bool   `mapstructure:"watch"` // reload Path when it changes
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/enrol/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/enrol/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "enrol", "traces", "traces.jsonl")
}

// DefaultStoragePath returns ~/.enrol/enrol.db, or enrol.db in the working
// directory if the home dir is unavailable.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "enrol.db"
	}
	return filepath.Join(home, ".enrol", "enrol.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Path: DefaultStoragePath(),
		},
		Server: ServerConfig{
			Addr:     ":8080",
			CacheTTL: 5 * time.Minute,
		},
		Submit: SubmitConfig{
			Mode:     SubmitModeRemote,
			Endpoint: "http://localhost:8080",
			Timeout:  10 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
		},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateStorage(c.Storage); err != nil {
		return err
	}
	if err := ValidateServer(c.Server); err != nil {
		return err
	}
	if err := ValidateSubmit(c.Submit); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return ValidateUI(c.UI)
}

// ValidateStorage checks storage configuration for errors.
func ValidateStorage(storage StorageConfig) error {
	if storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	return nil
}

// ValidateServer checks server configuration for errors.
func ValidateServer(server ServerConfig) error {
	if server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if server.CacheTTL < 0 {
		return fmt.Errorf("server.cache_ttl must not be negative, got %v", server.CacheTTL)
	}
	return nil
}

// ValidateSubmit checks submit configuration for errors.
func ValidateSubmit(submit SubmitConfig) error {
	switch submit.Mode {
	case SubmitModeRemote:
		if submit.Endpoint == "" {
			return fmt.Errorf("submit.endpoint is required when mode is %q", SubmitModeRemote)
		}
		u, err := url.Parse(submit.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("submit.endpoint must be an http(s) URL, got %q", submit.Endpoint)
		}
	case SubmitModeLocal:
	default:
		return fmt.Errorf("submit.mode must be %q or %q, got %q", SubmitModeRemote, SubmitModeLocal, submit.Mode)
	}
	if submit.Timeout < 0 {
		return fmt.Errorf("submit.timeout must not be negative, got %v", submit.Timeout)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# enrol configuration

# Where registrations are stored (used by 'enrol serve', 'enrol list' and local submit mode)
# storage:
#   path: ~/.enrol/enrol.db

# Registration service ('enrol serve')
server:
  addr: ":8080"
  cache_ttl: 5m        # How long fetched registrations stay cached (0 disables)

# How the wizard saves a registration
submit:
  mode: remote         # remote (POST to the service) or local (write to storage.path)
  endpoint: http://localhost:8080
  timeout: 10s

# Algorithm catalog
# catalog:
#   path: ./catalog.yaml  # Override the built-in image/sound processing lists
#   watch: true           # Reload the override when the file changes

# UI settings
ui:
  markdown_style: dark  # Summary rendering style: "dark" (default) or "light"

# Tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/enrol/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
