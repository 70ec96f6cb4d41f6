package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// loadConfigFromYAML is a helper to load config from YAML string.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, SubmitModeRemote, cfg.Submit.Mode)
	require.Equal(t, 10*time.Second, cfg.Submit.Timeout)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.False(t, cfg.Tracing.Enabled)
	require.NotEmpty(t, cfg.Storage.Path)
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfigTemplate_LoadsToDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	d := Defaults()

	require.Equal(t, d.Storage, cfg.Storage)
	require.Equal(t, d.Server, cfg.Server)
	require.Equal(t, d.Submit, cfg.Submit)
	require.Equal(t, d.Catalog, cfg.Catalog)
	require.Equal(t, d.UI, cfg.UI)
	require.Equal(t, DefaultTracesFilePath(), cfg.Tracing.FilePath)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverridesAndDurations(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
storage:
  path: /tmp/reg.db
server:
  cache_ttl: 30s
submit:
  mode: local
  timeout: 2s
catalog:
  path: ./algos.yaml
  watch: true
`)
	require.Equal(t, "/tmp/reg.db", cfg.Storage.Path)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 30*time.Second, cfg.Server.CacheTTL)
	require.Equal(t, SubmitModeLocal, cfg.Submit.Mode)
	require.Equal(t, 2*time.Second, cfg.Submit.Timeout)
	require.Equal(t, "./algos.yaml", cfg.Catalog.Path)
	require.True(t, cfg.Catalog.Watch)
}

func TestValidateSubmit(t *testing.T) {
	tests := []struct {
		name    string
		submit  SubmitConfig
		wantErr string
	}{
		{name: "remote ok", submit: SubmitConfig{Mode: "remote", Endpoint: "https://api.example.com"}},
		{name: "local ignores endpoint", submit: SubmitConfig{Mode: "local"}},
		{name: "unknown mode", submit: SubmitConfig{Mode: "carrier-pigeon"}, wantErr: "submit.mode"},
		{name: "missing endpoint", submit: SubmitConfig{Mode: "remote"}, wantErr: "submit.endpoint is required"},
		{name: "non-http endpoint", submit: SubmitConfig{Mode: "remote", Endpoint: "ftp://x"}, wantErr: "http(s) URL"},
		{name: "negative timeout", submit: SubmitConfig{Mode: "local", Timeout: -time.Second}, wantErr: "submit.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmit(tt.submit)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateServerAndStorage(t *testing.T) {
	require.Error(t, ValidateStorage(StorageConfig{}))
	require.Error(t, ValidateServer(ServerConfig{}))
	require.Error(t, ValidateServer(ServerConfig{Addr: ":1", CacheTTL: -1}))
	require.NoError(t, ValidateServer(ServerConfig{Addr: ":1"}))
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 1}))
	require.Error(t, ValidateTracing(TracingConfig{SampleRate: 1.5}))
	require.Error(t, ValidateTracing(TracingConfig{Exporter: "jaeger"}))
	require.Error(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "file"}))
	require.Error(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp"}))
	require.NoError(t, ValidateTracing(TracingConfig{Enabled: false, Exporter: "file"}))
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{}))
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "light"}))
	require.Error(t, ValidateUI(UIConfig{MarkdownStyle: "neon"}))
}

func TestWriteDefaultConfig_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".enrol", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
