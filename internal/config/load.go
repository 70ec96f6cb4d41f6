package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults registers every default with v so that keys missing from the
// config file still unmarshal to their default values.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cache_ttl", d.Server.CacheTTL)
	v.SetDefault("submit.mode", d.Submit.Mode)
	v.SetDefault("submit.endpoint", d.Submit.Endpoint)
	v.SetDefault("submit.timeout", d.Submit.Timeout)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.watch", d.Catalog.Watch)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
}

// Load unmarshals v into a Config. Tracing file output defaults to
// DefaultTracesFilePath when unset.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}
	return cfg, nil
}
