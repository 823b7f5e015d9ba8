package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path, applies environment
// overrides, and returns a validated [Config]. It is a convenience wrapper
// around [LoadFromReader], [ApplyEnv], and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// environment overrides, and validates the result. Useful in tests where
// configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	// Start from the zero config, not [Default]: environment overrides must
	// see which fields the file left unset (PORT only implies the
	// streamable-http transport when no transport was configured).
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyEnv(cfg)
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides
// applied and validated. Used when the server starts without a config file,
// which is the normal deployment mode.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	ApplyEnv(cfg)
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays the environment variables the hosted service has always
// honoured: SUPABASE_URL, SUPABASE_KEY, and PORT. A set PORT implies the
// streamable-http transport on ":PORT" unless a transport was configured
// explicitly.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Supabase.URL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		cfg.Supabase.Key = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if cfg.Server.ListenAddr == "" {
			cfg.Server.ListenAddr = ":" + v
		}
		if cfg.Server.Transport == "" {
			cfg.Server.Transport = TransportStreamableHTTP
		}
	}
}

// applyDefaults fills the fields an empty or partial config leaves unset.
func applyDefaults(cfg *Config) {
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = TransportStdio
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Supabase.Table == "" {
		cfg.Supabase.Table = DefaultTable
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.Transport != "" && !cfg.Server.Transport.IsValid() {
		errs = append(errs, fmt.Errorf("server.transport %q is invalid; valid values: stdio, streamable-http", cfg.Server.Transport))
	}
	if cfg.Server.Transport == TransportStreamableHTTP && cfg.Server.ListenAddr == "" {
		errs = append(errs, fmt.Errorf("server.listen_addr is required when transport is streamable-http"))
	}

	// Credential availability is checked at fetch time so that a server can
	// start (and report readiness failures) before credentials arrive, but a
	// half-configured supabase section is always a mistake worth flagging.
	if cfg.Supabase.URL != "" && cfg.Supabase.Key == "" {
		errs = append(errs, fmt.Errorf("supabase.url is set but supabase.key is empty"))
	}
	if cfg.Supabase.Key != "" && cfg.Supabase.URL == "" {
		errs = append(errs, fmt.Errorf("supabase.key is set but supabase.url is empty"))
	}

	if cfg.Postgres.DSN != "" && cfg.Supabase.URL != "" {
		slog.Warn("both postgres.dsn and supabase.url are configured; the direct Postgres backend takes precedence")
	}
	if cfg.Postgres.DSN == "" && cfg.Supabase.URL == "" {
		slog.Warn("no table store credentials configured; every data tool will report a configuration error")
	}

	return errors.Join(errs...)
}
