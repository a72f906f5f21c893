package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides: PORTFOLIO_SERVER__ADDR sets
// server.addr (double underscore separates levels).
const EnvPrefix = "PORTFOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyLegacyEnv(cfg)
	return cfg, nil
}

// applyLegacyEnv honours the plain variable names deployments already
// set (PORT, SMTP_*, TO_EMAIL, ADMIN_*).
func applyLegacyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	set := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	set(&cfg.SMTP.Host, "SMTP_HOST")
	set(&cfg.SMTP.Port, "SMTP_PORT")
	set(&cfg.SMTP.User, "SMTP_USER")
	set(&cfg.SMTP.Pass, "SMTP_PASS")
	set(&cfg.SMTP.To, "TO_EMAIL")
	set(&cfg.Admin.Username, "ADMIN_USERNAME")
	set(&cfg.Admin.Password, "ADMIN_PASSWORD")
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	if c.Metrics.Enabled && c.DBPath == "" {
		return fmt.Errorf("db_path is required when metrics are enabled")
	}
	if c.Metrics.Retention < 0 {
		return fmt.Errorf("metrics.retention must be non-negative")
	}
	if c.Layout.DefaultViewport <= 0 {
		return fmt.Errorf("layout.default_viewport must be positive")
	}
	for name, b := range map[string]struct{ lo, hi float64 }{
		"layout.heading": {c.Layout.Heading.WidthMin, c.Layout.Heading.WidthMax},
		"layout.padding": {c.Layout.Padding.WidthMin, c.Layout.Padding.WidthMax},
		"layout.width":   {c.Layout.Width.WidthMin, c.Layout.Width.WidthMax},
	} {
		if b.hi < b.lo {
			return fmt.Errorf("%s: width_max %v is below width_min %v", name, b.hi, b.lo)
		}
	}
	if c.Glitch.Interval <= 0 {
		return fmt.Errorf("glitch.interval must be positive")
	}
	if c.Glitch.MaxWidth <= 0 || c.Glitch.MaxHeight <= 0 {
		return fmt.Errorf("glitch.max_width and glitch.max_height must be positive")
	}
	return nil
}

// AdminEnabled reports whether dashboard credentials are configured.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Username != "" && c.Admin.Password != ""
}

// SMTPEnabled reports whether the contact form can send mail.
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.User != "" && c.SMTP.Pass != ""
}
