package config

import (
	"time"

	"github.com/Zachkp/portfolio/internal/responsive"
)

// Config is the top-level portfolio configuration, corresponding to
// portfolio.yml.
type Config struct {
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	DBPath  string        `yaml:"db_path" koanf:"db_path"`
	Static  StaticConfig  `yaml:"static" koanf:"static"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
	SMTP    SMTPConfig    `yaml:"smtp" koanf:"smtp"`
	Admin   AdminConfig   `yaml:"admin" koanf:"admin"`
	Metrics MetricsConfig `yaml:"metrics" koanf:"metrics"`
	Layout  LayoutConfig  `yaml:"layout" koanf:"layout"`
	Glitch  GlitchConfig  `yaml:"glitch" koanf:"glitch"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	Mode            string        `yaml:"mode" koanf:"mode"` // gin mode: debug, release, test
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// StaticConfig locates files served as-is.
type StaticConfig struct {
	Dir       string `yaml:"dir" koanf:"dir"`
	ImagesDir string `yaml:"images_dir" koanf:"images_dir"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`   // debug, info, warn, error
	Format string `yaml:"format" koanf:"format"` // text, json
}

// SMTPConfig is used by the contact form.
type SMTPConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port string `yaml:"port" koanf:"port"`
	User string `yaml:"user" koanf:"user"`
	Pass string `yaml:"pass" koanf:"pass"`
	To   string `yaml:"to" koanf:"to"`
}

// AdminConfig holds dashboard credentials.
type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
}

// MetricsConfig controls counters and visitor tracking.
type MetricsConfig struct {
	Enabled   bool          `yaml:"enabled" koanf:"enabled"`
	Retention time.Duration `yaml:"retention" koanf:"retention"`
	Salt      string        `yaml:"salt" koanf:"salt"`
}

// LayoutConfig holds the interpolation bounds used by the page assembler.
type LayoutConfig struct {
	DefaultViewport float64           `yaml:"default_viewport" koanf:"default_viewport"`
	Heading         responsive.Bounds `yaml:"heading" koanf:"heading"`
	Padding         responsive.Bounds `yaml:"padding" koanf:"padding"`
	Width           responsive.Bounds `yaml:"width" koanf:"width"`
}

// GlitchConfig tunes the letter-glitch stream.
type GlitchConfig struct {
	Interval  time.Duration `yaml:"interval" koanf:"interval"`
	Smooth    bool          `yaml:"smooth" koanf:"smooth"`
	MaxWidth  int           `yaml:"max_width" koanf:"max_width"`
	MaxHeight int           `yaml:"max_height" koanf:"max_height"`
}
