package config

import (
	"time"

	"github.com/Zachkp/portfolio/internal/responsive"
)

// DefaultConfig returns the configuration used when no file or
// environment override is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		DBPath: "data/portfolio.db",
		Static: StaticConfig{
			Dir:       "static",
			ImagesDir: "images",
		},
		Log: LogConfig{Level: "info", Format: "text"},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Retention: 365 * 24 * time.Hour,
		},
		Layout: LayoutConfig{
			DefaultViewport: 1400,
			Heading:         responsive.Bounds{WidthMin: 200, WidthMax: 1400, SizeMin: 16, SizeMax: 24},
			Padding:         responsive.Bounds{WidthMin: 320, WidthMax: 1920, SizeMin: 16, SizeMax: 96},
			Width:           responsive.Bounds{WidthMin: 320, WidthMax: 1920, SizeMin: 300, SizeMax: 1200},
		},
		Glitch: GlitchConfig{
			Interval:  50 * time.Millisecond,
			Smooth:    true,
			MaxWidth:  1920,
			MaxHeight: 1080,
		},
	}
}
