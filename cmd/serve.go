package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/db"
	"github.com/Zachkp/portfolio/internal/handlers"
	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/metrics"
)

// cleanupEvery is how often old visitor rows are purged.
const cleanupEvery = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(os.Stderr, cfg.Log)
		slog.SetDefault(logger)
		gin.SetMode(cfg.Server.Mode)

		store, err := content.Default()
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
		store.ResolveImages(os.DirFS(cfg.Static.ImagesDir), "/images")

		tr, err := i18n.Default()
		if err != nil {
			return fmt.Errorf("loading translations: %w", err)
		}
		if missing := tr.Missing(tr.Fallback(), store.Keys()); len(missing) > 0 {
			logger.Warn("fallback language lacks content keys", "keys", missing)
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		deps := handlers.Deps{
			Content:    store,
			Translator: tr,
			DB:         database,
			Logger:     logger,
			Mailer: mail.New(database, mail.SMTP{
				Host: cfg.SMTP.Host,
				Port: cfg.SMTP.Port,
				User: cfg.SMTP.User,
				Pass: cfg.SMTP.Pass,
			}, cfg.SMTP.User, cfg.SMTP.To, logger),
		}
		if !cfg.SMTPEnabled() {
			logger.Warn("SMTP credentials not configured; contact messages are stored only")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Metrics.Enabled {
			deps.Sink = metrics.NewSink(database, logger)
			deps.Tracker = metrics.NewTracker(database, cfg.Metrics.Salt, logger)
			defer deps.Sink.Close()
			defer deps.Tracker.Close()
			go runCleanup(ctx, deps.Tracker, cfg.Metrics.Retention, logger)
			logger.Info("visitor tracking enabled with hashed IP addresses")
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           handlers.New(cfg, deps).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			logger.Info("portfolio starting", "version", Version, "addr", cfg.Server.Addr, "db", database.Path())
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		return shutdown(srv, cfg.Server)
	},
}

func shutdown(srv *http.Server, sc config.ServerConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// runCleanup purges expired visitor rows now and then once per
// cleanupEvery until ctx is done.
func runCleanup(ctx context.Context, t *metrics.Tracker, retention time.Duration, logger *slog.Logger) {
	if retention <= 0 {
		return
	}
	ticker := time.NewTicker(cleanupEvery)
	defer ticker.Stop()
	for {
		if _, err := t.Cleanup(ctx, retention); err != nil {
			logger.Warn("visitor cleanup", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
