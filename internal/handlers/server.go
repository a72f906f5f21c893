// Package handlers wires the portfolio's HTTP surface onto gin.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/db"
	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/metrics"
)

// Deps are the collaborators a Server renders from. Sink, Tracker and
// Mailer may be nil; the features they back are then skipped.
type Deps struct {
	Content    *content.Store
	Translator *i18n.Translator
	DB         *db.DB
	Sink       *metrics.Sink
	Tracker    *metrics.Tracker
	Mailer     *mail.Mailer
	Logger     *slog.Logger
}

// Server holds the handlers' shared state.
type Server struct {
	cfg        *config.Config
	content    *content.Store
	tr         *i18n.Translator
	db         *db.DB
	sink       *metrics.Sink
	tracker    *metrics.Tracker
	mailer     *mail.Mailer
	logger     *slog.Logger
	adminToken string
}

// New creates a Server. The admin session token is regenerated on
// every start, so restarting logs everyone out.
func New(cfg *config.Config, d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:        cfg,
		content:    d.Content,
		tr:         d.Translator,
		db:         d.DB,
		sink:       d.Sink,
		tracker:    d.Tracker,
		mailer:     d.Mailer,
		logger:     logger,
		adminToken: metrics.RandomToken(),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(s.visitorTracking())

	r.Static("/images", s.cfg.Static.ImagesDir)
	r.Static("/static", s.cfg.Static.Dir)

	// Pages and HTMX fragments
	r.GET("/", s.index)
	r.GET("/sections/:name", s.section)
	r.GET("/lang/:code", s.setLanguage)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.contactSubmit)
	r.GET("/privacy", s.privacy)

	// Visuals
	r.GET("/playground/glitch.png", s.glitchPNG)
	r.GET("/playground/glitch/ws", s.glitchStream)
	r.GET("/backgrounds/:file", s.background)

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.POST("/metrics/:event", s.recordEvent)
	api.GET("/projects", s.listProjects)
	api.GET("/projects/:id", s.getProject)
	api.GET("/playground/interpolate", s.interpolate)
	api.GET("/playground/reveal", s.revealLine)
	api.POST("/playground/reveal", s.revealGeometry)
	api.GET("/layout/ws", s.layoutStream)

	s.setupAdminRoutes(r)
	return r
}

func (s *Server) health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		status["db"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}

// renderNode writes a gomponents tree as HTML.
func (s *Server) renderNode(c *gin.Context, status int, n g.Node) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := n.Render(c.Writer); err != nil {
		s.logger.Error("rendering page", "path", c.Request.URL.Path, "error", err)
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// event bumps a counter when metrics are enabled.
func (s *Server) event(name, lang string) {
	if s.sink != nil {
		s.sink.Increment(name, lang)
	}
}
