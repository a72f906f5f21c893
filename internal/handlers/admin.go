package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/components"
	"github.com/Zachkp/portfolio/internal/metrics"
)

const (
	adminCookie = "admin_token"
	recentLimit = 50
)

// untrackedPrefixes are never written to the visitor log.
var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin", "/favicon", "/privacy",
	"/api/", "/playground/", "/backgrounds/", "/sections/", "/lang/",
}

// visitorTracking records page views with hashed IPs. Requests with
// DNT: 1 are not recorded.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.tracker == nil || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		s.tracker.Track(c.ClientIP(), c.GetHeader("User-Agent"), path, s.language(c))
		c.Next()
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equal(token, s.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// setupAdminRoutes registers the dashboard. Without configured
// credentials the dashboard does not exist.
func (s *Server) setupAdminRoutes(r *gin.Engine) {
	if !s.cfg.AdminEnabled() {
		s.logger.Info("admin dashboard disabled: no credentials configured")
		return
	}

	r.GET("/admin/login", func(c *gin.Context) {
		rc, _ := s.assemble(c)
		s.renderNode(c, http.StatusOK, components.AdminLogin(rc, false))
	})
	r.POST("/admin/login", s.adminLogin)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())
	admin.GET("/dashboard", s.adminDashboard)
	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, stats)
	})
	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.tracker == nil {
			c.JSON(http.StatusOK, gin.H{"deleted": 0})
			return
		}
		n, err := s.tracker.Cleanup(c.Request.Context(), s.cfg.Metrics.Retention)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	})
}

func (s *Server) adminLogin(c *gin.Context) {
	ok := equal(c.PostForm("username"), s.cfg.Admin.Username) &&
		equal(c.PostForm("password"), s.cfg.Admin.Password)
	who := c.ClientIP()
	if s.tracker != nil {
		who = s.tracker.HashIP(who)
	}
	if !ok {
		s.logger.Warn("failed admin login", "client", who)
		rc, _ := s.assemble(c)
		s.renderNode(c, http.StatusUnauthorized, components.AdminLogin(rc, true))
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, s.adminToken, 24*3600, "/admin", "", c.Request.TLS != nil, true)
	s.logger.Info("admin login", "client", who)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) stats(c *gin.Context) (*metrics.Stats, error) {
	if s.tracker == nil {
		return &metrics.Stats{}, nil
	}
	return s.tracker.Stats(c.Request.Context())
}

func (s *Server) adminDashboard(c *gin.Context) {
	rc, _ := s.assemble(c)
	stats, err := s.stats(c)
	if err != nil {
		s.logger.Error("loading admin stats", "error", err)
		s.renderNode(c, http.StatusInternalServerError, components.AdminError(rc))
		return
	}
	d := components.Dashboard{Stats: stats}
	if s.mailer != nil {
		if d.Messages, err = s.mailer.Recent(c.Request.Context(), recentLimit); err != nil {
			s.logger.Warn("loading messages", "error", err)
		}
		if d.Undelivered, err = s.mailer.Undelivered(c.Request.Context()); err != nil {
			s.logger.Warn("counting undelivered", "error", err)
		}
	}
	s.renderNode(c, http.StatusOK, components.AdminDashboard(rc, d))
}

func (s *Server) privacy(c *gin.Context) {
	rc, _ := s.assemble(c)
	s.renderNode(c, http.StatusOK, components.Privacy(rc))
}
