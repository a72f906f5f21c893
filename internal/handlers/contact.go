package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/components"
	"github.com/Zachkp/portfolio/internal/mail"
)

// contactForm returns just the form, for HTMX.
func (s *Server) contactForm(c *gin.Context) {
	rc, _ := s.assemble(c)
	s.renderNode(c, http.StatusOK, components.ContactForm(rc))
}

// contactSubmit stores and forwards a message. HTMX only swaps 2xx
// responses, so failures are also answered with 200 and an error popup.
func (s *Server) contactSubmit(c *gin.Context) {
	rc, _ := s.assemble(c)
	if s.mailer == nil {
		s.renderNode(c, http.StatusOK, components.ContactResult(rc, false))
		return
	}

	msg := mail.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	}
	if _, err := s.mailer.Submit(c.Request.Context(), msg); err != nil {
		s.logger.Warn("contact form", "error", err)
		s.event("contact_error", rc.Lang)
		s.renderNode(c, http.StatusOK, components.ContactResult(rc, false))
		return
	}
	s.event("contact_sent", rc.Lang)
	s.renderNode(c, http.StatusOK, components.ContactResult(rc, true))
}
