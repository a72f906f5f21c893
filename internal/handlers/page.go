package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/components"
	"github.com/Zachkp/portfolio/internal/models"
	"github.com/Zachkp/portfolio/internal/responsive"
)

const (
	langCookie = "lang"
	// vwCookie holds the width last measured by the page script, for
	// browsers that send no viewport client hint.
	vwCookie = "vw"
	// Viewport hints outside this range are ignored.
	minViewport = 1
	maxViewport = 10000
)

// viewportHint reads the client's layout width from the client hint
// headers, the vw query parameter or the vw cookie, falling back to def.
func viewportHint(r *http.Request, def float64) float64 {
	measured := ""
	if ck, err := r.Cookie(vwCookie); err == nil {
		measured = ck.Value
	}
	for _, v := range []string{
		r.Header.Get("Sec-CH-Viewport-Width"),
		r.Header.Get("Viewport-Width"),
		r.URL.Query().Get("vw"),
		measured,
	} {
		if v == "" {
			continue
		}
		w, err := strconv.ParseFloat(v, 64)
		if err == nil && w >= minViewport && w <= maxViewport {
			return w
		}
	}
	return def
}

// language resolves the request language from the cookie, then
// Accept-Language.
func (s *Server) language(c *gin.Context) string {
	cookie, _ := c.Cookie(langCookie)
	return s.tr.Negotiate(cookie, c.GetHeader("Accept-Language"))
}

// assemble computes the per-request render context and page geometry.
func (s *Server) assemble(c *gin.Context) (components.Context, components.Shell) {
	vw := viewportHint(c.Request, s.cfg.Layout.DefaultViewport)
	shell := components.Shell{
		Padding: responsive.Interpolate(vw, s.cfg.Layout.Padding),
		Width:   responsive.Interpolate(vw, s.cfg.Layout.Width),
	}
	c.Header("Accept-CH", "Sec-CH-Viewport-Width, Viewport-Width")
	c.Header("Vary", "Sec-CH-Viewport-Width, Viewport-Width, Accept-Language, Cookie")
	return components.NewContext(s.tr, s.language(c), vw, s.cfg.Layout.Heading, shell.Width), shell
}

func (s *Server) index(c *gin.Context) {
	rc, shell := s.assemble(c)
	s.event("page_view", rc.Lang)
	s.renderNode(c, http.StatusOK, components.Page(rc, shell, s.tr.Languages(),
		components.HeroSection(rc),
		components.ProjectGallery(rc, s.content.Projects()),
		components.EmbeddedCarousel(rc, s.content.EmbeddedProjects(), 0),
		components.EducationList(rc, s.content.Education()),
		components.Playground(rc, s.content.Catalog()),
		components.SiteFooter(rc, s.cfg.SMTP.To),
	))
}

// section serves one section as an HTMX fragment.
func (s *Server) section(c *gin.Context) {
	rc, _ := s.assemble(c)
	var n g.Node
	switch c.Param("name") {
	case "hero":
		n = components.HeroSection(rc)
	case "projects":
		n = components.ProjectGallery(rc, s.content.Projects())
	case "embedded":
		n = components.EmbeddedCarousel(rc, s.content.EmbeddedProjects(), queryInt(c, "i", 0))
	case "carousel":
		projects := s.content.EmbeddedProjects()
		i := queryInt(c, "i", 0)
		if len(projects) > 0 {
			s.event(models.EventName(projects[components.Wrap(i, len(projects))].ID, models.ActionView), rc.Lang)
		}
		n = components.CarouselSlide(rc, projects, i)
	case "education":
		n = components.EducationList(rc, s.content.Education())
	case "playground":
		n = components.Playground(rc, s.content.Catalog())
	case "footer":
		n = components.SiteFooter(rc, s.cfg.SMTP.To)
	default:
		respondError(c, http.StatusNotFound, "unknown section")
		return
	}
	s.renderNode(c, http.StatusOK, n)
}

// setLanguage stores the chosen language and sends the visitor back.
func (s *Server) setLanguage(c *gin.Context) {
	code := c.Param("code")
	if !s.tr.Supported(code) {
		respondError(c, http.StatusNotFound, "unsupported language")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(langCookie, code, 365*24*3600, "/", "", c.Request.TLS != nil, true)
	s.event("language_switch", code)
	c.Redirect(http.StatusFound, sameSiteReferer(c.Request))
}

// sameSiteReferer returns the referring path when it points at this
// host, "/" otherwise.
func sameSiteReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host || ref.Path == "" {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func queryFloat(c *gin.Context, key string, def float64) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}
