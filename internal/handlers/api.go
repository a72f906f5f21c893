package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/models"
	"github.com/Zachkp/portfolio/internal/responsive"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// siteEvents are the client events not tied to a content record.
var siteEvents = map[string]bool{
	"cta_click":  true,
	"email_copy": true,
}

// countable reports whether a client-sent event may create a counter:
// "<record id>_<action>" for a known record, or a site event.
func (s *Server) countable(event string) bool {
	return siteEvents[event] || s.content.KnownEvent(event)
}

// recordEvent is fire-and-forget: it always answers 202, whether or not
// the counter is ever written. Unknown events are dropped.
func (s *Server) recordEvent(c *gin.Context) {
	if event := c.Param("event"); s.countable(event) {
		s.event(event, s.language(c))
	} else {
		s.logger.Debug("dropping unknown event", "event", event)
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// projectView is a project with its translation keys resolved.
type projectView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tech        string `json:"tech"`
	Image       string `json:"image"`
	Link        string `json:"link,omitempty"`
	Embedded    bool   `json:"embedded"`
}

func (s *Server) requestLang(c *gin.Context) string {
	if l := c.Query("lang"); l != "" && s.tr.Supported(l) {
		return l
	}
	return s.language(c)
}

func localize(tr *i18n.Translator, lang string, p models.Project, embedded bool) projectView {
	return projectView{
		ID:          p.ID,
		Name:        tr.T(lang, p.NameKey),
		Description: tr.T(lang, p.DescriptionKey),
		Tech:        tr.T(lang, p.TechKey),
		Image:       p.Image,
		Link:        p.Link,
		Embedded:    embedded,
	}
}

func (s *Server) listProjects(c *gin.Context) {
	lang := s.requestLang(c)
	out := []projectView{}
	for _, p := range s.content.Projects() {
		out = append(out, localize(s.tr, lang, p, false))
	}
	for _, p := range s.content.EmbeddedProjects() {
		out = append(out, localize(s.tr, lang, p, true))
	}
	c.JSON(http.StatusOK, gin.H{"lang": lang, "projects": out})
}

func (s *Server) getProject(c *gin.Context) {
	p, err := s.content.ProjectByID(c.Param("id"))
	if errors.Is(err, content.ErrNotFound) {
		respondError(c, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	embedded := true
	for _, q := range s.content.Projects() {
		if q.ID == p.ID {
			embedded = false
			break
		}
	}
	c.JSON(http.StatusOK, localize(s.tr, s.requestLang(c), p, embedded))
}

// interpolate exposes responsive.Interpolate. Bounds default to the
// heading bounds.
func (s *Server) interpolate(c *gin.Context) {
	def := s.cfg.Layout.Heading
	var (
		b   responsive.Bounds
		w   float64
		err error
	)
	fields := []struct {
		key string
		dst *float64
		def float64
	}{
		{"width", &w, s.cfg.Layout.DefaultViewport},
		{"width_min", &b.WidthMin, def.WidthMin},
		{"width_max", &b.WidthMax, def.WidthMax},
		{"size_min", &b.SizeMin, def.SizeMin},
		{"size_max", &b.SizeMax, def.SizeMax},
	}
	for _, f := range fields {
		if *f.dst, err = queryFloat(c, f.key, f.def); err != nil || !finite(*f.dst) {
			respondError(c, http.StatusBadRequest, "invalid "+f.key)
			return
		}
	}
	if b.WidthMax < b.WidthMin {
		respondError(c, http.StatusBadRequest, "width_max is below width_min")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"width":  w,
		"bounds": b,
		"size":   responsive.Interpolate(w, b),
		"ratio":  responsive.Ratio(w, b),
		"device": responsive.Classify(w),
	})
}

// revealLine computes the state of a single line from query values.
func (s *Server) revealLine(c *gin.Context) {
	vals := map[string]float64{}
	for key, def := range map[string]float64{
		"top":       0,
		"height":    0,
		"container": 0,
		"vw":        s.cfg.Layout.DefaultViewport,
	} {
		v, err := queryFloat(c, key, def)
		if err != nil || !finite(v) {
			respondError(c, http.StatusBadRequest, "invalid "+key)
			return
		}
		vals[key] = v
	}
	class := responsive.Classify(vals["vw"])
	lang := s.requestLang(c)
	g := reveal.Geometry{
		ContainerHeight: vals["container"],
		Lines:           []reveal.Line{{Top: vals["top"], Height: vals["height"]}},
	}
	c.JSON(http.StatusOK, gin.H{
		"device": class,
		"dir":    i18n.Dir(lang),
		"line":   reveal.Compute(g, class, i18n.IsRTL(lang))[0],
	})
}

type revealRequest struct {
	reveal.Geometry
	Viewport float64 `json:"viewport"`
	Lang     string  `json:"lang"`
}

const maxRevealLines = 500

// revealGeometry computes every line of a posted container snapshot.
// The page script throttles its calls to one per reveal interval.
func (s *Server) revealGeometry(c *gin.Context) {
	var req revealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid geometry: "+err.Error())
		return
	}
	if len(req.Lines) > maxRevealLines {
		respondError(c, http.StatusRequestEntityTooLarge, "too many lines")
		return
	}
	if req.Viewport <= 0 {
		req.Viewport = s.cfg.Layout.DefaultViewport
	}
	lang := req.Lang
	if !s.tr.Supported(lang) {
		lang = s.language(c)
	}
	class := responsive.Classify(req.Viewport)
	c.JSON(http.StatusOK, gin.H{
		"device": class,
		"lines":  reveal.Compute(req.Geometry, class, i18n.IsRTL(lang)),
	})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
