package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/i18n"
)

// Shell holds the interpolated page geometry.
type Shell struct {
	Padding float64
	Width   float64
}

// Style is the inline style of the main column.
func (s Shell) Style() string {
	return fmt.Sprintf("padding-inline:%.1fpx;max-width:%.1fpx;margin-inline:auto", s.Padding, s.Width)
}

// navSections are the in-page anchors shown in the header.
var navSections = []string{"projects", "embedded", "education", "playground", "contact"}

// Page wraps body in the document shell: head, header, main column and
// the notification area.
func Page(c Context, shell Shell, langs []i18n.Language, body ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang(c.Lang),
			g.Attr("dir", i18n.Dir(c.Lang)),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(g.Attr("http-equiv", "Accept-CH"), Content("Sec-CH-Viewport-Width, Viewport-Width")),
				Meta(Name("description"), Content(c.T("site.description"))),
				g.El("title", g.Text(c.T("site.title"))),
				Link(Rel("stylesheet"), Href("/static/css/site.css")),
				Script(Src("https://unpkg.com/htmx.org@2.0.4"), Defer()),
				Script(Src("/static/js/site.js"), Defer()),
				g.El("noscript", g.El("style", g.Raw("[data-reveal-line]{mask-image:none!important;-webkit-mask-image:none!important}"))),
			),
			Body(
				Class("device-"+string(c.Class)),
				g.Attr("data-viewport", fmt.Sprintf("%.0f", c.Viewport)),
				g.Attr("data-device", string(c.Class)),
				siteHeader(c, langs),
				Main(
					ID("main"),
					g.Attr("style", shell.Style()),
					g.Group(body),
				),
				Div(ID("notifications"), g.Attr("aria-live", "polite")),
			),
		),
	)
}

func siteHeader(c Context, langs []i18n.Language) g.Node {
	return Header(
		Class("site-header"),
		A(Class("brand"), Href("/"), g.Text(c.T("hero.name"))),
		Nav(
			Class("site-nav"),
			Ul(g.Group(g.Map(navSections, func(s string) g.Node {
				return Li(A(Href("#"+s), g.Text(c.T("nav."+s))))
			}))),
		),
		LanguageSelector(c, langs),
	)
}
