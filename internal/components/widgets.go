package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/i18n"
)

// ButtonVariant selects a button style.
type ButtonVariant string

const (
	Primary ButtonVariant = "primary"
	Ghost   ButtonVariant = "ghost"
)

// LinkButton renders an anchor styled as a button.
func LinkButton(label, href string, variant ButtonVariant, attrs ...g.Node) g.Node {
	return A(
		Class("btn btn-"+string(variant)),
		Href(href),
		g.Group(attrs),
		g.Text(label),
	)
}

// ActionButton renders a button element.
func ActionButton(label string, variant ButtonVariant, attrs ...g.Node) g.Node {
	return g.El("button",
		Class("btn btn-"+string(variant)),
		g.Group(attrs),
		g.Text(label),
	)
}

// Card is a bordered panel. glass gives it the frosted style.
func Card(glass bool, children ...g.Node) g.Node {
	cls := "card"
	if glass {
		cls += " card-glass"
	}
	return Div(Class(cls), g.Group(children))
}

// Tooltip attaches a hint to child.
func Tooltip(text string, child g.Node) g.Node {
	return Span(
		Class("tooltip"),
		g.Attr("data-tip", text),
		g.Attr("aria-label", text),
		child,
	)
}

// Notification is a dismissable popup. HTMX swaps it into #notifications.
func Notification(c Context, key string, ok bool) g.Node {
	kind := "success"
	if !ok {
		kind = "error"
	}
	return Div(
		Class("notification notification-"+kind),
		g.Attr("role", "status"),
		P(g.Text(c.T(key))),
		g.El("button",
			Class("notification-close"),
			g.Attr("type", "button"),
			g.Attr("aria-label", c.T("notification.dismiss")),
			g.Attr("onclick", "this.parentElement.remove()"),
			g.Text("×"),
		),
	)
}

// LanguageSelector links to /lang/<code> for every supported language.
func LanguageSelector(c Context, langs []i18n.Language) g.Node {
	return Tooltip(c.T("tooltip.language"),
		Nav(
			Class("language-selector"),
			g.Attr("aria-label", c.T("language.label")),
			Ul(g.Group(g.Map(langs, func(l i18n.Language) g.Node {
				return Li(A(
					Href("/lang/"+l.Code),
					g.Attr("hreflang", l.Code),
					g.If(l.Code == c.Lang, g.Attr("aria-current", "true")),
					g.If(l.RTL, g.Attr("dir", "rtl")),
					g.Text(l.Name),
				))
			}))),
		),
	)
}

// Event marks an element whose clicks are beaconed to /api/metrics/<name>.
func Event(name string) g.Node {
	return g.Attr("data-event", name)
}
