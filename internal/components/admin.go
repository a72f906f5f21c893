package components

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/metrics"
)

func plainPage(c Context, title string, body ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang(c.Lang),
			g.Attr("dir", i18n.Dir(c.Lang)),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("robots"), Content("noindex")),
				g.El("title", g.Text(title)),
				Link(Rel("stylesheet"), Href("/static/css/site.css")),
			),
			Body(Class("admin"), Main(g.Group(body))),
		),
	)
}

// AdminLogin is the dashboard sign-in page.
func AdminLogin(c Context, failed bool) g.Node {
	return plainPage(c, c.T("admin.login"),
		H1(g.Text(c.T("admin.login"))),
		g.If(failed, P(Class("error"), g.Attr("role", "alert"), g.Text(c.T("admin.invalid")))),
		Form(
			Method("post"),
			Action("/admin/login"),
			Label(For("username"), g.Text(c.T("admin.username"))),
			Input(ID("username"), Name("username"), Type("text"), Required(), g.Attr("autocomplete", "username")),
			Label(For("password"), g.Text(c.T("admin.password"))),
			Input(ID("password"), Name("password"), Type("password"), Required(), g.Attr("autocomplete", "current-password")),
			ActionButton(c.T("admin.submit"), Primary, g.Attr("type", "submit")),
		),
	)
}

// Dashboard is what the admin pages render.
type Dashboard struct {
	Stats       *metrics.Stats
	Messages    []mail.Message
	Undelivered int64
}

func stat(label string, v int64) g.Node {
	return Div(Class("stat"),
		Span(Class("stat-label"), g.Text(label)),
		Strong(g.Text(strconv.FormatInt(v, 10))),
	)
}

// AdminDashboard renders visitor statistics, counters and messages.
func AdminDashboard(c Context, d Dashboard) g.Node {
	s := d.Stats
	if s == nil {
		s = &metrics.Stats{}
	}
	return plainPage(c, c.T("admin.dashboard"),
		Header(
			H1(g.Text(c.T("admin.dashboard"))),
			A(Href("/admin/export/stats"), g.Text(c.T("admin.export"))),
			A(Href("/admin/logout"), g.Text(c.T("admin.logout"))),
		),
		Div(Class("stats"),
			stat(c.T("admin.total_visitors"), s.TotalVisitors),
			stat(c.T("admin.unique_visitors"), s.UniqueVisitors),
			stat(c.T("admin.today"), s.VisitorsToday),
			stat(c.T("admin.week"), s.VisitorsThisWeek),
			stat(c.T("admin.events"), s.TotalEvents),
			stat(c.T("admin.undelivered"), d.Undelivered),
		),
		H2(g.Text(c.T("admin.counters"))),
		Table(TBody(g.Group(g.Map(s.TopCounters, func(ct metrics.Counter) g.Node {
			return Tr(Td(g.Text(ct.Name)), Td(g.Text(strconv.FormatInt(ct.Value, 10))))
		})))),
		H2(g.Text(c.T("admin.recent"))),
		Table(TBody(g.Group(g.Map(s.RecentVisitors, func(v metrics.Visitor) g.Node {
			return Tr(
				Td(g.Text(v.Timestamp.Format(time.DateTime))),
				Td(Code(g.Text(v.HashedIP))),
				Td(g.Text(v.Path)),
				Td(g.Text(v.Lang)),
			)
		})))),
		H2(g.Text(c.T("admin.messages"))),
		Table(TBody(g.Group(g.Map(d.Messages, func(m mail.Message) g.Node {
			return Tr(
				g.If(!m.Delivered, Class("undelivered")),
				Td(g.Text(m.CreatedAt.Format(time.DateTime))),
				Td(g.Text(m.Name)),
				Td(A(Href("mailto:"+m.Email), g.Text(m.Email))),
				Td(g.Text(m.Body)),
			)
		})))),
	)
}

// AdminError is shown when the dashboard cannot load.
func AdminError(c Context) g.Node {
	return plainPage(c, c.T("admin.dashboard"), P(Class("error"), g.Text(c.T("admin.error"))))
}

// Privacy renders the privacy policy.
func Privacy(c Context) g.Node {
	return plainPage(c, c.T("privacy.title"),
		H1(g.Text(c.T("privacy.title"))),
		Div(g.Raw(c.Tr.HTML(c.Lang, "privacy.body"))),
		A(Href("/"), g.Text(c.T("hero.name"))),
	)
}
