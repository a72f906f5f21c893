package components

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/models"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// HeroSection greets the visitor and renders the about text.
func HeroSection(c Context) g.Node {
	return Section(
		ID("hero"),
		Class("hero"),
		P(Class("hero-greeting"), g.Text(c.T("hero.greeting"))),
		H1(
			Class("hero-name glitch-text"),
			g.Attr("data-text", c.T("hero.name")),
			g.Attr("style", fmt.Sprintf("font-size:%.2fpx", c.HeadingSize()*2.5)),
			g.Text(c.T("hero.name")),
		),
		P(Class("hero-tagline"), g.Text(c.T("hero.tagline"))),
		Div(Class("hero-about"), g.Raw(c.Tr.HTML(c.Lang, "hero.about"))),
		LinkButton(c.T("hero.cta"), "#projects", Primary, Event("cta_click")),
	)
}

// SectionHeading renders a section title at the interpolated size and
// splits the body into reveal lines.
func SectionHeading(c Context, titleKey, bodyKey string) g.Node {
	size := c.HeadingSize()
	var lines []string
	if bodyKey != "" {
		lines = WrapLines(c.T(bodyKey), c.Width, size)
	}
	initial := reveal.Style(0, c.Class, c.RTL())
	return Div(
		Class("section-heading"),
		g.Attr("data-reveal", ""),
		g.Attr("data-font-size", strconv.FormatFloat(size, 'f', 2, 64)),
		H2(
			g.Attr("style", fmt.Sprintf("font-size:%.2fpx", size*1.6)),
			g.Text(c.T(titleKey)),
		),
		g.If(len(lines) > 0, P(
			Class("reveal-body"),
			g.Attr("style", fmt.Sprintf("font-size:%.2fpx", size)),
			g.Group(g.Map(lines, func(l string) g.Node {
				return Span(
					Class("reveal-line"),
					g.Attr("data-reveal-line", ""),
					g.Attr("style", initial),
					g.Text(l),
				)
			})),
		)),
	)
}

func projectCard(c Context, p models.Project) g.Node {
	return Card(true,
		g.Attr("id", "project-"+p.ID),
		Img(Src(p.Image), Alt(c.T(p.NameKey)), g.Attr("loading", "lazy")),
		H3(g.Text(c.T(p.NameKey))),
		P(g.Text(c.T(p.DescriptionKey))),
		P(Class("tech"),
			Span(Class("tech-label"), g.Text(c.T("project.tech"))),
			g.Text(" "+c.T(p.TechKey)),
		),
		g.If(p.Link != "", LinkButton(c.T("project.visit"), p.Link, Ghost,
			Target("_blank"), Rel("noopener noreferrer"),
			Event(models.EventName(p.ID, models.ActionClick)),
		)),
	)
}

// ProjectGallery lists the main projects.
func ProjectGallery(c Context, projects []models.Project) g.Node {
	return Section(
		ID("projects"),
		SectionHeading(c, "sections.projects.title", "sections.projects.body"),
		Div(Class("gallery"), g.Group(g.Map(projects, func(p models.Project) g.Node {
			return projectCard(c, p)
		}))),
	)
}

// EmbeddedCarousel shows one embedded project at a time. The prev and
// next controls fetch the neighbouring slide and wrap around.
func EmbeddedCarousel(c Context, projects []models.Project, index int) g.Node {
	return Section(
		ID("embedded"),
		SectionHeading(c, "sections.embedded.title", "sections.embedded.body"),
		CarouselSlide(c, projects, index),
	)
}

// CarouselSlide is the swappable part of the carousel.
func CarouselSlide(c Context, projects []models.Project, index int) g.Node {
	if len(projects) == 0 {
		return Div(ID("carousel"), Class("carousel"))
	}
	index = Wrap(index, len(projects))
	prev, next := Wrap(index-1, len(projects)), Wrap(index+1, len(projects))
	nav := func(label string, to int) g.Node {
		return ActionButton(label, Ghost,
			g.Attr("type", "button"),
			g.Attr("hx-get", "/sections/carousel?i="+strconv.Itoa(to)),
			g.Attr("hx-target", "#carousel"),
			g.Attr("hx-swap", "outerHTML"),
		)
	}
	return Div(
		ID("carousel"),
		Class("carousel"),
		g.Attr("data-index", strconv.Itoa(index)),
		nav(c.T("carousel.prev"), prev),
		projectCard(c, projects[index]),
		nav(c.T("carousel.next"), next),
		Ol(Class("carousel-dots"), g.Group(g.Map(indices(len(projects)), func(i int) g.Node {
			return Li(g.If(i == index, g.Attr("aria-current", "true")))
		}))),
	)
}

// Wrap maps i into [0, n).
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// EducationList renders degrees and certifications.
func EducationList(c Context, entries []models.Education) g.Node {
	return Section(
		ID("education"),
		SectionHeading(c, "sections.education.title", ""),
		Ul(Class("education"), g.Group(g.Map(entries, func(e models.Education) g.Node {
			return Li(
				g.Attr("id", "education-"+e.ID),
				g.If(e.Logo != "", Img(Src(e.Logo), Alt(c.T(e.InstitutionKey)), g.Attr("loading", "lazy"))),
				Div(
					H3(g.Text(c.T(e.DegreeKey))),
					P(Class("institution"), g.Text(c.T(e.InstitutionKey))),
					P(Class("major"), g.Text(c.T(e.MajorKey))),
					P(Class("date"), g.Text(c.T(e.DateKey))),
				),
			)
		}))),
	)
}

// demoHref maps a catalog demo to the endpoint that renders it.
func demoHref(demo string) string {
	switch demo {
	case "glitch":
		return "/playground/glitch.png"
	case "voronoi", "flow":
		return "/backgrounds/" + demo + ".png"
	case "interpolate":
		return "/api/playground/interpolate"
	case "reveal":
		return "/api/playground/reveal"
	}
	return ""
}

// Playground lists the catalog. Entries with a preview show a live
// render; entries with a demo link to it.
func Playground(c Context, entries []models.CatalogEntry) g.Node {
	return Section(
		ID("playground"),
		SectionHeading(c, "sections.playground.title", "sections.playground.body"),
		Div(Class("playground"), g.Group(g.Map(entries, func(e models.CatalogEntry) g.Node {
			href := demoHref(e.Demo)
			return Card(e.Demo == "",
				g.Attr("id", "demo-"+e.ID),
				g.If(e.Preview && href != "", Img(
					Src(href+"?w=320&h=180"),
					Alt(c.T("playground.preview_alt")),
					g.Attr("loading", "lazy"),
					g.If(e.Demo == "glitch", g.Attr("data-glitch-stream", "/playground/glitch/ws")),
				)),
				H3(g.Text(c.T(e.TitleKey))),
				P(g.Text(c.T(e.DescriptionKey))),
				g.If(href != "", LinkButton(c.T("playground.open"), href, Ghost,
					Target("_blank"),
					Event(models.EventName(e.ID, models.ActionOpen)),
				)),
			)
		}))),
	)
}

// SiteFooter closes the page with the contact call to action.
func SiteFooter(c Context, email string) g.Node {
	return Footer(
		ID("contact"),
		Class("site-footer"),
		H2(g.Text(c.T("footer.title"))),
		P(g.Text(c.T("footer.body"))),
		Div(
			Class("footer-actions"),
			g.If(email != "", LinkButton(c.T("footer.email"), "mailto:"+email, Primary,
				g.Attr("data-copy", email),
				Event("email_copy"),
				g.Attr("data-copied", c.T("notification.copied")),
			)),
			ActionButton(c.T("contact.title"), Ghost,
				g.Attr("type", "button"),
				g.Attr("hx-get", "/contact-form"),
				g.Attr("hx-target", "#contact-slot"),
			),
		),
		Div(ID("contact-slot")),
		Small(g.Text(c.T("footer.copyright"))),
	)
}

// ContactForm is the HTMX contact form fragment.
func ContactForm(c Context) g.Node {
	field := func(id, key string, input g.Node) g.Node {
		return Div(Class("field"), Label(For(id), g.Text(c.T(key))), input)
	}
	return Form(
		ID("contact-form"),
		Method("post"),
		Action("/contact"),
		g.Attr("hx-post", "/contact"),
		g.Attr("hx-target", "#notifications"),
		g.Attr("hx-swap", "beforeend"),
		H3(g.Text(c.T("contact.title"))),
		field("fullName", "contact.name", Input(ID("fullName"), Name("fullName"), Type("text"), Required())),
		field("email", "contact.email", Input(ID("email"), Name("email"), Type("email"), Required())),
		field("message", "contact.message", Textarea(ID("message"), Name("message"), Rows("5"), Required())),
		ActionButton(c.T("contact.send"), Primary, g.Attr("type", "submit")),
	)
}

// ContactResult is the popup shown after a submission.
func ContactResult(c Context, ok bool) g.Node {
	if ok {
		return Notification(c, "contact.success", true)
	}
	return Notification(c, "contact.error", false)
}
