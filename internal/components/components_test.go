package components

import (
	"strconv"
	"strings"
	"testing"

	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/responsive"
)

var headingBounds = responsive.Bounds{WidthMin: 200, WidthMax: 1400, SizeMin: 16, SizeMax: 24}

func setupContext(t *testing.T, lang string, viewport float64) Context {
	t.Helper()
	tr, err := i18n.Default()
	if err != nil {
		t.Fatalf("i18n.Default: %v", err)
	}
	return NewContext(tr, lang, viewport, headingBounds, 800)
}

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b.String()
}

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    float64
		fontSize float64
		want     []string
	}{
		{"empty", "   ", 100, 10, nil},
		// 100 / (10*0.5) = 20 runes per line
		{"fits", "hello world", 100, 10, []string{"hello world"}},
		{"wraps", "aaaa bbbb cccc dddd eeee", 100, 10, []string{"aaaa bbbb cccc dddd", "eeee"}},
		{"long word", "supercalifragilisticexpialidocious x", 100, 10, []string{"supercalifragilisticexpialidocious", "x"}},
		{"zero width", "a b", 0, 10, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapLines(tt.text, tt.width, tt.fontSize)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("WrapLines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSectionHeadingInterpolatesSize(t *testing.T) {
	tests := []struct {
		viewport float64
		size     string
	}{
		{100, "16.00"},
		{800, "20.00"},
		{2000, "24.00"},
	}
	for _, tt := range tests {
		c := setupContext(t, "en", tt.viewport)
		html := render(t, SectionHeading(c, "sections.projects.title", "sections.projects.body"))
		if !strings.Contains(html, `data-font-size="`+tt.size+`"`) {
			t.Errorf("viewport %v: want font size %s in %s", tt.viewport, tt.size, html)
		}
		if !strings.Contains(html, "Selected projects") {
			t.Error("title not translated")
		}
		if strings.Count(html, "data-reveal-line") < 2 {
			t.Errorf("viewport %v: body not split into lines", tt.viewport)
		}
	}
}

func TestSectionHeadingMaskFollowsDirection(t *testing.T) {
	html := render(t, SectionHeading(setupContext(t, "ar", 1400), "sections.projects.title", "sections.projects.body"))
	if !strings.Contains(html, "to left") {
		t.Error("rtl heading should wipe to the left")
	}
	html = render(t, SectionHeading(setupContext(t, "en", 375), "sections.projects.title", "sections.projects.body"))
	if !strings.Contains(html, "radial-gradient") {
		t.Error("mobile heading should use the radial mask")
	}
}

func TestPageShell(t *testing.T) {
	c := setupContext(t, "ar", 1400)
	html := render(t, Page(c, Shell{Padding: 32, Width: 900}, c.Tr.Languages(), HeroSection(c)))
	if !strings.HasPrefix(strings.ToLower(html), "<!doctype html>") {
		t.Error("missing doctype")
	}
	for _, want := range []string{
		`lang="ar"`,
		`dir="rtl"`,
		"padding-inline:32.0px;max-width:900.0px",
		`href="/lang/es"`,
		`id="notifications"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page lacks %q", want)
		}
	}
}

func TestCarouselWraps(t *testing.T) {
	c := setupContext(t, "en", 1400)
	store, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	projects := store.EmbeddedProjects()
	last := len(projects) - 1

	html := render(t, CarouselSlide(c, projects, 0))
	if !strings.Contains(html, "/sections/carousel?i="+strconv.Itoa(last)) {
		t.Errorf("prev of the first slide should be the last:\n%s", html)
	}
	html = render(t, CarouselSlide(c, projects, -1))
	if !strings.Contains(html, `data-index="`+strconv.Itoa(last)+`"`) {
		t.Error("negative index should wrap to the last slide")
	}
	if got := render(t, CarouselSlide(c, nil, 3)); !strings.Contains(got, `id="carousel"`) {
		t.Error("empty carousel should still render its slot")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 3, 0}, {3, 3, 0}, {-1, 3, 2}, {-4, 3, 2}, {5, 0, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.i, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestPlaygroundLinksDemos(t *testing.T) {
	c := setupContext(t, "en", 1400)
	store, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	html := render(t, Playground(c, store.Catalog()))
	for _, want := range []string{
		"/playground/glitch.png?w=320",
		"/backgrounds/voronoi.png",
		"/api/playground/interpolate",
		`data-glitch-stream="/playground/glitch/ws"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("playground lacks %q", want)
		}
	}
}

func TestContactResult(t *testing.T) {
	c := setupContext(t, "es", 1400)
	ok := render(t, ContactResult(c, true))
	if !strings.Contains(ok, "notification-success") {
		t.Error("success popup missing")
	}
	fail := render(t, ContactResult(c, false))
	if !strings.Contains(fail, "notification-error") {
		t.Error("error popup missing")
	}
}

func TestAdminDashboardHandlesNilStats(t *testing.T) {
	c := setupContext(t, "en", 1400)
	html := render(t, AdminDashboard(c, Dashboard{}))
	if !strings.Contains(html, "Dashboard") {
		t.Error("dashboard title missing")
	}
}

func TestEventsNamespacedByRecordID(t *testing.T) {
	c := setupContext(t, "en", 1400)
	store, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}

	gallery := render(t, ProjectGallery(c, store.Projects()))
	for _, p := range store.Projects() {
		if p.Link == "" {
			continue
		}
		want := `data-event="` + p.ID + `_click"`
		if !strings.Contains(gallery, want) {
			t.Errorf("project %q: gallery lacks %s", p.ID, want)
		}
	}
	if strings.Count(gallery, `data-event="`) != strings.Count(gallery, "_click\"") {
		t.Error("gallery carries an event not namespaced by project")
	}

	playground := render(t, Playground(c, store.Catalog()))
	for _, e := range store.Catalog() {
		if demoHref(e.Demo) == "" {
			continue
		}
		if want := `data-event="` + e.ID + `_open"`; !strings.Contains(playground, want) {
			t.Errorf("catalog %q: playground lacks %s", e.ID, want)
		}
	}
}
