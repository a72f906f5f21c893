package i18n

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Zachkp/portfolio/internal/content"
)

func setupTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return tr
}

func TestLookupFallsBack(t *testing.T) {
	tr := setupTranslator(t)

	if got := tr.T("es", "nav.projects"); got != "Proyectos" {
		t.Errorf("T(es, nav.projects) = %q", got)
	}
	// ar has no hero.about; en does.
	if got, want := tr.T("ar", "hero.about"), tr.T("en", "hero.about"); got != want {
		t.Errorf("T(ar, hero.about) = %q, want english fallback", got)
	}
	if got := tr.T("en", "does.not.exist"); got != "does.not.exist" {
		t.Errorf("missing key = %q, want the key itself", got)
	}
	if got := tr.T("xx", "nav.contact"); got != "Contact" {
		t.Errorf("unknown language = %q, want fallback", got)
	}
}

func TestHTMLRendersMarkdown(t *testing.T) {
	tr := setupTranslator(t)
	html := tr.HTML("en", "hero.about")
	if !strings.Contains(html, "<strong>Muay Thai</strong>") || !strings.Contains(html, "<p>") {
		t.Errorf("HTML(en, hero.about) = %q", html)
	}
	if again := tr.HTML("en", "hero.about"); again != html {
		t.Error("cached HTML differs from first render")
	}
}

func TestNegotiate(t *testing.T) {
	tr := setupTranslator(t)
	tests := []struct {
		name, cookie, header, want string
	}{
		{"cookie wins", "ar", "es", "ar"},
		{"regional variant", "", "es-MX,es;q=0.9,en;q=0.5", "es"},
		{"quality order", "", "de;q=0.9,ar;q=0.8", "ar"},
		{"unsupported", "", "de-DE", "en"},
		{"garbage header", "", ";;;", "en"},
		{"unsupported cookie ignored", "de", "es", "es"},
		{"nothing", "", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Negotiate(tt.cookie, tt.header); got != tt.want {
				t.Errorf("Negotiate(%q, %q) = %q, want %q", tt.cookie, tt.header, got, tt.want)
			}
		})
	}
}

func TestIsRTL(t *testing.T) {
	for _, lang := range []string{"ar", "he", "fa", "ur"} {
		if !IsRTL(lang) {
			t.Errorf("IsRTL(%q) = false", lang)
		}
	}
	for _, lang := range []string{"en", "es", "ja", "not a tag"} {
		if IsRTL(lang) {
			t.Errorf("IsRTL(%q) = true", lang)
		}
	}
	if Dir("ar") != "rtl" || Dir("en") != "ltr" {
		t.Error("Dir mismatch")
	}
}

func TestLanguages(t *testing.T) {
	tr := setupTranslator(t)
	langs := tr.Languages()
	if len(langs) != 3 || langs[0].Code != "en" {
		t.Fatalf("Languages = %+v, want en first of three", langs)
	}
	byCode := map[string]Language{}
	for _, l := range langs {
		byCode[l.Code] = l
	}
	if byCode["en"].Name != "English" {
		t.Errorf("en name = %q", byCode["en"].Name)
	}
	if byCode["es"].Name != "Español" {
		t.Errorf("es name = %q", byCode["es"].Name)
	}
	if !byCode["ar"].RTL {
		t.Error("ar should be RTL")
	}
}

func TestFallbackHasEveryContentKey(t *testing.T) {
	tr := setupTranslator(t)
	store, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	if missing := tr.Missing(tr.Fallback(), store.Keys()); len(missing) > 0 {
		t.Errorf("fallback catalog lacks keys: %v", missing)
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{"fr.yaml": {Data: []byte("nav:\n  contact: Contact\n")}}
	if _, err := Load(fsys, "en"); err == nil {
		t.Error("expected error when the fallback catalog is missing")
	}
}

func TestLoadFlattensNestedKeys(t *testing.T) {
	fsys := fstest.MapFS{"en.yaml": {Data: []byte("a:\n  b:\n    c: deep\n  n: 3\n")}}
	tr, err := Load(fsys, "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tr.T("en", "a.b.c"); got != "deep" {
		t.Errorf("a.b.c = %q", got)
	}
	if got := tr.T("en", "a.n"); got != "3" {
		t.Errorf("a.n = %q", got)
	}
}
