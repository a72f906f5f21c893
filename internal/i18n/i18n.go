// Package i18n maps translation keys to localized text.
//
// Catalogs are YAML documents, one per language, whose nested maps are
// flattened into dotted keys ("hero.tagline"). Lookups fall back to the
// default language, then to the key itself.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// DefaultLanguage is the fallback when nothing better matches.
const DefaultLanguage = "en"

// Language describes a supported language for the selector.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	RTL  bool   `json:"rtl"`
}

// Translator holds every loaded catalog.
type Translator struct {
	fallback string
	codes    []string
	tags     []language.Tag
	catalogs map[string]map[string]string
	matcher  language.Matcher
	md       goldmark.Markdown
	html     sync.Map // lang + "\x00" + key -> string
}

// Default loads the embedded catalogs.
func Default() (*Translator, error) {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		return nil, err
	}
	return Load(sub, DefaultLanguage)
}

// Load reads every <lang>.yaml file at the root of fsys.
func Load(fsys fs.FS, fallback string) (*Translator, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}
	catalogs := make(map[string]map[string]string, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", f, err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", f, err)
		}
		flat := make(map[string]string)
		flatten("", doc, flat)
		catalogs[strings.TrimSuffix(path.Base(f), ".yaml")] = flat
	}
	return New(fallback, catalogs)
}

// New builds a Translator from flattened catalogs. The fallback
// language must be present.
func New(fallback string, catalogs map[string]map[string]string) (*Translator, error) {
	if _, ok := catalogs[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %q has no catalog", fallback)
	}

	codes := make([]string, 0, len(catalogs))
	for code := range catalogs {
		if _, err := language.Parse(code); err != nil {
			return nil, fmt.Errorf("catalog %q: %w", code, err)
		}
		codes = append(codes, code)
	}
	// The matcher treats the first tag as the default.
	slices.Sort(codes)
	codes = slices.DeleteFunc(codes, func(c string) bool { return c == fallback })
	codes = append([]string{fallback}, codes...)

	tags := make([]language.Tag, len(codes))
	for i, c := range codes {
		tags[i] = language.MustParse(c)
	}

	return &Translator{
		fallback: fallback,
		codes:    codes,
		tags:     tags,
		catalogs: catalogs,
		matcher:  language.NewMatcher(tags),
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(t)
	}
}

// Fallback returns the fallback language code.
func (t *Translator) Fallback() string { return t.fallback }

// Supported reports whether lang has a catalog.
func (t *Translator) Supported(lang string) bool {
	_, ok := t.catalogs[lang]
	return ok
}

// T returns the text for key in lang.
func (t *Translator) T(lang, key string) string {
	if s, ok := t.catalogs[lang][key]; ok {
		return s
	}
	if s, ok := t.catalogs[t.fallback][key]; ok {
		return s
	}
	return key
}

// HTML renders the markdown value of key in lang. Results are cached.
func (t *Translator) HTML(lang, key string) string {
	cacheKey := lang + "\x00" + key
	if v, ok := t.html.Load(cacheKey); ok {
		return v.(string)
	}
	var buf bytes.Buffer
	if err := t.md.Convert([]byte(t.T(lang, key)), &buf); err != nil {
		return t.T(lang, key)
	}
	out := buf.String()
	t.html.Store(cacheKey, out)
	return out
}

// Negotiate picks the page language: a supported cookie value wins,
// otherwise the best match for the Accept-Language header.
func (t *Translator) Negotiate(cookie, acceptLanguage string) string {
	if t.Supported(cookie) {
		return cookie
	}
	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(wanted...)
	if conf == language.No {
		return t.fallback
	}
	return t.codes[idx]
}

// Languages lists the supported languages, fallback first, each named
// in its own language.
func (t *Translator) Languages() []Language {
	out := make([]Language, len(t.codes))
	for i, code := range t.codes {
		tag := t.tags[i]
		name := display.Self.Name(tag)
		if name == "" {
			name = code
		}
		out[i] = Language{Code: code, Name: cases.Title(tag).String(name), RTL: IsRTL(code)}
	}
	return out
}

// Missing returns the keys that lang neither defines nor inherits from
// the fallback.
func (t *Translator) Missing(lang string, keys []string) []string {
	var out []string
	for _, k := range keys {
		if t.T(lang, k) == k {
			out = append(out, k)
		}
	}
	return out
}

var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Thaa": true, "Syrc": true,
	"Nkoo": true, "Adlm": true, "Rohg": true, "Mand": true,
}

// IsRTL reports whether lang is written right to left.
func IsRTL(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	script, _ := tag.Script()
	return rtlScripts[script.String()]
}

// Dir returns the HTML dir attribute value for lang.
func Dir(lang string) string {
	if IsRTL(lang) {
		return "rtl"
	}
	return "ltr"
}
