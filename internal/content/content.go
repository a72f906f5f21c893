// Package content holds the site's static records: projects, embedded
// projects, education history and the playground catalog.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/models"
)

//go:embed content.yaml
var defaultContent []byte

// PlaceholderImage is served for records whose image is missing.
const PlaceholderImage = "/static/img/placeholder.svg"

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("not found")

// Store serves read-only copies of the content lists.
type Store struct {
	c models.Content
}

// Default parses the embedded content.
func Default() (*Store, error) {
	return Parse(defaultContent)
}

// Parse decodes a YAML content document and validates it.
func Parse(data []byte) (*Store, error) {
	var c models.Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	s := &Store{c: c}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that ids are present and unique within each list.
func (s *Store) Validate() error {
	lists := []struct {
		name string
		ids  []string
	}{
		{"projects", projectIDs(s.c.Projects)},
		{"embedded_projects", projectIDs(s.c.EmbeddedProjects)},
		{"education", educationIDs(s.c.Education)},
		{"catalog", catalogIDs(s.c.Catalog)},
	}
	for _, l := range lists {
		seen := make(map[string]bool, len(l.ids))
		for i, id := range l.ids {
			if strings.TrimSpace(id) == "" {
				return fmt.Errorf("%s[%d]: empty id", l.name, i)
			}
			if seen[id] {
				return fmt.Errorf("%s: duplicate id %q", l.name, id)
			}
			seen[id] = true
		}
	}
	return nil
}

// ResolveImages replaces image paths that do not exist under static with
// PlaceholderImage. Paths are site-absolute and rooted at prefix, e.g.
// "/images/x.webp" with prefix "/images" is looked up as "x.webp".
func (s *Store) ResolveImages(static fs.FS, prefix string) {
	resolve := func(p string) string {
		rel, ok := strings.CutPrefix(p, strings.TrimSuffix(prefix, "/")+"/")
		if !ok || rel == "" {
			return PlaceholderImage
		}
		if _, err := fs.Stat(static, rel); err != nil {
			return PlaceholderImage
		}
		return p
	}
	for i := range s.c.Projects {
		s.c.Projects[i].Image = resolve(s.c.Projects[i].Image)
	}
	for i := range s.c.EmbeddedProjects {
		s.c.EmbeddedProjects[i].Image = resolve(s.c.EmbeddedProjects[i].Image)
	}
	for i := range s.c.Education {
		if s.c.Education[i].Logo != "" {
			s.c.Education[i].Logo = resolve(s.c.Education[i].Logo)
		}
	}
}

// Projects returns the main project gallery.
func (s *Store) Projects() []models.Project { return slices.Clone(s.c.Projects) }

// EmbeddedProjects returns the embedded-device carousel.
func (s *Store) EmbeddedProjects() []models.Project { return slices.Clone(s.c.EmbeddedProjects) }

// Education returns the education history.
func (s *Store) Education() []models.Education { return slices.Clone(s.c.Education) }

// Catalog returns the playground entries.
func (s *Store) Catalog() []models.CatalogEntry { return slices.Clone(s.c.Catalog) }

// ProjectByID looks in both project lists.
func (s *Store) ProjectByID(id string) (models.Project, error) {
	for _, list := range [][]models.Project{s.c.Projects, s.c.EmbeddedProjects} {
		for _, p := range list {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return models.Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// CatalogEntry returns the playground entry with the given id.
func (s *Store) CatalogEntry(id string) (models.CatalogEntry, error) {
	for _, e := range s.c.Catalog {
		if e.ID == id {
			return e, nil
		}
	}
	return models.CatalogEntry{}, fmt.Errorf("catalog entry %q: %w", id, ErrNotFound)
}

// KnownEvent reports whether event is "<record id>_<action>" for a record
// in any list and one of the counted actions.
func (s *Store) KnownEvent(event string) bool {
	i := strings.LastIndexByte(event, '_')
	if i <= 0 {
		return false
	}
	id, action := event[:i], event[i+1:]
	switch action {
	case models.ActionClick, models.ActionOpen, models.ActionView:
	default:
		return false
	}
	for _, ids := range [][]string{
		projectIDs(s.c.Projects),
		projectIDs(s.c.EmbeddedProjects),
		educationIDs(s.c.Education),
		catalogIDs(s.c.Catalog),
	} {
		if slices.Contains(ids, id) {
			return true
		}
	}
	return false
}

// Keys lists every translation key the content refers to.
func (s *Store) Keys() []string {
	var keys []string
	for _, list := range [][]models.Project{s.c.Projects, s.c.EmbeddedProjects} {
		for _, p := range list {
			keys = append(keys, p.NameKey, p.DescriptionKey, p.TechKey)
		}
	}
	for _, e := range s.c.Education {
		keys = append(keys, e.DegreeKey, e.InstitutionKey, e.MajorKey, e.DateKey)
	}
	for _, e := range s.c.Catalog {
		keys = append(keys, e.TitleKey, e.DescriptionKey)
	}
	return keys
}

func projectIDs(ps []models.Project) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func educationIDs(es []models.Education) []string {
	ids := make([]string, len(es))
	for i, e := range es {
		ids[i] = e.ID
	}
	return ids
}

func catalogIDs(es []models.CatalogEntry) []string {
	ids := make([]string, len(es))
	for i, e := range es {
		ids[i] = e.ID
	}
	return ids
}
