package models

// Project represents a portfolio project. Text fields hold translation
// keys, not display text.
type Project struct {
	ID             string `json:"id" yaml:"id"`
	NameKey        string `json:"name_key" yaml:"name_key"`
	DescriptionKey string `json:"description_key" yaml:"description_key"`
	TechKey        string `json:"tech_key" yaml:"tech_key"`
	Image          string `json:"image" yaml:"image"`
	Link           string `json:"link,omitempty" yaml:"link"`
}

// Education is one entry of the education history.
type Education struct {
	ID             string `json:"id" yaml:"id"`
	DegreeKey      string `json:"degree_key" yaml:"degree_key"`
	InstitutionKey string `json:"institution_key" yaml:"institution_key"`
	MajorKey       string `json:"major_key" yaml:"major_key"`
	DateKey        string `json:"date_key" yaml:"date_key"`
	Logo           string `json:"logo,omitempty" yaml:"logo"`
}

// CatalogEntry is a playground item. Demo names a live renderer, if any.
type CatalogEntry struct {
	ID             string `json:"id" yaml:"id"`
	TitleKey       string `json:"title_key" yaml:"title_key"`
	DescriptionKey string `json:"description_key" yaml:"description_key"`
	Demo           string `json:"demo,omitempty" yaml:"demo"`
	Preview        bool   `json:"preview" yaml:"preview"`
}

// Content is every static list the site renders.
type Content struct {
	Projects         []Project      `yaml:"projects"`
	EmbeddedProjects []Project      `yaml:"embedded_projects"`
	Education        []Education    `yaml:"education"`
	Catalog          []CatalogEntry `yaml:"catalog"`
}

// Actions counted per record. Event names are "<record id>_<action>".
const (
	ActionClick = "click"
	ActionOpen  = "open"
	ActionView  = "view"
)

// EventName namespaces an analytics action by record id.
func EventName(id, action string) string {
	return id + "_" + action
}
