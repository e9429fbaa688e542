// Package content loads the site copy that ships with the binary.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// Site is the static copy rendered around the collaborator data.
type Site struct {
	Owner             string      `yaml:"owner"`
	SiteName          string      `yaml:"site_name"`
	BaseURL           string      `yaml:"base_url"`
	Title             string      `yaml:"title"`
	Description       string      `yaml:"description"`
	MetaDescription   string      `yaml:"meta_description"`
	GitHubUsername    string      `yaml:"github_username"`
	MediumUsername    string      `yaml:"medium_username"`
	FeaturedCount     int         `yaml:"featured_count"`
	Skills            []string    `yaml:"skills"`
	About             About       `yaml:"about"`
	ProjectCategories []string    `yaml:"project_categories"`
	SceneIcons        []SceneIcon `yaml:"scene_icons"`
}

// About holds the about-section copy.
type About struct {
	Paragraphs []string    `yaml:"paragraphs"`
	Stats      []Stat      `yaml:"stats"`
	Expertise  []Expertise `yaml:"expertise"`
	Education  []string    `yaml:"education"`
}

// Stat is one headline number in the about section.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Expertise groups skills under a category heading.
type Expertise struct {
	Category string   `yaml:"category"`
	Skills   []string `yaml:"skills"`
}

// SceneIcon names one sprite in the animated background.
type SceneIcon struct {
	Name string  `yaml:"name" json:"name"`
	Size float64 `yaml:"size" json:"size"`
}

// EncodeSceneIcons renders icons for the page-to-scene handoff.
func EncodeSceneIcons(icons []SceneIcon) (string, error) {
	if icons == nil {
		icons = []SceneIcon{}
	}
	raw, err := json.Marshal(icons)
	if err != nil {
		return "", fmt.Errorf("encode scene icons: %w", err)
	}
	return string(raw), nil
}

// DecodeSceneIcons parses icons written by EncodeSceneIcons. Entries without
// a name or a positive size are rejected.
func DecodeSceneIcons(raw string) ([]SceneIcon, error) {
	var icons []SceneIcon
	if err := json.Unmarshal([]byte(raw), &icons); err != nil {
		return nil, fmt.Errorf("decode scene icons: %w", err)
	}
	for i, icon := range icons {
		if icon.Name == "" || icon.Size <= 0 {
			return nil, fmt.Errorf("scene icon %d: name and positive size required", i)
		}
	}
	return icons, nil
}

// Default parses the embedded site document.
func Default() (Site, error) {
	return Parse(defaultSite)
}

// Parse decodes a site document, rejecting unknown keys.
func Parse(raw []byte) (Site, error) {
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return Site{}, fmt.Errorf("decode site content: %w", err)
	}
	site.normalize()
	if err := site.Validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}

// Validate reports missing required copy.
func (s Site) Validate() error {
	var errs []error
	if s.Owner == "" {
		errs = append(errs, errors.New("owner is required"))
	}
	if s.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	for i, icon := range s.SceneIcons {
		if icon.Name == "" {
			errs = append(errs, fmt.Errorf("scene_icons[%d]: name is required", i))
		}
		if icon.Size <= 0 {
			errs = append(errs, fmt.Errorf("scene_icons[%d]: size must be positive", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid site content: %w", err)
	}
	return nil
}

func (s *Site) normalize() {
	s.Owner = strings.TrimSpace(s.Owner)
	s.SiteName = strings.TrimSpace(s.SiteName)
	if s.SiteName == "" {
		s.SiteName = s.Owner
	}
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.MetaDescription = strings.TrimSpace(s.MetaDescription)
	s.GitHubUsername = strings.TrimSpace(s.GitHubUsername)
	s.MediumUsername = strings.TrimSpace(s.MediumUsername)
	if s.FeaturedCount <= 0 {
		s.FeaturedCount = 3
	}
	if len(s.ProjectCategories) == 0 {
		s.ProjectCategories = []string{"All"}
	}
}
