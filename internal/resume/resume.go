// Package resume holds the static résumé record shown by scorecard and the
// exports derived from it.
package resume

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Resume is the complete résumé record. It is read-only once loaded.
type Resume struct {
	Name                 string          `yaml:"name" json:"name"`
	Title                string          `yaml:"title" json:"title"`
	Tagline              string          `yaml:"tagline" json:"tagline"`
	Contact              Contact         `yaml:"contact" json:"contact"`
	Summary              string          `yaml:"summary" json:"summary"`
	ImpactMetrics        []ImpactMetric  `yaml:"impact_metrics" json:"impactMetrics"`
	SkillCategories      []SkillCategory `yaml:"skill_categories" json:"skillCategories"`
	Experience           []Experience    `yaml:"experience" json:"experience"`
	LeadershipHighlights []string        `yaml:"leadership_highlights" json:"leadershipHighlights"`
	Projects             []Project       `yaml:"projects" json:"projects"`
	Education            Education       `yaml:"education" json:"education"`
	Tools                []string        `yaml:"tools" json:"tools"`
	Languages            []string        `yaml:"languages" json:"languages"`
	Badges               []Badge         `yaml:"badges,omitempty" json:"badges,omitempty"`
	LatestUpdates        []LatestUpdate  `yaml:"latest_updates,omitempty" json:"latestUpdates,omitempty"`
	EmergingSkills       []string        `yaml:"emerging_skills,omitempty" json:"emergingSkills,omitempty"`
}

type Contact struct {
	Location string `yaml:"location" json:"location"`
	Phone    string `yaml:"phone" json:"phone"`
	Email    string `yaml:"email" json:"email"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	Twitter  string `yaml:"twitter" json:"twitter"`
}

// Experience is one role. KeyOutcome is the one-line summary used on the
// "last innings" cards.
type Experience struct {
	Role       string   `yaml:"role" json:"role"`
	Company    string   `yaml:"company" json:"company"`
	Location   string   `yaml:"location" json:"location"`
	StartDate  string   `yaml:"start_date" json:"startDate"`
	EndDate    string   `yaml:"end_date" json:"endDate"`
	KeyOutcome string   `yaml:"key_outcome" json:"keyOutcome"`
	Bullets    []string `yaml:"bullets" json:"bullets"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle"`
	Description string   `yaml:"description" json:"description"`
	Metrics     []string `yaml:"metrics" json:"metrics"`
}

type ImpactMetric struct {
	Value       string `yaml:"value" json:"value"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Company     string `yaml:"company,omitempty" json:"company,omitempty"`
}

type SkillCategory struct {
	Name  string      `yaml:"name" json:"name"`
	Items []SkillItem `yaml:"items" json:"items"`
}

// SkillItem is a named skill. In YAML it may be written either as a plain
// string or as a mapping with use_case and example.
type SkillItem struct {
	Name    string `yaml:"name" json:"name"`
	UseCase string `yaml:"use_case,omitempty" json:"useCase,omitempty"`
	Example string `yaml:"example,omitempty" json:"example,omitempty"`
}

func (s *SkillItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Name = node.Value
		return nil
	}
	type plain SkillItem
	return node.Decode((*plain)(s))
}

type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Year        string `yaml:"year" json:"year"`
}

type Badge struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`
}

// UpdateKind classifies a LatestUpdate.
type UpdateKind string

const (
	UpdateAchievement UpdateKind = "achievement"
	UpdateRole        UpdateKind = "role"
	UpdateSkill       UpdateKind = "skill"
)

type LatestUpdate struct {
	Date string     `yaml:"date" json:"date"`
	Text string     `yaml:"text" json:"text"`
	Type UpdateKind `yaml:"type" json:"type"`
}

//go:embed default.yaml
var defaultYAML []byte

// Default returns a fresh copy of the built-in résumé.
func Default() *Resume {
	r, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("resume: embedded default is invalid: %v", err))
	}
	return r
}

// Load reads a résumé from a YAML file.
func Load(path string) (*Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a YAML résumé. Unknown fields are rejected.
func Parse(data []byte) (*Resume, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Resume
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ErrInvalid is returned when a résumé is missing required content.
var ErrInvalid = errors.New("invalid resume")

// Validate checks the fields every screen relies on.
func (r *Resume) Validate() error {
	var errs []error
	if r.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if r.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if len(r.Experience) == 0 {
		errs = append(errs, errors.New("at least one experience entry is required"))
	}
	for i, e := range r.Experience {
		if e.Role == "" || e.Company == "" {
			errs = append(errs, fmt.Errorf("experience[%d]: role and company are required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// FirstName returns the first word of Name.
func (r *Resume) FirstName() string {
	first, _, _ := strings.Cut(r.Name, " ")
	return first
}

// FindExperience returns the first role whose company contains substr.
func (r *Resume) FindExperience(substr string) (Experience, bool) {
	for _, e := range r.Experience {
		if strings.Contains(e.Company, substr) {
			return e, true
		}
	}
	return Experience{}, false
}
