// Package catalog provides the read-only career, interest, learning-path and position-template data.
// The data ships embedded in the binary and is validated against a JSON Schema on first use.
// An override document (JSON or YAML) with the same shape can be loaded with LoadFile.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/careerpath/internal/schemas"
	"github.com/jonathan/careerpath/internal/types"
)

//go:embed data/*.json
var dataFiles embed.FS

const (
	documentFile = "data/catalog.json"
	schemaFile   = "data/catalog.schema.json"
)

// DefaultPathID is the career path shown when a requested id is unknown.
const DefaultPathID = "full-stack"

// document mirrors the on-disk layout of a catalog file.
type document struct {
	Interests         []string                          `json:"interests"`
	Careers           []types.Career                    `json:"careers"`
	CareerPaths       []types.CareerPath                `json:"careerPaths"`
	LearningPaths     map[string][]types.LearningModule `json:"learningPaths"`
	PositionTemplates []types.PositionTemplate          `json:"positionTemplates"`
}

// Catalog is an immutable set of catalog data. Accessors return copies.
type Catalog struct {
	interests []string
	careers   []types.Career
	paths     []types.CareerPath
	learning  map[string][]types.LearningModule
	templates []types.PositionTemplate
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog. It panics if the embedded data is invalid,
// which can only happen through a broken build.
func Default() *Catalog {
	defaultOnce.Do(func() {
		data, err := dataFiles.ReadFile(documentFile)
		if err != nil {
			defaultErr = fmt.Errorf("failed to read embedded catalog: %w", err)
			return
		}
		defaultCat, defaultErr = Parse(data)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", defaultErr))
	}
	return defaultCat
}

// Schema returns the JSON Schema every catalog document must satisfy.
func Schema() []byte {
	data, err := dataFiles.ReadFile(schemaFile)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog schema missing: %v", err))
	}
	return data
}

// LoadFile reads a catalog override from disk. Files ending in .yaml or .yml are
// converted to JSON before validation; anything else is treated as JSON.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
		}
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cat, nil
}

// Parse validates a JSON catalog document and builds a Catalog from it.
func Parse(data []byte) (*Catalog, error) {
	if err := schemas.ValidateBytes("catalog", Schema(), data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := doc.check(); err != nil {
		return nil, err
	}

	return &Catalog{
		interests: doc.Interests,
		careers:   doc.Careers,
		paths:     doc.CareerPaths,
		learning:  doc.LearningPaths,
		templates: doc.PositionTemplates,
	}, nil
}

// check enforces the cross-references a JSON Schema cannot express.
func (d *document) check() error {
	known := make(map[string]bool, len(d.Interests))
	for _, in := range d.Interests {
		known[in] = true
	}

	titles := make(map[string]bool, len(d.Careers))
	for _, c := range d.Careers {
		if titles[c.Title] {
			return fmt.Errorf("duplicate career title %q", c.Title)
		}
		titles[c.Title] = true
		for _, m := range c.MatchInterests {
			if !known[m] {
				return fmt.Errorf("career %q matches unknown interest %q", c.Title, m)
			}
		}
	}

	ids := make(map[string]bool, len(d.CareerPaths))
	for _, p := range d.CareerPaths {
		if ids[p.ID] {
			return fmt.Errorf("duplicate career path id %q", p.ID)
		}
		ids[p.ID] = true
	}
	if len(d.CareerPaths) > 0 && !ids[DefaultPathID] {
		return fmt.Errorf("career paths must include %q", DefaultPathID)
	}
	for id := range d.LearningPaths {
		if !ids[id] {
			return fmt.Errorf("learning path %q has no career path", id)
		}
	}

	positions := make(map[string]bool, len(d.PositionTemplates))
	for _, t := range d.PositionTemplates {
		if positions[t.Position] {
			return fmt.Errorf("duplicate position template %q", t.Position)
		}
		positions[t.Position] = true
	}
	return nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Interests returns the closed interest catalog in display order.
func (c *Catalog) Interests() []string {
	return append([]string(nil), c.interests...)
}

// IsInterest reports whether s is a catalog interest.
func (c *Catalog) IsInterest(s string) bool {
	for _, in := range c.interests {
		if in == s {
			return true
		}
	}
	return false
}

// Careers returns the onboarding career catalog in declaration order.
func (c *Catalog) Careers() []types.Career {
	out := make([]types.Career, len(c.careers))
	for i, career := range c.careers {
		out[i] = career.Clone()
	}
	return out
}

// Career looks up an onboarding career by title.
func (c *Catalog) Career(title string) (types.Career, bool) {
	for _, career := range c.careers {
		if career.Title == title {
			return career.Clone(), true
		}
	}
	return types.Career{}, false
}

// Paths returns the presentation career paths.
func (c *Catalog) Paths() []types.CareerPath {
	out := make([]types.CareerPath, len(c.paths))
	for i, p := range c.paths {
		out[i] = p.Clone()
	}
	return out
}

// Path looks up a career path by slug.
func (c *Catalog) Path(id string) (types.CareerPath, bool) {
	for _, p := range c.paths {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return types.CareerPath{}, false
}

// LearningModules returns the learning modules for a career path slug.
func (c *Catalog) LearningModules(id string) ([]types.LearningModule, bool) {
	mods, ok := c.learning[id]
	if !ok {
		return nil, false
	}
	out := make([]types.LearningModule, len(mods))
	for i, m := range mods {
		out[i] = m
		out[i].Topics = append([]string(nil), m.Topics...)
	}
	return out, true
}

// Templates returns the resume position templates in display order.
func (c *Catalog) Templates() []types.PositionTemplate {
	out := make([]types.PositionTemplate, len(c.templates))
	for i, t := range c.templates {
		out[i] = t
		out[i].Skills = append([]string(nil), t.Skills...)
	}
	return out
}

// Template looks up the position template for a role.
func (c *Catalog) Template(position string) (types.PositionTemplate, bool) {
	for _, t := range c.templates {
		if t.Position == position {
			out := t
			out.Skills = append([]string(nil), t.Skills...)
			return out, true
		}
	}
	return types.PositionTemplate{}, false
}
