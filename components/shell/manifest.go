package shell

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current section manifest format version.
	ManifestVersion = manifestVersionV1
)

//go:embed sections.yaml
var defaultManifestYAML []byte

// SectionManifest models the YAML document describing sidebar sections.
type SectionManifest struct {
	Version  string    `json:"version" yaml:"version"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
	Source   string    `json:"-" yaml:"-"`
}

// DefaultManifest decodes the embedded section manifest.
func DefaultManifest() (*SectionManifest, error) {
	doc, err := DecodeManifest(bytes.NewReader(defaultManifestYAML))
	if err != nil {
		return nil, err
	}
	doc.Source = "embedded"
	return doc, nil
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*SectionManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("shell: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("shell: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*SectionManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc SectionManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("shell: manifest is empty")
		}
		return nil, fmt.Errorf("shell: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	for i := range doc.Sections {
		doc.Sections[i].Labels = normalizeLocaleMap(doc.Sections[i].Labels)
	}
	return &doc, nil
}

// Validate ensures the manifest only names known sections, once each.
func (doc *SectionManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("shell: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[SectionID]struct{}, len(doc.Sections))
	for idx, section := range doc.Sections {
		if section.ID == "" {
			return fmt.Errorf("shell: manifest section at index %d is missing id", idx)
		}
		if _, ok := knownSectionSet[section.ID]; !ok {
			return fmt.Errorf("shell: manifest names unknown section %q", section.ID)
		}
		if section.Label == "" {
			return fmt.Errorf("shell: manifest section %s missing label", section.ID)
		}
		if _, exists := seen[section.ID]; exists {
			return fmt.Errorf("shell: manifest duplicates section %s", section.ID)
		}
		seen[section.ID] = struct{}{}
	}
	return nil
}

// Catalog is the resolved sidebar metadata for every known section.
type Catalog struct {
	sections map[SectionID]Section
}

// NewCatalog overlays the given manifests, in order, onto bare section
// entries. Sections never mentioned get their identifier as label.
func NewCatalog(docs ...*SectionManifest) Catalog {
	sections := make(map[SectionID]Section, len(knownSections))
	for _, id := range knownSections {
		sections[id] = Section{ID: id, Label: string(id)}
	}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, section := range doc.Sections {
			sections[section.ID] = section
		}
	}
	return Catalog{sections: sections}
}

// DefaultCatalog builds a catalog from the embedded manifest.
func DefaultCatalog() (Catalog, error) {
	doc, err := DefaultManifest()
	if err != nil {
		return Catalog{}, err
	}
	return NewCatalog(doc), nil
}

// Section returns metadata for id, or for the default section if id is unknown.
func (c Catalog) Section(id SectionID) Section {
	if section, ok := c.sections[id]; ok {
		return section
	}
	if section, ok := c.sections[DefaultSection]; ok {
		return section
	}
	return Section{ID: DefaultSection, Label: string(DefaultSection)}
}

// All returns sections in sidebar order.
func (c Catalog) All() []Section {
	out := make([]Section, 0, len(knownSections))
	for _, id := range knownSections {
		out = append(out, c.Section(id))
	}
	return out
}
