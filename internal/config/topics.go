package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aiwire/internal/models"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var defaultTopicsYAML []byte

// Catalog is the static list of topics to search and the keywords an
// article must mention to be kept.
type Catalog struct {
	Topics   []models.Topic `yaml:"topics"`
	Keywords []string       `yaml:"keywords"`
}

func DefaultTopicsPath() string {
	return filepath.Join(xdg.ConfigHome, "aiwire", "topics.yaml")
}

// DefaultCatalog returns the embedded topic and keyword lists
func DefaultCatalog() (*Catalog, error) {
	catalog, err := parseCatalog(defaultTopicsYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded topics: %w", err)
	}
	return catalog, nil
}

// LoadCatalog reads the catalog from path. An empty path falls back to the
// user config directory, and a missing file there falls back to the
// embedded defaults. A path that was asked for explicitly must exist.
func LoadCatalog(path string) (*Catalog, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultTopicsPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultCatalog()
		}
		return nil, fmt.Errorf("reading topics: %w", err)
	}

	catalog, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parsing topics %s: %w", path, err)
	}

	// keywords are optional in an override file
	if len(catalog.Keywords) == 0 {
		defaults, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		catalog.Keywords = defaults.Keywords
	}
	return catalog, nil
}

func parseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	if err := validate(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func validate(catalog *Catalog) error {
	if len(catalog.Topics) == 0 {
		return errors.New("at least one topic is required")
	}

	seen := make(map[string]bool, len(catalog.Topics))
	for i, topic := range catalog.Topics {
		name := strings.TrimSpace(topic.Name)
		if name == "" {
			return fmt.Errorf("topic %d: name is required", i)
		}
		if seen[strings.ToLower(name)] {
			return fmt.Errorf("topic %q: duplicate name", name)
		}
		seen[strings.ToLower(name)] = true

		hasVariant := false
		for _, variant := range topic.QueryVariants {
			if strings.TrimSpace(variant) != "" {
				hasVariant = true
				break
			}
		}
		if !hasVariant {
			return fmt.Errorf("topic %q: at least one query variant is required", name)
		}
	}
	return nil
}
