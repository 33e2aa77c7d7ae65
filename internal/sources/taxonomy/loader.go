package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// Loader reads an ordered taxonomy definition from a YAML file:
//
//	tags:
//	  - label: AI
//	    keywords: [ai, llm, gpt]
//	categories:
//	  - label: SEO
//	    keywords: [seo, ranking]
//
// Sequences keep their file order, which is the evaluation order of the rules.
type Loader struct {
	filePath string
}

// NewLoader creates a taxonomy loader for filePath
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.filePath }

// Load reads, parses and validates the taxonomy file.
// When the file has no categories section the built-in category rules are kept.
func (l *Loader) Load() (*domain.Taxonomy, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates raw taxonomy YAML.
func Parse(data []byte) (*domain.Taxonomy, error) {
	var tax domain.Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy yaml: %w", err)
	}

	if len(tax.Categories) == 0 {
		tax.Categories = domain.DefaultTaxonomy().Categories
	}

	if err := tax.Validate(); err != nil {
		return nil, fmt.Errorf("invalid taxonomy: %w", err)
	}

	return &tax, nil
}
