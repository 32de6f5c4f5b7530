package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/wraiths.yaml
var bundled []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog bundled with the binary. The bundled table is
// checked by tests, so a parse failure here is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(bundled)
		if err != nil {
			panic(fmt.Sprintf("catalog: bundled data: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Parse decodes a catalog YAML document and validates every entry.
func Parse(b []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return New(f.Wraiths)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return c, nil
}
