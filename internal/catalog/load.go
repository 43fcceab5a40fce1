package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/alphabet.json
var defaultPack []byte

// Load reads, schema-validates, and filters a content file.
func Load(path string, mode Mode) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(raw, mode)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the embedded alphabet pack.
func Default(mode Mode) (*Catalog, error) {
	return Parse(defaultPack, mode)
}

// Parse validates raw content bytes and returns the filtered catalog.
func Parse(raw []byte, mode Mode) (*Catalog, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c.Lessons = FilterLessons(c.Lessons, c.Locales, mode)
	if len(c.Lessons) == 0 {
		return nil, fmt.Errorf("no valid lessons after filtering")
	}
	return &c, nil
}
