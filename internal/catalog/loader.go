package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/text/unicode/norm"
)

const (
	coversFile   = "covers.json"
	diseasesFile = "diseases.json"
	breedsFile   = "breeds.json"
)

// Load reads the three reference files from dir, validates them against
// their schemas and builds the immutable lookup maps. Reference data is
// loaded once at startup; the request path never touches the filesystem.
func Load(dir string, logger *logrus.Logger) (*Catalog, error) {
	var covers []CoverItem
	if err := loadFile(filepath.Join(dir, coversFile), coverSchema, &covers); err != nil {
		return nil, fmt.Errorf("failed to load coverage catalog: %w", err)
	}

	var diseases []Disease
	if err := loadFile(filepath.Join(dir, diseasesFile), diseaseSchema, &diseases); err != nil {
		return nil, fmt.Errorf("failed to load disease catalog: %w", err)
	}

	var breeds []Breed
	if err := loadFile(filepath.Join(dir, breedsFile), breedSchema, &breeds); err != nil {
		return nil, fmt.Errorf("failed to load breed catalog: %w", err)
	}

	c := &Catalog{
		covers:   make(map[int64]CoverItem, len(covers)),
		diseases: make(map[int64]Disease, len(diseases)),
		breeds:   make(map[string]Breed, len(breeds)),
	}
	for _, item := range covers {
		c.covers[item.ID] = item
	}
	for _, d := range diseases {
		c.diseases[d.ID] = d
	}
	for _, b := range breeds {
		// Breed names arrive from multiple sources; normalize so composed
		// and decomposed Hangul spellings hit the same entry.
		c.breeds[norm.NFC.String(b.Name)] = b
	}

	logger.WithFields(logrus.Fields{
		"covers":   len(c.covers),
		"diseases": len(c.diseases),
		"breeds":   len(c.breeds),
	}).Info("Reference catalogs loaded")

	return c, nil
}

func loadFile(path, schema string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", path, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%s does not match schema: %v", path, result.Errors())
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
