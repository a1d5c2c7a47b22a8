package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/models"
)

// Load reads and decodes the catalog export at path. Both top-level keys are
// required; cards stay raw until the importer reaches them.
func Load(path string) (*models.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrParse, path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrParse, path, err)
	}

	if doc.Dict == nil {
		return nil, fmt.Errorf("%w: %s: missing dict object", ErrParse, path)
	}
	if doc.Collections == nil {
		return nil, fmt.Errorf("%w: %s: missing collections list", ErrParse, path)
	}

	return &doc, nil
}
