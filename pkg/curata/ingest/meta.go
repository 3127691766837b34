package ingest

import (
	"fmt"
	"strings"

	"github.com/curata-io/curata/pkg/curata/internalerr"
)

// PackageMeta represents a package's registry metadata record as fetched
// from its distribution index.
type PackageMeta struct {
	Name        string            `json:"name"`
	Summary     string            `json:"summary"`
	Description string            `json:"long_description"`
	ContentType string            `json:"description_content_type"`
	Classifiers []string          `json:"classifiers"`
	ProjectURLs map[string]string `json:"project_urls"`
	HomePage    string            `json:"home_page"`
	Version     string            `json:"version"`
	Downloads   int64             `json:"downloads"`
}

// Validate checks if the record has required fields
func (m *PackageMeta) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: package name is required", internalerr.ErrInvalidInput)
	}

	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("%w: package description is required", internalerr.ErrInvalidInput)
	}

	if m.Downloads < 0 {
		return fmt.Errorf("%w: negative download count", internalerr.ErrInvalidInput)
	}

	return nil
}
