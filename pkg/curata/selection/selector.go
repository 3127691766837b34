package selection

import (
	"strings"

	"github.com/curata-io/curata/pkg/curata/ingest"
)

// Classifier fragments that mark a package as subject-domain relevant.
var domainClassifierKeywords = []string{
	"scientific",
	"engineering",
	"machine learning",
	"artificial intelligence",
	"statistics",
	"visualization",
	"data analysis",
	"numerical",
}

// Selector is the eligibility gate applied before any package enters the
// pipeline: enough recent downloads, a usable readme, and at least one
// subject-domain classifier. Once a package passes, the core engines
// never re-check eligibility.
type Selector struct {
	MinDownloads    int64
	MinReadmeLength int
}

// NewSelector creates a selector with the standard thresholds.
func NewSelector() *Selector {
	return &Selector{
		MinDownloads:    500_000,
		MinReadmeLength: 200,
	}
}

// Eligible reports whether the package should be curated, with a short
// reason when it should not.
func (s *Selector) Eligible(meta ingest.PackageMeta) (bool, string) {
	if len(meta.Classifiers) == 0 {
		return false, "no classifiers"
	}

	if !hasDomainClassifier(meta.Classifiers) {
		return false, "no subject-domain classifier"
	}

	if meta.Downloads < s.MinDownloads {
		return false, "below download threshold"
	}

	if len(meta.Description) < s.MinReadmeLength {
		return false, "readme too short"
	}

	return true, ""
}

func hasDomainClassifier(classifiers []string) bool {
	for _, cls := range classifiers {
		lower := strings.ToLower(cls)
		for _, kw := range domainClassifierKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
