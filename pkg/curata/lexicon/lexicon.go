package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/curata-io/curata/pkg/curata/internalerr"
)

// Tags is the closed vocabulary of subject-domain tags. Every keyword
// trigger set and every classifier mapping must resolve into this set.
var Tags = []string{"web", "data", "ml", "math", "visualization", "cli", "ui", "dev"}

// Lexicon stores the static vocabulary backing tag classification:
// - Keywords: tag -> trigger terms found in readme text ("plot" -> visualization)
// - Classifiers: registry classifier fragment -> tags ("machine learning" -> ml)
//
// Design principles:
// - Immutable after load: shared read-only across concurrent classifications
// - Explainable: triggers are plain terms, hits can be reported verbatim
// - Curated: shipped defaults plus optional YAML overrides
type Lexicon struct {
	keywords    map[string][]string // tag -> trigger terms (lowercase)
	classifiers map[string][]string // classifier fragment (lowercase) -> tags
}

// Default returns the built-in lexicon covering the full tag vocabulary.
func Default() *Lexicon {
	lex := &Lexicon{
		keywords: map[string][]string{
			"web":           {"http", "web", "api", "rest"},
			"data":          {"data", "dataset", "csv", "json"},
			"ml":            {"machine learning", "neural", "model"},
			"math":          {"math", "algebra", "statistics"},
			"visualization": {"plot", "visualization", "chart"},
			"cli":           {"command line", "cli", "terminal"},
			"ui":            {"gui", "interface", "window"},
			"dev":           {"test", "testing", "pytest", "lint"},
		},
		classifiers: map[string][]string{
			"artificial intelligence": {"ml"},
			"machine learning":        {"ml"},
			"scientific":              {"math"},
			"visualization":           {"visualization"},
			"web":                     {"web"},
			"database":                {"data"},
		},
	}
	return lex
}

// LoadFromYAML loads a lexicon from a YAML file.
//
// Expected format:
//   keywords:
//     visualization: [plot, chart, graph]
//     web: [http, rest, api]
//   classifiers:
//     - match: "machine learning"
//       tags: [ml]
//     - match: scientific
//       tags: [math, data]
//
// Notes:
// - Terms and matches are case-insensitive; everything is lowercased on load.
// - Multi-word trigger terms are supported (e.g., "command line").
// - The result is validated; an inconsistent file is a configuration error.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Keywords    map[string][]string `yaml:"keywords"`
		Classifiers []struct {
			Match string   `yaml:"match"`
			Tags  []string `yaml:"tags"`
		} `yaml:"classifiers"`
	}

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	lex := &Lexicon{
		keywords:    make(map[string][]string, len(file.Keywords)),
		classifiers: make(map[string][]string, len(file.Classifiers)),
	}

	for tag, terms := range file.Keywords {
		normalized := make([]string, 0, len(terms))
		for _, term := range terms {
			normalized = append(normalized, strings.ToLower(strings.TrimSpace(term)))
		}
		lex.keywords[strings.ToLower(tag)] = normalized
	}

	for _, entry := range file.Classifiers {
		match := strings.ToLower(strings.TrimSpace(entry.Match))
		tags := make([]string, 0, len(entry.Tags))
		for _, tag := range entry.Tags {
			tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
		}
		lex.classifiers[match] = tags
	}

	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}

	return lex, nil
}

// Validate checks internal consistency. It is called once at load time;
// per-package classification never reports configuration problems.
func (l *Lexicon) Validate() error {
	known := make(map[string]struct{}, len(Tags))
	for _, tag := range Tags {
		known[tag] = struct{}{}
	}

	for tag, terms := range l.keywords {
		if _, ok := known[tag]; !ok {
			return fmt.Errorf("%w: keyword entry for unknown tag %q", internalerr.ErrInvalidConfig, tag)
		}
		if len(terms) == 0 {
			return fmt.Errorf("%w: tag %q has no trigger terms", internalerr.ErrInvalidConfig, tag)
		}
		for _, term := range terms {
			if term == "" {
				return fmt.Errorf("%w: tag %q has an empty trigger term", internalerr.ErrInvalidConfig, tag)
			}
		}
	}

	for match, tags := range l.classifiers {
		if match == "" {
			return fmt.Errorf("%w: empty classifier match", internalerr.ErrInvalidConfig)
		}
		if len(tags) == 0 {
			return fmt.Errorf("%w: classifier %q maps to no tags", internalerr.ErrInvalidConfig, match)
		}
		for _, tag := range tags {
			if _, ok := known[tag]; !ok {
				return fmt.Errorf("%w: classifier %q maps to unknown tag %q", internalerr.ErrInvalidConfig, match, tag)
			}
		}
	}

	return nil
}

// Keywords returns the trigger terms for a tag.
func (l *Lexicon) Keywords(tag string) []string {
	return l.keywords[tag]
}

// TaggedKeywords returns all tags that carry trigger terms, sorted.
func (l *Lexicon) TaggedKeywords() []string {
	tags := make([]string, 0, len(l.keywords))
	for tag := range l.keywords {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagsForClassifier returns the tags whose classifier match occurs inside
// the given registry classifier string (case-insensitive containment).
// Unknown classifiers yield nil, never an error.
func (l *Lexicon) TagsForClassifier(classifier string) []string {
	lower := strings.ToLower(classifier)

	var tags []string
	for match, mapped := range l.classifiers {
		if strings.Contains(lower, match) {
			tags = append(tags, mapped...)
		}
	}
	return tags
}
