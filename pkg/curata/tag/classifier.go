package tag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/curata-io/curata/pkg/curata/ingest"
	"github.com/curata-io/curata/pkg/curata/lexicon"
)

// MinKeywordSupport is the number of distinct trigger terms that must
// appear in the text before a tag is accepted on keyword evidence alone.
// One incidental mention is not enough; multiple related terms are.
const MinKeywordSupport = 2

// KeywordHit records one trigger term found in the text. Count is the
// number of occurrences, kept for explainability; acceptance is decided
// on distinct terms, not occurrences.
type KeywordHit struct {
	Tag   string
	Term  string
	Count int
}

// Classifier derives a package's tag set by fusing two evidence sources:
// authoritative registry classifiers mapped through the lexicon, and
// keyword frequency over the readme text. The lexicon is read-only and
// shared; a single Classifier serves concurrent callers.
type Classifier struct {
	lex *lexicon.Lexicon
}

// NewClassifier creates a classifier backed by the given lexicon.
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}

// Classify returns the sorted union of metadata-derived and
// keyword-derived tags. An empty result is valid, not an error.
func (c *Classifier) Classify(classifiers []string, paragraphs []string) []string {
	tags := make(map[string]struct{})

	for _, tag := range c.fromClassifiers(classifiers) {
		tags[tag] = struct{}{}
	}
	for _, tag := range c.fromText(paragraphs) {
		tags[tag] = struct{}{}
	}

	result := make([]string, 0, len(tags))
	for tag := range tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// fromClassifiers maps registry classifier strings through the lexicon.
// Unknown classifiers are ignored.
func (c *Classifier) fromClassifiers(classifiers []string) []string {
	var tags []string
	for _, cls := range classifiers {
		tags = append(tags, c.lex.TagsForClassifier(cls)...)
	}
	return tags
}

// fromText returns the tags whose distinct matched trigger terms reach
// MinKeywordSupport.
func (c *Classifier) fromText(paragraphs []string) []string {
	var tags []string
	for _, hits := range c.KeywordHits(paragraphs) {
		if len(hits) >= MinKeywordSupport {
			tags = append(tags, hits[0].Tag)
		}
	}
	return tags
}

// KeywordHits scans the text for every tag's trigger terms and returns
// the hits grouped by tag. Matching is case-insensitive and word-boundary
// aligned: a term matches only as whole tokens, and multi-word terms must
// appear as a contiguous token run.
func (c *Classifier) KeywordHits(paragraphs []string) map[string][]KeywordHit {
	tokens := tokenizeAll(paragraphs)
	if len(tokens) == 0 {
		return nil
	}

	hits := make(map[string][]KeywordHit)
	for _, tag := range c.lex.TaggedKeywords() {
		for _, term := range c.lex.Keywords(tag) {
			phrase := ingest.Tokenize(term)
			if len(phrase) == 0 {
				continue
			}
			if n := countPhrase(tokens, phrase); n > 0 {
				hits[tag] = append(hits[tag], KeywordHit{Tag: tag, Term: term, Count: n})
			}
		}
	}
	return hits
}

func tokenizeAll(paragraphs []string) []string {
	var tokens []string
	for _, p := range paragraphs {
		tokens = append(tokens, ingest.Tokenize(p)...)
	}
	return tokens
}

// countPhrase counts contiguous occurrences of the phrase tokens inside
// the document tokens.
func countPhrase(tokens, phrase []string) int {
	if len(phrase) == 1 {
		n := 0
		for _, tok := range tokens {
			if tok == phrase[0] {
				n++
			}
		}
		return n
	}

	n := 0
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, want := range phrase {
			if tokens[i+j] != want {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}

// Describe renders a hit set for logging, one "tag: term(count)" entry
// per matched term, sorted for stable output.
func Describe(hits map[string][]KeywordHit) string {
	var parts []string
	for tag, tagHits := range hits {
		for _, h := range tagHits {
			parts = append(parts, fmt.Sprintf("%s: %s(%d)", tag, h.Term, h.Count))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
