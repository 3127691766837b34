package chunk

import (
	"fmt"
	"strings"

	"github.com/curata-io/curata/pkg/curata/ingest"
	"github.com/curata-io/curata/pkg/curata/internalerr"
)

// Chunk is one contiguous, paragraph-aligned slice of a readme, sized
// for use as a retrieval unit.
type Chunk struct {
	Index     int    `json:"index"`
	Body      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// Config bounds chunk sizes in whitespace-delimited words.
type Config struct {
	// MinWords and MaxWords bound every chunk except, at most, the final
	// one of a document.
	MinWords int
	MaxWords int

	// NoSplitThreshold is the document size below which the text is
	// emitted as a single chunk regardless of the bounds.
	NoSplitThreshold int

	// MergeSlack is how far past MaxWords the previous chunk may grow
	// when absorbing an undersized final chunk.
	MergeSlack int
}

// DefaultConfig returns the standard chunking bounds.
func DefaultConfig() Config {
	return Config{
		MinWords:         200,
		MaxWords:         500,
		NoSplitThreshold: 800,
		MergeSlack:       100,
	}
}

// Chunker segments cleaned readme text into word-bounded chunks.
// Paragraphs are atomic: a chunk boundary always falls between
// paragraphs, never inside one.
type Chunker struct {
	cfg Config
}

// New creates a Chunker, validating the configuration.
func New(cfg Config) (*Chunker, error) {
	if cfg.MinWords <= 0 || cfg.MaxWords <= 0 || cfg.NoSplitThreshold <= 0 {
		return nil, fmt.Errorf("%w: chunk bounds must be positive", internalerr.ErrInvalidConfig)
	}
	if cfg.MinWords >= cfg.MaxWords {
		return nil, fmt.Errorf("%w: MinWords %d must be below MaxWords %d",
			internalerr.ErrInvalidConfig, cfg.MinWords, cfg.MaxWords)
	}
	if cfg.MergeSlack < 0 {
		return nil, fmt.Errorf("%w: MergeSlack must not be negative", internalerr.ErrInvalidConfig)
	}
	return &Chunker{cfg: cfg}, nil
}

// Split chunks a document given as an ordered paragraph sequence.
//
// Guarantees:
//   - joining the chunk bodies in order reproduces the paragraph sequence
//   - documents under NoSplitThreshold words come back as one chunk
//   - every chunk except possibly the last satisfies the word bounds;
//     at most one chunk per document, always the final one, may fall
//     outside them when no paragraph-aligned split can avoid it
//
// An empty document yields an empty chunk list, which is valid.
func (c *Chunker) Split(paragraphs []string) ([]Chunk, error) {
	for i, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: paragraph %d is empty", internalerr.ErrInvalidInput, i)
		}
	}

	if len(paragraphs) == 0 {
		return []Chunk{}, nil
	}

	if ingest.WordCount(paragraphs...) < c.cfg.NoSplitThreshold {
		body := strings.Join(paragraphs, "\n\n")
		return []Chunk{{Index: 0, Body: body, WordCount: ingest.WordCount(body)}}, nil
	}

	bodies := c.accumulate(paragraphs)
	bodies = c.mergeUndersizedTail(bodies)

	chunks := make([]Chunk, len(bodies))
	for i, body := range bodies {
		chunks[i] = Chunk{Index: i, Body: body, WordCount: ingest.WordCount(body)}
	}
	return chunks, nil
}

// accumulate greedily packs consecutive paragraphs into chunks. A chunk
// closes once it holds at least MinWords and the next paragraph would
// push it past MaxWords. A single paragraph longer than MaxWords becomes
// its own chunk unsplit.
func (c *Chunker) accumulate(paragraphs []string) []string {
	var bodies []string
	var current []string
	count := 0

	flush := func() {
		if len(current) > 0 {
			bodies = append(bodies, strings.Join(current, "\n\n"))
			current = nil
			count = 0
		}
	}

	for _, para := range paragraphs {
		paraWords := ingest.WordCount(para)

		if paraWords > c.cfg.MaxWords {
			flush()
			bodies = append(bodies, para)
			continue
		}

		if count+paraWords <= c.cfg.MaxWords {
			current = append(current, para)
			count += paraWords
			continue
		}

		if count >= c.cfg.MinWords {
			flush()
		}
		// Below MinWords the chunk keeps growing even past MaxWords;
		// an undersized interior chunk is worse than an oversized one.
		current = append(current, para)
		count += paraWords
	}
	flush()

	return bodies
}

// mergeUndersizedTail is the post-pass for the final chunk. If the tail
// came out under MinWords it is folded into the previous chunk, provided
// the merge stays within MergeSlack past MaxWords. Otherwise the tail is
// left as the document's single permitted out-of-bound chunk.
func (c *Chunker) mergeUndersizedTail(bodies []string) []string {
	if len(bodies) < 2 {
		return bodies
	}

	last := bodies[len(bodies)-1]
	if ingest.WordCount(last) >= c.cfg.MinWords {
		return bodies
	}

	prev := bodies[len(bodies)-2]
	merged := prev + "\n\n" + last
	if ingest.WordCount(merged) <= c.cfg.MaxWords+c.cfg.MergeSlack {
		bodies = bodies[:len(bodies)-1]
		bodies[len(bodies)-1] = merged
	}

	return bodies
}
