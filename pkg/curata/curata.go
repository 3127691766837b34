package curata

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/curata-io/curata/pkg/curata/chunk"
	"github.com/curata-io/curata/pkg/curata/ingest"
	"github.com/curata-io/curata/pkg/curata/lexicon"
	"github.com/curata-io/curata/pkg/curata/selection"
	"github.com/curata-io/curata/pkg/curata/store"
	"github.com/curata-io/curata/pkg/curata/tag"
)

// LanguageTag is the fixed source-language label on every record.
const LanguageTag = "python"

// ErrNotEligible marks a package the selection gate rejected. It is a
// skip, not a failure: the batch keeps going.
var ErrNotEligible = errors.New("package not eligible")

// Curata is the curation engine facade: gate, clean, chunk, tag,
// assemble, persist. Chunking and tagging read the same immutable
// cleaned text and never share state, so packages are processed
// concurrently without locking.
type Curata struct {
	store      store.Store
	cleaner    *ingest.Cleaner
	chunker    *chunk.Chunker
	classifier *tag.Classifier
	selector   *selection.Selector

	mu      sync.Mutex // guards entropy
	entropy *ulid.MonotonicEntropy
}

// Options configures a Curata instance. Nil fields fall back to the
// standard components; Store is required.
type Options struct {
	Store      store.Store
	Cleaner    *ingest.Cleaner
	Chunker    *chunk.Chunker
	Classifier *tag.Classifier
	Selector   *selection.Selector
}

// New creates a Curata instance with the given dependencies.
func New(opts Options) (*Curata, error) {
	if opts.Store == nil {
		return nil, errors.New("curata: store is required")
	}

	c := &Curata{
		store:      opts.Store,
		cleaner:    opts.Cleaner,
		chunker:    opts.Chunker,
		classifier: opts.Classifier,
		selector:   opts.Selector,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}

	if c.cleaner == nil {
		c.cleaner = ingest.NewCleaner()
	}
	if c.chunker == nil {
		chunker, err := chunk.New(chunk.DefaultConfig())
		if err != nil {
			return nil, err
		}
		c.chunker = chunker
	}
	if c.classifier == nil {
		c.classifier = tag.NewClassifier(lexicon.Default())
	}
	if c.selector == nil {
		c.selector = selection.NewSelector()
	}

	return c, nil
}

// Close cleanly shuts down the instance
func (c *Curata) Close() error {
	return c.store.Close()
}

// Process curates one package: eligibility gate, readme cleanup,
// chunking and tagging over the cleaned text, record assembly, and
// upsert. The returned record is also persisted.
func (c *Curata) Process(ctx context.Context, meta ingest.PackageMeta) (store.Record, error) {
	if err := meta.Validate(); err != nil {
		return store.Record{}, err
	}

	if ok, reason := c.selector.Eligible(meta); !ok {
		return store.Record{}, fmt.Errorf("%w: %s", ErrNotEligible, reason)
	}

	paragraphs := c.cleaner.Clean(meta.Description)
	if len(paragraphs) == 0 {
		return store.Record{}, fmt.Errorf("%w: readme cleans to nothing", ErrNotEligible)
	}

	chunks, err := c.chunker.Split(paragraphs)
	if err != nil {
		return store.Record{}, fmt.Errorf("chunk %s: %w", meta.Name, err)
	}

	tags := c.classifier.Classify(meta.Classifiers, paragraphs)

	record := store.Record{
		ID:        c.newID(),
		Name:      meta.Name,
		Summary:   meta.Summary,
		Language:  LanguageTag,
		Tags:      tags,
		Chunks:    chunks,
		CreatedAt: time.Now().UTC(),
	}

	if err := c.store.UpsertRecord(ctx, record); err != nil {
		return store.Record{}, fmt.Errorf("store %s: %w", meta.Name, err)
	}

	return record, nil
}

// Failure records one package's terminal error in a batch.
type Failure struct {
	Name string
	Err  error
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Processed int
	Skipped   int
	Failures  []Failure
}

// ProcessBatch curates packages concurrently with the given number of
// workers. One package's failure never aborts the rest; errors are
// collected per package. Nothing is retried: inputs are immutable, so a
// failure is terminal for that package's record.
func (c *Curata) ProcessBatch(ctx context.Context, metas []ingest.PackageMeta, workers int) BatchResult {
	if workers <= 0 {
		workers = 4
	}

	jobs := make(chan ingest.PackageMeta)
	var mu sync.Mutex
	var result BatchResult
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for meta := range jobs {
				_, err := c.Process(ctx, meta)

				mu.Lock()
				switch {
				case err == nil:
					result.Processed++
				case errors.Is(err, ErrNotEligible):
					result.Skipped++
				default:
					result.Failures = append(result.Failures, Failure{Name: meta.Name, Err: err})
				}
				mu.Unlock()
			}
		}()
	}

	for _, meta := range metas {
		jobs <- meta
	}
	close(jobs)
	wg.Wait()

	return result
}

func (c *Curata) newID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ulid.MustNew(ulid.Now(), c.entropy).String()
}
