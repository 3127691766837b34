package config

import (
	"fmt"

	"github.com/curata-io/curata/pkg/curata/chunk"
	"github.com/curata-io/curata/pkg/curata/ingest"
	"github.com/curata-io/curata/pkg/curata/lexicon"
	"github.com/curata-io/curata/pkg/curata/selection"
	"github.com/curata-io/curata/pkg/curata/tag"
)

// Loader loads configuration files and constructs components
type Loader struct {
	ConfigPath string
}

// Components holds all constructed pipeline components
type Components struct {
	Cleaner    *ingest.Cleaner
	Chunker    *chunk.Chunker
	Classifier *tag.Classifier
	Selector   *selection.Selector
	Workers    int
}

// Load reads the configuration and returns initialized components.
// A missing config path yields the built-in defaults throughout.
func (l *Loader) Load() (*Components, error) {
	cfg := &Config{}
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	comp := &Components{
		Cleaner: ingest.NewCleaner(),
		Workers: cfg.Workers,
	}

	// Lexicon
	lex := lexicon.Default()
	if cfg.LexiconPath != "" {
		loaded, err := lexicon.LoadFromYAML(cfg.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}
	comp.Classifier = tag.NewClassifier(lex)

	// Chunker
	chunkCfg := chunk.DefaultConfig()
	if cfg.Chunking.MinWords > 0 {
		chunkCfg.MinWords = cfg.Chunking.MinWords
	}
	if cfg.Chunking.MaxWords > 0 {
		chunkCfg.MaxWords = cfg.Chunking.MaxWords
	}
	if cfg.Chunking.NoSplitThreshold > 0 {
		chunkCfg.NoSplitThreshold = cfg.Chunking.NoSplitThreshold
	}
	if cfg.Chunking.MergeSlack > 0 {
		chunkCfg.MergeSlack = cfg.Chunking.MergeSlack
	}
	chunker, err := chunk.New(chunkCfg)
	if err != nil {
		return nil, fmt.Errorf("chunking config: %w", err)
	}
	comp.Chunker = chunker

	// Selector
	selector := selection.NewSelector()
	if cfg.Selection.MinDownloads > 0 {
		selector.MinDownloads = cfg.Selection.MinDownloads
	}
	if cfg.Selection.MinReadmeLength > 0 {
		selector.MinReadmeLength = cfg.Selection.MinReadmeLength
	}
	comp.Selector = selector

	return comp, nil
}
