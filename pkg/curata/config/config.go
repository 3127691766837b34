package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the curation run configuration
type Config struct {
	// LexiconPath points at a YAML lexicon override; empty means the
	// built-in lexicon.
	LexiconPath string `yaml:"lexicon"`

	Chunking  Chunking  `yaml:"chunking"`
	Selection Selection `yaml:"selection"`

	// Workers bounds batch concurrency; 0 means the default.
	Workers int `yaml:"workers"`
}

// Chunking holds the chunk size bounds
type Chunking struct {
	MinWords         int `yaml:"min_words"`
	MaxWords         int `yaml:"max_words"`
	NoSplitThreshold int `yaml:"no_split_threshold"`
	MergeSlack       int `yaml:"merge_slack"`
}

// Selection holds the eligibility gate thresholds
type Selection struct {
	MinDownloads    int64 `yaml:"min_downloads"`
	MinReadmeLength int   `yaml:"min_readme_length"`
}

// Load reads a Config from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
