package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderDefaults(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Cleaner == nil || comp.Chunker == nil || comp.Classifier == nil || comp.Selector == nil {
		t.Fatal("all components should be constructed with defaults")
	}
	if comp.Selector.MinDownloads != 500_000 {
		t.Errorf("MinDownloads = %d, want default 500000", comp.Selector.MinDownloads)
	}
}

func TestLoaderFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curata.yaml")

	content := `chunking:
  min_words: 100
  max_words: 300
  no_split_threshold: 500
selection:
  min_downloads: 1000
  min_readme_length: 50
workers: 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{ConfigPath: path}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Selector.MinDownloads != 1000 {
		t.Errorf("MinDownloads = %d, want 1000", comp.Selector.MinDownloads)
	}
	if comp.Selector.MinReadmeLength != 50 {
		t.Errorf("MinReadmeLength = %d, want 50", comp.Selector.MinReadmeLength)
	}
	if comp.Workers != 8 {
		t.Errorf("Workers = %d, want 8", comp.Workers)
	}
}

func TestLoaderBadChunkBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curata.yaml")

	content := `chunking:
  min_words: 400
  max_words: 300
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{ConfigPath: path}
	if _, err := loader.Load(); err == nil {
		t.Fatal("inverted chunk bounds should be a configuration error")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := Loader{ConfigPath: "/nonexistent/curata.yaml"}
	if _, err := loader.Load(); err == nil {
		t.Fatal("missing config file should error")
	}
}
