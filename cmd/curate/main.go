package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/curata-io/curata/pkg/curata"
	"github.com/curata-io/curata/pkg/curata/config"
	"github.com/curata-io/curata/pkg/curata/ingest"
	"github.com/curata-io/curata/pkg/curata/store/sqlite"
)

func main() {
	var (
		rawDir     = flag.String("raw", "", "Directory of raw package metadata JSON (required)")
		dbPath     = flag.String("db", "", "Database path (required)")
		configPath = flag.String("config", "", "Configuration file (optional)")
	)
	flag.Parse()

	if *rawDir == "" {
		log.Fatal("--raw required")
	}
	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	// Load configuration components
	loader := config.Loader{ConfigPath: *configPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Open database
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	engine, err := curata.New(curata.Options{
		Store:      st,
		Cleaner:    components.Cleaner,
		Chunker:    components.Chunker,
		Classifier: components.Classifier,
		Selector:   components.Selector,
	})
	if err != nil {
		log.Fatal("Failed to create engine:", err)
	}

	metas, err := readRawDir(*rawDir)
	if err != nil {
		log.Fatal("Failed to read raw metadata:", err)
	}
	log.Printf("Curating %d packages...", len(metas))

	result := engine.ProcessBatch(ctx, metas, components.Workers)

	for _, failure := range result.Failures {
		log.Printf("Failed to curate %s: %v", failure.Name, failure.Err)
	}
	log.Printf("Done: %d curated, %d skipped, %d failed",
		result.Processed, result.Skipped, len(result.Failures))
}

func readRawDir(dir string) ([]ingest.PackageMeta, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var metas []ingest.PackageMeta
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var meta ingest.PackageMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			log.Printf("Skipping %s: %v", filepath.Base(path), err)
			continue
		}
		metas = append(metas, meta)
	}
	return metas, nil
}
