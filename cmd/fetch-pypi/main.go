package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/curata-io/curata/internal/pypi"
)

func main() {
	var (
		listPath = flag.String("list", "", "Package list file, one name per line (required)")
		outDir   = flag.String("out", "raw", "Output directory for raw metadata JSON")
		workers  = flag.Int("workers", 8, "Concurrent fetch workers")
	)
	flag.Parse()

	if *listPath == "" {
		log.Fatal("--list required")
	}

	names, err := readPackageList(*listPath)
	if err != nil {
		log.Fatal("Failed to read package list:", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}

	log.Printf("Fetching metadata for %d packages...", len(names))

	ctx := context.Background()
	client := &pypi.Client{}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	fetched, failed := 0, 0

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				if err := fetchOne(ctx, client, name, *outDir); err != nil {
					log.Printf("Failed to fetch %s: %v", name, err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				mu.Lock()
				fetched++
				if fetched%100 == 0 {
					log.Printf("Progress: %d fetched, %d failed", fetched, failed)
				}
				mu.Unlock()
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	log.Printf("Done: %d fetched, %d failed, output in %s", fetched, failed, *outDir)
}

func fetchOne(ctx context.Context, client *pypi.Client, name, outDir string) error {
	meta, err := client.ProjectMeta(ctx, name)
	if err != nil {
		return err
	}

	downloads, err := client.RecentDownloads(ctx, name)
	if err != nil {
		return err
	}
	meta.Downloads = downloads

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, name+".json"), data, 0644)
}

func readPackageList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
