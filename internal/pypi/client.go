package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/curata-io/curata/pkg/curata/ingest"
)

// Default registry endpoints
const (
	DefaultBaseURL  = "https://pypi.org"
	DefaultStatsURL = "https://pypistats.org"
)

// Client fetches package metadata from the PyPI JSON API and recent
// download counts from pypistats.
type Client struct {
	BaseURL  string
	StatsURL string

	HTTPClient *http.Client
}

type projectResponse struct {
	Info struct {
		Name        string            `json:"name"`
		Summary     string            `json:"summary"`
		Description string            `json:"description"`
		ContentType string            `json:"description_content_type"`
		Classifiers []string          `json:"classifiers"`
		ProjectURLs map[string]string `json:"project_urls"`
		HomePage    string            `json:"home_page"`
		Version     string            `json:"version"`
	} `json:"info"`
}

type statsResponse struct {
	Data struct {
		LastMonth int64 `json:"last_month"`
	} `json:"data"`
}

// ProjectMeta fetches a package's registry metadata. The Downloads field
// is left zero; fill it with RecentDownloads when the eligibility gate
// needs it.
func (c *Client) ProjectMeta(ctx context.Context, name string) (ingest.PackageMeta, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL(), name)

	var payload projectResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return ingest.PackageMeta{}, fmt.Errorf("pypi %s: %w", name, err)
	}

	return ingest.PackageMeta{
		Name:        payload.Info.Name,
		Summary:     payload.Info.Summary,
		Description: payload.Info.Description,
		ContentType: payload.Info.ContentType,
		Classifiers: payload.Info.Classifiers,
		ProjectURLs: payload.Info.ProjectURLs,
		HomePage:    payload.Info.HomePage,
		Version:     payload.Info.Version,
	}, nil
}

// RecentDownloads fetches a package's download count for the last month.
func (c *Client) RecentDownloads(ctx context.Context, name string) (int64, error) {
	url := fmt.Sprintf("%s/api/packages/%s/recent", c.statsURL(), name)

	var payload statsResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return 0, fmt.Errorf("pypistats %s: %w", name, err)
	}

	return payload.Data.LastMonth, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c *Client) statsURL() string {
	if c.StatsURL != "" {
		return c.StatsURL
	}
	return DefaultStatsURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}
