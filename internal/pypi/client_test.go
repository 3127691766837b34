package pypi

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func stubClient(t *testing.T, wantPath string, status int) *Client {
	t.Helper()
	return &Client{
		BaseURL:  "https://pypi.test",
		StatsURL: "https://stats.test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if req.URL.Path != wantPath {
					t.Errorf("unexpected path %s, want %s", req.URL.Path, wantPath)
				}
				return &http.Response{
					StatusCode: status,
					Body:       http.NoBody,
					Header:     make(http.Header),
				}
			}),
		},
	}
}

func TestProjectMeta(t *testing.T) {
	client := &Client{
		BaseURL: "https://pypi.test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if req.URL.Path != "/pypi/plotkit/json" {
					t.Errorf("unexpected path: %s", req.URL.Path)
				}
				return &http.Response{
					StatusCode: 200,
					Body: &readCloser{strings.NewReader(`{
						"info": {
							"name": "plotkit",
							"summary": "Layered plotting",
							"description": "A plotting library.",
							"classifiers": ["Topic :: Scientific/Engineering :: Visualization"],
							"version": "1.2.3"
						}
					}`)},
					Header: make(http.Header),
				}
			}),
		},
	}

	meta, err := client.ProjectMeta(context.Background(), "plotkit")
	if err != nil {
		t.Fatalf("ProjectMeta: %v", err)
	}
	if meta.Name != "plotkit" || meta.Version != "1.2.3" {
		t.Errorf("unexpected meta: %+v", meta)
	}
	if len(meta.Classifiers) != 1 {
		t.Errorf("expected 1 classifier, got %v", meta.Classifiers)
	}
	if meta.Downloads != 0 {
		t.Errorf("Downloads should be left zero, got %d", meta.Downloads)
	}
}

func TestRecentDownloads(t *testing.T) {
	client := &Client{
		StatsURL: "https://stats.test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if req.URL.Path != "/api/packages/plotkit/recent" {
					t.Errorf("unexpected path: %s", req.URL.Path)
				}
				return &http.Response{
					StatusCode: 200,
					Body:       &readCloser{strings.NewReader(`{"data": {"last_month": 1200000}}`)},
					Header:     make(http.Header),
				}
			}),
		},
	}

	n, err := client.RecentDownloads(context.Background(), "plotkit")
	if err != nil {
		t.Fatalf("RecentDownloads: %v", err)
	}
	if n != 1_200_000 {
		t.Errorf("RecentDownloads = %d, want 1200000", n)
	}
}

func TestProjectMetaHTTPError(t *testing.T) {
	client := stubClient(t, "/pypi/missing/json", 404)

	if _, err := client.ProjectMeta(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for HTTP 404")
	}
}

type readCloser struct{ *strings.Reader }

func (readCloser) Close() error { return nil }
