package ingest

import (
	"strings"
	"testing"
)

func TestCleanRemovesBadgesAndImages(t *testing.T) {
	c := NewCleaner()

	raw := "[![Build](https://img.shields.io/badge/build-passing)](https://ci.example.com)\n\n" +
		"![logo](logo.png)\n\n" +
		"A plotting library."

	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if strings.Contains(joined, "shields.io") {
		t.Error("badge markup should be removed")
	}
	if strings.Contains(joined, "logo.png") {
		t.Error("image markup should be removed")
	}
	if !strings.Contains(joined, "A plotting library.") {
		t.Error("prose should survive")
	}
}

func TestCleanStripsHTML(t *testing.T) {
	c := NewCleaner()

	raw := "<p>A <b>fast</b> parser.</p>\n\nMore prose here."
	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if strings.Contains(joined, "<b>") || strings.Contains(joined, "<p>") {
		t.Error("HTML tags should be stripped")
	}
	if !strings.Contains(joined, "fast") {
		t.Error("text content of HTML should be kept")
	}
}

func TestCleanRemovesCodeBlocks(t *testing.T) {
	c := NewCleaner()

	raw := "Intro prose.\n\n```python\nimport plotkit\n```\n\nMore prose."
	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if strings.Contains(joined, "import plotkit") {
		t.Error("fenced code should be removed")
	}
	if !strings.Contains(joined, "Intro prose.") || !strings.Contains(joined, "More prose.") {
		t.Error("surrounding prose should be kept")
	}
}

func TestCleanDropsBlacklistedSections(t *testing.T) {
	c := NewCleaner()

	raw := "# Tool\n\nDoes useful things.\n\n## Installation\n\nRun the installer.\n\n## Overview\n\nKey concepts here.\n\n## License\n\nMIT"
	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if strings.Contains(joined, "Run the installer.") {
		t.Error("installation section should be dropped")
	}
	if strings.Contains(joined, "MIT") {
		t.Error("license section should be dropped")
	}
	if !strings.Contains(joined, "Key concepts here.") {
		t.Error("overview section should be kept")
	}
}

func TestCleanRemovesInstallCommands(t *testing.T) {
	c := NewCleaner()

	raw := "Get started:\n\npip install plotkit\nconda install plotkit\n\nThen import it."
	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if strings.Contains(joined, "pip install") || strings.Contains(joined, "conda install") {
		t.Error("install commands should be removed")
	}
}

func TestCleanRemovesLinkLists(t *testing.T) {
	c := NewCleaner()

	raw := "See also:\n- [docs](https://docs.example.com)\n- [api](https://api.example.com)\n- [blog](https://blog.example.com)\n- [chat](https://chat.example.com)\n\nProse continues."
	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if strings.Contains(joined, "docs.example.com") {
		t.Error("long link lists should be removed")
	}
	if !strings.Contains(joined, "Prose continues.") {
		t.Error("prose should be kept")
	}
}

func TestCleanKeepsShortLinkRuns(t *testing.T) {
	c := NewCleaner()

	raw := "Useful links:\n- [docs](https://docs.example.com)\n- [api](https://api.example.com)\n\nProse continues."
	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if !strings.Contains(joined, "docs.example.com") {
		t.Error("runs of fewer than 3 link bullets should be kept")
	}
}

func TestCleanTableRowsKeepFirstCell(t *testing.T) {
	c := NewCleaner()

	raw := "Options:\n\n| name | default | notes |\n| speed | 1 | fast |\n\nDone."
	paragraphs := c.Clean(raw)
	joined := strings.Join(paragraphs, "\n\n")

	if !strings.Contains(joined, "name") || !strings.Contains(joined, "speed") {
		t.Error("first table cells should be kept")
	}
	if strings.Contains(joined, "default") || strings.Contains(joined, "fast") {
		t.Error("remaining table cells should be dropped")
	}
}

func TestCleanAllMarkupYieldsNothing(t *testing.T) {
	c := NewCleaner()

	raw := "![badge](https://img.shields.io/badge/x)\n\n```\ncode only\n```"
	if paragraphs := c.Clean(raw); len(paragraphs) != 0 {
		t.Errorf("pure markup should clean to nothing, got %v", paragraphs)
	}
}

func TestSplitParagraphs(t *testing.T) {
	paragraphs := SplitParagraphs("one\n\n\n\ntwo\n\n   \n\nthree")
	if len(paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %v", len(paragraphs), paragraphs)
	}
}
