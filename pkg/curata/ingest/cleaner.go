package ingest

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Cleaner strips readme markup down to plain prose paragraphs:
// badges, raw HTML, code blocks, tables, link lists, emojis, and
// boilerplate sections are removed, whitespace is normalized, and the
// remaining text is split on blank lines.
//
// The cleaner is stateless; one instance can serve concurrent callers.
type Cleaner struct{}

// NewCleaner creates a readme cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Section headers whose content carries no subject-domain signal.
var sectionBlacklist = []string{
	"installation",
	"install",
	"changelog",
	"contributing",
	"license",
	"authors",
	"credits",
	"tests",
	"release notes",
	"citation",
	"citing",
	"references",
	"acknowledgements",
	"contributors",
	"support",
	"getting help",
	"issues",
}

var (
	badgeLinkRe   = regexp.MustCompile(`\[!\[.*?\]\(.*?\)\]`)
	imageRe       = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	fencedCodeRe  = regexp.MustCompile("(?s)```.*?```")
	indentCodeRe  = regexp.MustCompile(`\n {4}.*`)
	mdReferenceRe = regexp.MustCompile(`^\s*\[[^\]]+\]:\s*https?://`)
	headingRe     = regexp.MustCompile(`\n#{1,6}\s+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
	emojiRe       = regexp.MustCompile(`[\x{1F300}-\x{1FAD6}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{2700}-\x{27BF}]+`)
)

var installCommandRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*pip\s+install\s+`),
	regexp.MustCompile(`(?i)^\s*conda\s+install\s+`),
	regexp.MustCompile(`(?i)^\s*apt(-get)?\s+install\s+`),
	regexp.MustCompile(`(?i)^\s*yum\s+install\s+`),
	regexp.MustCompile(`(?i)^\s*brew\s+install\s+`),
}

// Clean normalizes raw readme text and returns its paragraphs in order.
// An empty result is valid: a readme that is all markup cleans to nothing.
func (c *Cleaner) Clean(raw string) []string {
	text := raw

	text = removeBadges(text)
	text = stripHTML(text)
	text = removeCodeBlocks(text)

	text = normalizeTables(text)
	text = removeLinkLists(text)
	text = emojiRe.ReplaceAllString(text, "")

	text = dropLines(text, func(line string) bool {
		return mdReferenceRe.MatchString(line)
	})
	text = dropLines(text, func(line string) bool {
		stripped := strings.TrimSpace(line)
		return strings.HasPrefix(stripped, "http://") || strings.HasPrefix(stripped, "https://")
	})
	text = dropLines(text, isInstallCommand)

	text = dropBlacklistedSections(text)
	text = normalizeWhitespace(text)

	return SplitParagraphs(text)
}

// SplitParagraphs splits cleaned text on blank lines, trimming and
// dropping empty paragraphs.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

func removeBadges(text string) string {
	text = badgeLinkRe.ReplaceAllString(text, "")
	text = imageRe.ReplaceAllString(text, "")
	return dropLines(text, func(line string) bool {
		return strings.Contains(strings.ToLower(line), "badge")
	})
}

func removeCodeBlocks(text string) string {
	text = fencedCodeRe.ReplaceAllString(text, "")
	text = indentCodeRe.ReplaceAllString(text, "")
	return text
}

// normalizeTables keeps only the first cell of each markdown table row,
// which usually carries the row's subject.
func normalizeTables(text string) string {
	lines := strings.Split(text, "\n")
	output := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			first := ""
			for _, cell := range strings.Split(line, "|") {
				if cell = strings.TrimSpace(cell); cell != "" {
					first = cell
					break
				}
			}
			if first != "" {
				output = append(output, first)
			}
			continue
		}
		output = append(output, line)
	}

	return strings.Join(output, "\n")
}

// removeLinkLists drops runs of 3 or more consecutive link bullets.
// Shorter runs are kept: a couple of inline links is normal prose.
func removeLinkLists(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	var buffer []string

	flush := func() {
		if len(buffer) > 0 && len(buffer) < 3 {
			cleaned = append(cleaned, buffer...)
		}
		buffer = buffer[:0]
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-") && strings.Contains(line, "http") {
			buffer = append(buffer, line)
			continue
		}
		flush()
		cleaned = append(cleaned, line)
	}
	flush()

	return strings.Join(cleaned, "\n")
}

func isInstallCommand(line string) bool {
	for _, re := range installCommandRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// dropBlacklistedSections splits on markdown headings and drops sections
// whose header contains a blacklisted term.
func dropBlacklistedSections(text string) string {
	padded := "\n" + text
	parts := headingRe.Split(padded, -1)

	if len(parts) < 2 {
		return text
	}

	var kept []string
	// parts[0] is any preamble before the first heading
	if lead := strings.TrimSpace(parts[0]); lead != "" {
		kept = append(kept, lead)
	}
	for _, part := range parts[1:] {
		lines := strings.SplitN(part, "\n", 2)
		header := strings.ToLower(strings.TrimSpace(lines[0]))

		if isBlacklistedSection(header) {
			continue
		}
		if body := strings.TrimSpace(part); body != "" {
			kept = append(kept, body)
		}
	}

	return strings.Join(kept, "\n\n")
}

func isBlacklistedSection(header string) bool {
	for _, term := range sectionBlacklist {
		if strings.Contains(header, term) {
			return true
		}
	}
	return false
}

func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func dropLines(text string, drop func(string) bool) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !drop(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// stripHTML removes markup while keeping text content. Line structure is
// preserved so paragraph splitting still works downstream.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return buf.String()
}
