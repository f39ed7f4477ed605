package content

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Extracted is the main content of an HTML document
type Extracted struct {
	Title string
	Text  string // plain text
	HTML  string // main content node rendered back to HTML
}

// FileExtractor extracts article content from local HTML files using trafilatura
type FileExtractor struct {
	IncludeImages bool
	IncludeLinks  bool
}

// NewFileExtractor creates a new content extractor
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{IncludeLinks: true}
}

// Extract reads the HTML file at path and extracts its main content. pageURL, if set,
// is the address the page is published at and is used to resolve relative links.
func (e *FileExtractor) Extract(path, pageURL string) (*Extracted, error) {
	fh, err := os.Open(path) //nolint:gosec // path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("open html file: %w", err)
	}
	defer fh.Close()

	// configure trafilatura options
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   e.IncludeImages,
		IncludeLinks:    e.IncludeLinks,
		Deduplicate:     true,
	}
	if pageURL != "" {
		if u, perr := url.Parse(pageURL); perr == nil && u.Scheme != "" && u.Host != "" {
			opts.OriginalURL = u
		}
	}

	result, err := trafilatura.Extract(fh, opts)
	if err != nil {
		return nil, fmt.Errorf("extract content from %s: %w", path, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, fmt.Errorf("no text content extracted from %s", path)
	}

	res := &Extracted{
		Title: strings.TrimSpace(result.Metadata.Title),
		Text:  strings.TrimSpace(result.ContentText),
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, fmt.Errorf("render extracted content: %w", err)
		}
		res.HTML = buf.String()
	}
	return res, nil
}
