package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/prodsync/prodsync"
	"golang.org/x/net/html"
)

// Ensure Extractor implements prodsync.ContentExtractor at compile time.
var _ prodsync.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main content block out of
// a page. The generic product strategy uses it as a description
// fallback when no storefront selector matches.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the page title and main
// content.
func (e *Extractor) ExtractContent(rawHTML string) (string, string, error) {
	if rawHTML == "" {
		return "", "", prodsync.Errorf(prodsync.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return "", "", err
		}
	}

	return result.Metadata.Title, contentHTML, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
