// Package goquery provides DOM-based implementations of prodsync's
// sanitizer, storefront detector, and product extractors using CSS
// selectors.
package goquery

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/prodsync/prodsync"
	"golang.org/x/net/html"
)

// Ensure Sanitizer implements prodsync.Sanitizer at compile time.
var _ prodsync.Sanitizer = (*Sanitizer)(nil)

// noiseTags are removed wholesale, subtree included, in this order.
var noiseTags = []string{"script", "style", "link[rel='stylesheet']", "iframe", "noscript"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Sanitizer strips noise nodes and attributes from page markup and
// serializes a normalized body. Safe for concurrent use; each Clean
// call builds fresh state.
type Sanitizer struct {
	notifier prodsync.Notifier
}

// SanitizerOption configures a Sanitizer.
type SanitizerOption func(*Sanitizer)

// WithNotifier routes progress events to n. Delivery is best-effort;
// the sanitizer never blocks on it.
func WithNotifier(n prodsync.Notifier) SanitizerOption {
	return func(s *Sanitizer) {
		s.notifier = n
	}
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer(opts ...SanitizerOption) *Sanitizer {
	s := &Sanitizer{notifier: prodsync.NopNotifier{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clean parses rawMarkup and runs the cleaning passes in order: header
// extraction, noise-tag removal, empty-node and comment removal,
// attribute stripping, body serialization. Header extraction runs
// first so title and meta capture are unaffected by later removals.
func (s *Sanitizer) Clean(rawMarkup string) (*prodsync.CleanedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawMarkup))
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EINVALID, "failed to parse document: %v", err)
	}

	cleaned := &prodsync.CleanedDocument{Meta: map[string]string{}}

	s.status("extracting header")
	s.extractHeader(doc, cleaned)
	s.log("extracted title %q and %d meta tags", cleaned.Title, len(cleaned.Meta))

	s.status("cleaning body")
	s.removeNoiseTags(doc, cleaned)
	s.removeEmptyNodes(doc, cleaned)
	s.stripAttributes(doc, cleaned)
	s.log("cleaned body: removed %d nodes, preserved %d elements", cleaned.Stats.Removed, cleaned.Stats.Preserved)

	cleaned.BodyMarkup = serializeBody(doc)

	s.notifier.Notify(prodsync.StatusEvent{Current: "clean finished", Captured: cleaned.Stats.Preserved})

	return cleaned, nil
}

// extractHeader reads the document title and all meta tags. A meta
// tag's name resolves from its name attribute, falling back to
// property. The first write wins on duplicate names.
func (s *Sanitizer) extractHeader(doc *goquery.Document, cleaned *prodsync.CleanedDocument) {
	cleaned.Title = doc.Find("head title").First().Text()

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("name")
		if !ok || name == "" {
			name, _ = sel.Attr("property")
		}
		content, _ := sel.Attr("content")
		if name == "" || content == "" {
			return
		}
		if _, exists := cleaned.Meta[name]; !exists {
			cleaned.Meta[name] = content
		}
	})
}

// removeNoiseTags removes non-content subtrees by tag category,
// counting each category's removals.
func (s *Sanitizer) removeNoiseTags(doc *goquery.Document, cleaned *prodsync.CleanedDocument) {
	for _, tag := range noiseTags {
		sel := doc.Find(tag)
		if n := sel.Length(); n > 0 {
			cleaned.Stats.Removed += n
			s.log("removed %d %s nodes", n, tag)
			sel.Remove()
		}
	}
}

// removeEmptyNodes walks the body depth-first collecting comment nodes
// and elements with no trimmed text content, then removes them in a
// second pass. Collect-then-remove avoids mutating the tree
// mid-traversal.
func (s *Sanitizer) removeEmptyNodes(doc *goquery.Document, cleaned *prodsync.CleanedDocument) {
	body := bodyNode(doc)
	if body == nil {
		return
	}

	var doomed []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.CommentNode:
				doomed = append(doomed, c)
			case html.ElementNode:
				if strings.TrimSpace(textContent(c)) == "" {
					doomed = append(doomed, c)
				}
			}
			walk(c)
		}
	}
	walk(body)

	for _, n := range doomed {
		// A node collected inside an already-removed subtree still has
		// its original parent; detaching it again is harmless.
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		cleaned.Stats.Removed++
	}
	s.log("removed %d empty nodes and comments", len(doomed))
}

// stripAttributes drops event-handler, style, class, and id attributes
// from every remaining body element. Preserved counts elements visited,
// not attributes stripped.
func (s *Sanitizer) stripAttributes(doc *goquery.Document, cleaned *prodsync.CleanedDocument) {
	body := bodyNode(doc)
	if body == nil {
		return
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				c.Attr = filterAttrs(c.Attr)
				cleaned.Stats.Preserved++
			}
			walk(c)
		}
	}
	walk(body)
}

// filterAttrs returns attrs without on*-prefixed, style, class, and id
// attributes.
func filterAttrs(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		if strings.HasPrefix(a.Key, "on") || a.Key == "style" || a.Key == "class" || a.Key == "id" {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// serializeBody renders the body's children with whitespace runs
// collapsed to single spaces, line breaks and tabs removed, and a
// newline inserted between adjacent closing/opening tags.
func serializeBody(doc *goquery.Document) string {
	body := bodyNode(doc)
	if body == nil {
		return ""
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}

	markup := whitespaceRun.ReplaceAllString(buf.String(), " ")
	return strings.ReplaceAll(markup, "> <", ">\n<")
}

// bodyNode returns the body's underlying node, or nil if the document
// has no body.
func bodyNode(doc *goquery.Document) *html.Node {
	sel := doc.Find("body")
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// textContent concatenates all text beneath n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(m *html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func (s *Sanitizer) status(current string) {
	s.notifier.Notify(prodsync.StatusEvent{Current: current})
}

func (s *Sanitizer) log(format string, args ...any) {
	s.notifier.Notify(prodsync.LogEvent{Message: "[sanitizer] " + fmt.Sprintf(format, args...)})
}
