package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/prodsync/prodsync"
)

var _ prodsync.ProductExtractor = (*GenericExtractor)(nil)

// GenericExtractor is the fallback strategy for unrecognized
// storefronts. It reads OpenGraph and product meta tags, and
// optionally delegates description extraction to a ContentExtractor
// when the page carries no og:description.
//
// Pages without option markup get a synthetic single-value option
// group so that downstream expansion still yields one purchasable
// variant.
type GenericExtractor struct {
	content prodsync.ContentExtractor
}

// NewGenericExtractor creates a new GenericExtractor. content may be
// nil, in which case the description falls back to og:description
// only.
func NewGenericExtractor(content prodsync.ContentExtractor) *GenericExtractor {
	return &GenericExtractor{content: content}
}

// Name returns the extractor's identifier.
func (e *GenericExtractor) Name() string {
	return "generic"
}

// Extract reads product fields from meta tags. Missing fields yield
// empty values; the extractor never fails on absent markup.
func (e *GenericExtractor) Extract(_ context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EINVALID, "failed to parse page: %v", err)
	}

	meta := func(name string) string {
		content, _ := doc.Find(`meta[property="` + name + `"], meta[name="` + name + `"]`).First().Attr("content")
		return strings.TrimSpace(content)
	}

	ex := &prodsync.ProductExtraction{
		Title:       meta("og:title"),
		Description: meta("og:description"),
		Vendor:      meta("og:site_name"),
		PriceRaw:    meta("product:price:amount"),
	}
	if ex.Title == "" {
		ex.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	}

	doc.Find(`meta[property="og:image"]`).Each(func(_ int, sel *goquery.Selection) {
		if img, ok := sel.Attr("content"); ok && img != "" {
			ex.Images = append(ex.Images, img)
		}
	})

	if ex.Description == "" && e.content != nil {
		if _, contentHTML, err := e.content.ExtractContent(page.HTML); err == nil {
			ex.Description = contentHTML
		}
	}

	ex.BaseSKU = genericBaseSKU(meta("product:retailer_item_id"), page.URL, ex.Title)

	// One purchasable combination; expansion needs at least one group.
	ex.OptionGroups = []prodsync.OptionGroup{
		{Name: "Title", Options: []prodsync.Option{{Value: "Default Title"}}},
	}

	return ex, nil
}

// genericBaseSKU picks the best available SKU source: an explicit
// retailer item ID, the URL's last path segment, or a slug of the
// title.
func genericBaseSKU(itemID, pageURL, title string) string {
	if itemID != "" {
		return itemID
	}
	if u, err := url.Parse(pageURL); err == nil {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if last := segments[len(segments)-1]; last != "" {
			return last
		}
	}
	return slugify(title)
}

// slugify lowercases s and replaces non-alphanumeric runs with
// hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
