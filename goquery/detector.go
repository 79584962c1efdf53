package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/prodsync/prodsync"
)

// Detector identifies storefront schemas from page HTML. It checks for
// template-specific script tags, CSS classes, and structural markers
// unique to each storefront platform.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified storefront.
// Returns StorefrontUnknown if the storefront cannot be determined.
func (d *Detector) Detect(html string) prodsync.Storefront {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return prodsync.StorefrontUnknown
	}

	// Shopify markers: the analytics payload script is the most
	// reliable, the CDN host a close second.
	if d.hasSelector(doc, "script#shop-js-analytics") ||
		d.hasSelector(doc, "link[href*='cdn.shopify.com']") ||
		d.hasSelector(doc, "script[src*='cdn.shopify.com']") {
		return prodsync.StorefrontShopify
	}

	// Magento markers: x-magento-init scripts appear on every Magento 2
	// page; the swatch wrapper marks a configurable product page.
	if d.hasSelector(doc, "script[type='text/x-magento-init']") ||
		d.hasSelector(doc, "#product-options-wrapper .swatch-attribute") ||
		d.hasSelector(doc, "body.catalog-product-view") {
		return prodsync.StorefrontMagento
	}

	return prodsync.StorefrontUnknown
}

// hasSelector checks if the document contains at least one element
// matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
