package goquery

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/prodsync/prodsync"
)

var _ prodsync.ProductExtractor = (*MagentoExtractor)(nil)

// parenthetical matches parenthesized suffixes in swatch labels, e.g.
// "Black (out of stock)".
var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// MagentoExtractor locates product fields on Magento 2 swatch-based
// product pages. Missing elements yield empty fields, never errors.
type MagentoExtractor struct {
	notifier prodsync.Notifier
}

// MagentoOption configures a MagentoExtractor.
type MagentoOption func(*MagentoExtractor)

// WithMagentoNotifier routes extraction log events to n.
func WithMagentoNotifier(n prodsync.Notifier) MagentoOption {
	return func(e *MagentoExtractor) {
		e.notifier = n
	}
}

// NewMagentoExtractor creates a new MagentoExtractor.
func NewMagentoExtractor(opts ...MagentoOption) *MagentoExtractor {
	e := &MagentoExtractor{notifier: prodsync.NopNotifier{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extractor's identifier.
func (e *MagentoExtractor) Name() string {
	return "magento"
}

// Extract pulls title, description, images, option groups, price, base
// SKU, tags, and metafields from the page using structural selectors.
func (e *MagentoExtractor) Extract(_ context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EINVALID, "failed to parse page: %v", err)
	}

	ex := &prodsync.ProductExtraction{
		Title:       strings.TrimSpace(doc.Find(".page-title .base").First().Text()),
		Description: strings.TrimSpace(doc.Find("#descriptionContent").First().Text()),
	}

	doc.Find(".product__image img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("data-main-src")
		if !ok || src == "" {
			src, _ = sel.Attr("src")
		}
		if src != "" {
			ex.Images = append(ex.Images, src)
		}
	})

	ex.OptionGroups = e.extractOptionGroups(doc)
	ex.PriceRaw = strings.TrimSpace(doc.Find(".price-wrapper .price").First().Text())
	ex.BaseSKU = baseSKU(doc)
	ex.Tags = extractTags(doc)
	ex.Metafields = extractMetafields(doc)

	e.notifier.Notify(prodsync.LogEvent{
		Message: "[magento] extracted " + ex.Title,
	})

	return ex, nil
}

// extractOptionGroups walks the swatch attribute containers inside the
// product options wrapper. Image swatches (colors) carry an image URL
// from the tooltip thumbnail with query parameters stripped; text
// swatches (sizes) carry only the label.
func (e *MagentoExtractor) extractOptionGroups(doc *goquery.Document) []prodsync.OptionGroup {
	var groups []prodsync.OptionGroup

	doc.Find("#product-options-wrapper .swatch-attribute").Each(func(_ int, container *goquery.Selection) {
		label := container.Find(".swatch-attribute-label").First()
		if label.Length() == 0 {
			return
		}
		name := strings.TrimSpace(label.Text())

		var options []prodsync.Option
		if container.Find(".swatch-option.image").Length() > 0 {
			container.Find(".swatch-option.image").Each(func(_ int, opt *goquery.Selection) {
				imageURL, _ := opt.Attr("data-option-tooltip-thumb")
				if i := strings.IndexByte(imageURL, '?'); i >= 0 {
					imageURL = imageURL[:i]
				}
				options = append(options, prodsync.Option{
					ID:       attrOr(opt, "data-option-id", ""),
					Value:    swatchLabel(opt),
					Disabled: opt.HasClass("disabled"),
					Selected: opt.HasClass("selected"),
					ImageURL: imageURL,
				})
			})
		} else if container.Find(".swatch-option.text").Length() > 0 {
			container.Find(".swatch-option.text").Each(func(_ int, opt *goquery.Selection) {
				options = append(options, prodsync.Option{
					ID:       attrOr(opt, "data-option-id", ""),
					Value:    attrOr(opt, "data-option-label", ""),
					Disabled: opt.HasClass("disabled"),
					Selected: opt.HasClass("selected"),
				})
			})
		}

		if len(options) > 0 {
			groups = append(groups, prodsync.OptionGroup{Name: name, Options: options})
		}
	})

	return groups
}

// baseSKU reads the product SKU from the add-to-cart form, stripping
// the template's leading dollar marker.
func baseSKU(doc *goquery.Document) string {
	sku, _ := doc.Find("form[data-product-sku]").First().Attr("data-product-sku")
	return strings.TrimPrefix(sku, "$")
}

// extractTags collects activity labels and fit codes.
func extractTags(doc *goquery.Document) []string {
	var tags []string
	doc.Find("li.px-3.py-2.t-sm-uppercase").Each(func(_ int, sel *goquery.Selection) {
		if tag := strings.TrimSpace(sel.Text()); tag != "" {
			tags = append(tags, tag)
		}
	})

	fit := doc.Find(`#product\.fit\.code\.view`).First()
	if fit.Length() > 0 {
		for _, part := range strings.Split(strings.TrimSpace(fit.Text()), ",") {
			if part = strings.TrimSpace(part); part != "" {
				tags = append(tags, part)
			}
		}
	}
	return tags
}

// extractMetafields collects fit, weight, and feature annotations in a
// fixed order. Absent source fields are skipped by the transformer via
// their empty values.
func extractMetafields(doc *goquery.Document) []prodsync.Metafield {
	var metafields []prodsync.Metafield

	fit := doc.Find(`#product\.fit\.code\.view`).First()
	metafields = append(metafields, prodsync.Metafield{
		Namespace: "custom",
		Key:       "fit",
		Type:      "single_line_text_field",
		Value:     strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fit.Text()), "Fit:")),
	})

	var weight string
	doc.Find(".product__description").Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		if strings.Contains(text, "Product Weight") {
			weight = strings.TrimSpace(strings.ReplaceAll(text, "Product Weight:", ""))
		}
	})
	metafields = append(metafields, prodsync.Metafield{
		Namespace: "custom",
		Key:       "weight",
		Type:      "single_line_text_field",
		Value:     weight,
	})

	var features []string
	doc.Find(".product-features li").Each(func(_ int, sel *goquery.Selection) {
		if f := strings.TrimSpace(sel.Text()); f != "" {
			features = append(features, "- "+f)
		}
	})
	metafields = append(metafields, prodsync.Metafield{
		Namespace: "custom",
		Key:       "features",
		Type:      "multi_line_text_field",
		Value:     strings.Join(features, "\n"),
	})

	return metafields
}

// swatchLabel reads an image swatch's label with parenthesized
// availability suffixes removed.
func swatchLabel(opt *goquery.Selection) string {
	label, _ := opt.Attr("data-option-label")
	return strings.TrimSpace(parenthetical.ReplaceAllString(label, ""))
}

// attrOr returns the attribute value or a default when absent.
func attrOr(sel *goquery.Selection, name, def string) string {
	if v, ok := sel.Attr(name); ok {
		return v
	}
	return def
}
