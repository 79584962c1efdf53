package goquery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/prodsync/prodsync"
)

var _ prodsync.ProductExtractor = (*ShopifyExtractor)(nil)

// analyticsSelector locates the embedded analytics payload carrying
// the page-type discriminant.
const analyticsSelector = `script#shop-js-analytics[type="application/json"]`

// ShopifyExtractor locates product fields on Shopify product pages via
// the embedded analytics JSON payload and the product's sibling data
// URL. It performs one network fetch per extraction; the fetcher is
// injected so tests and rendered-page setups can substitute their own.
type ShopifyExtractor struct {
	fetcher  prodsync.Fetcher
	notifier prodsync.Notifier
}

// ShopifyOption configures a ShopifyExtractor.
type ShopifyOption func(*ShopifyExtractor)

// WithShopifyNotifier routes extraction log events to n.
func WithShopifyNotifier(n prodsync.Notifier) ShopifyOption {
	return func(e *ShopifyExtractor) {
		e.notifier = n
	}
}

// NewShopifyExtractor creates a new ShopifyExtractor using fetcher for
// the product data request.
func NewShopifyExtractor(fetcher prodsync.Fetcher, opts ...ShopifyOption) *ShopifyExtractor {
	e := &ShopifyExtractor{fetcher: fetcher, notifier: prodsync.NopNotifier{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extractor's identifier.
func (e *ShopifyExtractor) Name() string {
	return "shopify"
}

// shopifyAnalytics is the embedded discriminant payload.
type shopifyAnalytics struct {
	PageType string `json:"pageType"`
}

// shopifyProduct is the product data payload served at the page's
// sibling .js URL. Prices arrive as integer cents.
type shopifyProduct struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Vendor      string   `json:"vendor"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	Options     []struct {
		Name string `json:"name"`
	} `json:"options"`
	Variants []struct {
		Price             int64    `json:"price"`
		CompareAtPrice    int64    `json:"compare_at_price"`
		SKU               string   `json:"sku"`
		InventoryQuantity int      `json:"inventory_quantity"`
		Options           []string `json:"options"`
	} `json:"variants"`
}

// Extract validates the page-type discriminant, derives the product
// data URL from the page URL, fetches it, and maps the payload.
//
// Returns ENOTPRODUCT when the analytics payload is missing or its
// page type is not "product" - a clean exit performed before any
// network request. Fetch failures surface as EUNAVAILABLE, decode
// failures of either payload as EPAYLOAD.
func (e *ShopifyExtractor) Extract(ctx context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EINVALID, "failed to parse page: %v", err)
	}

	script := doc.Find(analyticsSelector).First()
	if script.Length() == 0 {
		return nil, prodsync.Errorf(prodsync.ENOTPRODUCT, "no analytics payload on page")
	}

	var analytics shopifyAnalytics
	if err := json.Unmarshal([]byte(script.Text()), &analytics); err != nil {
		return nil, prodsync.Errorf(prodsync.EPAYLOAD, "malformed analytics payload: %v", err)
	}
	if analytics.PageType != "product" {
		return nil, prodsync.Errorf(prodsync.ENOTPRODUCT, "page type is %q, not product", analytics.PageType)
	}

	dataURL, err := ProductDataURL(page.URL)
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EINVALID, "cannot derive product data URL: %v", err)
	}
	e.notifier.Notify(prodsync.LogEvent{Message: "[shopify] fetching product data from " + dataURL})

	body, err := e.fetcher.Fetch(ctx, dataURL)
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EUNAVAILABLE, "product data fetch failed: %v", err)
	}

	var product shopifyProduct
	if err := json.Unmarshal([]byte(body), &product); err != nil {
		return nil, prodsync.Errorf(prodsync.EPAYLOAD, "malformed product data: %v", err)
	}

	return e.mapProduct(&product), nil
}

// mapProduct converts the payload into the shared intermediate form.
// Variants are enumerated directly by the payload, so no option-group
// expansion is needed downstream.
func (e *ShopifyExtractor) mapProduct(product *shopifyProduct) *prodsync.ProductExtraction {
	ex := &prodsync.ProductExtraction{
		Title:       product.Title,
		Description: product.Description,
		Vendor:      product.Vendor,
		ProductType: product.Type,
		Tags:        product.Tags,
		Images:      product.Images,
	}

	for _, v := range product.Variants {
		quantity := v.InventoryQuantity
		if quantity == 0 {
			quantity = prodsync.DefaultStock
		}

		values := make([]prodsync.OptionValue, 0, len(v.Options))
		for i, value := range v.Options {
			if i >= len(product.Options) {
				break
			}
			values = append(values, prodsync.OptionValue{
				Name:  product.Options[i].Name,
				Value: value,
			})
		}

		ex.Variants = append(ex.Variants, prodsync.Variant{
			Price:             centsToPrice(v.Price),
			CompareAtPrice:    centsToPrice(v.CompareAtPrice),
			SKU:               v.SKU,
			InventoryQuantity: quantity,
			OptionValues:      values,
		})
	}

	return ex
}

// ProductDataURL derives the sibling product data URL from a product
// page URL: query and fragment stripped, trailing slash and extension
// removed, ".js" appended.
func ProductDataURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = ""
	u.Fragment = ""

	p := strings.TrimSuffix(u.Path, "/")
	if ext := path.Ext(p); ext != "" {
		p = strings.TrimSuffix(p, ext)
	}
	u.Path = p + ".js"

	return u.String(), nil
}

// centsToPrice formats integer cents as a two-decimal price string.
func centsToPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, strconv.FormatInt(cents/100, 10), cents%100)
}
