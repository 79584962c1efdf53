package prodsync

import "context"

// Page is a live page handed to the pipeline: its address and raw
// markup. Ephemeral; exists only for the duration of one run.
type Page struct {
	URL  string
	HTML string
}

// ProductExtraction holds the site-independent intermediate fields
// located by a ProductExtractor. Absent optional fields are empty
// values, never errors.
type ProductExtraction struct {
	Title       string
	Description string
	Vendor      string
	ProductType string
	Images      []string
	Tags        []string
	Metafields  []Metafield

	// OptionGroups feed variant expansion. Ignored when Variants is
	// already populated.
	OptionGroups []OptionGroup
	PriceRaw     string
	BaseSKU      string

	// Variants is set by strategies whose source enumerates variants
	// directly (e.g., an embedded product payload). When non-empty the
	// pipeline skips expansion.
	Variants []Variant
}

// ProductExtractor locates product fields in a page. One concrete
// implementation exists per supported storefront schema.
type ProductExtractor interface {
	// Extract returns the product fields found on the page.
	// Returns ENOTPRODUCT if the page is recognizably not a product
	// page; missing individual elements are tolerated and yield empty
	// fields.
	Extract(ctx context.Context, page *Page) (*ProductExtraction, error)

	// Name returns the extractor's identifier (e.g., "magento").
	Name() string
}

// Storefront identifies a storefront template family.
type Storefront string

// Supported storefront schemas.
const (
	StorefrontUnknown Storefront = ""
	StorefrontMagento Storefront = "magento"
	StorefrontShopify Storefront = "shopify"
	StorefrontGeneric Storefront = "generic"
	StorefrontGemini  Storefront = "gemini"
)

// ParseStorefront converts a user-supplied string into a Storefront.
// Returns EINVALID for unrecognized values.
func ParseStorefront(s string) (Storefront, error) {
	switch Storefront(s) {
	case StorefrontMagento, StorefrontShopify, StorefrontGeneric, StorefrontGemini:
		return Storefront(s), nil
	default:
		return StorefrontUnknown, Errorf(EINVALID, "unknown storefront %q (expected magento, shopify, generic, or gemini)", s)
	}
}

// StorefrontDetector identifies storefront schemas from page HTML.
type StorefrontDetector interface {
	// Detect analyzes HTML and returns the identified storefront.
	// Returns StorefrontUnknown if it cannot be determined.
	Detect(html string) Storefront
}

// ExtractorRegistry manages storefront-specific extractors.
type ExtractorRegistry interface {
	// Get returns the extractor for a specific storefront, or nil if
	// none is registered.
	Get(storefront Storefront) ProductExtractor

	// GetForHTML detects the storefront and returns the appropriate
	// extractor, falling back to a generic one when the storefront is
	// unknown or unregistered.
	GetForHTML(html string) ProductExtractor

	// Register adds an extractor for a storefront, replacing any
	// existing registration.
	Register(storefront Storefront, extractor ProductExtractor)

	// List returns all registered storefronts.
	List() []Storefront
}

// ContentExtractor pulls the main content block out of a page, used as
// a description fallback when no storefront selector matches.
type ContentExtractor interface {
	// ExtractContent returns the page's main content as clean HTML
	// along with the title found in page metadata.
	ExtractContent(html string) (title string, contentHTML string, err error)
}
