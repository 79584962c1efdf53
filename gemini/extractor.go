// Package gemini provides an AI-assisted prodsync.ProductExtractor
// using Google Gemini for storefronts no selector strategy covers.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prodsync/prodsync"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Extractor implements prodsync.ProductExtractor at compile time.
var _ prodsync.ProductExtractor = (*Extractor)(nil)

// Extractor implements prodsync.ProductExtractor using Google Gemini.
// The page is sanitized first so the prompt carries compact markup
// instead of raw storefront output.
type Extractor struct {
	client    *genai.Client
	sanitizer prodsync.Sanitizer
}

// NewExtractor creates a new Extractor.
func NewExtractor(client *genai.Client, sanitizer prodsync.Sanitizer) *Extractor {
	return &Extractor{client: client, sanitizer: sanitizer}
}

// Name returns the extractor's identifier.
func (e *Extractor) Name() string {
	return "gemini"
}

// Extract asks Gemini to locate product fields in the cleaned page.
func (e *Extractor) Extract(ctx context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error) {
	cleaned, err := e.sanitizer.Clean(page.HTML)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(cleaned, page.URL)
	config := BuildConfig()

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return nil, prodsync.Errorf(prodsync.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a product data extractor. Given cleaned HTML from an e-commerce product page, return the product's fields as JSON. Use only information present in the markup; leave fields you cannot find empty. Exclude decorative images, icons, and logos from the image list.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildPrompt builds the user prompt containing the cleaned page and
// the expected response shape.
func BuildPrompt(cleaned *prodsync.CleanedDocument, pageURL string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<url>%s</url>\n", pageURL)
	fmt.Fprintf(&sb, "<title>%s</title>\n", cleaned.Title)
	for name, content := range cleaned.Meta {
		fmt.Fprintf(&sb, "<meta name=%q>%s</meta>\n", name, content)
	}
	fmt.Fprintf(&sb, "<body>%s</body>\n", cleaned.BodyMarkup)
	sb.WriteString("</page>\n\n")
	sb.WriteString(`Return JSON with this shape:
{
  "title": "product title",
  "descriptionHtml": "product description as HTML",
  "vendor": "brand or seller",
  "productType": "category",
  "tags": ["tag"],
  "images": ["product image URL"],
  "variants": [{
    "price": "decimal string",
    "compareAtPrice": "decimal string or empty",
    "sku": "variant SKU",
    "inventoryQuantity": 0,
    "optionValues": [{"name": "Color", "value": "Red"}]
  }]
}`)
	return sb.String()
}

// aiProduct is the wire shape Gemini is asked to produce.
type aiProduct struct {
	Title           string   `json:"title"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Vendor          string   `json:"vendor"`
	ProductType     string   `json:"productType"`
	Tags            []string `json:"tags"`
	Images          []string `json:"images"`
	Variants        []struct {
		Price             string                 `json:"price"`
		CompareAtPrice    string                 `json:"compareAtPrice"`
		SKU               string                 `json:"sku"`
		InventoryQuantity int                    `json:"inventoryQuantity"`
		OptionValues      []prodsync.OptionValue `json:"optionValues"`
	} `json:"variants"`
}

// ParseResponse decodes a Gemini reply into a ProductExtraction.
// Returns EPAYLOAD if the reply is not the requested JSON shape.
func ParseResponse(text string) (*prodsync.ProductExtraction, error) {
	var p aiProduct
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, prodsync.Errorf(prodsync.EPAYLOAD, "undecodable gemini reply: %v", err)
	}
	if p.Title == "" {
		return nil, prodsync.Errorf(prodsync.ENOTPRODUCT, "no product found on page")
	}

	ex := &prodsync.ProductExtraction{
		Title:       p.Title,
		Description: p.DescriptionHTML,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        p.Tags,
		Images:      p.Images,
	}

	for _, v := range p.Variants {
		inventory := v.InventoryQuantity
		if inventory <= 0 {
			inventory = prodsync.DefaultStock
		}
		ex.Variants = append(ex.Variants, prodsync.Variant{
			Price:             prodsync.NormalizePrice(v.Price),
			CompareAtPrice:    v.CompareAtPrice,
			SKU:               v.SKU,
			InventoryQuantity: inventory,
			OptionValues:      v.OptionValues,
		})
	}
	if len(ex.Variants) > 0 {
		ex.BaseSKU = ex.Variants[0].SKU
		ex.PriceRaw = ex.Variants[0].Price
	}

	return ex, nil
}
