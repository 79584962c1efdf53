package prodsync

// Metafield is a typed, namespaced key-value annotation on a product.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// ProductData is the descriptive part of a product record.
type ProductData struct {
	Title           string   `json:"title"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Vendor          string   `json:"vendor"`
	ProductType     string   `json:"productType"`
	Tags            []string `json:"tags"`
}

// ProductRecord is the canonical upload unit. It is created fresh per
// extraction run and never mutated after the uploader receives it.
type ProductRecord struct {
	ShopName    string      `json:"shop_name"`
	AccessToken string      `json:"access_token"`
	ProductData ProductData `json:"product_data"`
	Images      []string    `json:"images"`
	Variants    []Variant   `json:"variants"`
	Metafields  []Metafield `json:"metafields"`
}

// BuildProductRecord assembles a ProductRecord from extracted fields,
// expanded variants, and the profile's shop identity. Pure mapping, no
// I/O.
//
// Tags are deduplicated preserving first-seen order. Image URLs are
// normalized. Metafields keep the extractor's order; metafields with an
// empty value are omitted entirely rather than emitted blank. Vendor
// and product type come from the extraction when present, otherwise
// from the profile.
func BuildProductRecord(profile *Profile, ex *ProductExtraction, variants []Variant) *ProductRecord {
	vendor := ex.Vendor
	if vendor == "" {
		vendor = profile.Vendor
	}
	productType := ex.ProductType
	if productType == "" {
		productType = profile.ProductType
	}

	tags := make([]string, 0, len(ex.Tags))
	seen := make(map[string]bool, len(ex.Tags))
	for _, tag := range ex.Tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	images := make([]string, 0, len(ex.Images))
	for _, img := range ex.Images {
		if img == "" {
			continue
		}
		images = append(images, NormalizeImageURL(img))
	}

	metafields := make([]Metafield, 0, len(ex.Metafields))
	for _, mf := range ex.Metafields {
		if mf.Value == "" {
			continue
		}
		metafields = append(metafields, mf)
	}

	return &ProductRecord{
		ShopName:    profile.ShopName,
		AccessToken: profile.AccessToken,
		ProductData: ProductData{
			Title:           ex.Title,
			DescriptionHTML: ex.Description,
			Vendor:          vendor,
			ProductType:     productType,
			Tags:            tags,
		},
		Images:     images,
		Variants:   variants,
		Metafields: metafields,
	}
}
