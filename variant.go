package prodsync

import (
	"strconv"
	"strings"
)

// Option is one selectable value within an option group.
type Option struct {
	ID       string `json:"id,omitempty"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
	Selected bool   `json:"selected"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// OptionGroup is a named set of mutually exclusive option values
// (e.g., Color, Size). Ordering of Options within a group and of
// groups in the outer slice is significant: it fixes the iteration
// order of the cross-product and thus the order of generated variants.
type OptionGroup struct {
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// OptionValue names one option's contribution to a variant.
type OptionValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is one purchasable combination of option values.
type Variant struct {
	Price             string        `json:"price"`
	CompareAtPrice    string        `json:"compareAtPrice"`
	SKU               string        `json:"sku"`
	InventoryQuantity int           `json:"inventoryQuantity"`
	OptionValues      []OptionValue `json:"optionValues"`
	ImageURL          string        `json:"image_url,omitempty"`
}

// DefaultStock is the inventory quantity assigned to variants whose
// options are all available. Policy constant, not a business rule.
const DefaultStock = 20

// ExpandConfig controls variant expansion.
type ExpandConfig struct {
	// BaseSKU prefixes every generated SKU.
	BaseSKU string

	// Price is the raw price string; it is normalized before use.
	Price string

	// DefaultStock is the inventory for fully available combinations.
	DefaultStock int

	// MaxVariants caps the size of the cross-product. Zero means no
	// cap. Exceeding the cap fails with ETOOMANY before any variants
	// are returned.
	MaxVariants int
}

// ExpandVariants produces the full cross-product of the given option
// groups as variants, depth-first with the first group varying slowest
// (nested-loop order). For each combination the SKU is the base SKU
// joined with the option values by "-", inventory is zero when any
// contributing option is disabled, and the image comes from the first
// option in group order that carries one.
//
// Empty groups produce an empty slice, never a synthetic default
// variant. Callers that need a fallback single variant must supply a
// single-option group themselves.
func ExpandVariants(groups []OptionGroup, cfg ExpandConfig) ([]Variant, error) {
	if len(groups) == 0 {
		return []Variant{}, nil
	}

	total := 1
	for _, g := range groups {
		total *= len(g.Options)
	}
	if cfg.MaxVariants > 0 && total > cfg.MaxVariants {
		return nil, Errorf(ETOOMANY, "expansion would produce %d variants, cap is %d", total, cfg.MaxVariants)
	}

	price := NormalizePrice(cfg.Price)

	variants := make([]Variant, 0, total)
	path := make([]Option, 0, len(groups))

	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(groups) {
			variants = append(variants, buildVariant(groups, path, price, cfg))
			return
		}
		for _, opt := range groups[depth].Options {
			path = append(path, opt)
			walk(depth + 1)
			path = path[:len(path)-1]
		}
	}
	walk(0)

	return variants, nil
}

// buildVariant assembles a single variant from one path through the
// groups. path holds one selected option per group, in group order.
func buildVariant(groups []OptionGroup, path []Option, price string, cfg ExpandConfig) Variant {
	values := make([]OptionValue, len(path))
	parts := make([]string, len(path))
	for i, opt := range path {
		values[i] = OptionValue{Name: groups[i].Name, Value: opt.Value}
		parts[i] = opt.Value
	}

	v := Variant{
		Price:             price,
		CompareAtPrice:    price,
		SKU:               cfg.BaseSKU + "-" + strings.Join(parts, "-"),
		InventoryQuantity: cfg.DefaultStock,
		OptionValues:      values,
	}

	for _, opt := range path {
		if opt.Disabled {
			v.InventoryQuantity = 0
			break
		}
	}

	for _, opt := range path {
		if opt.ImageURL != "" {
			v.ImageURL = opt.ImageURL
			break
		}
	}

	return v
}

// NormalizePrice converts a raw price string into a fixed two-decimal
// form: whitespace stripped, a single decimal comma converted to a
// point, every other non-digit/non-point character dropped. A string
// that normalizes to no digits yields "0.00", not an error.
func NormalizePrice(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return "0.00"
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// NormalizeImageURL rewrites protocol-relative URLs ("//cdn...") to
// explicit https URLs. All other forms pass through unchanged.
func NormalizeImageURL(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return raw
}
