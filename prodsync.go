// Package prodsync extracts product data from e-commerce pages and
// syncs it into a Shopify-compatible catalog. It cleans page HTML,
// locates title/description/images/options via storefront-specific
// strategies, expands option groups into the full variant
// cross-product, and uploads the assembled product record to a
// configured endpoint.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package prodsync
