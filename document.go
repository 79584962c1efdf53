package prodsync

// CleanStats counts elements handled during a cleaning pass.
// Removed + Preserved accounts for every element and comment visited.
type CleanStats struct {
	Removed   int `json:"removed"`
	Preserved int `json:"preserved"`
}

// CleanedDocument is a page with noise stripped out: no scripts,
// styles, stylesheet links, iframes, noscript fallbacks, comments, or
// empty elements, and no event-handler/style/class/id attributes.
//
// Cleaning is idempotent only up to whitespace normalization: a second
// pass removes no tag-stripping categories, but the empty-node pass may
// still fire if normalization introduced new empty nodes.
type CleanedDocument struct {
	// Title is the document title, empty if absent.
	Title string `json:"title"`

	// Meta maps a meta tag's name (or property) attribute to its
	// content. The first occurrence wins on duplicate names.
	Meta map[string]string `json:"meta"`

	// Stats accounts for every element and comment visited.
	Stats CleanStats `json:"stats"`

	// BodyMarkup is the cleaned body serialized with whitespace runs
	// collapsed and a newline between adjacent tags. Empty if the
	// document has no body.
	BodyMarkup string `json:"bodyMarkup"`
}

// Sanitizer strips noise from raw page markup.
type Sanitizer interface {
	// Clean parses rawMarkup, extracts header metadata, removes
	// non-content nodes and attributes, and serializes the body.
	// Returns EINVALID only if the markup cannot be parsed into a
	// document tree at all; otherwise malformed input is tolerated.
	Clean(rawMarkup string) (*CleanedDocument, error)
}
