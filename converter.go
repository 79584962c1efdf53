package prodsync

// Converter converts HTML to Markdown. Used to render cleaned page
// bodies for human review; the upload payload always carries HTML.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
