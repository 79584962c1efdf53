package main

import (
	"fmt"

	"github.com/prodsync/prodsync"
)

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	doc, err := deps.Sanitizer.Clean(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	markdown, err := deps.Converter.Convert(doc.BodyMarkup)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	// Stats go to stderr so stdout stays pipeable Markdown.
	fmt.Fprintf(deps.Stderr, "Cleaned %s: removed %d elements, preserved %d\n",
		c.URL, doc.Stats.Removed, doc.Stats.Preserved)

	if doc.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", doc.Title)
	}
	fmt.Fprintln(deps.Stdout, markdown)

	return nil
}
