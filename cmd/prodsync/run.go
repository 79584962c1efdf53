package main

import (
	"fmt"

	"github.com/prodsync/prodsync"
	"github.com/prodsync/prodsync/pipeline"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	profile, err := deps.Profiles.FindProfileByName(deps.Ctx, c.Profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	runner := &pipeline.Runner{
		Fetcher:    deps.Fetcher,
		Sanitizer:  deps.Sanitizer,
		Extractors: deps.Extractors,
		Uploader:   deps.NewUploader(profile.Endpoint),
		Notifier:   deps.Notifier,
		Results:    deps.Results,
	}

	outcome, err := runner.Run(deps.Ctx, profile, c.URL)
	if err != nil {
		// A page that is recognizably not a product is an answer, not a
		// failure.
		if prodsync.ErrorCode(err) == prodsync.ENOTPRODUCT {
			fmt.Fprintf(deps.Stdout, "Not a product page: %s\n", c.URL)
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Uploaded %q (%d variants, status %s)\n",
		outcome.Record.ProductData.Title, len(outcome.Record.Variants), outcome.Upload.Status)
	if outcome.Upload.ProductID != "" {
		fmt.Fprintf(deps.Stdout, "  Product ID: %s\n", outcome.Upload.ProductID)
	}

	return nil
}
