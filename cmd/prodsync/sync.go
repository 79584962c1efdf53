package main

import (
	"fmt"

	"github.com/prodsync/prodsync"
	"github.com/prodsync/prodsync/pipeline"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	profile, err := deps.Profiles.FindProfileByName(deps.Ctx, c.Profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	batch := &pipeline.Batch{
		Runner: &pipeline.Runner{
			Fetcher:    deps.Fetcher,
			Sanitizer:  deps.Sanitizer,
			Extractors: deps.Extractors,
			Uploader:   deps.NewUploader(profile.Endpoint),
			Notifier:   deps.Notifier,
			Results:    deps.Results,
		},
		Source:      deps.Source,
		Limiter:     deps.Limiter,
		Concurrency: c.Concurrency,
	}

	result, err := batch.Sync(deps.Ctx, profile, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	if result.Discovered == 0 {
		fmt.Fprintf(deps.Stdout, "No product URLs discovered at %s\n", c.URL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Synced %d of %d pages (%d duplicates, %d not products, %d failed)\n",
		result.Synced, result.Discovered, result.Skipped, result.NotProduct, result.Failed)

	return nil
}
