package main

import (
	"fmt"

	"github.com/prodsync/prodsync"
)

// Run executes the result command.
func (c *ResultCmd) Run(deps *Dependencies) error {
	profile, err := deps.Profiles.FindProfileByName(deps.Ctx, c.Profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	result, err := deps.Results.LastResult(deps.Ctx, profile.ID)
	if err != nil {
		if prodsync.ErrorCode(err) == prodsync.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no cached result for profile %q. Use 'prodsync run' first.\n", c.Profile)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Last run for %q at %s\n", c.Profile, result.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "  URL: %s\n", result.PageURL)

	if result.Error != "" {
		fmt.Fprintf(deps.Stdout, "  Failed: %s\n", result.Error)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "  Content hash: %s\n", result.ContentHash)
	fmt.Fprintln(deps.Stdout, result.Payload)

	return nil
}
