package main

import (
	"fmt"

	"github.com/prodsync/prodsync"
)

// Run executes the profile add command.
func (c *ProfileAddCmd) Run(deps *Dependencies) error {
	storefront, err := prodsync.ParseStorefront(c.Storefront)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	profile := &prodsync.Profile{
		Name:         c.Name,
		Storefront:   storefront,
		Endpoint:     c.Endpoint,
		ShopName:     c.ShopName,
		AccessToken:  c.AccessToken,
		Vendor:       c.Vendor,
		ProductType:  c.ProductType,
		DefaultStock: c.DefaultStock,
		MaxVariants:  c.MaxVariants,
	}

	if err := deps.Profiles.CreateProfile(deps.Ctx, profile); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added profile %q (%s)\n", c.Name, profile.ID)
	return nil
}

// Run executes the profile list command.
func (c *ProfileListCmd) Run(deps *Dependencies) error {
	profiles, err := deps.Profiles.FindProfiles(deps.Ctx, prodsync.ProfileFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		return err
	}

	if len(profiles) == 0 {
		fmt.Fprintln(deps.Stdout, "No profiles found. Use 'prodsync profile add' to create one.")
		return nil
	}

	for _, p := range profiles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", p.ID, p.Name, p.Storefront, p.Endpoint)
	}

	return nil
}

// Run executes the profile delete command.
func (c *ProfileDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return prodsync.Errorf(prodsync.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Profiles.DeleteProfile(deps.Ctx, c.Name); err != nil {
		if prodsync.ErrorCode(err) == prodsync.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: profile %q not found. Use 'prodsync profile list' to see available profiles.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", prodsync.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted profile %q\n", c.Name)
	return nil
}
