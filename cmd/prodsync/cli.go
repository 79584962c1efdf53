package main

import (
	"context"
	"io"

	"github.com/prodsync/prodsync"
	"github.com/prodsync/prodsync/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Profiles   prodsync.ProfileService
	Results    prodsync.ResultCache
	Fetcher    prodsync.Fetcher
	Sanitizer  prodsync.Sanitizer
	Extractors prodsync.ExtractorRegistry
	Converter  prodsync.Converter
	Source     prodsync.ProductURLSource
	Limiter    prodsync.DomainLimiter
	Notifier   prodsync.Notifier

	// NewUploader builds an uploader for a profile's endpoint.
	NewUploader func(endpoint string) prodsync.Uploader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Profile ProfileCmd `cmd:"" help:"Manage scrape profiles"`
	Run     RunCmd     `cmd:"" help:"Extract and upload one product page"`
	Clean   CleanCmd   `cmd:"" help:"Show the cleaned page as Markdown"`
	Sync    SyncCmd    `cmd:"" help:"Sync a whole storefront catalog"`
	Result  ResultCmd  `cmd:"" help:"Show the last cached run result for a profile"`
}

// ProfileCmd groups the profile subcommands.
type ProfileCmd struct {
	Add    ProfileAddCmd    `cmd:"" help:"Create a profile"`
	List   ProfileListCmd   `cmd:"" help:"List profiles"`
	Delete ProfileDeleteCmd `cmd:"" help:"Delete a profile and its cached results"`
}

// ProfileAddCmd is the "profile add" subcommand.
type ProfileAddCmd struct {
	Name       string `arg:"" help:"Profile name"`
	Storefront string `arg:"" help:"Storefront schema (magento, shopify, generic, gemini)"`
	Endpoint   string `arg:"" help:"Catalog upload endpoint URL"`

	ShopName     string `help:"Shop name stamped on every record"`
	AccessToken  string `help:"Access token stamped on every record"`
	Vendor       string `help:"Fallback vendor"`
	ProductType  string `help:"Fallback product type"`
	DefaultStock int    `help:"Inventory assigned to available variants (0 = default)"`
	MaxVariants  int    `help:"Variant expansion cap (0 = uncapped)"`
}

// ProfileListCmd is the "profile list" subcommand.
type ProfileListCmd struct{}

// ProfileDeleteCmd is the "profile delete" subcommand.
type ProfileDeleteCmd struct {
	Name  string `arg:"" help:"Profile name"`
	Force bool   `help:"Confirm deletion"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Profile string `arg:"" help:"Profile name"`
	URL     string `arg:"" help:"Product page URL"`
	Render  bool   `short:"r" help:"Render the page in a headless browser"`
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Render bool   `short:"r" help:"Render the page in a headless browser"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Profile     string  `arg:"" help:"Profile name"`
	URL         string  `arg:"" help:"Storefront base URL"`
	Render      bool    `short:"r" help:"Render pages in a headless browser"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent page limit"`
	RPS         float64 `default:"1" help:"Requests per second per domain"`
}

// ResultCmd is the "result" subcommand.
type ResultCmd struct {
	Profile string `arg:"" help:"Profile name"`
}
