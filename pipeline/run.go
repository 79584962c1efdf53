// Package pipeline orchestrates product extraction runs: fetching,
// sanitizing, extracting, variant expansion, record assembly, and
// upload.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/prodsync/prodsync"
)

// Runner executes single-page extraction runs against a profile.
type Runner struct {
	Fetcher    prodsync.Fetcher
	Sanitizer  prodsync.Sanitizer
	Extractors prodsync.ExtractorRegistry
	Uploader   prodsync.Uploader

	// Notifier receives progress and the terminal result event.
	// Optional; nil means no notifications.
	Notifier prodsync.Notifier

	// Results caches the terminal outcome per profile. Optional.
	Results prodsync.ResultCache
}

// Outcome is the terminal result of a successful run.
type Outcome struct {
	Record      *prodsync.ProductRecord `json:"record"`
	Upload      *prodsync.UploadResult  `json:"upload"`
	ContentHash string                  `json:"contentHash"`
}

// Run executes one extraction run: fetch, sanitize, extract, expand,
// assemble, upload. At most one terminal ResultEvent is emitted per
// run, carrying either the outcome or the error; a panic anywhere in
// the pipeline is converted into that single error event rather than
// crashing the caller. A page that is recognizably not a product page
// (ENOTPRODUCT) is a clean early exit: the error is returned to the
// caller but no result event is emitted and nothing is cached.
func (r *Runner) Run(ctx context.Context, profile *prodsync.Profile, pageURL string) (outcome *Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = prodsync.Errorf(prodsync.EINTERNAL, "pipeline panic: %v", p)
		}
		switch {
		case err == nil:
			r.notify(prodsync.ResultEvent{Data: outcome})
			r.cache(ctx, profile, pageURL, outcome, nil)
		case prodsync.ErrorCode(err) == prodsync.ENOTPRODUCT:
			r.notify(prodsync.LogEvent{Message: "not a product page: " + pageURL})
		default:
			r.notify(prodsync.ResultEvent{Err: err})
			r.cache(ctx, profile, pageURL, nil, err)
		}
	}()

	r.notify(prodsync.StatusEvent{Current: "fetching"})
	html, err := r.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	r.notify(prodsync.StatusEvent{Current: "cleaning"})
	cleaned, err := r.Sanitizer.Clean(html)
	if err != nil {
		return nil, err
	}
	hash := ComputeHash(cleaned.BodyMarkup)

	extractor := r.Extractors.Get(profile.Storefront)
	if extractor == nil {
		extractor = r.Extractors.GetForHTML(html)
	}
	r.notify(prodsync.LogEvent{Message: "using " + extractor.Name() + " extractor"})

	r.notify(prodsync.StatusEvent{Current: "extracting"})
	ex, err := extractor.Extract(ctx, &prodsync.Page{URL: pageURL, HTML: html})
	if err != nil {
		return nil, err
	}

	variants := ex.Variants
	if len(variants) == 0 {
		r.notify(prodsync.StatusEvent{Current: "expanding variants"})
		variants, err = prodsync.ExpandVariants(ex.OptionGroups, prodsync.ExpandConfig{
			BaseSKU:      ex.BaseSKU,
			Price:        prodsync.NormalizePrice(ex.PriceRaw),
			DefaultStock: profile.Stock(),
			MaxVariants:  profile.MaxVariants,
		})
		if err != nil {
			return nil, err
		}
	}
	r.notify(prodsync.StatusEvent{Current: "assembling", Captured: len(variants)})

	record := prodsync.BuildProductRecord(profile, ex, variants)

	r.notify(prodsync.StatusEvent{Current: "uploading"})
	upload, err := r.Uploader.Submit(ctx, record)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Record:      record,
		Upload:      upload,
		ContentHash: hash,
	}, nil
}

// notify delivers an event without blocking the run.
func (r *Runner) notify(event prodsync.Event) {
	if r.Notifier != nil {
		r.Notifier.Notify(event)
	}
}

// cache writes the terminal outcome to the result cache. Cache failures
// never fail the run.
func (r *Runner) cache(ctx context.Context, profile *prodsync.Profile, pageURL string, outcome *Outcome, runErr error) {
	if r.Results == nil || profile.ID == "" {
		return
	}

	result := &prodsync.RunResult{
		ProfileID: profile.ID,
		PageURL:   pageURL,
	}
	if runErr != nil {
		result.Error = runErr.Error()
	} else {
		result.ContentHash = outcome.ContentHash
		if payload, err := json.Marshal(outcome); err == nil {
			result.Payload = string(payload)
		}
	}

	if err := r.Results.SetResult(ctx, result); err != nil {
		r.notify(prodsync.LogEvent{Message: "result cache write failed: " + err.Error()})
	}
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
