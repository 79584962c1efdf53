package slog

import (
	"log/slog"
	"time"

	"github.com/prodsync/prodsync"
)

// Ensure LoggingRegistry implements prodsync.ExtractorRegistry.
var _ prodsync.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry with debug logging for
// storefront detection.
type LoggingRegistry struct {
	next     prodsync.ExtractorRegistry
	detector prodsync.StorefrontDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next prodsync.ExtractorRegistry, detector prodsync.StorefrontDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(storefront prodsync.Storefront) prodsync.ProductExtractor {
	return r.next.Get(storefront)
}

// GetForHTML detects the storefront, logs it, and returns the
// appropriate extractor.
func (r *LoggingRegistry) GetForHTML(html string) prodsync.ProductExtractor {
	begin := time.Now()
	storefront := r.detector.Detect(html)
	storefrontName := string(storefront)
	if storefront == prodsync.StorefrontUnknown {
		storefrontName = "(unknown)"
	}
	r.logger.Info("storefront detection",
		"storefront", storefrontName,
		"duration", time.Since(begin),
	)
	return r.next.GetForHTML(html)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(storefront prodsync.Storefront, extractor prodsync.ProductExtractor) {
	r.next.Register(storefront, extractor)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []prodsync.Storefront {
	return r.next.List()
}
