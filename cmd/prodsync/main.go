package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/prodsync/prodsync"
	"github.com/prodsync/prodsync/gemini"
	"github.com/prodsync/prodsync/goquery"
	"github.com/prodsync/prodsync/htmltomarkdown"
	prodhttp "github.com/prodsync/prodsync/http"
	"github.com/prodsync/prodsync/pipeline"
	"github.com/prodsync/prodsync/rod"
	prodslog "github.com/prodsync/prodsync/slog"
	"github.com/prodsync/prodsync/sqlite"
	"github.com/prodsync/prodsync/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProfileService prodsync.ProfileService
	ResultCache    prodsync.ResultCache
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("prodsync"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'prodsync --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PRODSYNC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ProfileService = sqlite.NewProfileService(m.DB)
	m.ResultCache = sqlite.NewResultCache(m.DB)
	deps.DB = m.DB
	deps.Profiles = m.ProfileService
	deps.Results = m.ResultCache
	deps.NewUploader = func(endpoint string) prodsync.Uploader {
		return prodhttp.NewUploader(endpoint)
	}

	// Wire page-processing dependencies for commands that touch live pages.
	if cmd == "run" || cmd == "clean" || cmd == "sync" {
		logger := slog.New(slog.NewTextHandler(stderr, nil))

		render := cli.Run.Render || cli.Clean.Render || cli.Sync.Render
		if render {
			fetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
			deps.Fetcher = fetcher
		} else {
			deps.Fetcher = prodhttp.NewFetcher()
		}

		sanitizer := goquery.NewSanitizer()
		deps.Sanitizer = sanitizer
		deps.Converter = htmltomarkdown.NewConverter()
		deps.Notifier = prodslog.NewNotifier(prodsync.NopNotifier{}, logger)

		// Build the extractor registry. The Shopify extractor fetches the
		// storefront's product JSON endpoint over plain HTTP regardless of
		// how the page itself was fetched.
		detector := goquery.NewDetector()
		generic := goquery.NewGenericExtractor(trafilatura.NewExtractor())
		registry := goquery.NewRegistry(detector, generic)
		registry.Register(prodsync.StorefrontMagento, goquery.NewMagentoExtractor())
		registry.Register(prodsync.StorefrontShopify, goquery.NewShopifyExtractor(prodhttp.NewFetcher()))
		registry.Register(prodsync.StorefrontGeneric, generic)

		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			registry.Register(prodsync.StorefrontGemini, gemini.NewExtractor(client, sanitizer))
		}

		deps.Extractors = prodslog.NewLoggingRegistry(registry, detector, logger)
	}

	if cmd == "sync" {
		deps.Source = prodhttp.NewSitemapSource(nil)
		deps.Limiter = pipeline.NewDomainLimiter(cli.Sync.RPS)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PRODSYNC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "prodsync.db"
	}
	dir := filepath.Join(home, ".prodsync")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "prodsync.db")
}
