package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/charset"
	"github.com/fwojciec/pagedigest/crawl"
	"github.com/fwojciec/pagedigest/fs"
	"github.com/fwojciec/pagedigest/goquery"
	pdhttp "github.com/fwojciec/pagedigest/http"
	pdslog "github.com/fwojciec/pagedigest/slog"
	"github.com/fwojciec/pagedigest/sqlite"
	"golang.org/x/text/language"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagedigest"),
		kong.Description("Extract title, text and icon from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"user_agent": pdhttp.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URLs provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	locale, err := language.Parse(cli.Lang)
	if err != nil {
		return pagedigest.Errorf(pagedigest.EINVALID, "invalid --lang %q: %v", cli.Lang, err)
	}

	filter, err := pagedigest.CompileURLFilter(cli.Include, cli.Exclude)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	var fetcher pagedigest.Fetcher = pdhttp.NewFetcher(
		pdhttp.WithTimeout(cli.Timeout),
		pdhttp.WithUserAgent(cli.UserAgent),
	)
	defer fetcher.Close()

	var source pagedigest.URLSource = pdhttp.NewSitemapService(
		&http.Client{Timeout: cli.Timeout},
		pdhttp.WithFilter(filter),
		pdhttp.WithMaxURLs(cli.MaxURLs),
		pdhttp.WithSitemapUserAgent(cli.UserAgent),
	)

	if cli.Debug {
		fetcher = pdslog.NewLoggingFetcher(fetcher, logger)
		source = pdslog.NewLoggingURLSource(source, logger)
	}
	deps.Source = source

	var limiter pagedigest.DomainLimiter
	if cli.RPS > 0 {
		limiter = crawl.NewDomainLimiter(cli.RPS)
	}

	deps.Extractor = &crawl.Crawler{
		Fetcher:     fetcher,
		Decoder:     charset.NewDecoder(),
		Parser:      goquery.NewParser(),
		RateLimiter: limiter,
		Concurrency: cli.Concurrency,
		RetryDelays: retryDelays(cli.Retries),
		Locale:      locale,
		Logger:      logger,
	}

	if cli.History {
		if cli.DB == "" {
			return pagedigest.Errorf(pagedigest.EINVALID, "--history requires --db")
		}
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Pages = sqlite.NewPageService(m.DB)

		cmd := &HistoryCmd{URLs: cli.URLs, Format: cli.Format}
		return cmd.Run(deps)
	}

	if !cli.Preview {
		if cli.Out != "" {
			out := filepath.Clean(cli.Out)
			store := fs.NewFileStore(filepath.Dir(out), filepath.Base(out))
			if err := store.CheckTarget(); err != nil {
				return err
			}
			deps.Stores = append(deps.Stores, pdslog.NewLoggingPageStore(store, logger))
		}

		if cli.DB != "" {
			if err := m.openDB(cli.DB, stderr); err != nil {
				return err
			}
			defer m.Close()

			store, err := sqlite.NewPageStore(ctx, m.DB)
			if err != nil {
				return err
			}
			deps.Stores = append(deps.Stores, pdslog.NewLoggingPageStore(store, logger))
		}
	}

	cmd := &ExtractCmd{
		URLs:    cli.URLs,
		Sitemap: cli.Sitemap,
		Preview: cli.Preview,
		Format:  cli.Format,
	}

	return cmd.Run(deps)
}

// openDB opens the SQLite database at path into m.DB.
func (m *Main) openDB(path string, stderr io.Writer) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set PAGEDIGEST_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs []string `arg:"" name:"url" help:"Page URLs to extract (or site URLs with --sitemap)"`

	Sitemap bool     `short:"s" help:"Treat arguments as sites and extract every page in their sitemaps"`
	Preview bool     `short:"p" help:"With --sitemap, list discovered URLs without fetching"`
	Include []string `help:"Regexp a sitemap URL must match (repeatable)"`
	Exclude []string `help:"Regexp excluding sitemap URLs (repeatable)"`
	MaxURLs int      `name:"max-urls" default:"0" help:"Maximum URLs taken from sitemaps (0 = unlimited)"`

	Concurrency int           `short:"c" default:"10" env:"PAGEDIGEST_CONCURRENCY" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" default:"10s" env:"PAGEDIGEST_TIMEOUT" help:"Fetch timeout per page"`
	Retries     int           `default:"3" help:"Retries for failed fetches (0-3)"`
	RPS         float64       `name:"rps" default:"0" help:"Requests per second per host (0 = unlimited)"`
	UserAgent   string        `name:"user-agent" default:"${user_agent}" help:"User-Agent header"`
	Lang        string        `short:"l" default:"en" env:"PAGEDIGEST_LANG" help:"Language for the fallback title"`

	Format  string `short:"f" default:"text" enum:"text,json" help:"Output format (text, json)"`
	Out     string `short:"o" type:"path" help:"Directory to write pages to as markdown files; replaces earlier pagedigest output there"`
	DB      string `type:"path" env:"PAGEDIGEST_DB" help:"SQLite database to record the batch in"`
	History bool   `help:"Print the latest stored version of each URL from --db instead of fetching"`
	Debug   bool   `short:"d" help:"Log fetches and skipped pages to stderr"`
}

// retryDelays returns the first n default retry delays.
func retryDelays(n int) []time.Duration {
	delays := crawl.DefaultRetryDelays()
	n = max(0, min(n, len(delays)))
	return delays[:n]
}
