package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/crawl"
	"github.com/fwojciec/darkcrawl/gemini"
	"github.com/fwojciec/darkcrawl/goquery"
	"github.com/fwojciec/darkcrawl/htmltomarkdown"
	"github.com/fwojciec/darkcrawl/png"
	"github.com/fwojciec/darkcrawl/rod"
	dcslog "github.com/fwojciec/darkcrawl/slog"
	"github.com/fwojciec/darkcrawl/sqlite"
	"github.com/fwojciec/darkcrawl/trafilatura"
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
	EntryService darkcrawl.EntryService
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
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("darkcrawl"),
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
		return fmt.Errorf("no command specified. Run 'darkcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DARKCRAWL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.EntryService = dcslog.NewLoggingEntryService(sqlite.NewEntryService(m.DB), logger)
	deps.DB = m.DB
	deps.Entries = m.EntryService

	if cmd == "crawl" {
		rodBrowser, err := rod.NewBrowser(rod.WithScrollIterations(cli.Crawl.ScrollIterations))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		browser := rod.NewLoggingBrowser(rodBrowser, logger)
		defer browser.Close()

		var analyzer darkcrawl.Analyzer
		model := "none"
		if cli.Crawl.DiscoverOnly {
			analyzer = discoverOnlyAnalyzer{}
		} else {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			analyzer = dcslog.NewLoggingAnalyzer(gemini.NewAnalyzer(client,
				gemini.WithExtractor(trafilatura.NewExtractor()),
				gemini.WithConverter(htmltomarkdown.NewConverter()),
				gemini.WithLogger(logger),
			), logger)
			model = gemini.Model
		}

		deps.Controller = &crawl.Controller{
			Browser:             browser,
			Snapshot:            goquery.NewLinkExtractor(),
			Analyzer:            analyzer,
			Cropper:             png.NewCropper(),
			Entries:             m.EntryService,
			Pacer:               crawl.NewPacer(cli.Crawl.Delay),
			Logger:              logger,
			Model:               model,
			MaxPages:            cli.Crawl.MaxPages,
			AnalysisConcurrency: cli.Crawl.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// discoverOnlyAnalyzer records coverage without calling an inference
// service. Every page produces an entry with zero findings.
type discoverOnlyAnalyzer struct{}

func (discoverOnlyAnalyzer) Analyze(ctx context.Context, page *darkcrawl.CapturedPage) (*darkcrawl.FindingsResponse, error) {
	return &darkcrawl.FindingsResponse{Attempts: 1}, nil
}

func defaultDBPath() string {
	if path := os.Getenv("DARKCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "darkcrawl.db"
	}
	dir := filepath.Join(home, ".darkcrawl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "darkcrawl.db")
}
