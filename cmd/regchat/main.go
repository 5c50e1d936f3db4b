package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fwojciec/regchat"
	"github.com/fwojciec/regchat/fs"
	"github.com/fwojciec/regchat/gemini"
	"github.com/fwojciec/regchat/goquery"
	regchathttp "github.com/fwojciec/regchat/http"
	"github.com/fwojciec/regchat/ollama"
	"github.com/fwojciec/regchat/openai"
	regchatotel "github.com/fwojciec/regchat/otel"
	"github.com/fwojciec/regchat/rag"
	regchatslog "github.com/fwojciec/regchat/slog"
	"github.com/fwojciec/regchat/sqlite"
	"github.com/google/uuid"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Unblock the pending stdin read on interrupt.
	context.AfterFunc(ctx, func() { os.Stdin.Close() })

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", regchat.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Built from configuration when nil.
	Fetcher      regchat.Fetcher
	Streamer     regchat.Streamer
	Embedder     regchat.Embedder
	TokenCounter regchat.TokenCounter

	// LogWriter replaces the rotating log file when set.
	LogWriter io.Writer

	// Getenv looks up provider credentials.
	Getenv func(string) string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// telemetryInterval is how often metrics are written to the telemetry file.
const telemetryInterval = 30 * time.Second

// shutdownTimeout bounds cleanup after the session ends.
const shutdownTimeout = 5 * time.Second

// Run parses args, builds the index for the configured page and answers
// questions read from stdin until EOF or ctx is done.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	cli := &CLI{}
	parser, err := NewParser(cli, stdout, stderr)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if slices.ContainsFunc(args, isHelp) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return regchat.Errorf(regchat.EINVALID, "%v", err)
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog := m.openLog(cfg)
	defer closeLog()
	defer func() {
		if err != nil {
			logger.Error("regchat failed", "err", err)
		}
	}()
	logger.Info("starting", "url", cfg.SourceURL, "provider", cfg.Provider, "model", cfg.Model)

	tmpl, err := fs.LoadPromptTemplate(cfg.PromptPath)
	if err != nil {
		return err
	}

	streamer, embedder, err := m.models(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Telemetry {
		providers, shutdown, err := openTelemetry(ctx, cfg.TelemetryFile)
		if err != nil {
			return err
		}
		defer shutdown(context.WithoutCancel(ctx), logger)

		if streamer, err = regchatotel.NewStreamer(streamer, providers.Tracer(), providers.Meter()); err != nil {
			return err
		}
		if embedder, err = regchatotel.NewEmbedder(embedder, providers.Tracer(), providers.Meter()); err != nil {
			return err
		}
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = regchathttp.NewFetcher(regchathttp.WithTimeout(cfg.FetchTimeout))
	}
	fetcher = regchatslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	db := sqlite.NewDB(cfg.IndexPath)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open index database at %q: %w", cfg.IndexPath, err)
	}
	defer db.Close()

	collection, err := sqlite.CreateCollection(ctx, db, "regchat-"+uuid.NewString())
	if err != nil {
		return err
	}
	defer func() {
		dropCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := collection.Drop(dropCtx); err != nil {
			logger.Error("failed to drop collection", "collection", collection.Name, "err", err)
		}
	}()

	scraper := regchatslog.NewLoggingScraper(
		goquery.NewScraper(fetcher, goquery.WithExcludedPrefixes(cfg.ExcludedPrefixes()...)),
		logger,
	)
	page, err := scraper.Scrape(ctx, cfg.SourceURL)
	if err != nil {
		return err
	}
	printBanner(stdout, page.Title)

	var extra []string
	if cfg.SanityCheck {
		extra = append(extra, cfg.SanityCheckStatement)
	}

	indexer := &rag.Indexer{
		Splitter:  regchat.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		Embedder:  embedder,
		Index:     collection,
		Limiter:   rag.NewLimiter(cfg.EmbedRPS),
		BatchSize: cfg.EmbedBatchSize,
		Logger:    logger,
	}
	if _, err := indexer.IndexText(ctx, rag.Corpus(page, cfg.Outline, extra...)); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	session := &rag.Session{
		Asker: &rag.Pipeline{
			Embedder:     embedder,
			Index:        collection,
			Streamer:     streamer,
			Template:     tmpl,
			TopK:         cfg.TopK,
			TokenCounter: m.tokenCounter(cfg, logger),
			Logger:       logger,
		},
		Conversation: regchat.NewConversation(cfg.HistoryLimit),
		Formatter:    regchat.NewStreamFormatter(cfg.MaxWidth, logger),
		Stdout:       stdout,
		Stderr:       stderr,
		Logger:       logger,
	}

	if cli.SelfTest {
		for _, q := range cfg.TestQuestions {
			fmt.Fprintf(stdout, "%s%s\n", rag.QuestionPrompt, q)
			session.Questions(ctx, q)
		}
		return nil
	}
	return session.Run(ctx, stdin)
}

// openLog returns a text logger writing to the rotating log file, or to
// LogWriter when set.
func (m *Main) openLog(cfg regchat.Config) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	w, closeFn := m.LogWriter, func() {}
	if w == nil {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w, closeFn = lj, func() { lj.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn
}

// models builds the configured provider's streamer and embedder, wrapped
// with logging.
func (m *Main) models(ctx context.Context, cfg regchat.Config, logger *slog.Logger) (regchat.Streamer, regchat.Embedder, error) {
	streamer, embedder := m.Streamer, m.Embedder

	if streamer == nil || embedder == nil {
		s, e, err := m.providerModels(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if streamer == nil {
			streamer = s
		}
		if embedder == nil {
			embedder = e
		}
	}

	return regchatslog.NewLoggingStreamer(streamer, logger), regchatslog.NewLoggingEmbedder(embedder, logger), nil
}

func (m *Main) providerModels(ctx context.Context, cfg regchat.Config) (regchat.Streamer, regchat.Embedder, error) {
	switch cfg.Provider {
	case regchat.ProviderOpenAI:
		apiKey := m.getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, nil, regchat.Errorf(regchat.EINVALID, "OPENAI_API_KEY environment variable not set")
		}
		client := openai.NewClient(apiKey, m.getenv("OPENAI_BASE_URL"))
		return openai.NewStreamer(client, cfg.Model), openai.NewEmbedder(client, cfg.EmbeddingModel), nil

	case regchat.ProviderGemini:
		apiKey := cmp.Or(m.getenv("GEMINI_API_KEY"), m.getenv("GOOGLE_API_KEY"))
		if apiKey == "" {
			return nil, nil, regchat.Errorf(regchat.EINVALID, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		}
		client, err := gemini.NewClient(ctx, apiKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewStreamer(client, cfg.Model), gemini.NewEmbedder(client, cfg.EmbeddingModel), nil

	case regchat.ProviderOllama:
		client, err := ollama.NewClient(cfg.OllamaHost)
		if err != nil {
			return nil, nil, err
		}
		return ollama.NewStreamer(client, cfg.Model), ollama.NewEmbedder(client, cfg.EmbeddingModel), nil
	}
	return nil, nil, regchat.Errorf(regchat.EINVALID, "unknown provider %q", cfg.Provider)
}

// tokenCounter returns the injected counter, or the Gemini tokenizer when
// chatting with Gemini. Prompt sizes are only logged, so a tokenizer that
// fails to load is not fatal.
func (m *Main) tokenCounter(cfg regchat.Config, logger *slog.Logger) regchat.TokenCounter {
	if m.TokenCounter != nil {
		return m.TokenCounter
	}
	if cfg.Provider != regchat.ProviderGemini {
		return nil
	}
	tc, err := gemini.NewTokenCounter(gemini.TokenizerModel)
	if err != nil {
		logger.Warn("prompt token counting disabled", "err", err)
		return nil
	}
	return tc
}

func (m *Main) getenv(key string) string {
	if m.Getenv == nil {
		return os.Getenv(key)
	}
	return m.Getenv(key)
}

// openTelemetry starts trace and metric export to a rotating file.
func openTelemetry(ctx context.Context, path string) (*regchatotel.Providers, func(context.Context, *slog.Logger), error) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	providers, err := regchatotel.NewProviders(ctx, w, telemetryInterval)
	if err != nil {
		w.Close()
		return nil, nil, err
	}

	shutdown := func(ctx context.Context, logger *slog.Logger) {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := errors.Join(providers.Shutdown(ctx), w.Close()); err != nil {
			logger.Error("failed to shut down telemetry", "err", err)
		}
	}
	return providers, shutdown, nil
}

// bannerRule underlines the page title.
var bannerRule = strings.Repeat("=", 48)

func printBanner(w io.Writer, title string) {
	if title == "" {
		return
	}
	fmt.Fprintf(w, "%s\n%s\n\n\n", title, bannerRule)
}
