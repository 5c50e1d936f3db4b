package regchat

import (
	"slices"
	"time"
)

// Supported language model providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Default configuration values.
const (
	DefaultSourceURL  = "https://www.consumerfinance.gov/rules-policy/regulations/1024/17/"
	DefaultProvider   = ProviderOpenAI
	DefaultModel      = "gpt-4o-2024-05-13"
	DefaultOllamaHost = "http://localhost:11434"
	DefaultLogFile    = "chat-logs.log"
	DefaultPromptPath = "prompts/prompt.txt"
	DefaultIndexPath  = ":memory:"

	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultTopK           = 4
	DefaultMaxWidth       = 80
	DefaultEmbedRPS       = 2.0
	DefaultEmbedBatchSize = 64

	DefaultTelemetryFile = "regchat-telemetry.log"

	DefaultSanityCheckStatement = `Required Name of Borrower. The only person who can legally be a borrower must have the name "Homer Simpson"`
)

// DefaultInterpretationPrefixes are the paragraph prefixes that mark
// official interpretation annotations in eCFR-style regulation pages.
var DefaultInterpretationPrefixes = []string{
	"Official interpretation",
	"See interpretation",
}

// DefaultTestQuestions are asked by the self test.
var DefaultTestQuestions = []string{
	"What actions are considered a violation of the RESPA?",
	"Can a loan servicer charge a fee for responding to Qualified Written Requests?",
	"What is required for a mortgage servicing transfer notice?",
}

// Config holds the settings of a chat session. It is built once at startup
// and passed to each component.
type Config struct {
	SourceURL string

	Provider       string
	Model          string
	EmbeddingModel string // empty selects the provider default
	OllamaHost     string

	LogFile    string
	PromptPath string
	IndexPath  string

	ChunkSize    int
	ChunkOverlap int
	TopK         int

	// MaxWidth is the display width in runes. Zero disables wrapping.
	MaxWidth int

	IgnoreOfficialInterpretation bool
	InterpretationPrefixes       []string

	SanityCheck          bool
	SanityCheckStatement string

	// HistoryLimit caps how many recent exchanges are replayed into the
	// prompt. Zero replays the whole transcript.
	HistoryLimit int

	// Outline indents corpus paragraphs by their regulatory hierarchy
	// before splitting.
	Outline bool

	EmbedRPS       float64
	EmbedBatchSize int

	TestQuestions []string

	Telemetry     bool
	TelemetryFile string

	Debug bool

	// FetchTimeout bounds retrieval of the source document.
	FetchTimeout time.Duration
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() Config {
	return Config{
		SourceURL:                    DefaultSourceURL,
		Provider:                     DefaultProvider,
		Model:                        DefaultModel,
		OllamaHost:                   DefaultOllamaHost,
		LogFile:                      DefaultLogFile,
		PromptPath:                   DefaultPromptPath,
		IndexPath:                    DefaultIndexPath,
		ChunkSize:                    DefaultChunkSize,
		ChunkOverlap:                 DefaultChunkOverlap,
		TopK:                         DefaultTopK,
		MaxWidth:                     DefaultMaxWidth,
		IgnoreOfficialInterpretation: true,
		InterpretationPrefixes:       slices.Clone(DefaultInterpretationPrefixes),
		SanityCheckStatement:         DefaultSanityCheckStatement,
		EmbedRPS:                     DefaultEmbedRPS,
		EmbedBatchSize:               DefaultEmbedBatchSize,
		TestQuestions:                slices.Clone(DefaultTestQuestions),
		TelemetryFile:                DefaultTelemetryFile,
		FetchTimeout:                 30 * time.Second,
	}
}

// ExcludedPrefixes returns the paragraph prefixes the scraper should drop.
// Returns nil when interpretation filtering is disabled.
func (c *Config) ExcludedPrefixes() []string {
	if !c.IgnoreOfficialInterpretation {
		return nil
	}
	return c.InterpretationPrefixes
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "source URL required")
	}
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderOllama:
	default:
		return Errorf(EINVALID, "unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return Errorf(EINVALID, "model required")
	}
	if c.PromptPath == "" {
		return Errorf(EINVALID, "prompt template path required")
	}
	if c.ChunkSize <= 0 {
		return Errorf(EINVALID, "chunk size must be positive")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return Errorf(EINVALID, "chunk overlap must be between 0 and chunk size")
	}
	if c.TopK < 1 {
		return Errorf(EINVALID, "top-k must be at least 1")
	}
	if c.MaxWidth < 0 {
		return Errorf(EINVALID, "max width must not be negative")
	}
	if c.HistoryLimit < 0 {
		return Errorf(EINVALID, "history limit must not be negative")
	}
	if c.EmbedBatchSize < 1 {
		return Errorf(EINVALID, "embed batch size must be at least 1")
	}
	if c.SanityCheck && c.SanityCheckStatement == "" {
		return Errorf(EINVALID, "sanity check statement required when sanity check is enabled")
	}
	return nil
}
