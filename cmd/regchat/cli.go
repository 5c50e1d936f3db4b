package main

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/regchat"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "regchat.yaml"

// testQuestionSep separates test questions given as a single value.
const testQuestionSep = "|"

// CLI defines the command-line interface structure for Kong. Every flag
// can also be set in the YAML configuration file using its snake_case name.
type CLI struct {
	ConfigFile kong.ConfigFlag `name:"config" help:"YAML configuration file." placeholder:"PATH"`

	SourceURL string `name:"source-url" default:"${source_url}" help:"Regulation page to chat about."`

	Provider       string `enum:"openai,gemini,ollama" default:"${provider}" help:"Language model provider (${enum})."`
	Model          string `default:"${model}" help:"Chat model identifier."`
	EmbeddingModel string `help:"Embedding model identifier. Defaults to the provider's embedding model."`
	OllamaHost     string `default:"${ollama_host}" help:"Ollama server URL."`

	LogFile    string `default:"${log_file}" help:"Log file path."`
	PromptPath string `default:"${prompt_path}" help:"Prompt template path."`
	IndexPath  string `default:"${index_path}" help:"SQLite database holding the vector collection."`

	ChunkSize    int `default:"${chunk_size}" help:"Maximum chunk size in characters."`
	ChunkOverlap int `default:"${chunk_overlap}" help:"Characters shared by consecutive chunks."`
	TopK         int `name:"top-k" default:"${top_k}" help:"Chunks retrieved per question."`
	MaxWidth     int `default:"${max_width}" help:"Display width of answers. 0 disables wrapping."`

	IgnoreOfficialInterpretation bool     `default:"true" negatable:"" help:"Drop official interpretation paragraphs."`
	InterpretationPrefixes       []string `default:"${interpretation_prefixes}" sep:"," help:"Paragraph prefixes that mark official interpretations."`

	SanityCheck          bool   `help:"Add the sanity check statement to the indexed text."`
	SanityCheckStatement string `default:"${sanity_check_statement}" help:"Statement added by --sanity-check."`

	HistoryLimit int  `help:"Most recent exchanges replayed into each prompt. 0 replays all."`
	Outline      bool `help:"Indent paragraphs by regulatory hierarchy before indexing."`

	EmbedRPS       float64 `name:"embed-rps" default:"${embed_rps}" help:"Embedding requests per second. 0 disables the limit."`
	EmbedBatchSize int     `default:"${embed_batch_size}" help:"Texts per embedding request."`

	SelfTest      bool     `help:"Answer the test questions and exit."`
	TestQuestions []string `default:"${test_questions}" sep:"|" help:"Questions asked by --self-test, separated by '|'."`

	Telemetry     bool   `help:"Write OpenTelemetry traces and metrics."`
	TelemetryFile string `default:"${telemetry_file}" help:"Telemetry output path."`

	FetchTimeout time.Duration `default:"${fetch_timeout}" help:"Timeout for retrieving the regulation page."`
	Debug        bool          `help:"Enable debug logging."`
}

// Config converts parsed flags into a regchat.Config.
func (c *CLI) Config() regchat.Config {
	return regchat.Config{
		SourceURL:                    c.SourceURL,
		Provider:                     c.Provider,
		Model:                        c.Model,
		EmbeddingModel:               c.EmbeddingModel,
		OllamaHost:                   c.OllamaHost,
		LogFile:                      c.LogFile,
		PromptPath:                   c.PromptPath,
		IndexPath:                    c.IndexPath,
		ChunkSize:                    c.ChunkSize,
		ChunkOverlap:                 c.ChunkOverlap,
		TopK:                         c.TopK,
		MaxWidth:                     c.MaxWidth,
		IgnoreOfficialInterpretation: c.IgnoreOfficialInterpretation,
		InterpretationPrefixes:       c.InterpretationPrefixes,
		SanityCheck:                  c.SanityCheck,
		SanityCheckStatement:         c.SanityCheckStatement,
		HistoryLimit:                 c.HistoryLimit,
		Outline:                      c.Outline,
		EmbedRPS:                     c.EmbedRPS,
		EmbedBatchSize:               c.EmbedBatchSize,
		TestQuestions:                c.TestQuestions,
		Telemetry:                    c.Telemetry,
		TelemetryFile:                c.TelemetryFile,
		Debug:                        c.Debug,
		FetchTimeout:                 c.FetchTimeout,
	}
}

// NewParser creates the Kong parser for cli.
func NewParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("regchat"),
		kong.Description("Chat with a regulation page. Questions are read from standard input, one per line."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(defaultVars(regchat.DefaultConfig())),
		kong.Configuration(YAMLLoader, DefaultConfigFile),
	)
}

func defaultVars(d regchat.Config) kong.Vars {
	return kong.Vars{
		"source_url":              d.SourceURL,
		"provider":                d.Provider,
		"model":                   d.Model,
		"ollama_host":             d.OllamaHost,
		"log_file":                d.LogFile,
		"prompt_path":             d.PromptPath,
		"index_path":              d.IndexPath,
		"chunk_size":              strconv.Itoa(d.ChunkSize),
		"chunk_overlap":           strconv.Itoa(d.ChunkOverlap),
		"top_k":                   strconv.Itoa(d.TopK),
		"max_width":               strconv.Itoa(d.MaxWidth),
		"interpretation_prefixes": strings.Join(d.InterpretationPrefixes, ","),
		"sanity_check_statement":  d.SanityCheckStatement,
		"embed_rps":               strconv.FormatFloat(d.EmbedRPS, 'g', -1, 64),
		"embed_batch_size":        strconv.Itoa(d.EmbedBatchSize),
		"test_questions":          strings.Join(d.TestQuestions, testQuestionSep),
		"telemetry_file":          d.TelemetryFile,
		"fetch_timeout":           d.FetchTimeout.String(),
	}
}

func isHelp(arg string) bool {
	return arg == "help" || arg == "--help" || arg == "-h"
}
