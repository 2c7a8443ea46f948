package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOllamaModel = "ministral-3:latest"
)

const defaultLLMHTTPTimeout = 3 * time.Minute

// ErrNotConfigured is returned by the placeholder searcher used when no backend could be built.
var ErrNotConfigured = errors.New("search backend not configured")

// Config describes how to build a Searcher.
type Config struct {
	Provider   string
	Model      string
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// Request is one prompt for the search collaborator.
type Request struct {
	Prompt string
	// Grounded asks the backend to ground the answer in a live web search when it can.
	Grounded bool
}

// Link is a single citation target.
type Link struct {
	URI   string
	Title string
}

// Citation mirrors a grounding chunk; exactly one of Web or Maps is normally set.
type Citation struct {
	Web  *Link
	Maps *Link
}

// Response is the raw collaborator output. Text is supposed to be a JSON array but nothing
// guarantees it.
type Response struct {
	Text      string
	Citations []Citation
}

// Searcher is the generative search collaborator.
type Searcher interface {
	Search(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New builds the Searcher selected by cfg.Provider, filling blanks from the environment.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (Searcher, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	log = log.With().Str("component", "llm").Str("provider", provider).Logger()
	switch provider {
	case ProviderGemini:
		key := firstNonEmpty(cfg.APIKey, os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("gemini: %w (set GEMINI_API_KEY or store a key with -set-api-key)", ErrNotConfigured)
		}
		return newGeminiClient(ctx, key, firstNonEmpty(cfg.Model, defaultGeminiModel), cfg.Endpoint, pickHTTPClient(cfg.HTTPClient), log)
	case ProviderOpenAI:
		key := firstNonEmpty(cfg.APIKey, os.Getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("openai: %w (set OPENAI_API_KEY)", ErrNotConfigured)
		}
		return newOpenAIClient(key, firstNonEmpty(cfg.Model, defaultOpenAIModel), cfg.Endpoint, pickHTTPClient(cfg.HTTPClient), log), nil
	case ProviderOllama:
		host := firstNonEmpty(cfg.Endpoint, os.Getenv("OLLAMA_HOST"), "http://localhost:11434")
		model := firstNonEmpty(cfg.Model, os.Getenv("OLLAMA_MODEL"), defaultOllamaModel)
		return &ollamaClient{
			host:   strings.TrimRight(host, "/"),
			model:  model,
			client: pickHTTPClient(cfg.HTTPClient),
			log:    log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// Unavailable is a Searcher that always fails with reason. The UI keeps working and every
// search surfaces as a retryable transport failure.
func Unavailable(reason error) Searcher {
	return unavailable{reason: reason}
}

type unavailable struct {
	reason error
}

func (u unavailable) Search(context.Context, Request) (Response, error) {
	return Response{}, u.reason
}

func (u unavailable) Name() string {
	return "unavailable"
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Grounded generations regularly take longer than a minute; callers bound them with ctx.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
