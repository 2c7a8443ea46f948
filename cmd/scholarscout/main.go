package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/config"
	"github.com/csheth/scholarscout/internal/leadgate"
	"github.com/csheth/scholarscout/internal/llm"
	"github.com/csheth/scholarscout/internal/logging"
	"github.com/csheth/scholarscout/internal/results"
	"github.com/csheth/scholarscout/internal/scholar"
	"github.com/csheth/scholarscout/internal/store"
	"github.com/csheth/scholarscout/internal/tui"
)

type flags struct {
	configPath  string
	noAltScreen bool
	useKeyring  bool
	setAPIKey   bool
	logLevel    string
	provider    string
	llmModel    string
	llmEndpoint string
	storage     string
}

func main() {
	var f flags
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = "config.yaml"
	}
	flag.StringVar(&f.configPath, "config", defaultConfig, "path to the YAML config file")
	flag.BoolVar(&f.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	flag.BoolVar(&f.useKeyring, "keyring", true, "read the API key from the OS keychain")
	flag.BoolVar(&f.setAPIKey, "set-api-key", false, "read an API key from stdin, store it in the OS keychain and exit")
	flag.StringVar(&f.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	flag.StringVar(&f.provider, "llm-provider", "", "override llm.provider (gemini, openai, ollama)")
	flag.StringVar(&f.llmModel, "llm-model", "", "override the model for the selected provider")
	flag.StringVar(&f.llmEndpoint, "llm-endpoint", "", "custom API base URL or Ollama host")
	flag.StringVar(&f.storage, "storage", "", "override storage.backend (file, sqlite, memory)")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Fprintln(os.Stderr, "scholarscout:", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, f)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if f.setAPIKey {
		return storeAPIKey(cfg.LLM.Provider)
	}

	dataDir := config.DataDir()
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(dataDir, "scholarscout.log")
	}
	log, logCloser, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logCloser.Close()
	log.Info().Str("config", f.configPath).Str("provider", cfg.LLM.Provider).Msg("starting")

	storePath := cfg.Storage.Path
	if storePath == "" {
		storePath = store.DefaultPath(dataDir, cfg.Storage.Backend)
	}
	kv, err := store.Open(store.Options{Backend: cfg.Storage.Backend, Path: storePath})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finder := scholar.NewFinder(newSearcher(ctx, cfg, f.useKeyring, log), scholar.FinderOptions{
		ScholarshipCount:  cfg.Search.ScholarshipCount,
		ArticleCount:      cfg.Search.ArticleCount,
		RequestsPerMinute: cfg.Search.RequestsPerMinute,
		CacheDir:          cfg.Search.CacheDir,
		CacheTTL:          cfg.Search.CacheTTL,
		DisableCache:      cfg.Search.DisableCache,
	}, log)

	mailer := leadgate.NewSimulatedMailer(cfg.Gate.AdminEmail, cfg.Gate.ActivationURL, log)
	mailer.Delay = cfg.Gate.MailDelay
	gate := leadgate.New(mailer, store.NewUsedEmails(kv, log), log)

	sortMode := results.ParseSortMode(cfg.Search.DefaultSort)
	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !f.noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Finder:        finder,
			Gate:          gate,
			History:       store.NewHistory(kv, log),
			Bookmarks:     store.NewBookmarks(kv, log),
			PerPage:       cfg.Search.PerPage,
			DefaultSort:   sortMode,
			RevealStep:    cfg.News.RevealStep,
			SearchTimeout: cfg.LLM.Timeout,
			Logger:        log,
		}),
		opts...,
	)

	stop, err := startNewsRefresh(cfg.News.RefreshSchedule, program.Send, log)
	if err != nil {
		return err
	}
	defer stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	log.Info().Msg("exiting")
	return nil
}

func applyFlags(cfg *config.Config, f flags) {
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.provider != "" {
		cfg.LLM.Provider = f.provider
	}
	if f.llmModel != "" {
		cfg.LLM.Model = f.llmModel
	}
	if f.llmEndpoint != "" {
		cfg.LLM.Endpoint = f.llmEndpoint
	}
	if f.storage != "" {
		cfg.Storage.Backend = f.storage
	}
}

// newSearcher builds the configured backend. Any failure leaves the app usable with a
// searcher that reports the reason on every query.
func newSearcher(ctx context.Context, cfg config.Config, useKeyring bool, log zerolog.Logger) llm.Searcher {
	var apiKey string
	if useKeyring && !strings.EqualFold(cfg.LLM.Provider, llm.ProviderOllama) {
		key, err := config.APIKey(cfg.LLM.Provider)
		if err != nil {
			log.Warn().Err(err).Msg("keychain lookup failed")
		}
		apiKey = key
	}
	var httpClient *http.Client
	if cfg.LLM.Timeout > 0 {
		httpClient = &http.Client{Timeout: cfg.LLM.Timeout}
	}
	searcher, err := llm.New(ctx, llm.Config{
		Provider:   cfg.LLM.Provider,
		Model:      cfg.LLM.Model,
		Endpoint:   cfg.LLM.Endpoint,
		APIKey:     apiKey,
		HTTPClient: httpClient,
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("search backend disabled")
		if !errors.Is(err, llm.ErrNotConfigured) {
			err = fmt.Errorf("%w: %v", llm.ErrNotConfigured, err)
		}
		return llm.Unavailable(err)
	}
	return searcher
}

func storeAPIKey(provider string) error {
	fmt.Fprintf(os.Stderr, "Paste the %s API key and press Enter: ", provider)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read api key: %w", err)
	}
	if err := config.SetAPIKey(provider, line); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}
	fmt.Fprintln(os.Stderr, "API key saved to the OS keychain.")
	return nil
}
