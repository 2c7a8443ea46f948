// Package config loads the YAML settings file and the API key stored in the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const appDir = "scholarscout"

type LLM struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Search struct {
	ScholarshipCount  int           `yaml:"scholarship_count"`
	ArticleCount      int           `yaml:"article_count"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	DisableCache      bool          `yaml:"disable_cache"`
	CacheDir          string        `yaml:"cache_dir"`
	PerPage           int           `yaml:"per_page"`
	DefaultSort       string        `yaml:"default_sort"`
}

type News struct {
	RevealStep int `yaml:"reveal_step"`
	// RefreshSchedule is a five-field cron expression or descriptor; empty disables it.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type Gate struct {
	AdminEmail    string        `yaml:"admin_email"`
	ActivationURL string        `yaml:"activation_url"`
	MailDelay     time.Duration `yaml:"mail_delay"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type Config struct {
	LLM     LLM     `yaml:"llm"`
	Search  Search  `yaml:"search"`
	News    News    `yaml:"news"`
	Storage Storage `yaml:"storage"`
	Gate    Gate    `yaml:"gate"`
	Log     Log     `yaml:"log"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		LLM: LLM{
			Provider: "gemini",
			Timeout:  2 * time.Minute,
		},
		Search: Search{
			ScholarshipCount:  15,
			ArticleCount:      10,
			RequestsPerMinute: 20,
			CacheTTL:          6 * time.Hour,
			PerPage:           10,
			DefaultSort:       "relevance",
		},
		News: News{
			RevealStep:      5,
			RefreshSchedule: "@every 30m",
		},
		Storage: Storage{Backend: "file"},
		Gate:    Gate{MailDelay: -1},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// DefaultPath is ~/.config/scholarscout/config.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "config.yaml"), nil
}

// DataDir is where the store and the log file live unless configured otherwise.
func DataDir() string {
	if dir := strings.TrimSpace(os.Getenv("SCHOLARSCOUT_DATA_DIR")); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	return filepath.Join(os.TempDir(), appDir)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, err
		}
	}
	ApplyEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv lets a few environment variables override the file.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("SCHOLARSCOUT_PROVIDER")); v != "" {
		cfg.LLM.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv("SCHOLARSCOUT_MODEL")); v != "" {
		cfg.LLM.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("SCHOLARSCOUT_STORAGE")); v != "" {
		cfg.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("SCHOLARSCOUT_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
}

// Validate reports every problem in cfg at once.
func Validate(cfg Config) error {
	var errs []string

	switch strings.ToLower(cfg.LLM.Provider) {
	case "gemini", "openai", "ollama":
	default:
		errs = append(errs, fmt.Sprintf("llm.provider %q must be gemini, openai or ollama", cfg.LLM.Provider))
	}
	if cfg.LLM.Timeout < 0 {
		errs = append(errs, "llm.timeout cannot be negative")
	}
	if cfg.Search.ScholarshipCount < 1 || cfg.Search.ScholarshipCount > 50 {
		errs = append(errs, "search.scholarship_count must be 1..50")
	}
	if cfg.Search.ArticleCount < 1 || cfg.Search.ArticleCount > 50 {
		errs = append(errs, "search.article_count must be 1..50")
	}
	if cfg.Search.RequestsPerMinute < 1 {
		errs = append(errs, "search.requests_per_minute must be >= 1")
	}
	if cfg.Search.PerPage < 1 {
		errs = append(errs, "search.per_page must be >= 1")
	}
	switch strings.ToLower(cfg.Search.DefaultSort) {
	case "", "relevance", "deadline", "name":
	default:
		errs = append(errs, fmt.Sprintf("search.default_sort %q must be relevance, deadline or name", cfg.Search.DefaultSort))
	}
	if cfg.News.RevealStep < 1 {
		errs = append(errs, "news.reveal_step must be >= 1")
	}
	if cfg.News.RefreshSchedule != "" {
		if _, err := ScheduleParser().Parse(cfg.News.RefreshSchedule); err != nil {
			errs = append(errs, fmt.Sprintf("news.refresh_schedule: %v", err))
		}
	}
	switch strings.ToLower(cfg.Storage.Backend) {
	case "file", "sqlite", "memory":
	default:
		errs = append(errs, fmt.Sprintf("storage.backend %q must be file, sqlite or memory", cfg.Storage.Backend))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", cfg.Log.Level))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// ScheduleParser accepts standard five-field specs and descriptors such as "@every 30m".
func ScheduleParser() cronlib.Parser {
	return cronlib.NewParser(cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor)
}

// SaveAtomic validates cfg and writes it through a temp file.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
