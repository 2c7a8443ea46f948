package scholar

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/csheth/scholarscout/internal/llm"
)

const (
	cacheEnvVar     = "SCHOLARSCOUT_CACHE_DIR"
	cacheSubdir     = "scholarscout/responses"
	defaultCacheTTL = 6 * time.Hour
	partialSuffix   = ".part"
)

// responseCache keeps raw collaborator responses on disk keyed by prompt. Entries are
// re-normalized on every hit, so the cache never holds records, only text and citations.
type responseCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

type cacheEntry struct {
	Prompt    string         `json:"prompt"`
	Text      string         `json:"text"`
	Citations []llm.Citation `json:"citations,omitempty"`
	CachedAt  time.Time      `json:"cachedAt"`
}

func newResponseCache(dir string, ttl time.Duration) (*responseCache, error) {
	if dir == "" {
		dir = os.Getenv(cacheEnvVar)
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "scholarscout-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &responseCache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// get reports a miss for absent, expired, unreadable, or colliding entries.
func (c *responseCache) get(prompt string) (llm.Response, bool) {
	data, err := os.ReadFile(c.pathFor(prompt))
	if err != nil {
		return llm.Response{}, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return llm.Response{}, false
	}
	if entry.Prompt != prompt || c.now().Sub(entry.CachedAt) >= c.ttl {
		return llm.Response{}, false
	}
	return llm.Response{Text: entry.Text, Citations: entry.Citations}, true
}

func (c *responseCache) put(prompt string, resp llm.Response) error {
	data, err := json.Marshal(cacheEntry{
		Prompt:    prompt,
		Text:      resp.Text,
		Citations: resp.Citations,
		CachedAt:  c.now().UTC(),
	})
	if err != nil {
		return err
	}
	path := c.pathFor(prompt)
	partial := path + partialSuffix
	if err := os.WriteFile(partial, data, 0o644); err != nil {
		return err
	}
	return os.Rename(partial, path)
}

func (c *responseCache) pathFor(prompt string) string {
	return filepath.Join(c.dir, cacheKey(prompt)+".json")
}

func cacheKey(prompt string) string {
	sum := sha1.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
