package scholar

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/csheth/scholarscout/internal/llm"
)

const defaultRequestsPerMinute = 20

// FinderOptions tunes the Finder. The zero value is usable.
type FinderOptions struct {
	ScholarshipCount  int
	ArticleCount      int
	RequestsPerMinute int
	CacheDir          string
	CacheTTL          time.Duration
	DisableCache      bool
}

// Finder runs scholarship and news queries against the search collaborator and turns the
// answers into records.
type Finder struct {
	searcher llm.Searcher
	cache    *responseCache
	limiter  *rate.Limiter
	group    singleflight.Group
	log      zerolog.Logger

	scholarshipCount int
	articleCount     int
}

// NewFinder wires a Finder. A cache directory that cannot be created disables caching
// instead of failing.
func NewFinder(searcher llm.Searcher, opts FinderOptions, log zerolog.Logger) *Finder {
	log = log.With().Str("component", "finder").Logger()
	perMinute := opts.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	f := &Finder{
		searcher:         searcher,
		limiter:          rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 2),
		log:              log,
		scholarshipCount: opts.ScholarshipCount,
		articleCount:     opts.ArticleCount,
	}
	if !opts.DisableCache {
		cache, err := newResponseCache(opts.CacheDir, opts.CacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("response cache disabled")
		} else {
			f.cache = cache
		}
	}
	return f
}

// Backend names the collaborator for the status bar.
func (f *Finder) Backend() string {
	return f.searcher.Name()
}

// Scholarships validates q, queries the collaborator, and normalizes the answer.
func (f *Finder) Scholarships(ctx context.Context, q Query) (ScholarshipResult, error) {
	prompt, err := BuildScholarshipPrompt(q.Topic, q.Filters, f.scholarshipCount)
	if err != nil {
		return ScholarshipResult{}, err
	}
	resp, cached, err := f.fetch(ctx, "scholarship search", prompt, q.Fresh)
	if err != nil {
		return ScholarshipResult{}, err
	}
	records, dropped, err := NormalizeScholarships(resp.Text)
	if err != nil {
		f.log.Warn().Err(err).Int("chars", len(resp.Text)).Msg("scholarship response rejected")
		return ScholarshipResult{}, err
	}
	if dropped > 0 {
		f.log.Warn().Int("dropped", dropped).Msg("skipped malformed scholarship records")
	}
	f.remember(prompt, resp, cached)
	f.log.Info().Str("topic", q.Topic).Int("records", len(records)).Bool("cached", cached).Msg("scholarship search finished")
	return ScholarshipResult{
		Scholarships: records,
		Sources:      NormalizeSources(resp.Citations),
		Dropped:      dropped,
	}, nil
}

// News fetches the latest education news. fresh skips the response cache.
func (f *Finder) News(ctx context.Context, fresh bool) (NewsResult, error) {
	prompt := BuildNewsPrompt(f.articleCount)
	resp, cached, err := f.fetch(ctx, "news fetch", prompt, fresh)
	if err != nil {
		return NewsResult{}, err
	}
	articles, dropped, err := NormalizeArticles(resp.Text)
	if err != nil {
		f.log.Warn().Err(err).Int("chars", len(resp.Text)).Msg("news response rejected")
		return NewsResult{}, err
	}
	if dropped > 0 {
		f.log.Warn().Int("dropped", dropped).Msg("skipped malformed news records")
	}
	f.remember(prompt, resp, cached)
	return NewsResult{
		Articles: articles,
		Sources:  NormalizeSources(resp.Citations),
		Dropped:  dropped,
	}, nil
}

func (f *Finder) fetch(ctx context.Context, op, prompt string, fresh bool) (llm.Response, bool, error) {
	if !fresh && f.cache != nil {
		if resp, ok := f.cache.get(prompt); ok {
			return resp, true, nil
		}
	}
	value, err, shared := f.group.Do(prompt, func() (any, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return llm.Response{}, err
		}
		return f.searcher.Search(ctx, llm.Request{Prompt: prompt, Grounded: true})
	})
	if err != nil {
		f.log.Error().Err(err).Str("op", op).Msg("search collaborator failed")
		return llm.Response{}, false, &TransportError{Op: op, Err: err}
	}
	if shared {
		f.log.Debug().Str("op", op).Msg("joined in-flight request")
	}
	return value.(llm.Response), false, nil
}

func (f *Finder) remember(prompt string, resp llm.Response, cached bool) {
	if cached || f.cache == nil {
		return
	}
	if err := f.cache.put(prompt, resp); err != nil {
		f.log.Warn().Err(err).Msg("failed to cache response")
	}
}
