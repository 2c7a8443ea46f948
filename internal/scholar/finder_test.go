package scholar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/llm"
)

type fakeSearcher struct {
	mu       sync.Mutex
	calls    int
	prompts  []string
	response llm.Response
	err      error
}

func (f *fakeSearcher) Search(_ context.Context, req llm.Request) (llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, req.Prompt)
	return f.response, f.err
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestFinder(t *testing.T, searcher llm.Searcher) *Finder {
	t.Helper()
	return NewFinder(searcher, FinderOptions{
		CacheDir:          t.TempDir(),
		RequestsPerMinute: 6000,
	}, zerolog.Nop())
}

func TestFinderRejectsBlankTopicWithoutCalling(t *testing.T) {
	searcher := &fakeSearcher{}
	finder := newTestFinder(t, searcher)

	_, err := finder.Scholarships(context.Background(), Query{Topic: "   "})
	if Classify(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if searcher.callCount() != 0 {
		t.Fatalf("collaborator was called %d times", searcher.callCount())
	}
}

func TestFinderScholarshipsUsesCache(t *testing.T) {
	searcher := &fakeSearcher{response: llm.Response{
		Text:      `[{"name":"Fulbright","deadline":"Rolling","link":"https://fulbright.org"}]`,
		Citations: []llm.Citation{{Web: &llm.Link{URI: "https://fulbright.org", Title: "Fulbright"}}},
	}}
	finder := newTestFinder(t, searcher)
	ctx := context.Background()

	first, err := finder.Scholarships(ctx, Query{Topic: "STEM"})
	if err != nil {
		t.Fatalf("first search: %v", err)
	}
	if len(first.Scholarships) != 1 || len(first.Sources) != 1 {
		t.Fatalf("unexpected result %+v", first)
	}
	second, err := finder.Scholarships(ctx, Query{Topic: "STEM"})
	if err != nil {
		t.Fatalf("second search: %v", err)
	}
	if searcher.callCount() != 1 {
		t.Fatalf("expected cached second search, got %d calls", searcher.callCount())
	}
	if second.Sources[0].Host() != "fulbright.org" {
		t.Fatalf("cached sources lost: %+v", second.Sources)
	}

	if _, err := finder.Scholarships(ctx, Query{Topic: "STEM", Fresh: true}); err != nil {
		t.Fatalf("fresh search: %v", err)
	}
	if searcher.callCount() != 2 {
		t.Fatalf("fresh query should bypass cache, got %d calls", searcher.callCount())
	}
}

func TestFinderDoesNotCacheMalformedResponses(t *testing.T) {
	searcher := &fakeSearcher{response: llm.Response{Text: "Here are some great scholarships for you!"}}
	finder := newTestFinder(t, searcher)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := finder.Scholarships(ctx, Query{Topic: "Fulbright"})
		if Classify(err) != KindMalformed {
			t.Fatalf("expected malformed error, got %v", err)
		}
		if len(result.Scholarships) != 0 {
			t.Fatalf("expected zero records, got %+v", result.Scholarships)
		}
	}
	if searcher.callCount() != 2 {
		t.Fatalf("malformed responses must not be cached, got %d calls", searcher.callCount())
	}
}

func TestFinderWrapsTransportErrors(t *testing.T) {
	boom := errors.New("connection refused")
	searcher := &fakeSearcher{err: boom}
	finder := newTestFinder(t, searcher)

	_, err := finder.News(context.Background(), false)
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if transport.Op != "news fetch" || !errors.Is(err, boom) {
		t.Fatalf("unexpected transport error %+v", transport)
	}
}

func TestFinderNews(t *testing.T) {
	searcher := &fakeSearcher{response: llm.Response{
		Text: `[{"title":"A","summary":"s","source":"BBC","publishedDate":"2025-02-01","link":"https://bbc.co.uk/a"},{"title":"B"}]`,
	}}
	finder := newTestFinder(t, searcher)

	result, err := finder.News(context.Background(), true)
	if err != nil {
		t.Fatalf("news: %v", err)
	}
	if len(result.Articles) != 2 || result.Articles[1].Title != "B" {
		t.Fatalf("unexpected articles %+v", result.Articles)
	}
}

func TestResponseCacheExpires(t *testing.T) {
	cache, err := newResponseCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("newResponseCache: %v", err)
	}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if err := cache.put("prompt", llm.Response{Text: "[]"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if resp, ok := cache.get("prompt"); !ok || resp.Text != "[]" {
		t.Fatalf("expected hit, got %v %+v", ok, resp)
	}
	if _, ok := cache.get("other prompt"); ok {
		t.Fatal("unexpected hit for other prompt")
	}
	now = now.Add(2 * time.Hour)
	if _, ok := cache.get("prompt"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestResponseCacheUsesEnvDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(cacheEnvVar, dir)
	cache, err := newResponseCache("", 0)
	if err != nil {
		t.Fatalf("newResponseCache: %v", err)
	}
	if cache.dir != dir || cache.ttl != defaultCacheTTL {
		t.Fatalf("unexpected cache %+v", cache)
	}
}
