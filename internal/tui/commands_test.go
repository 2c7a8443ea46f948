package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/leadgate"
	"github.com/csheth/scholarscout/internal/results"
	"github.com/csheth/scholarscout/internal/scholar"
	"github.com/csheth/scholarscout/internal/store"
)

type fakeFinder struct {
	mu           sync.Mutex
	scholarships scholar.ScholarshipResult
	news         scholar.NewsResult
	err          error
	queries      []scholar.Query
	newsCalls    []bool
}

func (f *fakeFinder) Scholarships(ctx context.Context, q scholar.Query) (scholar.ScholarshipResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.scholarships, f.err
}

func (f *fakeFinder) News(ctx context.Context, fresh bool) (scholar.NewsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newsCalls = append(f.newsCalls, fresh)
	return f.news, f.err
}

func (f *fakeFinder) Backend() string { return "fake" }

type testEnv struct {
	finder    *fakeFinder
	kv        *store.MemoryStore
	gate      *leadgate.Gate
	history   *store.History
	bookmarks *store.Bookmarks
}

func newTestEnv() *testEnv {
	kv := store.NewMemoryStore()
	mailer := leadgate.NewSimulatedMailer("admin@example.com", "https://example.com/activate", zerolog.Nop())
	mailer.Delay = 0
	return &testEnv{
		finder:    &fakeFinder{},
		kv:        kv,
		gate:      leadgate.New(mailer, store.NewUsedEmails(kv, zerolog.Nop()), zerolog.Nop()),
		history:   store.NewHistory(kv, zerolog.Nop()),
		bookmarks: store.NewBookmarks(kv, zerolog.Nop()),
	}
}

func (e *testEnv) model(t *testing.T) *model {
	t.Helper()
	teaModel, ok := New(Config{
		Finder:      e.finder,
		Gate:        e.gate,
		History:     e.history,
		Bookmarks:   e.bookmarks,
		PerPage:     10,
		DefaultSort: results.SortRelevance,
		RevealStep:  5,
		Logger:      zerolog.Nop(),
	}).(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", teaModel)
	}
	return teaModel
}

// unlockedModel returns a model whose gate has already been activated.
func unlockedModel(t *testing.T, e *testEnv) *model {
	t.Helper()
	ctx := context.Background()
	lead := leadgate.Lead{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1 555 123 4567"}
	if _, errs, err := e.gate.Submit(ctx, lead); err != nil || !errs.Empty() {
		t.Fatalf("submit: errs=%v err=%v", errs, err)
	}
	if _, err := e.gate.Activate(ctx); err != nil {
		t.Fatalf("activate: %v", err)
	}
	return e.model(t)
}

func sampleScholarships(n int) []scholar.Scholarship {
	records := make([]scholar.Scholarship, n)
	for i := range records {
		records[i] = scholar.Scholarship{
			Name:     fmt.Sprintf("Scholarship %02d", i),
			Provider: "Provider",
			Deadline: "Rolling",
			Link:     fmt.Sprintf("https://example.org/s/%d", i),
		}
	}
	return records
}

func TestSearchJobCarriesSequenceAndQuery(t *testing.T) {
	finder := &fakeFinder{scholarships: scholar.ScholarshipResult{Scholarships: sampleScholarships(2)}}
	query := scholar.Query{Topic: "STEM", Filters: scholar.Filters{Level: scholar.LevelGraduate}}

	msg, err := searchJob(finder, 7, query, defaultSearchTimeout)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, ok := msg.(searchResultMsg)
	if !ok {
		t.Fatalf("expected searchResultMsg, got %T", msg)
	}
	if result.seq != 7 || result.query.Topic != "STEM" || len(result.result.Scholarships) != 2 {
		t.Fatalf("unexpected message: %+v", result)
	}
	if len(finder.queries) != 1 || finder.queries[0].Filters.Level != scholar.LevelGraduate {
		t.Fatalf("finder saw %+v", finder.queries)
	}
}

func TestSearchJobReportsErrorInPayload(t *testing.T) {
	boom := &scholar.TransportError{Op: "scholarship search", Err: errors.New("offline")}
	finder := &fakeFinder{err: boom}

	msg, err := searchJob(finder, 1, scholar.Query{Topic: "x"}, defaultSearchTimeout)(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
	if got := msg.(searchResultMsg).err; !errors.Is(got, boom) {
		t.Fatalf("payload should carry the error, got %v", got)
	}
}

func TestNewsJobPassesFreshFlag(t *testing.T) {
	finder := &fakeFinder{news: scholar.NewsResult{Articles: []scholar.Article{{Title: "Visa rules"}}}}

	msg, err := newsJob(finder, 3, true, false, defaultSearchTimeout)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result := msg.(newsResultMsg)
	if result.seq != 3 || result.manual || len(result.result.Articles) != 1 {
		t.Fatalf("unexpected message: %+v", result)
	}
	if len(finder.newsCalls) != 1 || !finder.newsCalls[0] {
		t.Fatalf("fresh flag not forwarded: %v", finder.newsCalls)
	}
}

func TestGateJobsDriveStateMachine(t *testing.T) {
	env := newTestEnv()
	lead := leadgate.Lead{Name: "Jane Doe", Email: "Jane@Example.com", Phone: "555-123-4567"}

	msg, err := submitLeadJob(env.gate, lead)(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := msg.(gateSubmitMsg).state; got != leadgate.StateVerificationSent {
		t.Fatalf("state after submit = %v", got)
	}

	msg, err = activateJob(env.gate)(context.Background())
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if got := msg.(gateActivateMsg).state; got != leadgate.StateActivated {
		t.Fatalf("state after activate = %v", got)
	}
}
