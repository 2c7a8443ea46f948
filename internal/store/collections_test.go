package store

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/scholar"
)

func TestHistoryRecord(t *testing.T) {
	h := NewHistory(NewMemoryStore(), zerolog.Nop())
	for _, topic := range []string{"STEM", "Fulbright", " STEM "} {
		if _, err := h.Record(topic); err != nil {
			t.Fatalf("Record(%q): %v", topic, err)
		}
	}
	if diff := cmp.Diff([]string{"STEM", "Fulbright"}, h.List()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if _, err := h.Record("   "); err != nil {
		t.Fatalf("blank record: %v", err)
	}
	if len(h.List()) != 2 {
		t.Fatal("blank topic must not be recorded")
	}
}

func TestHistoryCap(t *testing.T) {
	h := NewHistory(NewMemoryStore(), zerolog.Nop())
	for i := 0; i < 15; i++ {
		h.Record(fmt.Sprintf("topic %d", i))
	}
	got := h.List()
	if len(got) != HistoryLimit || got[0] != "topic 14" || got[9] != "topic 5" {
		t.Fatalf("unexpected history %v", got)
	}
}

func TestHistorySeesOtherWriters(t *testing.T) {
	kv := NewMemoryStore()
	a := NewHistory(kv, zerolog.Nop())
	b := NewHistory(kv, zerolog.Nop())
	a.Record("STEM")
	b.Record("Fulbright")
	if diff := cmp.Diff([]string{"Fulbright", "STEM"}, a.List()); diff != "" {
		t.Fatalf("history mismatch:\n%s", diff)
	}
}

func TestCorruptValuesReadAsEmpty(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyHistory, "{oops")
	kv.Set(KeyBookmarks, `"not a list"`)
	if got := NewHistory(kv, zerolog.Nop()).List(); len(got) != 0 {
		t.Fatalf("history = %v", got)
	}
	b := NewBookmarks(kv, zerolog.Nop())
	if got := b.List(); len(got) != 0 {
		t.Fatalf("bookmarks = %v", got)
	}
	got, err := b.Add(scholar.Scholarship{Name: "A", Link: "https://a.org"})
	if err != nil || len(got) != 1 {
		t.Fatalf("Add over corrupt value: %v %v", got, err)
	}
}

func TestBookmarksIdempotent(t *testing.T) {
	b := NewBookmarks(NewMemoryStore(), zerolog.Nop())
	rec := scholar.Scholarship{Name: "Chevening", Link: "https://chevening.org"}

	b.Add(rec)
	got, err := b.Add(rec)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(got) != 1 || !b.Contains(rec.Key()) {
		t.Fatalf("double add should keep one copy, got %v", got)
	}
	b.Remove(rec.Key())
	got, err = b.Remove(rec.Key())
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(got) != 0 || b.Contains(rec.Key()) {
		t.Fatalf("double remove should leave nothing, got %v", got)
	}
}

func TestBookmarksRemoveAnyPosition(t *testing.T) {
	b := NewBookmarks(NewMemoryStore(), zerolog.Nop())
	recs := []scholar.Scholarship{
		{Name: "A", Link: "https://a.org"},
		{Name: "B", Link: "https://b.org"},
		{Name: "C", Link: "https://c.org"},
	}
	for _, rec := range recs {
		b.Add(rec)
	}
	if diff := cmp.Diff([]scholar.Scholarship{recs[2], recs[1], recs[0]}, b.List()); diff != "" {
		t.Fatalf("bookmarks should be newest first:\n%s", diff)
	}
	got, _ := b.Remove(recs[1].Key())
	if diff := cmp.Diff([]scholar.Scholarship{recs[2], recs[0]}, got); diff != "" {
		t.Fatalf("remove middle mismatch:\n%s", diff)
	}
	same := scholar.Scholarship{Name: "A", Link: "https://other.org"}
	if b.Contains(same.Key()) {
		t.Fatal("records with a different link are different scholarships")
	}
}

func TestBookmarkConfirmation(t *testing.T) {
	b := NewBookmarks(NewMemoryStore(), zerolog.Nop())
	rec := scholar.Scholarship{Name: "DAAD", Link: "https://daad.de"}

	c := b.Request(rec)
	if c.Action != ActionAdd || c.Prompt() != "Add DAAD to your bookmarks?" {
		t.Fatalf("unexpected confirmation %+v %q", c, c.Prompt())
	}
	if b.Contains(rec.Key()) {
		t.Fatal("Request must not change anything")
	}
	if _, err := b.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	c = b.Request(rec)
	if c.Action != ActionRemove {
		t.Fatalf("expected remove, got %+v", c)
	}
	b.Apply(c)
	if b.Contains(rec.Key()) {
		t.Fatal("confirmed removal did not apply")
	}
}

func TestUsedEmails(t *testing.T) {
	u := NewUsedEmails(NewMemoryStore(), zerolog.Nop())
	if u.Contains("jane@example.com") {
		t.Fatal("empty set contains nothing")
	}
	if err := u.Add("Jane@Example.com"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	u.Add("jane@example.com ")
	if !u.Contains(" JANE@example.com") {
		t.Fatal("lookup should be case and whitespace insensitive")
	}
	raw, _, _ := u.kv.Get(KeyUsedEmails)
	if raw != `["jane@example.com"]` {
		t.Fatalf("stored = %s", raw)
	}
}
