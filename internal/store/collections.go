package store

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/scholar"
)

// HistoryLimit caps the number of remembered topics.
const HistoryLimit = 10

// readList decodes a JSON array stored under key. Absent or corrupt values read as empty.
func readList[T any](kv KV, key string, log zerolog.Logger) []T {
	raw, ok, err := kv.Get(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read stored value")
		return nil
	}
	if !ok {
		return nil
	}
	return decodeList[T](raw, key, log)
}

func decodeList[T any](raw, key string, log zerolog.Logger) []T {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt stored value")
		return nil
	}
	return items
}

// mutateList applies fn to the latest persisted list and writes the result back.
func mutateList[T any](kv KV, key string, log zerolog.Logger, fn func([]T) []T) ([]T, error) {
	var result []T
	err := update(kv, key, func(current string, ok bool) (string, error) {
		var items []T
		if ok {
			items = decodeList[T](current, key, log)
		}
		result = fn(items)
		if result == nil {
			result = []T{}
		}
		data, err := json.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// History is the most-recent-first list of searched topics.
type History struct {
	kv  KV
	log zerolog.Logger
}

func NewHistory(kv KV, log zerolog.Logger) *History {
	return &History{kv: kv, log: log.With().Str("component", "history").Logger()}
}

// List returns the stored topics, newest first.
func (h *History) List() []string {
	return readList[string](h.kv, KeyHistory, h.log)
}

// Record moves topic to the front, dropping an earlier identical entry and anything past
// HistoryLimit. Blank topics are ignored.
func (h *History) Record(topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return h.List(), nil
	}
	return mutateList(h.kv, KeyHistory, h.log, func(items []string) []string {
		next := make([]string, 0, len(items)+1)
		next = append(next, topic)
		for _, item := range items {
			if item != topic {
				next = append(next, item)
			}
		}
		if len(next) > HistoryLimit {
			next = next[:HistoryLimit]
		}
		return next
	})
}

// Action is what a bookmark confirmation will do when applied.
type Action int

const (
	ActionAdd Action = iota
	ActionRemove
)

// Confirmation is a pending bookmark change. The UI shows Prompt and then either calls
// Bookmarks.Apply or drops it.
type Confirmation struct {
	Action Action
	Record scholar.Scholarship
}

// Prompt is the question shown to the user.
func (c Confirmation) Prompt() string {
	name := c.Record.Name
	if name == "" {
		name = "this scholarship"
	}
	if c.Action == ActionRemove {
		return "Remove " + name + " from your bookmarks?"
	}
	return "Add " + name + " to your bookmarks?"
}

// Bookmarks is the saved set of scholarships, newest first, unique by Key.
type Bookmarks struct {
	kv  KV
	log zerolog.Logger
}

func NewBookmarks(kv KV, log zerolog.Logger) *Bookmarks {
	return &Bookmarks{kv: kv, log: log.With().Str("component", "bookmarks").Logger()}
}

// List returns the saved scholarships.
func (b *Bookmarks) List() []scholar.Scholarship {
	return readList[scholar.Scholarship](b.kv, KeyBookmarks, b.log)
}

// Contains reports whether a record with key is saved.
func (b *Bookmarks) Contains(key scholar.Key) bool {
	return indexOf(b.List(), key) >= 0
}

// Request describes the toggle for rec without changing anything.
func (b *Bookmarks) Request(rec scholar.Scholarship) Confirmation {
	if b.Contains(rec.Key()) {
		return Confirmation{Action: ActionRemove, Record: rec}
	}
	return Confirmation{Action: ActionAdd, Record: rec}
}

// Apply performs a confirmed change.
func (b *Bookmarks) Apply(c Confirmation) ([]scholar.Scholarship, error) {
	if c.Action == ActionRemove {
		return b.Remove(c.Record.Key())
	}
	return b.Add(c.Record)
}

// Add saves rec at the front. Saving an already saved record changes nothing.
func (b *Bookmarks) Add(rec scholar.Scholarship) ([]scholar.Scholarship, error) {
	return mutateList(b.kv, KeyBookmarks, b.log, func(items []scholar.Scholarship) []scholar.Scholarship {
		if indexOf(items, rec.Key()) >= 0 {
			return items
		}
		return append([]scholar.Scholarship{rec}, items...)
	})
}

// Remove deletes the record with key wherever it sits. Removing an absent key changes nothing.
func (b *Bookmarks) Remove(key scholar.Key) ([]scholar.Scholarship, error) {
	return mutateList(b.kv, KeyBookmarks, b.log, func(items []scholar.Scholarship) []scholar.Scholarship {
		next := items[:0:0]
		for _, item := range items {
			if item.Key() != key {
				next = append(next, item)
			}
		}
		return next
	})
}

func indexOf(items []scholar.Scholarship, key scholar.Key) int {
	for i, item := range items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// UsedEmails is the append-only set of emails that completed activation.
type UsedEmails struct {
	kv  KV
	log zerolog.Logger
}

func NewUsedEmails(kv KV, log zerolog.Logger) *UsedEmails {
	return &UsedEmails{kv: kv, log: log.With().Str("component", "used_emails").Logger()}
}

// NormalizeEmail lowercases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Contains reports whether email, after normalization, was used before.
func (u *UsedEmails) Contains(email string) bool {
	email = NormalizeEmail(email)
	if email == "" {
		return false
	}
	for _, used := range readList[string](u.kv, KeyUsedEmails, u.log) {
		if NormalizeEmail(used) == email {
			return true
		}
	}
	return false
}

// Add records email. Adding an existing address is a no-op.
func (u *UsedEmails) Add(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}
	_, err := mutateList(u.kv, KeyUsedEmails, u.log, func(items []string) []string {
		for _, used := range items {
			if NormalizeEmail(used) == email {
				return items
			}
		}
		return append(items, email)
	})
	return err
}
