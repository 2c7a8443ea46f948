// Package results holds the view-independent state of the result lists: ordering,
// pagination and incremental reveal.
package results

import (
	"sort"
	"strings"

	"github.com/csheth/scholarscout/internal/deadline"
	"github.com/csheth/scholarscout/internal/scholar"
)

// SortMode selects the order of the scholarship list.
type SortMode int

const (
	SortRelevance SortMode = iota
	SortDeadline
	SortName
)

var sortModeNames = map[SortMode]string{
	SortRelevance: "Relevance",
	SortDeadline:  "Deadline",
	SortName:      "Name",
}

func (m SortMode) String() string {
	if name, ok := sortModeNames[m]; ok {
		return name
	}
	return "Relevance"
}

// Next cycles relevance → deadline → name → relevance.
func (m SortMode) Next() SortMode {
	switch m {
	case SortRelevance:
		return SortDeadline
	case SortDeadline:
		return SortName
	default:
		return SortRelevance
	}
}

// ParseSortMode maps a config value onto a SortMode, falling back to relevance.
func ParseSortMode(value string) SortMode {
	for mode, name := range sortModeNames {
		if strings.EqualFold(strings.TrimSpace(value), name) {
			return mode
		}
	}
	return SortRelevance
}

// Sort returns a reordered copy of records. Relevance keeps the collaborator's order.
// Deadline puts the earliest first and open-ended ones last, ties by name. Both
// reorderings are stable.
func Sort(records []scholar.Scholarship, mode SortMode) []scholar.Scholarship {
	out := make([]scholar.Scholarship, len(records))
	copy(out, records)
	switch mode {
	case SortDeadline:
		keys := make([]int64, len(out))
		for i := range out {
			keys[i] = deadline.Key(out[i].Deadline)
		}
		sort.Stable(byDeadline{records: out, keys: keys})
	case SortName:
		sort.SliceStable(out, func(a, b int) bool {
			return nameLess(out[a], out[b])
		})
	}
	return out
}

func nameLess(a, b scholar.Scholarship) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

type byDeadline struct {
	records []scholar.Scholarship
	keys    []int64
}

func (b byDeadline) Len() int { return len(b.records) }

func (b byDeadline) Swap(i, j int) {
	b.records[i], b.records[j] = b.records[j], b.records[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func (b byDeadline) Less(i, j int) bool {
	if b.keys[i] != b.keys[j] {
		return b.keys[i] < b.keys[j]
	}
	return nameLess(b.records[i], b.records[j])
}
