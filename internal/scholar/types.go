package scholar

import (
	"net/url"
	"strings"
)

// Scholarship is one listing returned by the search collaborator.
type Scholarship struct {
	Name        string `json:"name"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Link        string `json:"link"`
}

// Key identifies a scholarship across queries. Listings carry no id of their own, so the
// (name, link) pair is the closest thing to one.
type Key struct {
	Name string
	Link string
}

// Key returns the identity tuple of the scholarship.
func (s Scholarship) Key() Key {
	return Key{Name: s.Name, Link: s.Link}
}

func (s Scholarship) empty() bool {
	return s.Name == "" && s.Provider == "" && s.Description == "" && s.Deadline == "" && s.Link == ""
}

// Article is a single education news item.
type Article struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
	PublishedDate string `json:"publishedDate"`
	Link          string `json:"link"`
}

func (a Article) empty() bool {
	return a.Title == "" && a.Summary == "" && a.Source == "" && a.PublishedDate == "" && a.Link == ""
}

// SourceKind tells which grounding tool produced a citation.
type SourceKind string

const (
	SourceWeb  SourceKind = "web"
	SourceMaps SourceKind = "maps"
)

// Source is a citation attached to a search response. Display only.
type Source struct {
	Kind  SourceKind
	URI   string
	Title string
	host  string
}

// Host returns the hostname shown in the sources strip.
func (s Source) Host() string {
	if s.host != "" {
		return s.host
	}
	if parsed, err := url.Parse(s.URI); err == nil {
		return parsed.Hostname()
	}
	return s.URI
}

// Level is the academic level filter.
type Level string

const (
	LevelAny           Level = "Any"
	LevelUndergraduate Level = "Undergraduate"
	LevelGraduate      Level = "Graduate"
	LevelPostgraduate  Level = "Postgraduate"
)

// Levels lists the academic levels in form order.
var Levels = []Level{LevelAny, LevelUndergraduate, LevelGraduate, LevelPostgraduate}

// ParseLevel maps user text onto a Level, falling back to LevelAny.
func ParseLevel(value string) Level {
	value = strings.TrimSpace(value)
	for _, level := range Levels {
		if strings.EqualFold(value, string(level)) {
			return level
		}
	}
	return LevelAny
}

// Next cycles forward through Levels.
func (l Level) Next() Level {
	return l.shift(1)
}

// Prev cycles backward through Levels.
func (l Level) Prev() Level {
	return l.shift(-1)
}

func (l Level) shift(delta int) Level {
	idx := 0
	for i, level := range Levels {
		if level == l {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(Levels)) % len(Levels)
	return Levels[idx]
}

// Filters narrows a scholarship search. Every field is optional.
type Filters struct {
	Major    string
	Level    Level
	Location string
	GPA      string
}

// Query is a single scholarship search request.
type Query struct {
	Topic   string
	Filters Filters
	// Fresh skips the response cache, used by "Try Again".
	Fresh bool
}

// ScholarshipResult is the normalized outcome of a scholarship search.
type ScholarshipResult struct {
	Scholarships []Scholarship
	Sources      []Source
	// Dropped counts array elements that could not be turned into a record.
	Dropped int
}

// NewsResult is the normalized outcome of a news query.
type NewsResult struct {
	Articles []Article
	Sources  []Source
	Dropped  int
}
