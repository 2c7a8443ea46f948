package scholar

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"github.com/csheth/scholarscout/internal/llm"
)

const fence = "```"

// StripFences removes a leading markdown code fence line (with or without a language tag)
// and a trailing fence.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, fence) {
		return text
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimLeftFunc(text[len(fence):], unicode.IsLetter)
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}

// NormalizeScholarships parses the raw model text into records. Elements that are not
// objects, or carry no data at all, are dropped and counted; missing keys become "".
func NormalizeScholarships(raw string) ([]Scholarship, int, error) {
	elements, err := decodeArray(raw)
	if err != nil {
		return nil, 0, err
	}
	records := make([]Scholarship, 0, len(elements))
	dropped := 0
	for _, element := range elements {
		if !element.IsObject() {
			dropped++
			continue
		}
		record := Scholarship{
			Name:        field(element, "name"),
			Provider:    field(element, "provider"),
			Description: field(element, "description"),
			Deadline:    field(element, "deadline"),
			Link:        field(element, "link"),
		}
		if record.empty() {
			dropped++
			continue
		}
		records = append(records, record)
	}
	return records, dropped, nil
}

// NormalizeArticles is the news counterpart of NormalizeScholarships.
func NormalizeArticles(raw string) ([]Article, int, error) {
	elements, err := decodeArray(raw)
	if err != nil {
		return nil, 0, err
	}
	articles := make([]Article, 0, len(elements))
	dropped := 0
	for _, element := range elements {
		if !element.IsObject() {
			dropped++
			continue
		}
		article := Article{
			Title:         field(element, "title"),
			Summary:       field(element, "summary"),
			Source:        field(element, "source"),
			PublishedDate: field(element, "publishedDate"),
			Link:          field(element, "link"),
		}
		if article.empty() {
			dropped++
			continue
		}
		articles = append(articles, article)
	}
	return articles, dropped, nil
}

func decodeArray(raw string) ([]gjson.Result, error) {
	text := StripFences(raw)
	if text == "" {
		return nil, &MalformedResponseError{Reason: "the model returned an empty response", Raw: raw}
	}
	if !gjson.Valid(text) {
		return nil, &MalformedResponseError{Reason: "response is not valid JSON", Raw: raw}
	}
	parsed := gjson.Parse(text)
	if !parsed.IsArray() {
		return nil, &MalformedResponseError{Reason: "expected a JSON array of records", Raw: raw}
	}
	return parsed.Array(), nil
}

func field(element gjson.Result, key string) string {
	value := element.Get(key)
	switch value.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return strings.TrimSpace(value.String())
	default:
		return ""
	}
}

// NormalizeSources converts collaborator citations into display sources, preserving order.
// Citations without a usable absolute URI are skipped.
func NormalizeSources(citations []llm.Citation) []Source {
	sources := make([]Source, 0, len(citations))
	for _, citation := range citations {
		kind := SourceWeb
		link := citation.Web
		if link == nil {
			kind = SourceMaps
			link = citation.Maps
		}
		if link == nil {
			continue
		}
		uri := strings.TrimSpace(link.URI)
		if uri == "" {
			continue
		}
		parsed, err := url.Parse(uri)
		if err != nil || parsed.Scheme == "" || parsed.Hostname() == "" {
			continue
		}
		sources = append(sources, Source{
			Kind:  kind,
			URI:   uri,
			Title: strings.TrimSpace(link.Title),
			host:  parsed.Hostname(),
		})
	}
	return sources
}
