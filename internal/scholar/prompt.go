package scholar

import (
	"fmt"
	"strings"
)

const (
	defaultScholarshipCount = 15
	defaultArticleCount     = 10
)

// BuildScholarshipPrompt turns a topic and filters into the instruction sent to the model.
// Empty filters are left out entirely rather than sent as blank constraints.
func BuildScholarshipPrompt(topic string, filters Filters, count int) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", &ValidationError{Field: "topic", Message: "Please enter a main search topic."}
	}
	if count <= 0 {
		count = defaultScholarshipCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert scholarship database. Find the top %d most relevant and currently active scholarships for a student interested in %q.", count, topic)
	if major := strings.TrimSpace(filters.Major); major != "" {
		fmt.Fprintf(&b, " Their major is %q.", major)
	}
	if level := ParseLevel(string(filters.Level)); level != LevelAny {
		fmt.Fprintf(&b, " They are at the %q academic level.", string(level))
	}
	if location := strings.TrimSpace(filters.Location); location != "" {
		fmt.Fprintf(&b, " They are located in or looking for scholarships in %q.", location)
	}
	if gpa := strings.TrimSpace(filters.GPA); gpa != "" {
		fmt.Fprintf(&b, " Their GPA is %s.", gpa)
	}
	b.WriteString("\n\nProvide the scholarship name, the provider, a brief description, the application deadline, and a direct link to the scholarship page. Only include information you can verify is current.\n\n")
	b.WriteString(scholarshipContract)
	return b.String(), nil
}

// BuildNewsPrompt returns the news aggregation instruction.
func BuildNewsPrompt(count int) string {
	if count <= 0 {
		count = defaultArticleCount
	}
	return fmt.Sprintf("Act as a news aggregator for students. Find the %d most important and recent news articles related to higher education, study abroad, scholarships, student visas, and career opportunities for university students.\n\n%s", count, newsContract)
}

const scholarshipContract = `Return your findings as a raw JSON array of objects and nothing else.
Each object MUST have exactly these string keys: "name", "provider", "description", "deadline", "link".
The "deadline" value MUST be a date formatted as YYYY-MM-DD, or the literal string "Rolling" when there is no fixed deadline.
Do not wrap the array in markdown code fences and do not add any explanation before or after it.`

const newsContract = `Return your findings as a raw JSON array of objects and nothing else.
Each object MUST have exactly these string keys: "title", "summary", "source", "publishedDate", "link".
Do not wrap the array in markdown code fences and do not add any explanation before or after it.`
