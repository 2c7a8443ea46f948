package scholar

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildScholarshipPromptRejectsBlankTopic(t *testing.T) {
	for _, topic := range []string{"", "   ", "\t\n"} {
		_, err := BuildScholarshipPrompt(topic, Filters{}, 0)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("topic %q: expected validation error, got %v", topic, err)
		}
		if validation.Field != "topic" {
			t.Fatalf("unexpected field %q", validation.Field)
		}
	}
}

func TestBuildScholarshipPromptFoldsPopulatedFilters(t *testing.T) {
	prompt, err := BuildScholarshipPrompt("  STEM ", Filters{
		Major:    "Computer Science",
		Level:    LevelGraduate,
		Location: "   ",
		GPA:      "3.8",
	}, 5)
	if err != nil {
		t.Fatalf("BuildScholarshipPrompt: %v", err)
	}
	for _, want := range []string{`top 5`, `"STEM"`, `"Computer Science"`, `"Graduate"`, "GPA is 3.8", `"deadline"`, "Rolling"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "located in") {
		t.Fatalf("blank location leaked into prompt:\n%s", prompt)
	}
}

func TestBuildScholarshipPromptOmitsAnyLevel(t *testing.T) {
	prompt, err := BuildScholarshipPrompt("Fulbright", Filters{Level: LevelAny}, 0)
	if err != nil {
		t.Fatalf("BuildScholarshipPrompt: %v", err)
	}
	if strings.Contains(prompt, "academic level") {
		t.Fatalf("Any level should be omitted:\n%s", prompt)
	}
	if !strings.Contains(prompt, "top 15") {
		t.Fatalf("expected default count:\n%s", prompt)
	}
	again, _ := BuildScholarshipPrompt("Fulbright", Filters{Level: LevelAny}, 0)
	if prompt != again {
		t.Fatalf("prompt construction is not deterministic")
	}
}

func TestBuildNewsPrompt(t *testing.T) {
	prompt := BuildNewsPrompt(0)
	for _, want := range []string{"10 most important", `"publishedDate"`, "raw JSON array"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("news prompt missing %q", want)
		}
	}
}

func TestLevelCycling(t *testing.T) {
	if got := LevelAny.Next(); got != LevelUndergraduate {
		t.Fatalf("Any.Next = %s", got)
	}
	if got := LevelAny.Prev(); got != LevelPostgraduate {
		t.Fatalf("Any.Prev = %s", got)
	}
	if got := ParseLevel(" graduate "); got != LevelGraduate {
		t.Fatalf("ParseLevel = %s", got)
	}
	if got := ParseLevel("PhD"); got != LevelAny {
		t.Fatalf("unknown level should fall back to Any, got %s", got)
	}
}
