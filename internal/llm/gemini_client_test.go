package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

func TestFromGeminiCollectsTextAndChunks(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking", Thought: true},
				{Text: "[{\"name\":"},
				{Text: "\"A\"}]"},
			}},
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://daad.de/x", Title: "DAAD"}},
					{},
					{Maps: &genai.GroundingChunkMaps{URI: "https://maps.google.com/?cid=1", Title: "Campus"}},
				},
			},
		}},
	}

	got := fromGemini(resp)
	want := Response{
		Text: `[{"name":"A"}]`,
		Citations: []Citation{
			{Web: &Link{URI: "https://daad.de/x", Title: "DAAD"}},
			{Maps: &Link{URI: "https://maps.google.com/?cid=1", Title: "Campus"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fromGemini mismatch (-want +got):\n%s", diff)
	}
}

func TestFromGeminiNil(t *testing.T) {
	if got := fromGemini(nil); got.Text != "" || got.Citations != nil {
		t.Fatalf("expected empty response, got %+v", got)
	}
}

func TestGeminiClientSendsSearchTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if _, ok := payload["tools"]; !ok {
			t.Errorf("expected tools in grounded request: %v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"[]"}]},"groundingMetadata":{"groundingChunks":[{"web":{"uri":"https://example.org","title":"Example"}}]}}]}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(context.Background(), "test-key", "gemini-2.5-flash", server.URL, server.Client(), zerolog.Nop())
	if err != nil {
		t.Fatalf("newGeminiClient: %v", err)
	}
	resp, err := client.Search(context.Background(), Request{Prompt: "scholarships", Grounded: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Text != "[]" {
		t.Fatalf("text = %q", resp.Text)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].Web == nil || resp.Citations[0].Web.URI != "https://example.org" {
		t.Fatalf("unexpected citations %+v", resp.Citations)
	}
}
