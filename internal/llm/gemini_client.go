package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

type geminiClient struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

func newGeminiClient(ctx context.Context, apiKey, model, baseURL string, httpClient *http.Client, log zerolog.Logger) (Searcher, error) {
	config := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{client: client, model: model, log: log}, nil
}

func (g *geminiClient) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.model)
}

func (g *geminiClient) Search(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return Response{}, fmt.Errorf("prompt cannot be empty")
	}
	config := &genai.GenerateContentConfig{}
	if req.Grounded {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generation failed: %w", err)
	}
	out := fromGemini(resp)
	g.log.Debug().
		Int("chars", len(out.Text)).
		Int("citations", len(out.Citations)).
		Bool("grounded", req.Grounded).
		Msg("gemini generation finished")
	return out, nil
}

// fromGemini joins the text parts of every candidate and collects grounding chunks in order.
func fromGemini(resp *genai.GenerateContentResponse) Response {
	if resp == nil {
		return Response{}
	}
	var text strings.Builder
	var citations []Citation
	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part != nil && part.Text != "" && !part.Thought {
					text.WriteString(part.Text)
				}
			}
		}
		if candidate.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk == nil {
				continue
			}
			var citation Citation
			if chunk.Web != nil {
				citation.Web = &Link{URI: chunk.Web.URI, Title: chunk.Web.Title}
			}
			if chunk.Maps != nil {
				citation.Maps = &Link{URI: chunk.Maps.URI, Title: chunk.Maps.Title}
			}
			if citation.Web == nil && citation.Maps == nil {
				continue
			}
			citations = append(citations, citation)
		}
	}
	return Response{Text: strings.TrimSpace(text.String()), Citations: citations}
}
