package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-pro"

// Agent converts natural-language simulation requests into raw configuration
// documents via the Gemini API. The output is untrusted: callers must pass it
// through contract.Validate before doing anything with it.
type Agent struct {
	client *genai.Client
	model  string
}

// New creates an agent. The API key comes from GOOGLE_API_KEY in practice;
// main loads .env before the CLI runs.
func New(ctx context.Context, apiKey, model string) (*Agent, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GOOGLE_API_KEY)")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Agent{client: client, model: model}, nil
}

// GenerateConfig sends the request to the model and returns the raw JSON
// document. Markdown code fences are stripped when the model adds them
// despite the instructions.
func (a *Agent) GenerateConfig(ctx context.Context, request string) ([]byte, error) {
	resp, err := a.client.Models.GenerateContent(ctx,
		a.model,
		genai.Text(request),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt(), genai.RoleUser),
			// Deterministic output: the same request should produce the
			// same document.
			Temperature:     genai.Ptr[float32](0),
			TopP:            genai.Ptr[float32](1),
			MaxOutputTokens: 2048,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("Gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("Gemini returned an empty response")
	}

	return []byte(StripFences(text)), nil
}

// StripFences removes a surrounding markdown code fence from model output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
