package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tradevision/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const defaultGeminiAPI = "https://generativelanguage.googleapis.com"

// GeminiClient talks to the Google Generative Language REST API. There is no
// official Go SDK dependency here; the wire format is two small structs.
type GeminiClient struct {
	tracer  trace.Tracer
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGeminiClient(tracer trace.Tracer, apiKey, model string) *GeminiClient {
	return &GeminiClient{
		tracer:  tracer,
		client:  &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiAPI,
	}
}

func (c *GeminiClient) Name() string { return "Google Gemini " + c.model }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt and returns the first candidate's text.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini-client.complete")
	defer span.End()

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", &domain.ProviderError{Provider: "gemini", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.ProviderError{Provider: "gemini", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: "gemini", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ProviderError{
			Provider: "gemini",
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &domain.ProviderError{Provider: "gemini", Err: err}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &domain.ProviderError{Provider: "gemini", Err: fmt.Errorf("empty candidate list")}
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
