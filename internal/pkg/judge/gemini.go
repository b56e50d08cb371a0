package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/campus2corporate/portal/internal/pkg/logger"
)

// GeminiConfig defines settings for the Gemini REST client
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiJudge calls the Gemini generateContent endpoint
type GeminiJudge struct {
	config GeminiConfig
	client *http.Client
}

// NewGeminiJudge creates a Gemini-backed CodeJudge
func NewGeminiJudge(config GeminiConfig) *GeminiJudge {
	if config.Model == "" {
		config.Model = "gemini-1.5-flash"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &GeminiJudge{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Request/response shapes for the generateContent endpoint
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
	TopK        int     `json:"topK"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt and returns the first candidate's text.
// The context bounds the call; timeouts and transport failures come
// back as ErrJudgeUnavailable so callers can degrade uniformly.
func (j *GeminiJudge) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature: 0.2,
			TopP:        0.8,
			TopK:        40,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode judge request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", j.config.BaseURL, j.config.Model, j.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("Judge request failed")
		return "", fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrJudgeUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Msg("Judge returned non-OK status")
		return "", fmt.Errorf("%w: status %d", ErrJudgeUnavailable, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrJudgeUnavailable, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrJudgeUnavailable)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
