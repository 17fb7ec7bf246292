package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"hacktrack/internal/domain/model"

	"github.com/google/uuid"
)

// AdviceProvider is the boundary to the external generative-text API.
type AdviceProvider interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// HTTPAdviceProvider calls a hosted text-generation endpoint. The
// endpoint is expected to accept {"prompt", "max_tokens",
// "temperature"} and answer {"text": "..."}.
type HTTPAdviceProvider struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPAdviceProvider(url, apiKey string, timeout time.Duration) *HTTPAdviceProvider {
	return &HTTPAdviceProvider{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPAdviceProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if p.url == "" {
		return "", fmt.Errorf("advice endpoint not configured")
	}

	body, err := json.Marshal(map[string]interface{}{
		"prompt":      prompt,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advice request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode advice response: %w", err)
	}
	return payload.Text, nil
}

// AdviceService wraps the provider with the two prompts the dashboards
// use. Provider failures degrade to a stock message; they are never
// surfaced as errors to the caller.
type AdviceService struct {
	provider AdviceProvider
}

func NewAdviceService(provider AdviceProvider) *AdviceService {
	return &AdviceService{provider: provider}
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}

const (
	fallbackPitchAdvice     = "Unable to fetch AI advice right now. Please try again later."
	fallbackProgressSummary = "Keep building!"
)

func (s *AdviceService) PitchAdvice(ctx context.Context, team *model.Team) AdviceResponse {
	prompt := fmt.Sprintf(
		"I am a participant in a hackathon under the theme %q. Our problem statement is: %q. Provide 3 concise suggestions to improve our pitch impact and novelty.",
		team.Theme, team.ProblemStatement,
	)
	text, err := s.provider.Generate(ctx, prompt, 300, 0.7)
	if err != nil || text == "" {
		if err != nil {
			log.Printf("WARN: Pitch advice unavailable for team %d: %v", team.ID, err)
		}
		return AdviceResponse{Advice: fallbackPitchAdvice}
	}
	return AdviceResponse{Advice: text}
}

func (s *AdviceService) ProgressSummary(ctx context.Context, team *model.Team) AdviceResponse {
	var tools string
	if team.ToolUsage != nil {
		tools = strings.Join(team.ToolUsage.CodingTools, ", ")
	}
	prompt := fmt.Sprintf(
		"A hackathon team is at %d%% milestone completion and uses these tools: %s. Give a brief professional performance summary and one critical next step.",
		model.ComputeProgress(team.Milestones), tools,
	)
	text, err := s.provider.Generate(ctx, prompt, 200, 0.5)
	if err != nil || text == "" {
		if err != nil {
			log.Printf("WARN: Progress summary unavailable for team %d: %v", team.ID, err)
		}
		return AdviceResponse{Advice: fallbackProgressSummary}
	}
	return AdviceResponse{Advice: text}
}
