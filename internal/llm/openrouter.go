// Package llm implements the suggestion service on the OpenRouter
// chat-completions API. Every method fails closed: a transport error, a
// non-2xx status, or a malformed model reply returns an error and never a
// partial result.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fernhq/fern/api/internal/config"
	"github.com/fernhq/fern/api/internal/model"
	"github.com/fernhq/fern/api/internal/service"
)

// Low temperature keeps the strict-JSON replies stable
const chatTemperature = 0.2

// ErrNoAPIKey is returned at request time when no credentials are configured
var ErrNoAPIKey = errors.New("suggestion service api key not configured")

// OpenRouterClient calls the OpenRouter chat-completions endpoint
type OpenRouterClient struct {
	apiKey     string
	chatModel  string
	baseURL    string
	httpClient *http.Client
}

// NewOpenRouterClient creates a client from the suggestion config. A missing
// API key is allowed; every call then fails with ErrNoAPIKey.
func NewOpenRouterClient(cfg config.SuggestionConfig) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:    cfg.APIKey,
		chatModel: cfg.Model,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const dailyTasksSystemPrompt = `You are a sustainability coach. Given a compact carbon profile, propose exactly 10 small actions the user can complete today. Respond with ONLY a JSON array of 10 objects, each with keys "title" (string), "carbonOffsetKg" (number, 0-50), "difficulty" ("easy", "medium" or "hard"), and "reason" (one short sentence). No prose, no markdown.`

const suggestionsSystemPrompt = `You are a sustainability advisor. Given a compact carbon profile, respond with ONLY a JSON object with keys "summary" (2-3 sentences) and "top_actions" (array of 3-5 objects with keys "title", "estimated_reduction_kg_per_year" (number), "difficulty" ("easy", "medium" or "hard"), and "reason"). No prose, no markdown.`

// GenerateDailyTasks asks the model for today's task proposals
func (c *OpenRouterClient) GenerateDailyTasks(ctx context.Context, profile *service.DailyTaskContext) ([]model.GeneratedTask, error) {
	content, err := c.chat(ctx, dailyTasksSystemPrompt, dailyTasksUserPrompt(profile))
	if err != nil {
		return nil, err
	}

	var tasks []model.GeneratedTask
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &tasks); err != nil {
		return nil, fmt.Errorf("parsing task proposals: %w", err)
	}

	for i := range tasks {
		if tasks[i].Title == "" {
			return nil, errors.New("task proposal missing title")
		}
	}
	return tasks, nil
}

// GenerateSuggestions asks the model for structured reduction advice
func (c *OpenRouterClient) GenerateSuggestions(ctx context.Context, input *service.SuggestionContext) (*model.Suggestion, error) {
	content, err := c.chat(ctx, suggestionsSystemPrompt, suggestionsUserPrompt(input))
	if err != nil {
		return nil, err
	}

	var suggestion model.Suggestion
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &suggestion); err != nil {
		return nil, fmt.Errorf("parsing suggestion: %w", err)
	}
	if suggestion.Summary == "" || len(suggestion.TopActions) == 0 {
		return nil, errors.New("incomplete suggestion reply")
	}
	return &suggestion, nil
}

func (c *OpenRouterClient) chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling suggestion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("suggestion service returned %d: %s", resp.StatusCode, string(snippet))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding suggestion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("suggestion response had no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func dailyTasksUserPrompt(profile *service.DailyTaskContext) string {
	var sb strings.Builder
	sb.WriteString("Profile: ")
	if profile.CompactSummary != "" {
		sb.WriteString(profile.CompactSummary)
	} else {
		sb.WriteString("no questionnaire data")
	}
	if profile.TopEmissionArea != "" {
		fmt.Fprintf(&sb, "\nFocus area: %s", profile.TopEmissionArea)
	}
	if profile.InitialFootprintKg != nil {
		fmt.Fprintf(&sb, "\nAnnual footprint: %.1f kg CO2e", *profile.InitialFootprintKg)
	}
	if profile.City != "" {
		fmt.Fprintf(&sb, "\nCity: %s", profile.City)
	}
	if profile.StreakCurrent > 0 {
		fmt.Fprintf(&sb, "\nCurrent streak: %d days", profile.StreakCurrent)
	}
	if len(profile.RecentTaskTitles) > 0 {
		fmt.Fprintf(&sb, "\nAvoid repeating: %s", strings.Join(profile.RecentTaskTitles, "; "))
	}
	return sb.String()
}

func suggestionsUserPrompt(input *service.SuggestionContext) string {
	return fmt.Sprintf(
		"Profile: %s\nAnnual footprint: %.1f kg CO2e\nBreakdown: transport %.1f, home %.1f, diet %.1f\nLargest area: %s",
		input.CompactSummary,
		input.FootprintKgPerYear,
		input.Breakdown.TransportKg,
		input.Breakdown.HomeKg,
		input.Breakdown.DietKg,
		input.TopEmissionArea,
	)
}

// stripCodeFences unwraps replies the model insists on fencing as markdown
func stripCodeFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var (
	_ service.DailyTaskSuggester  = (*OpenRouterClient)(nil)
	_ service.SuggestionGenerator = (*OpenRouterClient)(nil)
)
