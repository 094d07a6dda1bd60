package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/apperr"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/models"
	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/report"
)

const defaultAPIURL = "https://api.anthropic.com/v1/messages"

type SynthesizerAgent struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewSynthesizerAgent(apiKey string) *SynthesizerAgent {
	if apiKey == "" {
		log.Fatal("ANTHROPIC_API_KEY is required")
	}

	return &SynthesizerAgent{
		apiKey:     apiKey,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{},
	}
}

// Synthesize sends the aggregated context and both scores to the
// text-generation API and parses the response strictly as a Synthesis
// document. Any upstream failure or unparseable response is a
// GenerationFailed error; nothing is ever fabricated locally.
func (a *SynthesizerAgent) Synthesize(ctx context.Context, rc *report.Context, scores report.Scores, jargonLevel int) (*models.Synthesis, error) {
	prompt, err := buildPrompt(rc, scores, jargonLevel)
	if err != nil {
		return nil, err
	}

	responseText, err := a.callClaude(ctx, prompt)
	if err != nil {
		return nil, err
	}

	synthesis, err := parseSynthesis(responseText)
	if err != nil {
		return nil, err
	}

	return synthesis, nil
}

// jargonInstruction selects one of three fixed style instructions by jargon
// level. This shapes the prose only; it is never a scoring input.
func jargonInstruction(level int) string {
	switch {
	case level <= 33:
		return "Write in plain English. Avoid business and technology jargon entirely; explain every concept the way you would to someone outside the industry."
	case level <= 66:
		return "Write in balanced business language. Use common industry terms where they are precise, but keep sentences readable for a general executive audience."
	default:
		return "Write for an expert audience. Use precise industry and AI terminology freely and do not simplify technical concepts."
	}
}

func buildPrompt(rc *report.Context, scores report.Scores, jargonLevel int) (string, error) {
	contextJSON, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report context: %w", err)
	}

	prompt := fmt.Sprintf(`You are writing the executive provocation report for an AI Leadership Bootcamp session.

%s

Computed scores (use these numbers exactly as given):
- Urgency score: %d/100
- Pilot readiness score: %d/100 (%s)

Workshop data:
%s

Rules:
1. Every claim must be grounded in the workshop data above. Do not invent statistics, percentages or counts that are not present in the data.
2. Strengths and gaps must cite specific evidence from the data.
3. The urgency verdict must reflect the urgency score band, not your own reassessment.

Respond with ONLY a JSON document in exactly this shape:
{
  "executiveSummary": "...",
  "strengths": [{"title": "...", "evidence": "...", "impact": "...", "recommendation": "..."}],
  "gaps": [{"title": "...", "evidence": "...", "impact": "...", "recommendation": "..."}],
  "journeyInsights": "...",
  "urgencyVerdict": "..."
}

"impact" and "recommendation" are optional per entry; every other field is required.`,
		jargonInstruction(jargonLevel),
		scores.Urgency,
		scores.Readiness,
		scores.ReadinessBand,
		string(contextJSON),
	)

	return prompt, nil
}

func (a *SynthesizerAgent) callClaude(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 3000,
		System:    "You are an executive advisor synthesizing corporate AI workshop results into a provocation report.",
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", apperr.GenerationFailed("failed to call Anthropic API", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.GenerationFailed("failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Anthropic API error (status %d): %s", resp.StatusCode, string(body))
		return "", apperr.GenerationFailed(fmt.Sprintf("API request failed with status %d", resp.StatusCode), nil)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", apperr.GenerationFailed("failed to parse API response", err)
	}

	if apiResp.Error != nil {
		return "", apperr.GenerationFailed(fmt.Sprintf("API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message), nil)
	}

	if len(apiResp.Content) > 0 && apiResp.Content[0].Type == "text" {
		return apiResp.Content[0].Text, nil
	}

	return "", apperr.GenerationFailed("unexpected response format", nil)
}

// parseSynthesis parses the model's reply strictly as a Synthesis JSON
// document. Markdown code fences around the JSON are tolerated; anything
// else malformed is a hard failure, never partially parsed.
func parseSynthesis(response string) (*models.Synthesis, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var synthesis models.Synthesis
	if err := json.Unmarshal([]byte(text), &synthesis); err != nil {
		return nil, apperr.GenerationFailed("response is not valid JSON", err)
	}

	if synthesis.ExecutiveSummary == "" {
		return nil, apperr.GenerationFailed("response missing executiveSummary", nil)
	}
	if synthesis.UrgencyVerdict == "" {
		return nil, apperr.GenerationFailed("response missing urgencyVerdict", nil)
	}
	if synthesis.Strengths == nil || synthesis.Gaps == nil {
		return nil, apperr.GenerationFailed("response missing strengths or gaps", nil)
	}
	for _, item := range append(append([]models.SynthesisItem{}, synthesis.Strengths...), synthesis.Gaps...) {
		if item.Title == "" || item.Evidence == "" {
			return nil, apperr.GenerationFailed("strength/gap entry missing title or evidence", nil)
		}
	}

	return &synthesis, nil
}
