package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/huangsam/workwell/internal/contract"
)

// DefaultModel is used when no model is configured.
const DefaultModel = anthropic.ModelClaudeSonnet4_20250514

const analysisSystemPrompt = `You are an assistant specialized in workplace mental health and emotional analysis.
You MUST respond with valid JSON only, with no markdown and no explanation outside the JSON.`

const analysisUserPrompt = `An employee wrote the following comment about how they feel at work:

--- BEGIN COMMENT ---
%s
--- END COMMENT ---

Return a JSON object with these exact fields:
{
  "primary_sentiment": "<one of: positive, neutral, negative>",
  "emotions": ["<specific emotion>", ...],
  "intensity": "<one of: low, medium, high>",
  "warning_signs": ["<possible warning sign>", ...],
  "immediate_advice": "<one short sentence of support>"
}

Use an empty list when there are no warning signs. Be empathetic and professional.`

// Analysis mirrors the JSON structure the model is asked to return.
type Analysis struct {
	PrimarySentiment string   `json:"primary_sentiment"`
	Emotions         []string `json:"emotions"`
	Intensity        string   `json:"intensity"`
	WarningSigns     []string `json:"warning_signs"`
	ImmediateAdvice  string   `json:"immediate_advice"`
}

// AnthropicClientCreator is a function type for creating the Anthropic client.
// It exists so tests can inject a mock.
type AnthropicClientCreator func(apiKey string) AnthropicMessager

// AnthropicMessager defines the subset of the Anthropic client we use.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// defaultAnthropicCreator creates a real Anthropic client.
func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &client.Messages
}

// newAnthropicClient is the package-level creator, overridable in tests.
var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

// LLM talks to the Anthropic Messages API.
type LLM struct {
	messages AnthropicMessager
	model    anthropic.Model
}

// NewLLM returns an LLM client, or ErrClassifierUnavailable when apiKey is empty.
func NewLLM(apiKey, model string) (*LLM, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: anthropic api key not set", contract.ErrClassifierUnavailable)
	}
	m := DefaultModel
	if model != "" {
		m = anthropic.Model(model)
	}
	return &LLM{messages: newAnthropicClient(apiKey), model: m}, nil
}

// Analyze asks the model for a structured reading of a comment.
func (l *LLM) Analyze(ctx context.Context, text string) (Analysis, error) {
	var out Analysis
	if err := l.completeJSON(ctx, analysisSystemPrompt, fmt.Sprintf(analysisUserPrompt, text), 600, &out); err != nil {
		return Analysis{}, err
	}
	return out, nil
}

// completeJSON sends one user message and decodes the JSON reply into dest.
func (l *LLM) completeJSON(ctx context.Context, system, user string, maxTokens int64, dest any) error {
	resp, err := l.messages.New(ctx, anthropic.MessageNewParams{
		Model:     l.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return fmt.Errorf("claude API call failed: %w", err)
	}

	var textParts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			textParts = append(textParts, block.Text)
		}
	}
	rawText := strings.Join(textParts, "")
	if rawText == "" {
		return fmt.Errorf("empty response from Claude API")
	}

	if err := json.Unmarshal([]byte(stripCodeFence(rawText)), dest); err != nil {
		return fmt.Errorf("failed to parse Claude response as JSON: %w", err)
	}
	return nil
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned[3:], "\n"); idx >= 0 {
			cleaned = cleaned[3+idx+1:]
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
