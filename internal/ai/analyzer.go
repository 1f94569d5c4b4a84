package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAnalyzerUnavailable is returned when the analysis call fails (network,
// non-success status, or unparseable output). Callers can distinguish a
// genuine "no intent" classification from an analyzer outage and fall back to
// the conversational path deliberately.
var ErrAnalyzerUnavailable = errors.New("intent analyzer unavailable")

// IntentAnalysis is the analyzer's verdict on one inbound message. It lives
// only for the duration of a pipeline invocation and is never persisted.
type IntentAnalysis struct {
	HasProductIntent bool   `json:"hasProductIntent"`
	ExtractedModel   string `json:"extractedModel,omitempty"`
	ExtractedPart    string `json:"extractedPart,omitempty"`
	// Confidence is the model-reported certainty in [0,1].
	Confidence float64 `json:"confidence"`
}

const (
	analysisMaxTokens   = 200
	analysisTemperature = 0.3
)

// AnalyzeMessage classifies a customer message for product intent. The
// instruction prompt embeds the literal message and demands a strict JSON
// answer, sent at low randomness so extraction stays stable.
//
// Any failure is wrapped in ErrAnalyzerUnavailable; no partial analysis is
// ever returned alongside an error.
func (c *Client) AnalyzeMessage(ctx context.Context, message string) (IntentAnalysis, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(analysisPromptFmt, message)},
		},
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
		TopP:        1,
	})
	if err != nil {
		return IntentAnalysis{}, fmt.Errorf("%w: %v", ErrAnalyzerUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return IntentAnalysis{}, fmt.Errorf("%w: empty completion", ErrAnalyzerUnavailable)
	}

	var out IntentAnalysis
	content := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return IntentAnalysis{}, fmt.Errorf("%w: parse analysis: %v", ErrAnalyzerUnavailable, err)
	}
	return out, nil
}

// stripCodeFence removes a surrounding ```json fence some models insist on
// adding despite the instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
