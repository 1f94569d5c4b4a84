package ai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/assistec/go-whats-backend/internal/domain"
)

// ReplyContext carries the conversational framing for a free-form reply.
// FoundProducts and NoProductsFound are mutually exclusive hints appended to
// the user turn so the model can ground its answer in the catalog lookup.
type ReplyContext struct {
	UserName        string
	AIName          string
	FoundProducts   []domain.Product
	NoProductsFound bool
}

const (
	replyMaxTokens   = 500
	replyTemperature = 0.7
)

// GenerateReply produces a free-form assistant reply for messages without a
// strong product intent. Unlike AnalyzeMessage this runs at higher
// randomness and a larger output cap; failures are returned to the caller,
// which substitutes the fixed error template.
func (c *Client) GenerateReply(ctx context.Context, message string, rc ReplyContext) (string, error) {
	userName := rc.UserName
	if userName == "" {
		userName = "usuário"
	}
	aiName := rc.AIName
	if aiName == "" {
		aiName = "assistente técnico"
	}

	contextInfo := ""
	if len(rc.FoundProducts) > 0 {
		if b, err := json.Marshal(rc.FoundProducts); err == nil {
			contextInfo = fmt.Sprintf("\n\nProdutos encontrados no estoque: %s", b)
		}
	} else if rc.NoProductsFound {
		contextInfo = "\n\nNenhum produto encontrado no estoque para a consulta."
	}

	userPrompt := fmt.Sprintf("Cliente %s disse: %q%s\n\nComo %s, responda de forma útil e profissional.",
		userName, message, contextInfo, aiName)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:        replyMaxTokens,
		Temperature:      replyTemperature,
		TopP:             0.9,
		FrequencyPenalty: 0.3,
		PresencePenalty:  0.3,
	})
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "Desculpe, não consegui gerar uma resposta adequada.", nil
	}
	return resp.Choices[0].Message.Content, nil
}
