package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ChatMessage is one turn of a finance chat conversation. Role is "user"
// or "model".
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Chat sends a conversation to the model and returns its next reply. The
// system framing keeps answers on personal-finance topics; the caller is
// responsible for persisting history between turns.
func (a *Assistant) Chat(ctx context.Context, history []ChatMessage) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("Chat: empty conversation")
	}

	framing := "You are a helpful personal finance assistant for a budgeting dashboard. " +
		"Answer briefly and practically. If asked about anything unrelated to " +
		"personal finance, politely steer the conversation back."

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: framing}},
		},
	}
	for _, msg := range history {
		role := msg.Role
		if role != "model" {
			role = "user"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}

	reply, err := a.generateText(ctx, contents)
	if err != nil {
		return "", fmt.Errorf("Chat: %w", err)
	}
	return reply, nil
}
