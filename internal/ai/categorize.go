package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Categories the model is allowed to suggest. Keeping the list in the
// prompt constrains free-text answers to the dashboard's select options.
var transactionCategories = []string{
	"Housing",
	"Food",
	"Transportation",
	"Health",
	"Entertainment",
	"Shopping",
	"Services",
	"Education",
	"Work",
	"Other",
}

// SuggestCategory asks the model for the single best category for a
// transaction description. The answer is validated against the known list;
// anything else falls back to "Other".
func (a *Assistant) SuggestCategory(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", fmt.Errorf("SuggestCategory: description is empty")
	}

	prompt := "You are a personal finance assistant.\n" +
		"Classify the following transaction description into exactly one category.\n\n" +
		"Allowed categories:\n- " + strings.Join(transactionCategories, "\n- ") + "\n\n" +
		"Respond with the category name ONLY, no punctuation, no explanation.\n\n" +
		"Description: " + description + "\n"

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	answer, err := a.generateText(ctx, contents)
	if err != nil {
		return "", fmt.Errorf("SuggestCategory: %w", err)
	}

	answer = strings.TrimSpace(answer)
	for _, cat := range transactionCategories {
		if strings.EqualFold(answer, cat) {
			return cat, nil
		}
	}
	return "Other", nil
}
