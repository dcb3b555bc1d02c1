package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Receipt is the structured result of extracting one receipt image.
type Receipt struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// ExtractReceipt sends a receipt image to the model and returns the
// extracted transaction fields. The model is instructed to return a strict
// JSON object; the response is cleaned and validated before use.
func (a *Assistant) ExtractReceipt(ctx context.Context, imageBytes []byte, mimeType string) (*Receipt, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("ExtractReceipt: empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	prompt := "You are a receipt parser for a personal finance dashboard.\n\n" +
		"Task:\n" +
		"- Read the attached receipt image.\n" +
		"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
		"- Output a single JSON object with these fields:\n" +
		"  - \"date\": string, ISO format \"YYYY-MM-DD\" (today if unreadable)\n" +
		"  - \"description\": string, the merchant or a short purchase summary\n" +
		"  - \"amount\": number, the total paid (positive)\n" +
		"  - \"category\": string, one of: " + strings.Join(transactionCategories, ", ") + "\n\n" +
		"Return ONLY valid raw JSON. Do NOT wrap the response in code fences.\n"

	parts := []*genai.Part{
		{Text: prompt},
		{
			InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			},
		},
	}

	raw, err := a.generateJSON(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("ExtractReceipt: %w", err)
	}

	receipt, err := receiptFromModelOutput(raw)
	if err != nil {
		return nil, fmt.Errorf("ExtractReceipt: %w", err)
	}
	return receipt, nil
}

// receiptFromModelOutput validates and normalizes the raw model JSON.
func receiptFromModelOutput(raw map[string]interface{}) (*Receipt, error) {
	desc, err := getStringField(raw, "description", true)
	if err != nil {
		return nil, err
	}
	amount, err := getFloat64Field(raw, "amount", true)
	if err != nil {
		return nil, err
	}

	dateStr, err := getStringField(raw, "date", false)
	if err != nil {
		return nil, err
	}
	if _, perr := time.Parse("2006-01-02", dateStr); perr != nil {
		dateStr = time.Now().Format("2006-01-02")
	}

	category, err := getStringField(raw, "category", false)
	if err != nil {
		return nil, err
	}
	if category == "" {
		category = "Other"
	}

	return &Receipt{
		Date:        dateStr,
		Description: desc,
		Amount:      amount,
		Category:    category,
	}, nil
}
