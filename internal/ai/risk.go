package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/rvaldes/finance-dashboard/internal/finance"
)

// RiskAssessment is the structured output of the financial risk flow.
type RiskAssessment struct {
	Score   float64  `json:"score"` // 0 (healthy) to 100 (critical)
	Level   string   `json:"level"` // low, medium, high
	Factors []string `json:"factors"`
}

// AssessRisk asks the model to score the financial health implied by a
// yearly summary. The summary is passed as JSON so the prompt stays in
// sync with the aggregation shapes.
func (a *Assistant) AssessRisk(ctx context.Context, summary finance.Summary) (*RiskAssessment, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("AssessRisk: marshal summary: %w", err)
	}

	prompt := "You are a personal finance risk analyst.\n\n" +
		"Given the yearly financial summary below (JSON), assess the financial risk.\n" +
		"Output STRICT JSON only, a single object with:\n" +
		"  - \"score\": number between 0 (healthy) and 100 (critical)\n" +
		"  - \"level\": string, one of \"low\", \"medium\", \"high\"\n" +
		"  - \"factors\": array of short strings naming the main drivers\n\n" +
		"Return ONLY valid raw JSON. Do NOT wrap the response in code fences.\n\n" +
		"Summary:\n" + string(payload) + "\n"

	raw, err := a.generateJSON(ctx, []*genai.Part{{Text: prompt}})
	if err != nil {
		return nil, fmt.Errorf("AssessRisk: %w", err)
	}

	assessment, err := riskFromModelOutput(raw)
	if err != nil {
		return nil, fmt.Errorf("AssessRisk: %w", err)
	}
	return assessment, nil
}

func riskFromModelOutput(raw map[string]interface{}) (*RiskAssessment, error) {
	score, err := getFloat64Field(raw, "score", true)
	if err != nil {
		return nil, err
	}
	level, err := getStringField(raw, "level", true)
	if err != nil {
		return nil, err
	}

	var factors []string
	if v, ok := raw["factors"]; ok && v != nil {
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q has type %T, want array", "factors", v)
		}
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("factors[%d] has type %T, want string", i, item)
			}
			factors = append(factors, s)
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &RiskAssessment{Score: score, Level: level, Factors: factors}, nil
}
