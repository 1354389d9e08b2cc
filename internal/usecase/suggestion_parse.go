package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pantrychef/backend/internal/domain"
)

// substitutionResponse is the JSON object requested from the model
type substitutionResponse struct {
	Substitutes []suggestedSubstitute `json:"substitutes"`
}

type suggestedSubstitute struct {
	PantryItemName string          `json:"pantryItemName"`
	Reason         string          `json:"reason"`
	Ratio          json.RawMessage `json:"ratio"`
	Confidence     json.RawMessage `json:"confidence"`
}

// classificationResponse is the JSON object requested for deduction triage
type classificationResponse struct {
	AutoSubtract      []int `json:"autoSubtract"`
	NeedsConfirmation []int `json:"needsConfirmation"`
}

// extractJSONObject returns the text between the first "{" and the last "}".
// Models often wrap JSON in prose or code fences.
func extractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object in response", domain.ErrMalformedSuggestion)
	}
	return content[start : end+1], nil
}

func decodeSuggestion(content string, v interface{}) error {
	raw, err := extractJSONObject(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedSuggestion, err)
	}
	return nil
}

// rawText renders a JSON string or number as plain text.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

// parseConfidence accepts "high"/"medium"/"low" or a number in [0,1] (or a
// percentage).
func parseConfidence(raw json.RawMessage) domain.Confidence {
	text := strings.ToLower(rawText(raw))
	switch domain.Confidence(text) {
	case domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow:
		return domain.Confidence(text)
	}
	score, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
	if err != nil {
		return domain.ConfidenceMedium
	}
	if score > 1 {
		score /= 100
	}
	return domain.ConfidenceFromScore(score)
}
