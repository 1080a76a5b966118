package gemini

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/darkcrawl"
)

// ParseResponse parses the model's text output into the findings contract.
// The "patterns" key must be present; a syntactically valid JSON object
// without it is a contract violation, not zero findings. Markdown code
// fences around the JSON are tolerated.
func ParseResponse(text string) (*darkcrawl.FindingsResponse, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, darkcrawl.Errorf(darkcrawl.EINTERNAL, "no JSON object in model response")
	}

	var probe struct {
		Patterns *[]darkcrawl.RawFinding `json:"patterns"`
		Summary  string                  `json:"summary"`
	}
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return nil, darkcrawl.Errorf(darkcrawl.EINTERNAL, "malformed model response: %v", err)
	}
	if probe.Patterns == nil {
		return nil, darkcrawl.Errorf(darkcrawl.EINTERNAL, `model response missing "patterns" key`)
	}

	return &darkcrawl.FindingsResponse{
		Patterns: *probe.Patterns,
		Summary:  probe.Summary,
	}, nil
}

// extractJSON strips optional markdown fences and returns the outermost
// JSON object in the text, or "" when none exists.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
