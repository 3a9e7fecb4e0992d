package assistant

import (
	"encoding/json"
	"strings"
)

// ActionModifyDocument is the only structured action the assistant may emit.
const ActionModifyDocument = "modify_document"

// Action is a structured instruction parsed from an assistant reply.
// Section and Content are untrusted free-form strings; normalization and
// sanitization happen downstream.
type Action struct {
	Action  string `json:"action"`
	Section string `json:"section"`
	Content string `json:"content"`
}

// ParseAction inspects an assistant reply and extracts a structured action
// if the reply is one. Models wrap JSON in code fences or stray prose more
// often than not, so the parser tolerates fences and leading/trailing text
// around a single top-level object. ok is false for plain conversational
// replies, malformed JSON, and unknown actions.
func ParseAction(reply string) (*Action, bool) {
	candidate := strings.TrimSpace(reply)

	// Strip markdown code fences (``` or ```json).
	if strings.HasPrefix(candidate, "```") {
		candidate = strings.TrimPrefix(candidate, "```json")
		candidate = strings.TrimPrefix(candidate, "```")
		candidate = strings.TrimSuffix(strings.TrimSpace(candidate), "```")
		candidate = strings.TrimSpace(candidate)
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var action Action
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &action); err != nil {
		return nil, false
	}

	if action.Action != ActionModifyDocument {
		return nil, false
	}
	if strings.TrimSpace(action.Section) == "" {
		return nil, false
	}

	return &action, true
}
