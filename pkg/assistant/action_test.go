package assistant

import (
	"strings"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantOk      bool
		wantSection string
		wantContent string
	}{
		{
			name:        "bare json",
			reply:       `{"action":"modify_document","section":"TITLE","content":"Un título"}`,
			wantOk:      true,
			wantSection: "TITLE",
			wantContent: "Un título",
		},
		{
			name: "fenced json",
			reply: "```json\n" +
				`{"action":"modify_document","section":"Investigadores","content":"Dra. Pérez"}` +
				"\n```",
			wantOk:      true,
			wantSection: "Investigadores",
			wantContent: "Dra. Pérez",
		},
		{
			name:        "json with surrounding prose",
			reply:       "Claro, aquí tienes:\n{\"action\":\"modify_document\",\"section\":\"PURPOSE\",\"content\":\"x\"}\nEspero que sirva.",
			wantOk:      true,
			wantSection: "PURPOSE",
			wantContent: "x",
		},
		{
			name:   "plain conversation",
			reply:  "El documento de divulgación debe incluir a todos los inventores.",
			wantOk: false,
		},
		{
			name:   "unknown action",
			reply:  `{"action":"delete_document","section":"TITLE","content":"x"}`,
			wantOk: false,
		},
		{
			name:   "missing section",
			reply:  `{"action":"modify_document","section":"  ","content":"x"}`,
			wantOk: false,
		},
		{
			name:   "malformed json",
			reply:  `{"action":"modify_document","section":"TITLE"`,
			wantOk: false,
		},
		{
			name:   "empty reply",
			reply:  "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := ParseAction(tt.reply)
			if ok != tt.wantOk {
				t.Fatalf("ParseAction() ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if action.Section != tt.wantSection {
				t.Errorf("Section = %q, want %q", action.Section, tt.wantSection)
			}
			if action.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", action.Content, tt.wantContent)
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt("")
	if !strings.Contains(prompt, "modify_document") {
		t.Error("prompt missing the action protocol")
	}
	if !strings.Contains(prompt, "TITLE") || !strings.Contains(prompt, "WITNESSES") {
		t.Error("prompt missing section enumeration")
	}
	if strings.Contains(prompt, "CONTEXTO DE LOS DOCUMENTOS") {
		t.Error("empty context should omit the context block")
	}

	withCtx := BuildSystemPrompt("trozo relevante")
	if !strings.Contains(withCtx, "trozo relevante") {
		t.Error("context text missing from prompt")
	}
}
