package ai

import "testing"

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind EnvelopeKind
		wantText string
	}{
		{
			name:     "output_text wins",
			raw:      `{"output_text":"1. Main idea: A","output":"ignored"}`,
			wantKind: KindOutputText,
			wantText: "1. Main idea: A",
		},
		{
			name:     "output string",
			raw:      `{"output":"plain"}`,
			wantKind: KindOutputString,
			wantText: "plain",
		},
		{
			name:     "output object content",
			raw:      `{"output":{"content":"nested"}}`,
			wantKind: KindOutputContent,
			wantText: "nested",
		},
		{
			name: "responses output items",
			raw: `{"id":"resp_1","output":[
				{"type":"reasoning","summary":[]},
				{"type":"web_search_call","status":"completed"},
				{"type":"message","content":[{"type":"output_text","text":"Hello"},{"type":"output_text","text":"world"}]}
			]}`,
			wantKind: KindOutputItems,
			wantText: "Hello\nworld",
		},
		{
			name: "sections split across message items keep their line breaks",
			raw: `{"output":[
				{"type":"message","content":[{"type":"output_text","text":"1. Main idea: A page."}]},
				{"type":"message","content":[{"type":"output_text","text":""},{"type":"output_text","text":"2. Key insights: B"}]}
			]}`,
			wantKind: KindOutputItems,
			wantText: "1. Main idea: A page.\n2. Key insights: B",
		},
		{
			name:     "chat completion",
			raw:      `{"choices":[{"message":{"role":"assistant","content":"from chat"}}]}`,
			wantKind: KindChoiceMessage,
			wantText: "from chat",
		},
		{
			name:     "empty output_text falls through",
			raw:      `{"output_text":"","choices":[{"message":{"content":"next"}}]}`,
			wantKind: KindChoiceMessage,
			wantText: "next",
		},
		{
			name:     "unknown shape returns raw json",
			raw:      `{"foo":1}`,
			wantKind: KindUnknown,
			wantText: `{"foo":1}`,
		},
		{
			name:     "invalid json returns raw bytes",
			raw:      `not json`,
			wantKind: KindUnknown,
			wantText: `not json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeEnvelope([]byte(tt.raw))
			if got.Kind != tt.wantKind {
				t.Errorf("DecodeEnvelope() kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("DecodeEnvelope() text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}
