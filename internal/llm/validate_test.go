package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func planSchema() *Schema {
	return &Schema{
		Name:        "coach-plan",
		Description: "Phrasing for an interleaved plan",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string"},
				"minutes": map[string]any{"type": "integer", "minimum": 1},
				"tone":    map[string]any{"type": "string", "enum": []any{"calm", "upbeat"}},
			},
			"required": []any{"message", "minutes"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"message":"Go then Piano","minutes":45,"tone":"calm"}`, false},
		{"optional omitted", `{"message":"Go","minutes":10}`, false},
		{"missing required", `{"message":"Go"}`, true},
		{"wrong type", `{"message":"Go","minutes":"ten"}`, true},
		{"below minimum", `{"message":"Go","minutes":0}`, true},
		{"bad enum", `{"message":"Go","minutes":10,"tone":"angry"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(planSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_SameNameDifferentDefinition(t *testing.T) {
	loose := &Schema{Name: "shared", Definition: map[string]any{"type": "object"}}
	strict := &Schema{Name: "shared", Definition: map[string]any{
		"type":     "object",
		"required": []any{"message"},
	}}

	if err := validateResponse(loose, json.RawMessage(`{}`)); err != nil {
		t.Fatalf("loose schema: %v", err)
	}
	if err := validateResponse(strict, json.RawMessage(`{}`)); err == nil {
		t.Fatal("strict schema must not reuse the loose compiled schema")
	}
}

func TestFinish(t *testing.T) {
	resp, err := finish(Request{}, "plain words", Usage{TotalTokens: 3}, "m", "end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `"plain words"` {
		t.Fatalf("free text should be a JSON string, got %s", resp.Content)
	}

	if _, err := finish(Request{Schema: planSchema()}, `{"message":"x"}`, Usage{}, "m", "end"); err == nil {
		t.Fatal("expected schema failure")
	}

	var maxTok *ErrMaxTokensExceeded
	if _, err := finish(Request{}, "partial", Usage{}, "m", "max_tokens"); !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
}
