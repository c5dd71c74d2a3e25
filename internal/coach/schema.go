package coach

import "github.com/abhisek/practica/internal/llm"

// MessageSchema is the structured output every coach prompt asks for.
var MessageSchema = &llm.Schema{
	Name:        "coach-message",
	Description: "A short practice message for the learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "The message to show, 1-4 short sentences or a short list",
				"minLength":   1,
			},
		},
		"required":             []any{"message"},
		"additionalProperties": false,
	},
}

type messageOutput struct {
	Message string `json:"message"`
}
