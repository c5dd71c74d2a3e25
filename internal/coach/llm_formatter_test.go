package coach

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practica/internal/llm"
	"github.com/abhisek/practica/internal/recommend"
)

func TestLLMFormatter_UsesModelMessage(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("  Put in some hours on Go today. You're at 38%.  "))
	f := NewLLMFormatter(mock, DefaultConfig())

	got, err := f.Recommendation(context.Background(), sampleRecommendation(recommend.ModeWeakest))
	require.NoError(t, err)
	assert.Equal(t, "Put in some hours on Go today. You're at 38%.", got)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, MessageSchema, req.Schema)
	assert.Equal(t, systemPrompt, req.System)
	assert.Contains(t, req.Messages[0].Content, "Skill: Go")
	assert.Contains(t, req.Messages[0].Content, "Dimension: Practice Hours")
	assert.Contains(t, req.Messages[0].Content, "weakest area")
}

func TestLLMFormatter_FallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"malformed content", llm.MockResponse{Content: []byte(`not json`)}},
		{"blank message", llm.TextResponse("   ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLLMFormatter(llm.NewMockProvider(tt.resp), DefaultConfig())

			got, err := f.Plan(context.Background(), samplePlan())
			require.NoError(t, err)
			want, _ := TemplateFormatter{}.Plan(context.Background(), samplePlan())
			assert.Equal(t, want, got)
		})
	}
}

func TestLLMFormatter_EmptyInputSkipsModel(t *testing.T) {
	mock := llm.NewMockProvider()
	f := NewLLMFormatter(mock, DefaultConfig())
	ctx := context.Background()

	got, err := f.Recommendation(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, NothingToPractice, got)

	got, err = f.Plan(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, EmptyPlan, got)

	got, err = f.Block(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, EmptyBlock, got)

	assert.Zero(t, mock.CallCount())
}

func TestLLMFormatter_BlockPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Three skills, 33 minutes each."))
	f := NewLLMFormatter(mock, DefaultConfig())

	got, err := f.Block(context.Background(), sampleBlock())
	require.NoError(t, err)
	assert.Equal(t, "Three skills, 33 minutes each.", got)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "100 minute deep-practice block")
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "- Piano: 33 min on Lectures")
}

func TestLLMFormatter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewLLMFormatter(llm.NewMockProvider(llm.TextResponse("unused")), DefaultConfig())

	_, err := f.Recommendation(ctx, sampleRecommendation(recommend.ModeSequential))
	assert.ErrorIs(t, err, context.Canceled)
}
