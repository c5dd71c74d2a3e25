package coach

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/practica/internal/llm"
	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/recommend"
	"github.com/abhisek/practica/internal/session"
)

// Config holds LLM phrasing settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.6,
		Timeout:     20 * time.Second,
	}
}

// LLMFormatter asks a model to phrase the template text. Any model failure
// falls back to the template, so callers always get a message.
type LLMFormatter struct {
	provider llm.Provider
	fallback Formatter
	cfg      Config
	log      zerolog.Logger
}

var _ Formatter = (*LLMFormatter)(nil)

func NewLLMFormatter(provider llm.Provider, cfg Config) *LLMFormatter {
	return &LLMFormatter{
		provider: provider,
		fallback: TemplateFormatter{},
		cfg:      cfg,
		log:      logging.Logger(),
	}
}

func (f *LLMFormatter) Recommendation(ctx context.Context, rec *recommend.Recommendation) (string, error) {
	draft, err := f.fallback.Recommendation(ctx, rec)
	if err != nil || rec == nil {
		return draft, err
	}
	return f.phrase(ctx, llm.PurposeToday, buildRecommendationMessage(rec, draft), draft)
}

func (f *LLMFormatter) Plan(ctx context.Context, plan *session.Plan) (string, error) {
	draft, err := f.fallback.Plan(ctx, plan)
	if err != nil || plan.Empty() {
		return draft, err
	}
	return f.phrase(ctx, llm.PurposeMix, buildPlanMessage(plan, draft), draft)
}

func (f *LLMFormatter) Block(ctx context.Context, block *session.Block) (string, error) {
	draft, err := f.fallback.Block(ctx, block)
	if err != nil || block.Empty() {
		return draft, err
	}
	return f.phrase(ctx, llm.PurposeBlock, buildBlockMessage(block, draft), draft)
}

// phrase returns the model's wording, or draft when the model fails. Only a
// canceled caller context is reported as an error.
func (f *LLMFormatter) phrase(ctx context.Context, purpose, user, draft string) (string, error) {
	callCtx := llm.WithPurpose(ctx, purpose)
	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, f.cfg.Timeout)
		defer cancel()
	}

	resp, err := f.provider.Generate(callCtx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(user),
		Schema:      MessageSchema,
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
	})
	if err == nil {
		var out messageOutput
		if err = resp.Decode(&out); err == nil {
			if msg := strings.TrimSpace(out.Message); msg != "" {
				return msg, nil
			}
			err = errors.New("empty message")
		}
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	f.log.Warn().Err(err).Str("purpose", purpose).Str("model", f.provider.ModelID()).
		Msg("llm phrasing failed, using template")
	return draft, nil
}
