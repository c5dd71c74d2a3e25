package llm

import (
	"context"
	"time"

	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event. Prompts and responses are not stored, only usage.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	now       func() time.Time
}

// WithLogging wraps a Provider with event logging. provider names the
// vendor, e.g. "anthropic".
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: l.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The request context may already be done; the event should still land.
	if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		logging.Warn().Err(logErr).Str("purpose", data.Purpose).Msg("failed to log llm request event")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
