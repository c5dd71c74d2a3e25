package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/skills"
)

// DefaultCooldown is the minimum gap before a (skill, dimension) pair is
// recommended again.
const DefaultCooldown = 2 * 24 * time.Hour

// Engine picks one (skill, dimension) task per call and records it in the
// ledger it was built with.
type Engine struct {
	ledger   Ledger
	rng      Rand
	cooldown time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand pins the random source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithCooldown overrides DefaultCooldown.
func WithCooldown(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.cooldown = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine bound to ledger.
func New(ledger Ledger, opts ...Option) *Engine {
	e := &Engine{
		ledger:   ledger,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		cooldown: DefaultCooldown,
		now:      time.Now,
		log:      logging.Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RecommendFrom fetches one snapshot from src and recommends against its
// incomplete skills. A fetch failure is returned before anything is decided
// or recorded.
func (e *Engine) RecommendFrom(ctx context.Context, src skills.Source) (*Recommendation, error) {
	snapshot, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch skills: %w", err)
	}
	return e.Recommend(ctx, skills.Incomplete(snapshot))
}

// Recommend chooses today's task among the given incomplete skills.
// It returns (nil, nil) when there is nothing to recommend.
//
// The strategy is a fair coin: sequential advances the curriculum, weakest
// remediates the lowest dimension. Candidates cooling down are dropped; if
// none survive the other strategy is tried, and as a last resort the
// cooldown is ignored.
func (e *Engine) Recommend(ctx context.Context, incomplete []skills.Skill) (*Recommendation, error) {
	if len(incomplete) == 0 {
		return nil, nil
	}

	mode := ModeWeakest
	if e.rng.IntN(2) == 1 {
		mode = ModeSequential
	}

	chosen, usedMode, ok := e.choose(incomplete, mode)
	if !ok {
		return nil, nil
	}

	now := e.now()
	if err := e.ledger.Record(ctx, chosen.skill.Name, chosen.dim, now); err != nil {
		return nil, fmt.Errorf("record recommendation: %w", err)
	}

	e.log.Debug().
		Str("skill", chosen.skill.Name).
		Str("dimension", string(chosen.dim)).
		Str("mode", string(usedMode)).
		Msg("recommendation chosen")

	return chosen.recommendation(usedMode, now), nil
}

// choose runs the fallback chain and returns the pick plus the mode whose
// candidates produced it.
func (e *Engine) choose(incomplete []skills.Skill, mode Mode) (candidate, Mode, bool) {
	if survivors := e.cooled(e.candidates(incomplete, mode)); len(survivors) > 0 {
		return e.selectFrom(survivors, mode), mode, true
	}

	other := mode.Other()
	if survivors := e.cooled(e.candidates(incomplete, other)); len(survivors) > 0 {
		return e.selectFrom(survivors, other), other, true
	}

	// Everything is cooling down. A same-day repeat is possible here.
	all := e.candidates(incomplete, mode)
	if len(all) == 0 {
		return candidate{}, mode, false
	}
	e.log.Debug().Int("skills", len(incomplete)).Msg("all candidates cooling down; ignoring cooldown")
	return all[0], mode, true
}

// candidates proposes one dimension per skill under mode, dropping skills
// with nothing left in the proposed dimension.
func (e *Engine) candidates(incomplete []skills.Skill, mode Mode) []candidate {
	out := make([]candidate, 0, len(incomplete))
	for _, s := range incomplete {
		var dim skills.Dimension
		switch mode {
		case ModeSequential:
			dim = skills.NextSequentialDimension(s, e.ledger, e.cooldown)
		default:
			dim, _ = skills.WeakestDimension(s)
		}
		if dim == skills.DimensionNone || skills.IsDimensionComplete(s, dim) {
			continue
		}
		out = append(out, candidate{skill: s, dim: dim, percent: skills.Percent(s, dim)})
	}
	return out
}

// cooled keeps candidates outside the cooldown window.
func (e *Engine) cooled(cands []candidate) []candidate {
	var out []candidate
	for _, c := range cands {
		if !e.ledger.WasRecommendedWithin(c.skill.Name, c.dim, e.cooldown) {
			out = append(out, c)
		}
	}
	return out
}

// selectFrom applies the mode's final pick: uniform for sequential, global
// minimum percentage (first wins ties) for weakest.
func (e *Engine) selectFrom(survivors []candidate, mode Mode) candidate {
	if mode == ModeSequential {
		return survivors[e.rng.IntN(len(survivors))]
	}
	best := survivors[0]
	for _, c := range survivors[1:] {
		if c.percent < best.percent {
			best = c
		}
	}
	return best
}
