package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/practica/internal/history"
	"github.com/abhisek/practica/internal/logging"
	"github.com/abhisek/practica/internal/skills"
)

// Planner builds an interleaved practice plan.
type Planner interface {
	// Plan draws up to count skills from distinct categories.
	Plan(ctx context.Context, all []skills.Skill, categories skills.CategoryMap, count int) (*Plan, error)
}

// Ledger is the slice of history.Ledger the planner needs.
type Ledger interface {
	RecentSkillNames(limit int) []string
	RecordSelection(ctx context.Context, picks []history.Pick, when time.Time) error
}

// Rand is the random source for category order, skill and duration picks.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// DefaultPlanner draws one skill per category, avoiding the skills of the
// previous selection where the category allows it.
type DefaultPlanner struct {
	ledger Ledger
	rng    Rand
	now    func() time.Time
	log    zerolog.Logger
}

// Option configures a DefaultPlanner.
type Option func(*DefaultPlanner)

// WithRand pins the random source.
func WithRand(r Rand) Option {
	return func(p *DefaultPlanner) { p.rng = r }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *DefaultPlanner) { p.now = now }
}

// WithLogger sets the planner logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *DefaultPlanner) { p.log = log }
}

// NewPlanner creates a DefaultPlanner bound to ledger.
func NewPlanner(ledger Ledger, opts ...Option) *DefaultPlanner {
	p := &DefaultPlanner{
		ledger: ledger,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x2545f4914f6cdd1d)),
		now:    time.Now,
		log:    logging.Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan groups the incomplete skills by category, shuffles the categories and
// takes one skill from each until count items are chosen. Skills from the
// previous selection are skipped unless a category has nothing else. The
// selection replaces the ledger's recent slot; an empty plan writes nothing.
func (p *DefaultPlanner) Plan(ctx context.Context, all []skills.Skill, categories skills.CategoryMap, count int) (*Plan, error) {
	if count <= 0 {
		count = DefaultInterleaveCount
	}

	groups := categories.Group(all, func(s skills.Skill) bool { return !skills.IsComplete(s) })
	now := p.now()
	plan := &Plan{CreatedAt: now}
	if len(groups) == 0 {
		return plan, nil
	}

	// Sorted first so a seeded source gives a reproducible order.
	topics := make([]string, 0, len(groups))
	for _, name := range categories.Names() {
		if _, ok := groups[name]; ok {
			topics = append(topics, name)
		}
	}
	p.rng.Shuffle(len(topics), func(i, j int) { topics[i], topics[j] = topics[j], topics[i] })

	recent := make(map[string]bool)
	for _, name := range p.ledger.RecentSkillNames(0) {
		recent[name] = true
	}
	picked := make(map[string]bool)

	for _, topic := range topics {
		if len(plan.Items) == count {
			break
		}

		pool := filterSkills(groups[topic], func(s skills.Skill) bool { return !picked[s.Name] && !recent[s.Name] })
		if len(pool) == 0 {
			pool = filterSkills(groups[topic], func(s skills.Skill) bool { return !picked[s.Name] })
		}
		if len(pool) == 0 {
			continue
		}

		s := pool[p.rng.IntN(len(pool))]
		dim, pct := skills.WeakestDimension(s)
		picked[s.Name] = true
		plan.Items = append(plan.Items, PlanItem{
			Skill:     s,
			Category:  topic,
			Dimension: dim,
			Percent:   pct,
			Minutes:   durationChoices[p.rng.IntN(len(durationChoices))],
		})
	}

	if plan.Empty() {
		return plan, nil
	}

	picks := make([]history.Pick, len(plan.Items))
	for i, it := range plan.Items {
		picks[i] = history.Pick{SkillName: it.Skill.Name, Dimension: it.Dimension}
	}
	if err := p.ledger.RecordSelection(ctx, picks, now); err != nil {
		return nil, fmt.Errorf("record selection: %w", err)
	}

	p.log.Debug().Strs("skills", plan.SkillNames()).Msg("interleaved plan built")
	return plan, nil
}

func filterSkills(in []skills.Skill, keep func(skills.Skill) bool) []skills.Skill {
	var out []skills.Skill
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
