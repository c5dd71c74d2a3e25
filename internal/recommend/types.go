package recommend

import (
	"context"
	"time"

	"github.com/abhisek/practica/internal/skills"
)

// Mode is the strategy that produced a recommendation. It only shapes how
// the result is phrased to the learner.
type Mode string

const (
	ModeWeakest    Mode = "weakest"
	ModeSequential Mode = "sequential"
)

// Other returns the opposite strategy.
func (m Mode) Other() Mode {
	if m == ModeSequential {
		return ModeWeakest
	}
	return ModeSequential
}

// Recommendation is today's single task.
type Recommendation struct {
	SkillID   string
	SkillName string
	Category  string
	Dimension skills.Dimension
	Current   float64
	Maximum   float64
	Percent   float64
	Mode      Mode
	CreatedAt time.Time
}

// Ledger is the slice of history.Ledger the engine needs.
type Ledger interface {
	skills.CooldownChecker
	Record(ctx context.Context, skillName string, dim skills.Dimension, when time.Time) error
}

// Rand is the random source used for strategy and tie-free picks.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// candidate is a per-skill proposal under one mode.
type candidate struct {
	skill   skills.Skill
	dim     skills.Dimension
	percent float64
}

func (c candidate) recommendation(mode Mode, now time.Time) *Recommendation {
	return &Recommendation{
		SkillID:   c.skill.ID,
		SkillName: c.skill.Name,
		Category:  c.skill.Category,
		Dimension: c.dim,
		Current:   c.skill.Count(c.dim),
		Maximum:   c.dim.Max(),
		Percent:   c.percent,
		Mode:      mode,
		CreatedAt: now,
	}
}
