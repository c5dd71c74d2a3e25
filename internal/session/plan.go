package session

import (
	"time"

	"github.com/abhisek/practica/internal/skills"
)

// DefaultInterleaveCount is the number of categories drawn per plan when the
// caller asks for zero or fewer.
const DefaultInterleaveCount = 3

// BlockSkillCount is the number of skills a deep-practice block spans.
const BlockSkillCount = 3

// durationChoices are the per-item minute suggestions for interleaved plans.
var durationChoices = []int{10, 15, 20}

// PlanItem is a single skill in an interleaved plan: one skill from one
// category, with its weakest dimension and a suggested duration.
type PlanItem struct {
	Skill     skills.Skill
	Category  string
	Dimension skills.Dimension
	Percent   float64
	Minutes   int
}

// Plan is the ordered list of items for an interleaved session.
type Plan struct {
	Items     []PlanItem
	CreatedAt time.Time
}

// Empty reports whether the plan has no items.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// SkillNames returns the item skill names in plan order.
func (p *Plan) SkillNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.Items))
	for i, it := range p.Items {
		names[i] = it.Skill.Name
	}
	return names
}

// TotalMinutes sums the suggested durations.
func (p *Plan) TotalMinutes() int {
	if p == nil {
		return 0
	}
	total := 0
	for _, it := range p.Items {
		total += it.Minutes
	}
	return total
}
