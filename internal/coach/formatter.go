// Package coach turns engine output into the text a learner reads.
package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/practica/internal/recommend"
	"github.com/abhisek/practica/internal/session"
	"github.com/abhisek/practica/internal/skills"
)

// Formatter renders recommendations, plans and blocks as plain text.
type Formatter interface {
	Recommendation(ctx context.Context, rec *recommend.Recommendation) (string, error)
	Plan(ctx context.Context, plan *session.Plan) (string, error)
	Block(ctx context.Context, block *session.Block) (string, error)
}

// Messages shown when there is nothing to do.
const (
	NothingToPractice = "Nothing to practice: every skill is complete."
	EmptyPlan         = "No categories have unfinished skills to mix today."
	EmptyBlock        = "No unfinished skills to build a practice block from."
)

// TemplateFormatter renders fixed, deterministic text.
type TemplateFormatter struct{}

var _ Formatter = TemplateFormatter{}

func (TemplateFormatter) Recommendation(_ context.Context, rec *recommend.Recommendation) (string, error) {
	if rec == nil {
		return NothingToPractice, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Today: %s, %s (%s/%s, %.0f%%)",
		rec.SkillName, rec.Dimension.DisplayName(),
		formatCount(rec.Current), formatCount(rec.Maximum), rec.Percent)
	if rec.Category != "" {
		fmt.Fprintf(&b, " [%s]", rec.Category)
	}
	b.WriteString("\n")
	b.WriteString(reason(rec.Mode))
	return b.String(), nil
}

func (TemplateFormatter) Plan(_ context.Context, plan *session.Plan) (string, error) {
	if plan.Empty() {
		return EmptyPlan, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Interleaved practice, %d min:\n", plan.TotalMinutes())
	for i, it := range plan.Items {
		fmt.Fprintf(&b, "  %d. %s [%s] %s at %.0f%% for %d min\n",
			i+1, it.Skill.Name, it.Category, it.Dimension.DisplayName(), it.Percent, it.Minutes)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (TemplateFormatter) Block(_ context.Context, block *session.Block) (string, error) {
	if block.Empty() {
		return EmptyBlock, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Deep practice block, %d min", block.TotalMinutes)
	if alloc := block.AllocatedMinutes(); alloc != block.TotalMinutes {
		fmt.Fprintf(&b, " (%d allocated)", alloc)
	}
	b.WriteString(":\n")
	for _, it := range block.Items {
		fmt.Fprintf(&b, "  - %s: %d min on %s (%.0f%% there, %.0f%% overall)\n",
			it.SkillName, it.Minutes, it.Dimension.DisplayName(), it.DimensionPercent, it.OverallPercent)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func reason(m recommend.Mode) string {
	if m == recommend.ModeSequential {
		return "Next step in the curriculum."
	}
	return "This is your weakest area right now."
}

// formatCount prints whole counters without decimals; practice hours may
// be fractional.
func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// dimensionLabel is the display name, or "-" for the none sentinel.
func dimensionLabel(d skills.Dimension) string {
	if d == skills.DimensionNone {
		return "-"
	}
	return d.DisplayName()
}
