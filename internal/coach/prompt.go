package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/practica/internal/recommend"
	"github.com/abhisek/practica/internal/session"
)

const systemPrompt = `You are a friendly practice coach. You rephrase a practice suggestion that has already been decided.

Rules:
- Never change the skill, dimension, or minutes you are given. Do not add skills.
- Keep it short: at most four sentences, or one line per item for lists.
- Plain text only. No markdown headings, no emoji.
- Mention the percentage so the learner sees their progress.`

func buildRecommendationMessage(rec *recommend.Recommendation, draft string) string {
	var b strings.Builder
	b.WriteString("Task: today's single recommendation.\n")
	fmt.Fprintf(&b, "Skill: %s\n", rec.SkillName)
	if rec.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", rec.Category)
	}
	fmt.Fprintf(&b, "Dimension: %s\n", dimensionLabel(rec.Dimension))
	fmt.Fprintf(&b, "Progress: %s of %s (%.0f%%)\n", formatCount(rec.Current), formatCount(rec.Maximum), rec.Percent)
	if rec.Mode == recommend.ModeSequential {
		b.WriteString("Why: it is the next step in the learning curriculum.\n")
	} else {
		b.WriteString("Why: it is the learner's weakest area.\n")
	}
	writeDraft(&b, draft)
	return b.String()
}

func buildPlanMessage(plan *session.Plan, draft string) string {
	var b strings.Builder
	b.WriteString("Task: an interleaved session that mixes categories. Keep the order.\n")
	for i, it := range plan.Items {
		fmt.Fprintf(&b, "%d. %s (category %s): %s, %.0f%%, %d min\n",
			i+1, it.Skill.Name, it.Category, dimensionLabel(it.Dimension), it.Percent, it.Minutes)
	}
	writeDraft(&b, draft)
	return b.String()
}

func buildBlockMessage(block *session.Block, draft string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: a %d minute deep-practice block, time split equally.\n", block.TotalMinutes)
	for _, it := range block.Items {
		fmt.Fprintf(&b, "- %s: %d min on %s (%.0f%% done there, %.0f%% overall)\n",
			it.SkillName, it.Minutes, dimensionLabel(it.Dimension), it.DimensionPercent, it.OverallPercent)
	}
	writeDraft(&b, draft)
	return b.String()
}

func writeDraft(b *strings.Builder, draft string) {
	b.WriteString("\nDraft to rephrase:\n")
	b.WriteString(draft)
	b.WriteString("\n")
}
