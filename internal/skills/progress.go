package skills

import "time"

// CooldownChecker reports whether a (skill, dimension) pair was recommended
// recently. history.Ledger satisfies it.
type CooldownChecker interface {
	WasRecommendedWithin(skillName string, dim Dimension, window time.Duration) bool
}

// Percent returns current/max*100 for one dimension. Values above 100 are
// allowed when a counter overshoots its target.
func Percent(s Skill, d Dimension) float64 {
	target := d.Max()
	if target == 0 {
		return 0
	}
	return s.Count(d) / target * 100
}

// Percentages maps every dimension to its completion percentage.
func Percentages(s Skill) map[Dimension]float64 {
	out := make(map[Dimension]float64, len(AllDimensions()))
	for _, d := range AllDimensions() {
		out[d] = Percent(s, d)
	}
	return out
}

// IsDimensionComplete reports whether the counter for d reached its maximum.
func IsDimensionComplete(s Skill, d Dimension) bool {
	return s.Count(d) >= d.Max()
}

// IsComplete reports whether every counter reached its maximum.
func IsComplete(s Skill) bool {
	for _, d := range AllDimensions() {
		if !IsDimensionComplete(s, d) {
			return false
		}
	}
	return true
}

// IsActive reports whether any counter is above zero.
func IsActive(s Skill) bool {
	for _, d := range AllDimensions() {
		if s.Count(d) > 0 {
			return true
		}
	}
	return false
}

// OverallCompletionPercent is the sum of all counters over the sum of all
// maxima, times 100.
func OverallCompletionPercent(s Skill) float64 {
	var sum, target float64
	for _, d := range AllDimensions() {
		sum += s.Count(d)
		target += d.Max()
	}
	return sum / target * 100
}

// WeakestDimension returns the incomplete dimension with the lowest
// percentage, ties going to the earlier dimension in enumeration order.
// A complete skill yields DimensionNone at 100%.
func WeakestDimension(s Skill) (Dimension, float64) {
	weakest := DimensionNone
	lowest := 100.0
	for _, d := range AllDimensions() {
		p := Percent(s, d)
		if p >= 100 {
			continue
		}
		if weakest == DimensionNone || p < lowest {
			weakest = d
			lowest = p
		}
	}
	return weakest, lowest
}

// NextSequentialDimension walks the curriculum order and returns the first
// incomplete dimension that is not cooling down. When every incomplete
// dimension is cooling down the cooldown is ignored and the first incomplete
// dimension is returned. A complete skill yields DimensionNone.
func NextSequentialDimension(s Skill, checker CooldownChecker, cooldown time.Duration) Dimension {
	first := DimensionNone
	for _, d := range CurriculumOrder() {
		if IsDimensionComplete(s, d) {
			continue
		}
		if first == DimensionNone {
			first = d
		}
		if checker == nil || !checker.WasRecommendedWithin(s.Name, d, cooldown) {
			return d
		}
	}
	return first
}

// Incomplete filters a snapshot down to skills that still have work left,
// preserving order.
func Incomplete(all []Skill) []Skill {
	var out []Skill
	for _, s := range all {
		if !IsComplete(s) {
			out = append(out, s)
		}
	}
	return out
}
