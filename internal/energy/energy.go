// Package energy interprets the recovery signal callers use to gate or
// shrink practice requests. The recommendation core never sees it.
package energy

import (
	"fmt"
	"math"
	"strings"
)

// Level is the learner's current energy.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// DefaultMediumScale shrinks block length on medium-energy days.
const DefaultMediumScale = 0.75

// Parse accepts high, medium or low in any case. Empty input means High.
func Parse(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case "", High:
		return High, nil
	case Medium:
		return Medium, nil
	case Low:
		return Low, nil
	default:
		return "", fmt.Errorf("unknown energy level %q (want high, medium or low)", s)
	}
}

// Allow reports whether a practice request should be made at all.
func (l Level) Allow() bool {
	return l != Low
}

// ScaleMinutes shrinks minutes on medium days, never below one minute.
// Other levels return minutes unchanged.
func (l Level) ScaleMinutes(minutes int, mediumScale float64) int {
	if l != Medium || minutes <= 0 {
		return minutes
	}
	if mediumScale <= 0 || mediumScale > 1 {
		mediumScale = DefaultMediumScale
	}
	scaled := int(math.Floor(float64(minutes) * mediumScale))
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

func (l Level) String() string {
	return string(l)
}
