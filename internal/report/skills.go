package report

import (
	"math"
	"sort"
	"strings"

	"github.com/muhammadolammi/careerreadiness/internal/markdown"
)

const (
	PriorityImmediate = "Immediate Focus"
	PriorityEmerging  = "Emerging Priority"
	PriorityLow       = "Low Priority"
)

const barBlocks = 5

// CapabilityBar draws a rating as five blocks, e.g. 3 -> ▓▓▓░░.
func CapabilityBar(rating float64) string {
	filled := int(math.Round(rating))
	filled = max(0, min(barBlocks, filled))
	return strings.Repeat("▓", filled) + strings.Repeat("░", barBlocks-filled)
}

func PriorityFor(s Skill) string {
	switch {
	case s.ImportanceRating >= 4 && s.CurrentCapabilityRating <= 2:
		return PriorityImmediate
	case s.ImportanceRating >= 3 && s.Gap() >= 1:
		return PriorityEmerging
	default:
		return PriorityLow
	}
}

func priorityColor(priority string, p markdown.Palette) string {
	switch priority {
	case PriorityImmediate:
		return "#ef4444"
	case PriorityEmerging:
		return "#f59e0b"
	default:
		return p.SlateBlue
	}
}

// SortSkills returns a copy ordered by gap, widest first, then by importance.
func SortSkills(skills []Skill) []Skill {
	sorted := make([]Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		gi, gj := sorted[i].Gap(), sorted[j].Gap()
		if gi != gj {
			return gi > gj
		}
		return sorted[i].ImportanceRating > sorted[j].ImportanceRating
	})
	return sorted
}
