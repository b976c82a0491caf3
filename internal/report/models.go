package report

// Profile is what the user tells us about themselves on the intro screen.
type Profile struct {
	Role     string `json:"role"`
	Industry string `json:"industry"`
}

// Data is the pair of loosely-typed reports returned by the model. Either
// half may be missing.
type Data struct {
	AIReport         *AIReport         `json:"aiReport,omitempty"`
	SkillGapAnalysis *SkillGapAnalysis `json:"skillGapAnalysis,omitempty"`
}

type AIReport struct {
	AIImpactAnalysis string      `json:"aiImpactAnalysis"`
	FutureScenarios  string      `json:"futureScenarios"`
	ActionPlan       *ActionPlan `json:"actionPlan,omitempty"`
}

type ActionPlan struct {
	Day30   string `json:"day30"`
	Day60   string `json:"day60"`
	Day90   string `json:"day90"`
	Summary string `json:"summary"`
}

type SkillGapAnalysis struct {
	Skills  []Skill `json:"skills"`
	Summary string  `json:"summary"`
}

// Skill ratings are on a 1-5 scale. The model occasionally returns halves.
type Skill struct {
	SkillName               string  `json:"skillName"`
	ImportanceRating        float64 `json:"importanceRating"`
	CurrentCapabilityRating float64 `json:"currentCapabilityRating"`
	Description             string  `json:"description"`
}

func (s Skill) Gap() float64 {
	return s.ImportanceRating - s.CurrentCapabilityRating
}

// Empty reports whether neither report was returned.
func (d *Data) Empty() bool {
	return d == nil || (d.AIReport == nil && d.SkillGapAnalysis == nil)
}
