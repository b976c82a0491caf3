package advisor

import (
	"fmt"
	"strings"

	"github.com/muhammadolammi/careerreadiness/internal/quiz"
	"github.com/muhammadolammi/careerreadiness/internal/report"
)

// Submission is everything the user gave us.
type Submission struct {
	Profile    report.Profile `json:"profile"`
	Answers    []quiz.Answer  `json:"answers"`
	ResumeText string         `json:"resumeText,omitempty"`
}

func Instruction() string {
	return `
You are an expert AI career strategist. You assess how exposed a person's role is to AI and automation
and give them a practical, encouraging plan to stay relevant.

You will receive the person's role, industry, their answers to a short readiness assessment and,
sometimes, the text of their resume.

Return your result as a single JSON object in exactly this shape:

{
  "aiReport": {
    "aiImpactAnalysis": string,
    "futureScenarios": string,
    "actionPlan": {
      "day30": string,
      "day60": string,
      "day90": string,
      "summary": string
    }
  },
  "skillGapAnalysis": {
    "skills": [
      {
        "skillName": string,
        "importanceRating": number,
        "currentCapabilityRating": number,
        "description": string
      }
    ],
    "summary": string
  }
}

Rules for the string fields:
- Write Markdown using only "## " and "### " headings, "- " bullets, "1. " numbered items,
  "> " callouts and **bold**. No tables, links, images or code.
- day30, day60 and day90 are numbered lists of exactly three steps, each starting with a bold label.
- importanceRating and currentCapabilityRating are whole numbers from 1 to 5.
- List between four and seven skills.

Be direct and specific to the role and industry. Base the capability ratings on the answers and resume only.
Return only valid JSON. Do not include explanations, markdown fences, or text before or after the JSON.
`
}

// BuildPrompt renders a submission as the user message sent to the model.
func BuildPrompt(sub Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role:\n%s\n\nIndustry:\n%s\n\nAssessment answers:\n", sub.Profile.Role, sub.Profile.Industry)
	for i, a := range sub.Answers {
		fmt.Fprintf(&b, "%d. %s\n   Answer: %s\n", i+1, a.Question, a.Answer)
	}
	if resume := strings.TrimSpace(sub.ResumeText); resume != "" {
		fmt.Fprintf(&b, "\nResume:\n%s\n", resume)
	}
	return b.String()
}
