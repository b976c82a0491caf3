package report

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/muhammadolammi/careerreadiness/internal/markdown"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Shown when the model leaves a day of the action plan empty.
const (
	FallbackDay30 = `1. **Ship the MVP:** Launch a minimal viable product for your core offering. Get it out there.
2. **Gather Raw Feedback:** Engage directly with early users. Listen for friction, not just praise.
3. **Define Your Edge:** Articulate what makes your work uniquely rebellious and practical.`

	FallbackDay60 = `1. **Iterate Relentlessly:** Based on feedback, refine your offering. Don't cling to perfection.
2. **Expand Your Reach:** Identify 1-2 strategic partnerships or speaking opportunities. Get uncomfortable in public.
3. **Automate the Mundane:** Implement AI tools for repetitive tasks, freeing up your strategic time.`

	FallbackDay90 = `1. **Scale Systems, Not Just Ideas:** Build repeatable processes for content, sales, or delivery. Your ideas scale fast. Your systems must too.
2. **Amplify Your Voice:** Publish a thought leadership piece. Position yourself as a co-pilot for future leaders.
3. **Re-evaluate & Reset:** Review your 90-day progress. What worked? What's next? Don't coast.`
)

type aiView struct {
	Impact    string
	Scenarios string
	Day30     string
	Day60     string
	Day90     string
	Summary   string
}

type cardView struct {
	Name          string
	Importance    string
	Capability    string
	Priority      string
	PriorityColor string
	Bar           string
	Description   string
}

type skillsView struct {
	// Listed is false when the model sent no skills array at all.
	Listed  bool
	Cards   []cardView
	Summary string
}

type sectionsView struct {
	Palette markdown.Palette
	AI      *aiView
	Skills  *skillsView
}

type documentView struct {
	Palette  markdown.Palette
	Role     string
	Industry string
	Date     string
	Sections string
}

func rating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orFallback(md, fallback string) string {
	if strings.TrimSpace(md) == "" {
		return fallback
	}
	return md
}

// Sections renders the report body shared by the results screen and the
// downloadable document.
func Sections(data *Data, p markdown.Palette) (string, error) {
	view := sectionsView{Palette: p}
	if data == nil {
		data = &Data{}
	}

	if ai := data.AIReport; ai != nil {
		plan := ai.ActionPlan
		if plan == nil {
			plan = &ActionPlan{}
		}
		view.AI = &aiView{
			Impact:    markdown.ToHTML(ai.AIImpactAnalysis, p),
			Scenarios: markdown.ToHTML(ai.FutureScenarios, p),
			Day30:     markdown.ToHTML(orFallback(plan.Day30, FallbackDay30), p),
			Day60:     markdown.ToHTML(orFallback(plan.Day60, FallbackDay60), p),
			Day90:     markdown.ToHTML(orFallback(plan.Day90, FallbackDay90), p),
			Summary:   markdown.ToHTML(plan.Summary, p),
		}
	}

	if gap := data.SkillGapAnalysis; gap != nil {
		view.Skills = &skillsView{Listed: gap.Skills != nil}
		for _, s := range SortSkills(gap.Skills) {
			priority := PriorityFor(s)
			view.Skills.Cards = append(view.Skills.Cards, cardView{
				Name:          markdown.Escape(s.SkillName),
				Importance:    rating(s.ImportanceRating),
				Capability:    rating(s.CurrentCapabilityRating),
				Priority:      priority,
				PriorityColor: priorityColor(priority, p),
				Bar:           CapabilityBar(s.CurrentCapabilityRating),
				Description:   markdown.Escape(s.Description),
			})
		}
		if view.Skills.Listed {
			view.Skills.Summary = markdown.ToHTML(gap.Summary, p)
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "sections", view); err != nil {
		return "", fmt.Errorf("render report sections: %w", err)
	}
	return buf.String(), nil
}

// Builder assembles the standalone HTML report.
type Builder struct {
	Palette markdown.Palette
	Now     func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{Palette: markdown.DefaultPalette, Now: time.Now}
}

func (b *Builder) HTML(data *Data, profile Profile) (string, error) {
	sections, err := Sections(data, b.Palette)
	if err != nil {
		return "", err
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "document", documentView{
		Palette:  b.Palette,
		Role:     markdown.Escape(profile.Role),
		Industry: markdown.Escape(profile.Industry),
		Date:     now().Format("02/01/2006"),
		Sections: sections,
	})
	if err != nil {
		return "", fmt.Errorf("render report document: %w", err)
	}
	return buf.String(), nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Filename is the download name for a profile's report.
func Filename(profile Profile) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(profile.Role), "-"), "-")
	if slug == "" {
		return "career-readiness-report.html"
	}
	return "career-readiness-report-" + slug + ".html"
}
