package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// Palette is the colour set used by the styled renderer and the report.
type Palette struct {
	PrimaryPink string
	LightGrey   string
	SlateBlue   string
	DeepBlack   string
	AccentPink  string
}

var DefaultPalette = Palette{
	PrimaryPink: "#ff2e63",
	LightGrey:   "#eaeaea",
	SlateBlue:   "#3a4252",
	DeepBlack:   "#101216",
	AccentPink:  "#ff6189",
}

var (
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	numberedPattern = regexp.MustCompile(`^\d+\.\s`)
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"`", "&#96;",
	"'", "&#39;",
	`"`, "&quot;",
)

// Escape makes s safe to embed in HTML text and attribute values.
func Escape(s string) string {
	return escaper.Replace(s)
}

func inline(s string) string {
	return boldPattern.ReplaceAllString(Escape(s), "<strong>$1</strong>")
}

type renderer struct {
	p          Palette
	b          strings.Builder
	inList     bool
	inNumbered bool
	inQuote    bool
}

func (r *renderer) closeLists() {
	if r.inList {
		r.b.WriteString("</ul>")
		r.inList = false
	}
	if r.inNumbered {
		r.b.WriteString("</ol>")
		r.inNumbered = false
	}
}

func (r *renderer) listItem(content string) {
	fmt.Fprintf(&r.b, `<li class="mb-2" style="color: %s;">%s</li>`, r.p.DeepBlack, inline(strings.TrimSpace(content)))
}

func (r *renderer) line(line string) {
	if strings.HasPrefix(line, "> ") {
		if !r.inQuote {
			r.closeLists()
			fmt.Fprintf(&r.b, `<div class="callout-box" style="background: %s; border-left: 4px solid %s; color: %s;">`,
				r.p.LightGrey, r.p.PrimaryPink, r.p.DeepBlack)
			r.inQuote = true
		}
		fmt.Fprintf(&r.b, `<p style="margin-bottom: 5px;">%s</p>`, inline(strings.TrimSpace(line[2:])))
		return
	}
	if r.inQuote {
		r.b.WriteString("</div>")
		r.inQuote = false
	}

	switch {
	case strings.HasPrefix(line, "### "):
		r.closeLists()
		fmt.Fprintf(&r.b, `<h3 class="text-xl font-semibold mt-5 mb-2" style="color: %s;">%s</h3>`, r.p.SlateBlue, Escape(line[4:]))
	case strings.HasPrefix(line, "## "):
		r.closeLists()
		fmt.Fprintf(&r.b, `<h2 class="text-2xl font-semibold mt-6 mb-3" style="color: %s;">%s</h2>`, r.p.SlateBlue, Escape(line[3:]))
	case strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- "):
		if r.inNumbered {
			r.b.WriteString("</ol>")
			r.inNumbered = false
		}
		if !r.inList {
			r.b.WriteString(`<ul class="list-disc pl-6 mb-4 space-y-1">`)
			r.inList = true
		}
		r.listItem(line[2:])
	case numberedPattern.MatchString(line):
		if r.inList {
			r.b.WriteString("</ul>")
			r.inList = false
		}
		if !r.inNumbered {
			r.b.WriteString(`<ol class="list-decimal pl-6 mb-4 space-y-1">`)
			r.inNumbered = true
		}
		r.listItem(line[len(numberedPattern.FindString(line)):])
	case strings.TrimSpace(line) == "":
		r.closeLists()
		r.b.WriteString("<br />")
	default:
		r.closeLists()
		fmt.Fprintf(&r.b, `<p class="mb-2" style="color: %s;">%s</p>`, r.p.DeepBlack, inline(strings.TrimSpace(line)))
	}
}

// ToHTML converts the small Markdown subset the model is asked to produce
// (## and ### headings, bullet and numbered lists, > callouts, **bold**)
// into inline-styled HTML. Everything else becomes a paragraph.
func ToHTML(md string, p Palette) string {
	if md == "" {
		return ""
	}
	r := &renderer{p: p}
	for _, l := range strings.Split(md, "\n") {
		r.line(strings.TrimSuffix(l, "\r"))
	}
	r.closeLists()
	if r.inQuote {
		r.b.WriteString("</div>")
	}
	return r.b.String()
}

// Standard renders CommonMark with goldmark. Used for page copy we author
// ourselves, never for model output.
func Standard(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
