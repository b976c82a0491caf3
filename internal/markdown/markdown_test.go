package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = Palette{
	PrimaryPink: "P",
	LightGrey:   "L",
	SlateBlue:   "S",
	DeepBlack:   "D",
	AccentPink:  "A",
}

func TestToHTMLEmpty(t *testing.T) {
	assert.Equal(t, "", ToHTML("", testPalette))
}

func TestToHTMLHeadings(t *testing.T) {
	got := ToHTML("## Overview\n### Detail **not bold**", testPalette)
	assert.Equal(t,
		`<h2 class="text-2xl font-semibold mt-6 mb-3" style="color: S;">Overview</h2>`+
			`<h3 class="text-xl font-semibold mt-5 mb-2" style="color: S;">Detail **not bold**</h3>`,
		got)
}

func TestToHTMLParagraphWithBold(t *testing.T) {
	got := ToHTML("  Keep **learning** daily  ", testPalette)
	assert.Equal(t, `<p class="mb-2" style="color: D;">Keep <strong>learning</strong> daily</p>`, got)
}

func TestToHTMLBulletList(t *testing.T) {
	got := ToHTML("* one\n- **two**\n\nafter", testPalette)
	want := `<ul class="list-disc pl-6 mb-4 space-y-1">` +
		`<li class="mb-2" style="color: D;">one</li>` +
		`<li class="mb-2" style="color: D;"><strong>two</strong></li>` +
		`</ul><br />` +
		`<p class="mb-2" style="color: D;">after</p>`
	assert.Equal(t, want, got)
}

func TestToHTMLNumberedListKeepsWholeItem(t *testing.T) {
	got := ToHTML("1. **Ship it:** Launch. Then listen.\n2. Repeat", testPalette)
	want := `<ol class="list-decimal pl-6 mb-4 space-y-1">` +
		`<li class="mb-2" style="color: D;"><strong>Ship it:</strong> Launch. Then listen.</li>` +
		`<li class="mb-2" style="color: D;">Repeat</li>` +
		`</ol>`
	assert.Equal(t, want, got)
}

func TestToHTMLSwitchingListKindsClosesPrevious(t *testing.T) {
	got := ToHTML("1. first\n- second\n2. third", testPalette)
	assert.Equal(t, 1, strings.Count(got, "<ul"))
	assert.Equal(t, 2, strings.Count(got, "<ol"))
	assert.Less(t, strings.Index(got, "</ol>"), strings.Index(got, "<ul"))
	assert.Less(t, strings.Index(got, "</ul>"), strings.LastIndex(got, "<ol"))
	assert.True(t, strings.HasSuffix(got, "</ol>"))
}

func TestToHTMLCallout(t *testing.T) {
	got := ToHTML("- item\n> **Note:** first\n> second\nplain", testPalette)
	want := `<ul class="list-disc pl-6 mb-4 space-y-1"><li class="mb-2" style="color: D;">item</li></ul>` +
		`<div class="callout-box" style="background: L; border-left: 4px solid P; color: D;">` +
		`<p style="margin-bottom: 5px;"><strong>Note:</strong> first</p>` +
		`<p style="margin-bottom: 5px;">second</p>` +
		`</div>` +
		`<p class="mb-2" style="color: D;">plain</p>`
	assert.Equal(t, want, got)
}

func TestToHTMLClosesOpenBlocksAtEnd(t *testing.T) {
	assert.True(t, strings.HasSuffix(ToHTML("> quote", testPalette), "</div>"))
	assert.True(t, strings.HasSuffix(ToHTML("* a", testPalette), "</ul>"))
	assert.True(t, strings.HasSuffix(ToHTML("3. a", testPalette), "</ol>"))
}

func TestToHTMLEscapesText(t *testing.T) {
	got := ToHTML(`It's <b>"fine"</b> & `+"`ok`", testPalette)
	assert.Equal(t,
		`<p class="mb-2" style="color: D;">It&#39;s &lt;b&gt;&quot;fine&quot;&lt;/b&gt; &amp; &#96;ok&#96;</p>`,
		got)
}

func TestToHTMLStripsCarriageReturns(t *testing.T) {
	got := ToHTML("## Title\r\n* item\r\n", testPalette)
	assert.NotContains(t, got, "\r")
	assert.Contains(t, got, ">Title</h2>")
	assert.Contains(t, got, ">item</li>")
}

func TestStandard(t *testing.T) {
	got, err := Standard("# Hello\n\nSome *text*.")
	require.NoError(t, err)
	assert.Contains(t, got, "<h1>Hello</h1>")
	assert.Contains(t, got, "<em>text</em>")
}
