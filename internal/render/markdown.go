// Package render converts post bodies into complete HTML email documents.
package render

import (
	"regexp"
	"strings"
)

// The conversion is an ordered sequence of pattern substitutions, not a real
// markdown parser: each rule operates on the output of the previous one.
// Fenced code blocks are handled before inline code so the single-backtick
// rule cannot corrupt fence markers. Unbalanced or tripled asterisks produce
// implementation-defined output.
var (
	reH1         = regexp.MustCompile(`(?m)^# (.*?)$`)
	reH2         = regexp.MustCompile(`(?m)^## (.*?)$`)
	reH3         = regexp.MustCompile(`(?m)^### (.*?)$`)
	reBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic     = regexp.MustCompile(`\*(.*?)\*`)
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reCodeBlock  = regexp.MustCompile("(?s)```(.*?)```")
	reInlineCode = regexp.MustCompile("`(.*?)`")
)

// ToHTML converts the supported markdown subset to an HTML fragment.
//
// After the substitutions, the text is split on blank lines; every candidate
// that is non-empty after trimming and does not already start with an HTML
// tag is wrapped in a paragraph, the rest pass through untouched, and the
// fragments are concatenated with no separator.
func ToHTML(markdown string) string {
	html := markdown

	html = reH1.ReplaceAllString(html, "<h1>${1}</h1>")
	html = reH2.ReplaceAllString(html, "<h2>${1}</h2>")
	html = reH3.ReplaceAllString(html, "<h3>${1}</h3>")
	html = reBold.ReplaceAllString(html, "<strong>${1}</strong>")
	html = reItalic.ReplaceAllString(html, "<em>${1}</em>")
	html = reLink.ReplaceAllString(html, `<a href="${2}">${1}</a>`)
	html = reCodeBlock.ReplaceAllString(html, "<pre><code>${1}</code></pre>")
	html = reInlineCode.ReplaceAllString(html, "<code>${1}</code>")

	var b strings.Builder
	for _, candidate := range strings.Split(html, "\n\n") {
		trimmed := strings.TrimSpace(candidate)
		if trimmed != "" && !strings.HasPrefix(trimmed, "<") {
			b.WriteString("<p>" + trimmed + "</p>")
		} else {
			b.WriteString(candidate)
		}
	}
	return b.String()
}
