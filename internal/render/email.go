package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/shineum/blog-notify/internal/post"
)

//go:embed email.tmpl
var emailTmpl string

var docTemplate = template.Must(template.New("email").Parse(emailTmpl))

// Email is a rendered, ready-to-send notification for one post.
type Email struct {
	Subject  string
	HTMLBody string
}

// document is the data bound into the email template. Content is injected
// as-is; the markdown conversion already produced the HTML fragment.
type document struct {
	Title      string
	Author     string
	Date       string
	Categories []string
	Content    template.HTML
	PostURL    string
	SiteURL    string
}

// Render produces the complete HTML email for a post. The layout is fixed
// and inline-styled, so rendering succeeds for any metadata values and any
// (possibly empty) body.
func Render(p *post.Post, siteURL string) (Email, error) {
	title := p.Meta.DisplayTitle()

	data := document{
		Title:      title,
		Author:     p.Meta.DisplayAuthor(),
		Date:       p.Meta.Date,
		Categories: p.Meta.Categories,
		Content:    template.HTML(ToHTML(p.Body)),
		PostURL:    postURL(siteURL, p.SourcePath),
		SiteURL:    siteURL,
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		return Email{}, fmt.Errorf("execute email template: %w", err)
	}

	return Email{
		Subject:  "New Post: " + title,
		HTMLBody: buf.String(),
	}, nil
}

// postURL builds the public link to the post from the name of its immediate
// parent directory, matching the site's /posts/<dir>/ layout.
func postURL(siteURL, sourcePath string) string {
	dir := filepath.Base(filepath.Dir(sourcePath))
	return strings.TrimSuffix(siteURL, "/") + "/posts/" + dir + "/"
}
