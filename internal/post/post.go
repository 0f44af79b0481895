// Package post locates and parses Quarto markdown (.qmd) blog post sources.
package post

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Defaults substituted when the frontmatter omits a field.
const (
	DefaultTitle  = "New Blog Post"
	DefaultAuthor = "Blog Author"
)

// qmdFormat is the metadata block shape recognized in post sources: a YAML
// mapping delimited by "---" marker lines, starting on the very first line.
var qmdFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Metadata is the typed envelope over a post's YAML frontmatter. Keys the
// envelope does not name are preserved in Extra.
type Metadata struct {
	Title      string         `yaml:"title"`
	Author     string         `yaml:"author"`
	Date       string         `yaml:"date"`
	Categories []string       `yaml:"categories"`
	Extra      map[string]any `yaml:",inline"`
}

// DisplayTitle returns the post title, or a generic default when unset.
func (m Metadata) DisplayTitle() string {
	if m.Title == "" {
		return DefaultTitle
	}
	return m.Title
}

// DisplayAuthor returns the post author, or a generic default when unset.
func (m Metadata) DisplayAuthor() string {
	if m.Author == "" {
		return DefaultAuthor
	}
	return m.Author
}

// Post is one parsed blog post source file. Immutable after Parse.
type Post struct {
	Meta       Metadata
	Body       string
	SourcePath string
}

// Parse splits raw source text into its metadata block and free-form body.
// A source that does not begin with a marker line, lacks a closing marker,
// or carries a syntactically invalid YAML block yields an error; callers
// treat any error here as "not a post" rather than a failure of the run.
func Parse(raw []byte, sourcePath string) (*Post, error) {
	var meta Metadata

	body, err := frontmatter.MustParse(bytes.NewReader(raw), &meta, qmdFormat)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return &Post{
		Meta:       meta,
		Body:       string(body),
		SourcePath: sourcePath,
	}, nil
}
