package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter captures the metadata a post document may carry ahead of its
// markdown body.
type FrontMatter struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
}

// ParseFrontMatter extracts metadata and markdown body content from the
// provided source bytes. It returns the structured frontmatter, the markdown
// body without delimiters, and any error encountered. Documents without a
// frontmatter block yield an empty FrontMatter and the source unchanged.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, body, nil
}
