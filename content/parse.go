package content

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// FrontMatter is the metadata block at the top of a content file.
type FrontMatter struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Date        string `yaml:"date" json:"date"`
	Tags        Tags   `yaml:"tags" json:"tags"`
}

// Tags accepts either a YAML sequence or a single scalar.
type Tags []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tags) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			*t = Tags{}
			return nil
		}
		*t = Tags{n.Value}
		return nil
	case yaml.SequenceNode:
		var tags []string
		if err := n.Decode(&tags); err != nil {
			return err
		}
		*t = tags
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a list of strings", n.Line)
	}
}

// Entry is a content file split into metadata and body.
type Entry struct {
	Meta FrontMatter
	Body string
}

// ParseEntry splits raw file text into front matter and body. Text without a
// front matter block is returned whole as the body with empty metadata.
func ParseEntry(raw []byte) (Entry, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, yamlFormat)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if meta.Tags == nil {
		meta.Tags = Tags{}
	}
	return Entry{Meta: meta, Body: string(body)}, nil
}

// Summary builds the listing record for the entry under slug.
func (e Entry) Summary(slug string) PostSummary {
	return PostSummary{
		Slug:        slug,
		Title:       e.Meta.Title,
		Description: e.Meta.Description,
		Date:        e.Meta.Date,
		Tags:        append([]string{}, e.Meta.Tags...),
	}
}

// Detail builds the full record for the entry under slug.
func (e Entry) Detail(slug string) PostDetail {
	return PostDetail{
		PostSummary: e.Summary(slug),
		Content:     e.Body,
	}
}
