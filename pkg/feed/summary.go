package feed

import (
	"strings"
	"time"

	"github.com/klardotsh/kaboom/pkg/link"
)

// Summary is the feed metadata in a form suitable for JSON and YAML output
type Summary struct {
	Title     string    `json:"title" yaml:"title"`
	Subtitle  string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	URI       string    `json:"uri" yaml:"uri"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	Icon      string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Logo      string    `json:"logo,omitempty" yaml:"logo,omitempty"`
	Links     []string  `json:"links,omitempty" yaml:"links,omitempty"`
	Entries   int       `json:"entries" yaml:"entries"`
}

// Summary returns the metadata summary of the feed, links in their string form
func (f *Feed) Summary() Summary {
	res := Summary{
		Title:     f.Title,
		Subtitle:  f.Subtitle,
		URI:       f.ID,
		UpdatedAt: f.Updated,
		Icon:      f.Icon,
		Logo:      f.Logo,
		Entries:   len(f.Entries),
	}
	for _, l := range f.Links {
		res.Links = append(res.Links, link.FromLink(l).String())
	}
	return res
}

// HumanText renders the feed metadata as key=value lines
func (f *Feed) HumanText() string {
	lines := make([]string, 0, 6+len(f.Links))
	lines = append(lines, "title="+f.Title)
	if f.Subtitle != "" {
		lines = append(lines, "subtitle="+f.Subtitle)
	}
	lines = append(lines, "uri="+f.ID, "updated_at="+f.Updated.Format(time.RFC3339))
	if f.Icon != "" {
		lines = append(lines, "icon="+f.Icon)
	}
	if f.Logo != "" {
		lines = append(lines, "logo="+f.Logo)
	}
	for _, l := range f.Links {
		lines = append(lines, "link="+link.FromLink(l).String())
	}
	return strings.Join(lines, "\n")
}
