package feed

import (
	"slices"
	"time"

	"github.com/klardotsh/kaboom/pkg/link"
)

// Feed represents an Atom feed document. The *Type fields hold the type attribute of
// text constructs: empty or "text", "html", "xhtml".
type Feed struct {
	ID           string
	Title        string
	TitleType    string
	Subtitle     string
	SubtitleType string
	Updated      time.Time
	Icon         string
	Logo         string
	Rights       string
	RightsType   string
	Lang         string
	Generator    *Generator
	Authors      []Person
	Contributors []Person
	Categories   []Category
	Links        []link.Link
	Entries      []Entry // document order
}

// Entry represents a single atom:entry
type Entry struct {
	ID           string
	Title        string
	TitleType    string
	Summary      string
	SummaryType  string
	Content      *Content
	Authors      []Person
	Contributors []Person
	Categories   []Category
	Links        []link.Link
	Rights       string
	RightsType   string
	Published    *time.Time
	Updated      *time.Time
}

// Content is the body of an entry. Type is "text", "html", "xhtml" or a MIME type.
type Content struct {
	Type  string
	Lang  string
	Src   string
	Value string
}

// Person is an author or contributor
type Person struct {
	Name  string
	Email string
	URI   string
}

// Category is an atom:category
type Category struct {
	Term   string
	Scheme string
	Label  string
}

// Generator identifies the software which produced the feed
type Generator struct {
	Value   string
	URI     string
	Version string
}

// LinkByHref returns a pointer to the feed-level link with the given href, nil if there is none
func (f *Feed) LinkByHref(href string) *link.Link {
	for i := range f.Links {
		if f.Links[i].Href == href {
			return &f.Links[i]
		}
	}
	return nil
}

// CloneMeta returns a copy of the feed metadata with no entries
func (f *Feed) CloneMeta() *Feed {
	res := *f
	res.Entries = nil
	res.Authors = slices.Clone(f.Authors)
	res.Contributors = slices.Clone(f.Contributors)
	res.Categories = slices.Clone(f.Categories)
	res.Links = slices.Clone(f.Links)
	if f.Generator != nil {
		gen := *f.Generator
		res.Generator = &gen
	}
	return &res
}
