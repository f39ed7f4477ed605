package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klardotsh/kaboom/pkg/link"
)

func TestFeed_LinkByHref(t *testing.T) {
	f := &Feed{Links: []link.Link{
		{Href: "https://example.com/feed.xml", Rel: "self"},
		{Href: "https://example.com/", Rel: "alternate"},
	}}

	l := f.LinkByHref("https://example.com/")
	require.NotNil(t, l)
	assert.Equal(t, "alternate", l.Rel)

	// returned pointer updates the feed in place
	l.Rel = "related"
	assert.Equal(t, "related", f.Links[1].Rel)

	assert.Nil(t, f.LinkByHref("https://example.com/other"))
}

func TestFeed_CloneMeta(t *testing.T) {
	f := &Feed{
		ID:        "urn:feed",
		Title:     "Feed",
		Updated:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Generator: &Generator{Value: "kaboom"},
		Authors:   []Person{{Name: "Jane"}},
		Links:     []link.Link{{Href: "https://example.com/", Rel: "alternate"}},
		Entries:   []Entry{{ID: "urn:entry:1"}},
	}

	clone := f.CloneMeta()
	assert.Equal(t, "urn:feed", clone.ID)
	assert.Equal(t, "Feed", clone.Title)
	assert.Equal(t, f.Updated, clone.Updated)
	assert.Empty(t, clone.Entries)
	assert.Len(t, f.Entries, 1)

	clone.Links[0].Rel = "self"
	clone.Authors[0].Name = "John"
	clone.Generator.Value = "other"
	assert.Equal(t, "alternate", f.Links[0].Rel)
	assert.Equal(t, "Jane", f.Authors[0].Name)
	assert.Equal(t, "kaboom", f.Generator.Value)
}

func TestFeed_HumanText(t *testing.T) {
	f := &Feed{
		ID:      "https://example.com/feed.xml",
		Title:   "Example",
		Updated: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	assert.Equal(t, "title=Example\nuri=https://example.com/feed.xml\nupdated_at=2023-01-02T03:04:05Z", f.HumanText())

	f.Subtitle = "sub"
	f.Icon = "https://example.com/icon.png"
	f.Logo = "https://example.com/logo.png"
	f.Links = []link.Link{
		{Href: "https://example.com/feed.xml", Rel: "self", Type: "application/atom+xml"},
		{Href: "https://example.com/fr", Rel: "alternate", Hreflang: "fr-ca"},
	}
	want := `title=Example
subtitle=sub
uri=https://example.com/feed.xml
updated_at=2023-01-02T03:04:05Z
icon=https://example.com/icon.png
logo=https://example.com/logo.png
link=https://example.com/feed.xml[rel=self][type=application/atom+xml]
link=https://example.com/fr[rel=alternate][lang=fr-ca]`
	assert.Equal(t, want, f.HumanText())
}

func TestFeed_Summary(t *testing.T) {
	f := &Feed{
		ID:      "urn:feed",
		Title:   "Feed",
		Links:   []link.Link{{Href: "https://example.com/", Rel: "alternate", Title: "Home"}},
		Entries: []Entry{{ID: "1"}, {ID: "2"}},
	}

	s := f.Summary()
	assert.Equal(t, "urn:feed", s.URI)
	assert.Equal(t, "Feed", s.Title)
	assert.Equal(t, []string{"https://example.com/[rel=alternate][title=Home]"}, s.Links)
	assert.Equal(t, 2, s.Entries)
}
