package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		link Link
		want string
	}{
		{
			name: "all attributes",
			link: Link{Href: "https://example.com/feed.xml", Rel: "self", Type: "application/atom+xml",
				Hreflang: "en-us", Title: "An example feed"},
			want: "https://example.com/feed.xml[rel=self][type=application/atom+xml][lang=en-us][title=An example feed]",
		},
		{
			name: "empty rel skipped",
			link: Link{Href: "https://example.com/feed.xml", Type: "application/atom+xml",
				Hreflang: "en-us", Title: "An example feed"},
			want: "https://example.com/feed.xml[type=application/atom+xml][lang=en-us][title=An example feed]",
		},
		{
			name: "no hreflang",
			link: Link{Href: "https://example.com/feed.xml", Rel: "self", Type: "application/atom+xml", Title: "An example feed"},
			want: "https://example.com/feed.xml[rel=self][type=application/atom+xml][title=An example feed]",
		},
		{
			name: "rel and title",
			link: Link{Href: "https://example.com/feed.xml", Rel: "self", Title: "An example feed"},
			want: "https://example.com/feed.xml[rel=self][title=An example feed]",
		},
		{
			name: "rel only",
			link: Link{Href: "https://example.com/feed.xml", Rel: "self"},
			want: "https://example.com/feed.xml[rel=self]",
		},
		{
			name: "href only",
			link: Link{Href: "https://example.com/"},
			want: "https://example.com/",
		},
		{
			name: "length is not encoded",
			link: Link{Href: "https://example.com/a.mp3", Rel: "enclosure", Length: 1234},
			want: "https://example.com/a.mp3[rel=enclosure]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.link))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Link
	}{
		{
			name: "all attributes",
			in:   "https://example.com/feed.xml[rel=self][type=application/atom+xml][lang=en-us][title=An example feed]",
			want: Link{Href: "https://example.com/feed.xml", Rel: "self", Type: "application/atom+xml",
				Hreflang: "en-us", Title: "An example feed"},
		},
		{
			name: "default rel",
			in:   "https://example.com/feed.xml[type=application/atom+xml][lang=en-us][title=An example feed]",
			want: Link{Href: "https://example.com/feed.xml", Rel: "related", Type: "application/atom+xml",
				Hreflang: "en-us", Title: "An example feed"},
		},
		{
			name: "no hreflang",
			in:   "https://example.com/feed.xml[rel=self][type=application/atom+xml][title=An example feed]",
			want: Link{Href: "https://example.com/feed.xml", Rel: "self", Type: "application/atom+xml", Title: "An example feed"},
		},
		{
			name: "rel and title",
			in:   "https://example.com/feed.xml[rel=self][title=An example feed]",
			want: Link{Href: "https://example.com/feed.xml", Rel: "self", Title: "An example feed"},
		},
		{
			name: "rel only",
			in:   "https://example.com/feed.xml[rel=self]",
			want: Link{Href: "https://example.com/feed.xml", Rel: "self"},
		},
		{
			name: "no brackets",
			in:   "https://example.com/feed.xml",
			want: Link{Href: "https://example.com/feed.xml", Rel: "related"},
		},
		{
			name: "empty key and value",
			in:   "https://example.com/feed.xml[=]",
			want: Link{Href: "https://example.com/feed.xml[=]", Rel: "related"},
		},
		{
			name: "unmatched closing bracket",
			in:   "https://example.com/feed.xml]",
			want: Link{Href: "https://example.com/feed.xml]", Rel: "related"},
		},
		{
			name: "empty brackets",
			in:   "https://example.com/feed.xml[]",
			want: Link{Href: "https://example.com/feed.xml[]", Rel: "related"},
		},
		{
			name: "equals only before brackets",
			in:   "https://example.com/?page=2[abc]",
			want: Link{Href: "https://example.com/?page=2[abc]", Rel: "related"},
		},
		{
			name: "unknown key stops the scan",
			in:   "https://example.com/feed.xml[rel=self][foo=bar][lang=de]",
			want: Link{Href: "https://example.com/feed.xml[rel=self][foo=bar]", Rel: "related", Hreflang: "de"},
		},
		{
			name: "keys are case sensitive",
			in:   "https://example.com/feed.xml[REL=self]",
			want: Link{Href: "https://example.com/feed.xml[REL=self]", Rel: "related"},
		},
		{
			name: "keys are not trimmed",
			in:   "https://example.com/feed.xml[ rel=self]",
			want: Link{Href: "https://example.com/feed.xml[ rel=self]", Rel: "related"},
		},
		{
			name: "equals in value is not supported",
			in:   "https://example.com/feed.xml[title=a=b]",
			want: Link{Href: "https://example.com/feed.xml[title=a=b]", Rel: "related"},
		},
		{
			name: "only the rightmost opening bracket counts",
			in:   "https://example.com/[x[rel=self]",
			want: Link{Href: "https://example.com/[x", Rel: "self"},
		},
		{
			name: "empty value allowed",
			in:   "https://example.com/feed.xml[title=]",
			want: Link{Href: "https://example.com/feed.xml", Rel: "related"},
		},
		{
			name: "duplicate key, leftmost applied last",
			in:   "https://example.com/feed.xml[rel=self][rel=alternate]",
			want: Link{Href: "https://example.com/feed.xml", Rel: "self"},
		},
		{
			name: "empty string",
			in:   "",
			want: Link{Rel: "related"},
		},
		{
			name: "multi-byte title",
			in:   "https://www.meteo.gc.ca/rss/marine/06100_f.xml[rel=alternate][lang=fr-ca][type=application/atom+xml][title=Détroit de Haro - Météo maritime]",
			want: Link{Href: "https://www.meteo.gc.ca/rss/marine/06100_f.xml", Rel: "alternate", Hreflang: "fr-ca",
				Type: "application/atom+xml", Title: "Détroit de Haro - Météo maritime"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	links := []Link{
		{Href: "https://example.com/feed.xml", Rel: "self"},
		{Href: "https://example.com/", Rel: "alternate", Type: "text/html", Hreflang: "en", Title: "Home"},
		{Href: "https://example.com/fr", Rel: "alternate", Hreflang: "fr-ca"},
	}

	for _, l := range links {
		t.Run(l.Href, func(t *testing.T) {
			encoded := Encode(l)
			assert.Equal(t, l, Decode(encoded))
			assert.Equal(t, encoded, Encode(Decode(encoded)))
		})
	}

	t.Run("empty rel gets the default injected", func(t *testing.T) {
		l := Link{Href: "https://example.com/", Title: "Home"}
		decoded := Decode(Encode(l))
		assert.NotEqual(t, l, decoded)
		assert.Equal(t, DefaultRel, decoded.Rel)
		assert.Equal(t, "https://example.com/[rel=related][title=Home]", Encode(decoded))
	})
}

func TestLink_Equal(t *testing.T) {
	l := Link{Href: "https://example.com/a.mp3", Rel: "enclosure", Type: "audio/mpeg", Length: 100}
	assert.True(t, l.Equal(Decode("https://example.com/a.mp3[rel=enclosure][type=audio/mpeg]")), "length is ignored")
	assert.False(t, l.Equal(Decode("https://example.com/a.mp3[rel=enclosure]")))
	assert.False(t, l.Equal(Decode("https://example.com/b.mp3[rel=enclosure][type=audio/mpeg]")))
}

func TestStringable(t *testing.T) {
	t.Run("parse keeps original text", func(t *testing.T) {
		s := Parse("https://example.com/[lang=en]")
		assert.Equal(t, "https://example.com/[lang=en]", s.String())
		assert.Equal(t, Link{Href: "https://example.com/", Rel: "related", Hreflang: "en"}, s.Link)
	})

	t.Run("from link uses encoded form", func(t *testing.T) {
		s := FromLink(Link{Href: "https://example.com/", Rel: "self"})
		assert.Equal(t, "https://example.com/[rel=self]", s.String())
	})

	t.Run("flag marshaling", func(t *testing.T) {
		var s Stringable
		require.NoError(t, s.UnmarshalFlag("https://example.com/feed.xml[rel=self]"))
		assert.Equal(t, "self", s.Link.Rel)

		txt, err := s.MarshalFlag()
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/feed.xml[rel=self]", txt)
	})
}
