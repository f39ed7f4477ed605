// Package link converts Atom link relations to and from a compact, human-typeable
// string form, e.g. https://example.com/feed.xml[rel=alternate][lang=fr-ca].
// Decoding never fails: anything that can't be read as a [key=value] suffix is
// kept as part of the href.
package link

import (
	"log"
	"strings"
)

// DefaultRel is set on decoded links which carry no rel instruction. Feeds seen in
// the wild that omit rel mostly point back at the site the feed describes, which
// is "related" rather than the "alternate" default of RFC 4287.
const DefaultRel = "related"

// Link represents a single atom:link element
type Link struct {
	Href     string
	Rel      string
	Type     string // MIME type
	Hreflang string
	Title    string
	Length   int64 // carried through, never produced by Decode
}

// Equal reports whether two links match in every attribute the string form carries.
// Length is ignored.
func (l Link) Equal(other Link) bool {
	return l.Href == other.Href && l.Rel == other.Rel && l.Type == other.Type &&
		l.Hreflang == other.Hreflang && l.Title == other.Title
}

// Encode renders a link as href followed by [rel=], [type=], [lang=] and [title=]
// suffixes, in this order, skipping empty ones. Values are not escaped.
func Encode(l Link) string {
	var sb strings.Builder
	sb.WriteString(l.Href)
	if l.Rel != "" {
		sb.WriteString("[rel=" + l.Rel + "]")
	}
	if l.Type != "" {
		sb.WriteString("[type=" + l.Type + "]")
	}
	if l.Hreflang != "" {
		sb.WriteString("[lang=" + l.Hreflang + "]")
	}
	if l.Title != "" {
		sb.WriteString("[title=" + l.Title + "]")
	}
	return sb.String()
}

// Decode parses the string form of a link, consuming [key=value] instructions from
// the right. The first bracket pair which is not a known instruction stops the scan
// and everything left of (and including) it becomes the href.
func Decode(s string) Link {
	res := Link{Rel: DefaultRel}
	rem := s

	for {
		if !strings.HasSuffix(rem, "]") {
			log.Printf("[DEBUG] no closing bracket in %q", rem)
			res.Href = rem
			return res
		}

		lidx := strings.LastIndex(rem, "[")
		if lidx < 0 {
			log.Printf("[DEBUG] unmatched closing bracket in %q", rem)
			res.Href = rem
			return res
		}

		eidx := strings.LastIndex(rem, "=")
		if eidx < lidx {
			// covers a missing "=" as well, LastIndex returns -1
			log.Printf("[DEBUG] no key=value pair in last brackets of %q", rem)
			res.Href = rem
			return res
		}

		key, val := rem[lidx+1:eidx], rem[eidx+1:len(rem)-1]
		switch key {
		case "rel":
			res.Rel = val
		case "type":
			res.Type = val
		case "title":
			res.Title = val
		case "lang":
			res.Hreflang = val
		default:
			log.Printf("[DEBUG] unknown link instruction key=%q val=%q", key, val)
			res.Href = rem
			return res
		}

		rem = rem[:lidx]
	}
}
