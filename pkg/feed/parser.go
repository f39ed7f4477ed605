package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"

	"github.com/klardotsh/kaboom/pkg/link"
)

// Read loads and parses the Atom feed stored at path
func Read(path string) (*Feed, error) {
	fh, err := os.Open(path) //nolint:gosec // feed path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer fh.Close()

	res, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return res, nil
}

// Parse parses an Atom document
func Parse(r io.Reader) (*Feed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	parser := &atom.Parser{}
	af, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	// convert to our types
	res := &Feed{
		ID:           af.ID,
		Title:        af.Title,
		Subtitle:     af.Subtitle,
		Icon:         af.Icon,
		Logo:         af.Logo,
		Rights:       af.Rights,
		Lang:         af.Language,
		Authors:      convertPersons(af.Authors),
		Contributors: convertPersons(af.Contributors),
		Categories:   convertCategories(af.Categories),
		Links:        convertLinks(af.Links),
		Entries:      make([]Entry, 0, len(af.Entries)),
	}
	if af.UpdatedParsed != nil {
		res.Updated = af.UpdatedParsed.UTC()
	}
	if af.Generator != nil {
		res.Generator = &Generator{Value: af.Generator.Value, URI: af.Generator.URI, Version: af.Generator.Version}
	}

	for _, ae := range af.Entries {
		res.Entries = append(res.Entries, convertEntry(ae))
	}

	applyAttrs(res, data)
	return res, nil
}

// applyAttrs fills in text construct types and content language, the attributes
// gofeed doesn't keep. Entries are matched by position, skipping ones whose id differs.
func applyAttrs(f *Feed, data []byte) {
	var doc atomFeed
	if err := xml.Unmarshal(data, &doc); err != nil {
		log.Printf("[DEBUG] can't decode text types and content language, skipped: %v", err)
		return
	}

	f.TitleType = doc.Title.Type
	if doc.Subtitle != nil {
		f.SubtitleType = doc.Subtitle.Type
	}
	if doc.Rights != nil {
		f.RightsType = doc.Rights.Type
	}

	for i := range min(len(f.Entries), len(doc.Entries)) {
		e, de := &f.Entries[i], doc.Entries[i]
		if e.ID != strings.TrimSpace(de.ID) {
			continue
		}
		e.TitleType = de.Title.Type
		if de.Summary != nil {
			e.SummaryType = de.Summary.Type
		}
		if de.Rights != nil {
			e.RightsType = de.Rights.Type
		}
		if e.Content != nil && de.Content != nil {
			e.Content.Lang = de.Content.Lang
		}
	}
}

func convertEntry(ae *atom.Entry) Entry {
	entry := Entry{
		ID:           ae.ID,
		Title:        ae.Title,
		Summary:      ae.Summary,
		Authors:      convertPersons(ae.Authors),
		Contributors: convertPersons(ae.Contributors),
		Categories:   convertCategories(ae.Categories),
		Links:        convertLinks(ae.Links),
		Rights:       ae.Rights,
		Published:    utcTime(ae.PublishedParsed),
		Updated:      utcTime(ae.UpdatedParsed),
	}
	if ae.Content != nil {
		entry.Content = &Content{Type: ae.Content.Type, Src: ae.Content.Src, Value: ae.Content.Value}
	}
	return entry
}

func convertPersons(persons []*atom.Person) []Person {
	if len(persons) == 0 {
		return nil
	}
	res := make([]Person, 0, len(persons))
	for _, p := range persons {
		if p == nil {
			continue
		}
		res = append(res, Person{Name: p.Name, Email: p.Email, URI: p.URI})
	}
	return res
}

func convertCategories(cats []*atom.Category) []Category {
	if len(cats) == 0 {
		return nil
	}
	res := make([]Category, 0, len(cats))
	for _, c := range cats {
		if c == nil {
			continue
		}
		res = append(res, Category{Term: c.Term, Scheme: c.Scheme, Label: c.Label})
	}
	return res
}

func convertLinks(links []*atom.Link) []link.Link {
	if len(links) == 0 {
		return nil
	}
	res := make([]link.Link, 0, len(links))
	for _, l := range links {
		if l == nil {
			continue
		}
		item := link.Link{Href: l.Href, Rel: l.Rel, Type: l.Type, Hreflang: l.Hreflang, Title: l.Title}
		if l.Length != "" {
			// invalid lengths are dropped, the attribute is advisory
			if n, err := strconv.ParseInt(strings.TrimSpace(l.Length), 10, 64); err == nil {
				item.Length = n
			}
		}
		res = append(res, item)
	}
	return res
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	res := t.UTC()
	return &res
}
