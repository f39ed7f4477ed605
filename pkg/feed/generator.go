package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/klardotsh/kaboom/pkg/link"
)

// Marshal renders the feed as an indented Atom document with XML declaration
func Marshal(f *Feed) ([]byte, error) {
	doc := atomFeed{
		Xmlns:        atomNS,
		Lang:         f.Lang,
		ID:           f.ID,
		Title:        textConstruct(f.Title, f.TitleType),
		Updated:      formatTime(f.Updated),
		Authors:      toAtomPersons(f.Authors),
		Contributors: toAtomPersons(f.Contributors),
		Categories:   toAtomCategories(f.Categories),
		Icon:         f.Icon,
		Logo:         f.Logo,
		Links:        toAtomLinks(f.Links),
		Entries:      make([]atomEntry, 0, len(f.Entries)),
	}
	if f.Subtitle != "" {
		subtitle := textConstruct(f.Subtitle, f.SubtitleType)
		doc.Subtitle = &subtitle
	}
	if f.Rights != "" {
		rights := textConstruct(f.Rights, f.RightsType)
		doc.Rights = &rights
	}
	if f.Generator != nil {
		doc.Generator = &atomGenerator{Value: f.Generator.Value, URI: f.Generator.URI, Version: f.Generator.Version}
	}

	for i := range f.Entries {
		doc.Entries = append(doc.Entries, toAtomEntry(&f.Entries[i]))
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal atom: %w", err)
	}

	// add XML declaration
	return append([]byte(xml.Header), append(output, '\n')...), nil
}

func toAtomEntry(e *Entry) atomEntry {
	res := atomEntry{
		ID:           e.ID,
		Title:        textConstruct(e.Title, e.TitleType),
		Authors:      toAtomPersons(e.Authors),
		Contributors: toAtomPersons(e.Contributors),
		Categories:   toAtomCategories(e.Categories),
		Links:        toAtomLinks(e.Links),
	}
	if e.Updated != nil {
		res.Updated = formatTime(*e.Updated)
	}
	if e.Published != nil {
		res.Published = formatTime(*e.Published)
	}
	if e.Summary != "" {
		summary := textConstruct(e.Summary, e.SummaryType)
		res.Summary = &summary
	}
	if e.Rights != "" {
		rights := textConstruct(e.Rights, e.RightsType)
		res.Rights = &rights
	}
	if e.Content != nil {
		res.Content = toAtomContent(e.Content)
	}
	return res
}

func toAtomContent(c *Content) *atomContent {
	res := &atomContent{Type: c.Type, Lang: c.Lang, Src: c.Src}
	if c.Type == "xhtml" {
		res.Inner = xhtmlDiv(c.Value)
		return res
	}
	res.Value = c.Value
	return res
}

// textConstruct renders title, subtitle, summary or rights with its type
func textConstruct(value, typ string) atomText {
	if typ == "xhtml" {
		return atomText{Type: typ, Inner: xhtmlDiv(value)}
	}
	return atomText{Type: typ, Value: value}
}

// xhtmlDiv wraps markup in the single xhtml div required around xhtml text
func xhtmlDiv(markup string) string {
	return `<div xmlns="` + xhtmlNS + `">` + markup + `</div>`
}

func toAtomPersons(persons []Person) []atomPerson {
	res := make([]atomPerson, 0, len(persons))
	for _, p := range persons {
		res = append(res, atomPerson{Name: p.Name, Email: p.Email, URI: p.URI})
	}
	return res
}

func toAtomCategories(cats []Category) []atomCategory {
	res := make([]atomCategory, 0, len(cats))
	for _, c := range cats {
		res = append(res, atomCategory{Term: c.Term, Scheme: c.Scheme, Label: c.Label})
	}
	return res
}

func toAtomLinks(links []link.Link) []atomLink {
	res := make([]atomLink, 0, len(links))
	for _, l := range links {
		al := atomLink{Href: l.Href, Rel: l.Rel, Type: l.Type, Hreflang: l.Hreflang, Title: l.Title}
		if l.Length > 0 {
			al.Length = strconv.FormatInt(l.Length, 10)
		}
		res = append(res, al)
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
