package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/klardotsh/kaboom/pkg/content"
	"github.com/klardotsh/kaboom/pkg/feed"
	"github.com/klardotsh/kaboom/pkg/link"
)

// AddCommand adds an entry to the top of the feed. If content is supplied, its source
// is assumed to be the same URI as the entry id.
type AddCommand struct {
	Summary string `short:"s" long:"summary" description:"a short summary of the entry"`

	Content         string `short:"c" long:"content" description:"the full content of the entry"`
	ContentFile     string `short:"C" long:"content-file" description:"read the full content of the entry from a local HTML file"`
	Extract         bool   `short:"x" long:"extract" description:"keep only the main article content of the content file"`
	Sanitize        bool   `long:"sanitize" description:"strip unsafe markup from html and xhtml content"`
	ContentType     string `short:"T" long:"content-type" description:"content type: text, html, xhtml or a MIME type (default: text, html for content files)"`
	ContentLanguage string `short:"L" long:"content-language" description:"language of the content, often a code like en-us"`

	AuthorNames  []string          `short:"a" long:"author-name" description:"name of an author of the entry, can be repeated"`
	AuthorEmails []string          `short:"A" long:"author-email" description:"email of an author of the entry, can be repeated, must match the number of names if given at all"`
	Links        []link.Stringable `short:"k" long:"link" description:"link related to the entry, can be repeated, supports [rel=X], [type=X], [title=X] and [lang=X] suffixes"`

	PublishedAt string `short:"d" long:"published-at" description:"when the entry was published, RFC 3339"`
	UpdatedAt   string `short:"D" long:"updated-at" description:"when the entry was most recently updated, RFC 3339 (default: now)"`

	Args struct {
		ID    string `positional-arg-name:"id" description:"the URI of the entry"`
		Title string `positional-arg-name:"title" description:"the title of the entry"`
	} `positional-args:"yes" required:"yes"`

	env *environment
}

// Execute implements flags.Commander
func (c *AddCommand) Execute(_ []string) error {
	authors, err := c.authors()
	if err != nil {
		return err
	}

	entry := feed.Entry{ID: c.Args.ID, Title: c.Args.Title, Summary: c.Summary, Authors: authors}
	for _, l := range c.Links {
		entry.Links = append(entry.Links, l.Link)
	}

	if entry.Updated, err = c.timestamp(c.UpdatedAt); err != nil {
		return fmt.Errorf("invalid updated-at: %w", err)
	}
	if c.PublishedAt != "" {
		if entry.Published, err = c.timestamp(c.PublishedAt); err != nil {
			return fmt.Errorf("invalid published-at: %w", err)
		}
	}

	if entry.Content, err = c.content(); err != nil {
		return err
	}

	f, err := feed.Read(c.env.file)
	if err != nil {
		return err
	}

	if slices.ContainsFunc(f.Entries, func(e feed.Entry) bool { return e.ID == entry.ID }) {
		return fmt.Errorf("entry %s already exists in %s", entry.ID, c.env.file)
	}

	log.Printf("[INFO] adding entry %s to %s", entry.ID, c.env.file)
	f.Entries = slices.Insert(f.Entries, 0, entry)
	f.Updated = c.env.now().UTC().Truncate(time.Second)
	return c.env.write(f, c.env.file)
}

// authors pairs author names with emails, falling back to the configured author
func (c *AddCommand) authors() ([]feed.Person, error) {
	if len(c.AuthorEmails) > 0 && len(c.AuthorEmails) != len(c.AuthorNames) {
		return nil, fmt.Errorf("author-name and author-email must be given the same number of times if emails are given at all, got %d and %d",
			len(c.AuthorNames), len(c.AuthorEmails))
	}

	if len(c.AuthorNames) == 0 {
		if c.env.conf.Author.Name == "" {
			return nil, nil
		}
		return []feed.Person{{Name: c.env.conf.Author.Name, Email: c.env.conf.Author.Email}}, nil
	}

	res := make([]feed.Person, 0, len(c.AuthorNames))
	for i, name := range c.AuthorNames {
		p := feed.Person{Name: name}
		if len(c.AuthorEmails) > 0 {
			p.Email = c.AuthorEmails[i]
		}
		res = append(res, p)
	}
	return res, nil
}

// content builds the entry content from the inline value or the content file
func (c *AddCommand) content() (*feed.Content, error) {
	if c.Content != "" && c.ContentFile != "" {
		return nil, errors.New("content and content-file can't be used together")
	}
	if c.Extract && c.ContentFile == "" {
		return nil, errors.New("extract requires content-file")
	}

	res := &feed.Content{Type: c.ContentType, Lang: c.ContentLanguage, Src: c.Args.ID, Value: c.Content}
	switch {
	case c.ContentFile != "" && c.Extract:
		extractor := content.NewFileExtractor()
		extractor.IncludeImages = c.env.conf.Content.IncludeImages
		extracted, err := extractor.Extract(c.ContentFile, c.Args.ID)
		if err != nil {
			return nil, err
		}
		log.Printf("[DEBUG] extracted %q from %s, %d chars", extracted.Title, c.ContentFile, len(extracted.Text))
		res.Value = extracted.HTML
		if res.Value == "" {
			res.Value = extracted.Text
			res.Type = "text"
		}
	case c.ContentFile != "":
		data, err := os.ReadFile(c.ContentFile) //nolint:gosec // path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read content file: %w", err)
		}
		res.Value = string(data)
	case c.Content == "":
		return nil, nil
	}

	if c.ContentLanguage != "" {
		if _, err := language.Parse(c.ContentLanguage); err != nil {
			return nil, fmt.Errorf("invalid content language %q: %w", c.ContentLanguage, err)
		}
	}

	if res.Type == "" {
		res.Type = "text"
		if c.ContentFile != "" {
			res.Type = "html"
		}
	}

	if (c.Sanitize || c.env.conf.Content.Sanitize) && (res.Type == "html" || res.Type == "xhtml") {
		res.Value = content.NewSanitizer().Sanitize(res.Value)
	}
	return res, nil
}

// timestamp parses an RFC 3339 value, empty means now
func (c *AddCommand) timestamp(s string) (*time.Time, error) {
	t := c.env.now()
	if s != "" {
		var err error
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return nil, err
		}
	}
	t = t.UTC().Truncate(time.Second)
	return &t, nil
}
