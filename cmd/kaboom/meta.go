package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/klardotsh/kaboom/pkg/feed"
	"github.com/klardotsh/kaboom/pkg/link"
)

// MetaCommand sets or modifies the feed metadata and prints the resulting state.
// With no flags nothing is changed.
type MetaCommand struct {
	Title string `short:"t" long:"title" description:"human-readable title of the feed (required when creating a new feed)"`
	URI   string `short:"u" long:"uri" description:"unique and permanent URI of the feed, often the URL it is accessed at (required when creating a new feed)"`

	RelLinks    []link.Stringable `short:"r" long:"rel-link" description:"web page URL related to the feed, can be repeated. [rel=X], [type=X], [title=X] and [lang=X] suffixes are supported, e.g. https://example.com/fr/feed.xml[rel=alternate][lang=fr-ca]"`
	RemoveLinks bool              `short:"R" long:"remove-links" description:"remove all links except rel=self; rel-link values given along are added afterwards"`

	Icon       string `short:"i" long:"icon" description:"URL of a small image identifying the feed, like a favicon"`
	RemoveIcon bool   `short:"I" long:"remove-icon" description:"remove the icon, ignored if icon is given"`

	Logo       string `short:"l" long:"logo" description:"URL of a larger image identifying the feed"`
	RemoveLogo bool   `short:"L" long:"remove-logo" description:"remove the logo, ignored if logo is given"`

	Subtitle       string `short:"s" long:"subtitle" description:"human-readable description or subtitle of the feed"`
	RemoveSubtitle bool   `short:"S" long:"remove-subtitle" description:"remove the subtitle, ignored if subtitle is given"`

	NoGenerator bool   `short:"G" long:"no-generator" description:"do not set the generator element disclosing kaboom was used"`
	Format      string `long:"format" choice:"human" choice:"json" choice:"yaml" default:"human" description:"output format"`

	env *environment
}

// Execute implements flags.Commander
func (c *MetaCommand) Execute(_ []string) error {
	f, created, err := c.load()
	if err != nil {
		return err
	}

	if c.apply(f) || created {
		c.env.touch(f, c.NoGenerator)
		if err := c.env.write(f, c.env.file); err != nil {
			return err
		}
	} else {
		log.Printf("[DEBUG] no metadata changes, %s left as is", c.env.file)
	}

	return printFeed(c.env.stdout, f, c.Format)
}

// load reads the feed, or makes a new one if the file doesn't exist yet
func (c *MetaCommand) load() (f *feed.Feed, created bool, err error) {
	f, err = feed.Read(c.env.file)
	if err == nil {
		return f, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}
	if c.Title == "" || c.URI == "" {
		return nil, false, fmt.Errorf("feed %s doesn't exist, both title and uri are required to create it", c.env.file)
	}
	log.Printf("[INFO] creating new feed %s", c.env.file)
	return &feed.Feed{}, true, nil
}

// apply makes the requested changes and reports whether anything changed
func (c *MetaCommand) apply(f *feed.Feed) (changed bool) {
	setString := func(target *string, val string, remove bool) {
		switch {
		case val != "" && val != *target:
			*target = val
			changed = true
		case val == "" && remove && *target != "":
			*target = ""
			changed = true
		}
	}

	setString(&f.Title, c.Title, false)
	setString(&f.ID, c.URI, false)
	setString(&f.Subtitle, c.Subtitle, c.RemoveSubtitle)
	setString(&f.Icon, c.Icon, c.RemoveIcon)
	setString(&f.Logo, c.Logo, c.RemoveLogo)

	if c.RemoveLinks {
		selfLinks := make([]link.Link, 0, len(f.Links))
		for _, l := range f.Links {
			if l.Rel == "self" {
				selfLinks = append(selfLinks, l)
			}
		}
		if len(selfLinks) != len(f.Links) {
			changed = true
		}
		f.Links = selfLinks
	}

	for _, rl := range c.RelLinks {
		existing := f.LinkByHref(rl.Link.Href)
		if existing == nil {
			log.Printf("[DEBUG] adding link %s", rl)
			f.Links = append(f.Links, rl.Link)
			changed = true
			continue
		}

		if existing.Equal(rl.Link) {
			log.Printf("[DEBUG] link %s already exists, seems to be equivalent, skipping", rl)
			continue
		}

		log.Printf("[DEBUG] link %s already exists, modifying in place", rl)
		existing.Rel, existing.Type = rl.Link.Rel, rl.Link.Type
		existing.Hreflang, existing.Title = rl.Link.Hreflang, rl.Link.Title
		changed = true
	}

	return changed
}
