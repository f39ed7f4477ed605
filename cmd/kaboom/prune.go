package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klardotsh/kaboom/pkg/feed"
	"github.com/klardotsh/kaboom/pkg/prune"
)

// PruneCommand removes entries from the feed, archiving them to a reject file
type PruneCommand struct {
	Strategy   string `short:"s" long:"strategy" choice:"published" choice:"updated" choice:"since-date" description:"pruning strategy (default: published)"`
	SinceDate  string `short:"d" long:"since-date" description:"keep entries published at or after this date, YYYY-MM-DD or RFC 3339 (since-date strategy only)"`
	RejectFile string `short:"r" long:"reject-file" description:"file to move pruned entries to (default: feed path with .xml replaced by .rej.xml)"`
	NoReject   bool   `short:"R" long:"no-reject" description:"drop pruned entries instead of archiving them"`

	Args struct {
		Count int `positional-arg-name:"count" description:"number of entries to keep"`
	} `positional-args:"yes" required:"yes"`

	env *environment
}

// Execute implements flags.Commander
func (c *PruneCommand) Execute(_ []string) error {
	if c.Args.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Args.Count)
	}

	strategy := c.env.conf.Strategy()
	if c.Strategy != "" {
		var err error
		if strategy, err = prune.ParseStrategy(c.Strategy); err != nil {
			return err
		}
	}

	if !c.noReject() && samePath(c.env.file, c.rejectPath()) {
		return fmt.Errorf("reject file %s is the feed itself", c.rejectPath())
	}

	var since time.Time
	if strategy == prune.SinceDate {
		if c.SinceDate == "" {
			return errors.New("since-date strategy requires --since-date")
		}
		var err error
		if since, err = parseDate(c.SinceDate); err != nil {
			return err
		}
	}

	f, err := feed.Read(c.env.file)
	if err != nil {
		return err
	}

	if len(f.Entries) <= c.Args.Count {
		log.Printf("[INFO] %s has %d entries, nothing to prune to %d", c.env.file, len(f.Entries), c.Args.Count)
		return nil
	}

	kept, rejected := prune.Prune(f.Entries, c.Args.Count, strategy, since)
	log.Printf("[INFO] pruning %s with %s strategy, keeping %d entries, rejecting %d",
		c.env.file, strategy, len(kept), len(rejected))

	if !c.noReject() && len(rejected) > 0 {
		if err := c.archive(f, rejected); err != nil {
			return err
		}
	}

	f.Entries = kept
	return c.env.write(f, c.env.file)
}

func (c *PruneCommand) noReject() bool {
	return c.NoReject || c.env.conf.Prune.NoReject
}

// rejectPath returns the reject file path, derived from the feed path unless set explicitly
func (c *PruneCommand) rejectPath() string {
	if c.RejectFile != "" {
		return c.RejectFile
	}
	return strings.TrimSuffix(c.env.file, ".xml") + c.env.conf.Prune.RejectSuffix
}

// archive prepends rejected entries to the reject file, creating it from the live
// feed's metadata if it doesn't exist yet
func (c *PruneCommand) archive(live *feed.Feed, rejected []feed.Entry) error {
	path := c.rejectPath()
	rej, err := feed.Read(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[DEBUG] reject file %s doesn't exist, creating it", path)
		rej = live.CloneMeta()
	case err != nil:
		return fmt.Errorf("load reject file: %w", err)
	}

	rej.Entries = slices.Concat(rejected, rej.Entries)
	c.env.touch(rej, false)
	if err := c.env.write(rej, path); err != nil {
		return fmt.Errorf("write reject file: %w", err)
	}
	return nil
}

// samePath reports whether both paths point to the same file, existing or not
func samePath(a, b string) bool {
	fa, errA := os.Stat(a)
	fb, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(fa, fb)
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// parseDate accepts a calendar date (YYYY-MM-DD, midnight UTC) or a full RFC 3339 timestamp
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
