// Package prune selects which feed entries to keep when trimming a feed down to a
// target number of entries.
package prune

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/klardotsh/kaboom/pkg/feed"
)

// Strategy defines the ordering key and cutoff rule used to prune entries
type Strategy int

// enum of all strategies
const (
	RecentlyPublished Strategy = iota // keep the most recently published
	RecentlyUpdated                   // keep the most recently updated
	SinceDate                         // keep entries published since a date, capped by count
)

var strategyNames = map[Strategy]string{
	RecentlyPublished: "published",
	RecentlyUpdated:   "updated",
	SinceDate:         "since-date",
}

// ParseStrategy converts a strategy name (published, updated, since-date) to Strategy
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return RecentlyPublished, fmt.Errorf("unknown pruning strategy %q", name)
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Prune orders entries according to strategy, most recent first, and splits them
// into the ones to keep and the rejected remainder. Both keep the sorted order.
// The input slice itself is not modified. since is used by SinceDate only.
func Prune(entries []feed.Entry, count int, strategy Strategy, since time.Time) (kept, rejected []feed.Entry) {
	sorted := slices.Clone(entries)
	count = max(0, min(count, len(sorted)))

	var cut int
	switch strategy {
	case RecentlyUpdated:
		sortDescending(sorted, func(e feed.Entry) *time.Time { return e.Updated })
		cut = count
	case SinceDate:
		sortDescending(sorted, func(e feed.Entry) *time.Time { return e.Published })
		ppoint := sort.Search(len(sorted), func(i int) bool {
			pub := sorted[i].Published
			return pub == nil || pub.Before(since)
		})
		cut = min(ppoint, count)
	default:
		sortDescending(sorted, func(e feed.Entry) *time.Time { return e.Published })
		cut = count
	}

	return sorted[:cut:cut], sorted[cut:]
}

// sortDescending stable-sorts entries ascending by key, missing keys first, and then
// reverses them. Entries with equal keys end up in reverse document order.
func sortDescending(entries []feed.Entry, key func(feed.Entry) *time.Time) {
	slices.SortStableFunc(entries, func(a, b feed.Entry) int {
		ka, kb := key(a), key(b)
		switch {
		case ka == nil && kb == nil:
			return 0
		case ka == nil:
			return -1
		case kb == nil:
			return 1
		}
		return ka.Compare(*kb)
	})
	slices.Reverse(entries)
}
