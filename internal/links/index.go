// Package links extracts URLs from feed entries and keeps them in an
// append-only index that outlives the entries they came from.
package links

import (
	"net/url"
	"strings"
	"time"

	"livefeed/internal/feed"
)

// Entry is one extracted link.
type Entry struct {
	Seq       uint64
	Author    feed.Author
	Link      string
	Timestamp time.Time
}

// Extract returns the whitespace-separated tokens of text that are absolute
// URLs with both a scheme and a host.
func Extract(text string) []string {
	var out []string
	for _, tok := range strings.Fields(text) {
		u, err := url.Parse(tok)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Index holds links in extraction order. With Limit > 0 the oldest links are
// dropped once more than Limit are held; the zero Limit never drops.
type Index struct {
	Limit int

	entries []Entry
	next    uint64
}

// NewIndex returns an empty index bounded by limit (0 for unbounded).
func NewIndex(limit int) *Index {
	return &Index{Limit: max(limit, 0)}
}

// Add scans e and appends one link entry per link found. It returns the new
// entries, which may be empty.
func (ix *Index) Add(e feed.Entry) []Entry {
	found := Extract(e.Text)
	if len(found) == 0 {
		return nil
	}
	start := len(ix.entries)
	for _, link := range found {
		ix.next++
		ix.entries = append(ix.entries, Entry{
			Seq:       ix.next,
			Author:    e.Author,
			Link:      link,
			Timestamp: e.Timestamp,
		})
	}
	added := ix.entries[start:len(ix.entries):len(ix.entries)]
	if ix.Limit > 0 && len(ix.entries) > ix.Limit {
		ix.entries = append([]Entry(nil), ix.entries[len(ix.entries)-ix.Limit:]...)
	}
	return added
}

// Len reports how many links are held.
func (ix *Index) Len() int { return len(ix.entries) }

// Last returns up to n of the newest links, oldest first.
func (ix *Index) Last(n int) []Entry {
	start := max(len(ix.entries)-max(n, 0), 0)
	return ix.entries[start:]
}

// Since returns the links whose sequence number is greater than seq.
func (ix *Index) Since(seq uint64) []Entry {
	for i, e := range ix.entries {
		if e.Seq > seq {
			return ix.entries[i:]
		}
	}
	return nil
}

// Latest returns the most recently extracted link.
func (ix *Index) Latest() (Entry, bool) {
	if len(ix.entries) == 0 {
		return Entry{}, false
	}
	return ix.entries[len(ix.entries)-1], true
}

// Group is a run of consecutive links sharing timestamp and author.
type Group struct {
	Timestamp time.Time
	Author    feed.Author
	Links     []Entry
}

// SameGroup reports whether b continues the group started by a.
func SameGroup(a, b Entry) bool {
	return a.Author == b.Author && a.Timestamp.Equal(b.Timestamp)
}

// Groups folds consecutive links with equal (timestamp, author). Order is
// the order of entries.
func Groups(entries []Entry) []Group {
	var out []Group
	for _, e := range entries {
		if n := len(out); n > 0 && SameGroup(out[n-1].Links[0], e) {
			out[n-1].Links = append(out[n-1].Links, e)
			continue
		}
		out = append(out, Group{Timestamp: e.Timestamp, Author: e.Author, Links: []Entry{e}})
	}
	return out
}
