package links

import (
	"slices"
	"testing"
	"time"

	"livefeed/internal/feed"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "just some words", nil},
		{"one", "see https://example.com/a?b=1 now", []string{"https://example.com/a?b=1"}},
		{"many", "http://a.io ftp://files.b.org/x", []string{"http://a.io", "ftp://files.b.org/x"}},
		{"scheme without host", "mailto:x@y.z notes:todo", nil},
		{"bare host", "example.com www.example.com", nil},
		{"malformed", "http://[::1 http://%zz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text); !slices.Equal(got, tt.want) {
				t.Fatalf("Extract(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func entry(name string, sec int, text string) feed.Entry {
	return feed.Entry{
		Timestamp: time.Date(2024, 1, 1, 12, 0, sec, 0, time.Local),
		Author:    feed.Author{Name: name, Color: feed.DefaultColor},
		Text:      text,
	}
}

func TestIndex_AddAssignsSequence(t *testing.T) {
	ix := NewIndex(0)
	if got := ix.Add(entry("a", 0, "no links")); len(got) != 0 {
		t.Fatalf("Add without links returned %v", got)
	}
	first := ix.Add(entry("a", 1, "http://one.io http://two.io"))
	second := ix.Add(entry("b", 2, "http://three.io"))
	if len(first) != 2 || len(second) != 1 {
		t.Fatalf("unexpected added counts %d %d", len(first), len(second))
	}
	if first[0].Seq != 1 || first[1].Seq != 2 || second[0].Seq != 3 {
		t.Fatalf("unexpected seqs %v %v", first, second)
	}
	if ix.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ix.Len())
	}
	if got := ix.Since(2); len(got) != 1 || got[0].Link != "http://three.io" {
		t.Fatalf("Since(2) = %v", got)
	}
	if got := ix.Since(3); got != nil {
		t.Fatalf("Since(3) = %v, want nil", got)
	}
	if got := ix.Last(2); len(got) != 2 || got[0].Seq != 2 {
		t.Fatalf("Last(2) = %v", got)
	}
	if l, ok := ix.Latest(); !ok || l.Seq != 3 {
		t.Fatalf("Latest = %v,%v", l, ok)
	}
}

func TestIndex_Limit(t *testing.T) {
	ix := NewIndex(2)
	ix.Add(entry("a", 1, "http://one.io"))
	ix.Add(entry("a", 2, "http://two.io http://three.io"))
	if ix.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ix.Len())
	}
	if got := ix.Last(5); got[0].Link != "http://two.io" || got[1].Seq != 3 {
		t.Fatalf("Last = %v", got)
	}
}

func TestGroups(t *testing.T) {
	ix := NewIndex(0)
	ix.Add(entry("a", 1, "http://one.io http://two.io"))
	ix.Add(entry("a", 1, "http://three.io"))
	ix.Add(entry("b", 1, "http://four.io"))
	ix.Add(entry("a", 1, "http://five.io"))

	groups := Groups(ix.Last(ix.Len()))
	var sizes []int
	for _, g := range groups {
		sizes = append(sizes, len(g.Links))
	}
	if !slices.Equal(sizes, []int{3, 1, 1}) {
		t.Fatalf("group sizes = %v, want [3 1 1]", sizes)
	}
	var seqs []uint64
	for _, g := range groups {
		for _, l := range g.Links {
			seqs = append(seqs, l.Seq)
		}
	}
	if !slices.IsSorted(seqs) {
		t.Fatalf("links reordered: %v", seqs)
	}
}
