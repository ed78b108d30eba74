package history

import (
	"slices"
	"testing"
)

type item struct {
	name string
	ts   int
}

func byTS(a, b item) bool { return a.ts < b.ts }

func names(q *Queue[item]) []string {
	var out []string
	for it := range q.All() {
		out = append(out, it.name)
	}
	return out
}

func TestPush_EvictsOldest(t *testing.T) {
	q := New(3, byTS)
	for i, n := range []string{"A", "B", "C", "D"} {
		q.Push(item{n, i})
	}
	if got := names(q); !slices.Equal(got, []string{"B", "C", "D"}) {
		t.Fatalf("contents = %v, want [B C D]", got)
	}
}

func TestPush_FullThenOneMore(t *testing.T) {
	const n = 5
	q := New(n, byTS)
	for i := 0; i < n; i++ {
		q.Push(item{string(rune('a' + i)), i})
	}
	q.Push(item{"z", n})
	if q.Len() != n {
		t.Fatalf("Len = %d, want %d", q.Len(), n)
	}
	got := names(q)
	if got[0] != "b" || got[n-1] != "z" {
		t.Fatalf("contents = %v, want oldest dropped", got)
	}
}

func TestPush_OutOfOrderIsSorted(t *testing.T) {
	q := New(10, byTS)
	for _, ts := range []int{5, 3, 9, 1, 9, 4, 7} {
		q.Push(item{"x", ts})
		prev := -1
		for it := range q.All() {
			if it.ts < prev {
				t.Fatalf("timestamps decrease after push %d: %v", ts, q.items)
			}
			prev = it.ts
		}
	}
}

func TestPush_SortIsStable(t *testing.T) {
	q := New(10, byTS)
	q.Push(item{"first", 2})
	q.Push(item{"second", 2})
	q.Push(item{"early", 1})
	if got := names(q); !slices.Equal(got, []string{"early", "first", "second"}) {
		t.Fatalf("contents = %v", got)
	}
}

func TestRemoveFromEnd(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   []string
	}{
		{"newest", 0, []string{"A", "B", "C"}},
		{"middle", 2, []string{"A", "C", "D"}},
		{"oldest", 3, []string{"B", "C", "D"}},
		{"out of range", 4, []string{"A", "B", "C", "D"}},
		{"negative", -1, []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New(4, byTS)
			for i, n := range []string{"A", "B", "C", "D"} {
				q.Push(item{n, i})
			}
			q.RemoveFromEnd(tt.offset)
			if got := names(q); !slices.Equal(got, tt.want) {
				t.Fatalf("contents = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLast(t *testing.T) {
	q := New[item](5, nil)
	for i, n := range []string{"A", "B", "C", "D"} {
		q.Push(item{n, i})
	}
	seq := q.Last(2)
	for range 2 {
		var got []string
		for it := range seq {
			got = append(got, it.name)
		}
		if !slices.Equal(got, []string{"C", "D"}) {
			t.Fatalf("Last(2) = %v, want [C D]", got)
		}
	}

	var all []string
	for it := range q.Last(10) {
		all = append(all, it.name)
	}
	if len(all) != 4 {
		t.Fatalf("Last(10) = %v", all)
	}
	for range q.Last(0) {
		t.Fatalf("Last(0) yielded")
	}
}

func TestBackAndCap(t *testing.T) {
	q := New[item](0, nil)
	if q.Cap() != 1 {
		t.Fatalf("Cap = %d, want 1", q.Cap())
	}
	if _, ok := q.Back(); ok {
		t.Fatalf("Back on empty queue reported ok")
	}
	q.Push(item{"A", 0})
	q.Push(item{"B", 1})
	if b, ok := q.Back(); !ok || b.name != "B" {
		t.Fatalf("Back = %v,%v", b, ok)
	}
}
