// Package history provides the bounded buffer that backs the message view.
package history

import (
	"iter"
	"slices"
)

// Queue is a fixed-capacity buffer ordered oldest to newest. Pushing into a
// full queue evicts from the front. Items are kept sorted by less; a push
// that arrives out of order triggers a stable re-sort.
//
// A Queue is not safe for concurrent use.
type Queue[T any] struct {
	items []T
	size  int
	less  func(a, b T) bool
}

// New returns an empty queue holding at most size items. A size below 1 is
// treated as 1. less may be nil, in which case insertion order is kept.
func New[T any](size int, less func(a, b T) bool) *Queue[T] {
	if size < 1 {
		size = 1
	}
	return &Queue[T]{
		items: make([]T, 0, size),
		size:  size,
		less:  less,
	}
}

// Push appends item, evicting the oldest items while the queue is full.
func (q *Queue[T]) Push(item T) {
	for len(q.items) >= q.size {
		q.items = slices.Delete(q.items, 0, 1)
	}
	q.items = append(q.items, item)
	n := len(q.items)
	if q.less != nil && n > 1 && q.less(item, q.items[n-2]) {
		slices.SortStableFunc(q.items, func(a, b T) int {
			switch {
			case q.less(a, b):
				return -1
			case q.less(b, a):
				return 1
			}
			return 0
		})
	}
}

// RemoveFromEnd removes the item offset positions back from the newest
// (0 is the newest). Out-of-range offsets are ignored.
func (q *Queue[T]) RemoveFromEnd(offset int) {
	if offset < 0 || offset >= len(q.items) {
		return
	}
	i := len(q.items) - 1 - offset
	q.items = slices.Delete(q.items, i, i+1)
}

// Last yields the newest n items, oldest first. The sequence reads the queue
// when iterated, so it can be ranged over more than once.
func (q *Queue[T]) Last(n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		start := max(len(q.items)-max(n, 0), 0)
		for _, item := range q.items[start:] {
			if !yield(item) {
				return
			}
		}
	}
}

// All yields every item, oldest first.
func (q *Queue[T]) All() iter.Seq[T] {
	return slices.Values(q.items)
}

// Back returns the newest item.
func (q *Queue[T]) Back() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[len(q.items)-1], true
}

func (q *Queue[T]) Len() int { return len(q.items) }

func (q *Queue[T]) Cap() int { return q.size }
