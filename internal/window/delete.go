package window

import (
	"strings"

	"livefeed/internal/feed"
)

// LabelAlphabet is the order in which deletion labels are handed out.
const LabelAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcdefghijklmnopqrstuvwxyz"

// BeginMarking enters the deletion sub-mode. It reports false when already
// marking or when the links view is shown. Follow with Update(MarkAll).
func (w *Window) BeginMarking() bool {
	if w.marking || w.view != MessageView {
		return false
	}
	w.marking = true
	return true
}

// CancelMarking leaves the deletion sub-mode without deleting. Follow with
// Update(Redraw).
func (w *Window) CancelMarking() {
	w.marking = false
	w.labelled = 0
}

// Delete removes the entry labelled ch, if any, leaves the deletion
// sub-mode and redraws. A key that is not a current label only ends the
// sub-mode.
func (w *Window) Delete(ch rune) error {
	if !w.marking {
		return nil
	}
	if p := strings.IndexRune(LabelAlphabet, ch); p >= 0 && p < w.labelled {
		w.queue.RemoveFromEnd(w.labelled - 1 - p)
	}
	w.CancelMarking()
	return w.Update(Redraw)
}

// assignLabels relabels the newest entries whose whole block fits on screen,
// oldest to newest, and returns how many got a label. blocks holds the
// layout of each entry and is updated in place.
func (w *Window) assignLabels(entries []feed.Entry, blocks [][]line, rows int) int {
	visible, used := 0, 0
	for i := len(blocks) - 1; i >= 0; i-- {
		used += len(blocks[i])
		if used > rows {
			break
		}
		visible++
	}
	k := min(visible, len(LabelAlphabet))
	first := len(entries) - k
	for j := range k {
		blocks[first+j] = w.entryLines(entries[first+j], LabelAlphabet[j:j+1], true)
	}
	return k
}
