package window

// UpdateMode selects how Update repaints the screen.
type UpdateMode int

const (
	// Redraw clears the screen and repaints the active view.
	Redraw UpdateMode = iota
	// Append draws only what arrived since the last paint below the
	// current content.
	Append
	// MarkAll repaints the message view with deletion labels.
	MarkAll
	// Info repaints every row, status row included, without clearing the
	// screen first.
	Info
)

func (m UpdateMode) String() string {
	switch m {
	case Redraw:
		return "redraw"
	case Append:
		return "append"
	case MarkAll:
		return "mark_all"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// ViewMode is the entry layout. The forced variants ignore the terminal
// width.
type ViewMode int

const (
	Normal ViewMode = iota
	Compact
	ForcedNormal
	ForcedCompact
)

func (m ViewMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Compact:
		return "compact"
	case ForcedNormal:
		return "forced normal"
	case ForcedCompact:
		return "forced compact"
	default:
		return "unknown"
	}
}

// Forced reports whether the mode was pinned by the user.
func (m ViewMode) Forced() bool {
	return m == ForcedNormal || m == ForcedCompact
}

// IsCompact reports whether entries use the compact layout.
func (m ViewMode) IsCompact() bool {
	return m == Compact || m == ForcedCompact
}

// next is the user cycle: automatic, then pinned normal, then pinned compact.
func (m ViewMode) next() ViewMode {
	switch m {
	case Normal, Compact:
		return ForcedNormal
	case ForcedNormal:
		return ForcedCompact
	default:
		return Normal
	}
}

// auto returns the automatic mode for a terminal width.
func (m ViewMode) auto(width, minWidth int) ViewMode {
	if m.Forced() {
		return m
	}
	if width < minWidth {
		return Compact
	}
	return Normal
}

// View is the dataset being shown.
type View int

const (
	MessageView View = iota
	LinksView
)

func (v View) String() string {
	switch v {
	case MessageView:
		return "messages"
	case LinksView:
		return "links"
	default:
		return "unknown"
	}
}
