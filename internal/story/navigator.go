package story

import (
	"errors"

	"dronemap/internal/model"
)

var (
	// ErrEmptySet is returned when opening or reading a viewer session
	// with no items. Callers must not open the viewer over zero items.
	ErrEmptySet = errors.New("story set is empty")
	// ErrOutOfRange is returned by JumpTo for indexes outside the
	// active set.
	ErrOutOfRange = errors.New("story index out of range")
)

// Navigator is the cursor over the active set of a viewing session.
//
// The active set is a snapshot taken at Open: store mutations made
// while a session is open never disturb it. Live consistency, if
// wanted, is the caller's job — close or re-open on deletion events.
// The navigator itself is not safe for concurrent use; a session
// belongs to one viewer.
type Navigator struct {
	// Wrap makes Next/Previous wrap around at the edges instead of
	// clamping. Clamping is the default, matching Previous/Next
	// buttons that disable at the first and last item.
	Wrap bool

	activeSet []model.MediaRecord
	cursor    int
	open      bool
}

// Open replaces the active set and positions the cursor, clamping
// startIndex into [0, len-1].
func (n *Navigator) Open(activeSet []model.MediaRecord, startIndex int) error {
	if len(activeSet) == 0 {
		return ErrEmptySet
	}
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex > len(activeSet)-1 {
		startIndex = len(activeSet) - 1
	}
	n.activeSet = activeSet
	n.cursor = startIndex
	n.open = true
	return nil
}

// IsOpen reports whether a session is active.
func (n *Navigator) IsOpen() bool {
	return n.open
}

// Len returns the size of the active set, 0 when closed.
func (n *Navigator) Len() int {
	return len(n.activeSet)
}

// Index returns the current cursor position.
func (n *Navigator) Index() int {
	return n.cursor
}

// Next advances the cursor. At the last item it is a no-op, or wraps to
// the first item in wrap mode.
func (n *Navigator) Next() {
	if !n.open {
		return
	}
	if n.cursor < len(n.activeSet)-1 {
		n.cursor++
	} else if n.Wrap {
		n.cursor = 0
	}
}

// Previous moves the cursor back. At the first item it is a no-op, or
// wraps to the last item in wrap mode.
func (n *Navigator) Previous() {
	if !n.open {
		return
	}
	if n.cursor > 0 {
		n.cursor--
	} else if n.Wrap {
		n.cursor = len(n.activeSet) - 1
	}
}

// JumpTo positions the cursor on index.
func (n *Navigator) JumpTo(index int) error {
	if !n.open {
		return ErrEmptySet
	}
	if index < 0 || index > len(n.activeSet)-1 {
		return ErrOutOfRange
	}
	n.cursor = index
	return nil
}

// Current returns the record under the cursor.
func (n *Navigator) Current() (*model.MediaRecord, error) {
	if !n.open || len(n.activeSet) == 0 {
		return nil, ErrEmptySet
	}
	rec := n.activeSet[n.cursor]
	return &rec, nil
}

// Close clears the active set and resets the cursor.
func (n *Navigator) Close() {
	n.activeSet = nil
	n.cursor = 0
	n.open = false
}
