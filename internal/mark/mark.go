// Package mark emulates Emacs' transient-mark model on top of the
// host's native selection.
//
// A mark is a selection anchor the user set explicitly (C-Space), as
// opposed to a selection created by dragging. While the mark is active,
// cursor motions extend a native selection from the mark to the new
// cursor position; plain insertions and deletions interrupt the mark so
// the next motion moves the bare cursor again.
package mark

import (
	"sync"

	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/input/key"
)

// Controller tracks the mark state for one plugin session. It is shared
// by every motion and edit command, which read it fresh on each
// invocation (repeat ticks included).
type Controller struct {
	mu sync.Mutex

	// markActive is true after the user set a mark and until the
	// selection is collapsed or interrupted.
	markActive bool

	// pendingDeactivation is set when a keystroke signaled that the
	// selection should collapse at the next opportunity, before the
	// native selection has actually been cleared.
	pendingDeactivation bool
}

// NewController creates a controller in the NoMark state.
func NewController() *Controller {
	return &Controller{}
}

// MarkActive reports whether a mark is currently active.
func (c *Controller) MarkActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markActive
}

// SetMark toggles the mark. Activating remembers the current cursor as
// the anchor for subsequent motions; deactivating collapses any
// selection to the cursor and clears all mark state.
func (c *Controller) SetMark(ed host.Editor) {
	c.mu.Lock()
	active := c.markActive
	c.mu.Unlock()

	if active {
		c.DisableSelection(ed)
		return
	}

	c.mu.Lock()
	c.markActive = true
	c.pendingDeactivation = false
	c.mu.Unlock()
}

// InterruptSelection classifies a keystroke before any other handling.
// Deletion keys and plain printable characters end a transient
// selection: the mark is cleared immediately and the native selection is
// flagged to collapse on the next wrapped motion.
func (c *Controller) InterruptSelection(ev key.Event) {
	if !ev.IsDeletion() && !ev.IsPlainInsert() {
		return
	}
	c.mu.Lock()
	c.markActive = false
	c.pendingDeactivation = true
	c.mu.Unlock()
}

// SelectionAnchor returns the anchor of the logical selection a motion
// should preserve. A non-empty native selection wins regardless of how
// it was made (mouse drag included); otherwise an active mark anchors at
// the cursor. Returns ok=false when motions should move the bare cursor.
func (c *Controller) SelectionAnchor(ed host.Editor) (host.Position, bool) {
	sel := ed.Selection()
	if !sel.IsEmpty() {
		return sel.Anchor, true
	}
	if c.MarkActive() {
		return sel.Anchor, true
	}
	return host.Position{}, false
}

// WithSelectionUpdate wraps a cursor motion so an active mark extends
// the selection across it. The native selection is collapsed before the
// motion runs, so the host computes the move from a single point, and
// re-established from the captured anchor to the new cursor afterward.
func (c *Controller) WithSelectionUpdate(ed host.Editor, motion func()) {
	c.mu.Lock()
	pending := c.pendingDeactivation
	if pending {
		c.pendingDeactivation = false
		c.markActive = false
	}
	c.mu.Unlock()

	if pending {
		ed.SetCursor(ed.Cursor())
	}

	anchor, extend := c.SelectionAnchor(ed)
	if extend {
		ed.SetCursor(ed.Cursor())
	}

	motion()

	if extend {
		ed.SetSelection(anchor, ed.Cursor())
	}
}

// DisableSelection collapses the native selection to the cursor and
// clears all mark state. Used by commands that discard selections
// outright: kill, yank without a selection, keyboard-quit.
func (c *Controller) DisableSelection(ed host.Editor) {
	ed.SetCursor(ed.Cursor())
	c.mu.Lock()
	c.markActive = false
	c.pendingDeactivation = false
	c.mu.Unlock()
}
