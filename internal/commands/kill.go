package commands

import (
	"github.com/dshills/keymacs/internal/event"
	"github.com/dshills/keymacs/internal/host"
)

// orderRange returns the two positions in document order.
func orderRange(a, b host.Position) (from, to host.Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// KillLine cuts from the cursor to the end of the line without moving
// the cursor. On an empty line the line itself is deleted instead.
func (c *Commands) KillLine(ed host.Editor) error {
	cur := ed.Cursor()
	line := ed.Line(cur.Line)

	if line == "" {
		switch {
		case cur.Line+1 < ed.LineCount():
			ed.ReplaceRange(host.Position{Line: cur.Line}, host.Position{Line: cur.Line + 1}, "")
		case cur.Line > 0:
			prevEnd := host.Position{Line: cur.Line - 1, Ch: len([]rune(ed.Line(cur.Line - 1)))}
			ed.ReplaceRange(prevEnd, host.Position{Line: cur.Line}, "")
		}
		return nil
	}

	end := host.Position{Line: cur.Line, Ch: len([]rune(line))}
	text := ed.RangeText(cur, end)
	if err := c.writeClipboard(event.TopicClipboardCut, text); err != nil {
		return err
	}
	ed.ReplaceRange(cur, end, "")
	ed.SetCursor(cur)
	return nil
}

// KillWord cuts from the cursor to the end of the next word, using the
// host's word motion. Any pre-existing native selection is ignored: the
// kill always spans cursor to word boundary.
func (c *Commands) KillWord(ed host.Editor) error {
	return c.killByMotion(ed, ed.MoveWordRight)
}

// BackwardKillWord cuts from the start of the previous word to the
// cursor.
func (c *Commands) BackwardKillWord(ed host.Editor) error {
	return c.killByMotion(ed, ed.MoveWordLeft)
}

func (c *Commands) killByMotion(ed host.Editor, motion func()) error {
	start := ed.Cursor()
	motion()
	from, to := orderRange(start, ed.Cursor())
	if from.Equals(to) {
		return nil
	}

	text := ed.RangeText(from, to)
	if err := c.writeClipboard(event.TopicClipboardCut, text); err != nil {
		return err
	}
	ed.ReplaceRange(from, to, "")
	ed.SetCursor(from)
	return nil
}

// KillRegion cuts the logical selection (native or mark-anchored) to
// the clipboard. A no-op when nothing is selected.
func (c *Commands) KillRegion(ed host.Editor) error {
	anchor, ok := c.marks.SelectionAnchor(ed)
	if !ok {
		return nil
	}
	from, to := orderRange(anchor, ed.Cursor())

	text := ed.RangeText(from, to)
	if err := c.writeClipboard(event.TopicClipboardCut, text); err != nil {
		return err
	}
	ed.ReplaceRange(from, to, "")
	ed.SetCursor(from)
	c.marks.DisableSelection(ed)
	return nil
}

// KillRingSave copies the logical selection to the clipboard without
// removing it, then ends the selection, leaving point at the cursor.
func (c *Commands) KillRingSave(ed host.Editor) error {
	anchor, ok := c.marks.SelectionAnchor(ed)
	if !ok {
		return nil
	}
	from, to := orderRange(anchor, ed.Cursor())

	if err := c.writeClipboard(event.TopicClipboardCopy, ed.RangeText(from, to)); err != nil {
		return err
	}
	c.marks.DisableSelection(ed)
	return nil
}

// Yank inserts the clipboard text at the cursor, or over the native
// selection when one exists, then places the cursor at the end of the
// inserted text and clears any mark.
func (c *Commands) Yank(ed host.Editor) error {
	text, err := c.readClipboard()
	if err != nil {
		return err
	}

	sel := ed.Selection()
	from, to := orderRange(sel.Anchor, sel.Head)
	if sel.IsEmpty() {
		from, to = ed.Cursor(), ed.Cursor()
	}

	startOff := ed.PosToOffset(from)
	ed.ReplaceRange(from, to, text)
	ed.SetCursor(ed.OffsetToPos(startOff + len([]rune(text))))
	c.marks.DisableSelection(ed)
	c.bus.Publish(event.TopicClipboardPaste, text)
	return nil
}
