package commands

import (
	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/textscan"
)

// Motion commands wrap the host's cursor motions in the mark
// controller's selection update, so an active mark extends a selection
// across the move. These are also the repeat-eligible motions.

// ForwardChar moves the cursor one character right.
func (c *Commands) ForwardChar(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, ed.MoveCharRight)
	return nil
}

// BackwardChar moves the cursor one character left.
func (c *Commands) BackwardChar(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, ed.MoveCharLeft)
	return nil
}

// NextLine moves the cursor one line down.
func (c *Commands) NextLine(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, ed.MoveLineDown)
	return nil
}

// PreviousLine moves the cursor one line up.
func (c *Commands) PreviousLine(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, ed.MoveLineUp)
	return nil
}

// ForwardWord moves the cursor to the end of the next word.
func (c *Commands) ForwardWord(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, ed.MoveWordRight)
	return nil
}

// BackwardWord moves the cursor to the start of the previous word.
func (c *Commands) BackwardWord(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, ed.MoveWordLeft)
	return nil
}

// LineStart moves the cursor to the beginning of the current line.
func (c *Commands) LineStart(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, func() {
		ed.SetCursor(host.Position{Line: ed.Cursor().Line, Ch: 0})
	})
	return nil
}

// LineEnd moves the cursor to the end of the current line.
func (c *Commands) LineEnd(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, func() {
		line := ed.Cursor().Line
		ed.SetCursor(host.Position{Line: line, Ch: len([]rune(ed.Line(line)))})
	})
	return nil
}

// ForwardParagraph moves past the next paragraph break, scanning the
// document as a flat character sequence.
func (c *Commands) ForwardParagraph(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, func() {
		off := textscan.ForwardParagraph(ed.Text(), ed.PosToOffset(ed.Cursor()))
		ed.SetCursor(ed.OffsetToPos(off))
	})
	cur := ed.Cursor()
	ed.ScrollIntoView(cur, cur)
	return nil
}

// BackwardParagraph moves to the start of the current or previous
// paragraph.
func (c *Commands) BackwardParagraph(ed host.Editor) error {
	c.marks.WithSelectionUpdate(ed, func() {
		off := textscan.BackwardParagraph(ed.Text(), ed.PosToOffset(ed.Cursor()))
		ed.SetCursor(ed.OffsetToPos(off))
	})
	cur := ed.Cursor()
	ed.ScrollIntoView(cur, cur)
	return nil
}

// SetMark toggles the transient mark at the cursor.
func (c *Commands) SetMark(ed host.Editor) error {
	c.marks.SetMark(ed)
	return nil
}

// KeyboardQuit discards any selection and clears the mark.
func (c *Commands) KeyboardQuit(ed host.Editor) error {
	c.marks.DisableSelection(ed)
	return nil
}
