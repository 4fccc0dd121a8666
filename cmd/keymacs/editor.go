package main

import (
	"strings"

	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/textscan"
)

// textEditor is the demo's host.Editor: a plain line buffer with a
// scrolling viewport and snapshot-based undo. It exists to exercise the
// keybinding layer, not to be an editor; real hosts supply their own.
type textEditor struct {
	lines  []string
	cursor host.Position
	anchor host.Position

	// top is the first visible line; height the viewport rows.
	top    int
	height int

	undo []editorSnapshot
	redo []editorSnapshot
}

type editorSnapshot struct {
	text   string
	cursor host.Position
}

var _ host.Editor = (*textEditor)(nil)

func newTextEditor(text string, height int) *textEditor {
	return &textEditor{
		lines:  strings.Split(text, "\n"),
		height: height,
	}
}

func (e *textEditor) Cursor() host.Position { return e.cursor }

func (e *textEditor) SetCursor(pos host.Position) {
	e.cursor = e.clamp(pos)
	e.anchor = e.cursor
}

func (e *textEditor) Line(idx int) string {
	if idx < 0 || idx >= len(e.lines) {
		return ""
	}
	return e.lines[idx]
}

func (e *textEditor) LineCount() int { return len(e.lines) }

func (e *textEditor) Text() string { return strings.Join(e.lines, "\n") }

func (e *textEditor) Selection() host.Selection {
	return host.Selection{Anchor: e.anchor, Head: e.cursor}
}

func (e *textEditor) SetSelection(anchor, head host.Position) {
	e.anchor = e.clamp(anchor)
	e.cursor = e.clamp(head)
}

func (e *textEditor) ReplaceRange(from, to host.Position, text string) {
	from = e.clamp(from)
	to = e.clamp(to)
	if to.Before(from) {
		from, to = to, from
	}
	e.pushUndo()

	runes := []rune(e.Text())
	start := e.PosToOffset(from)
	end := e.PosToOffset(to)
	updated := string(runes[:start]) + text + string(runes[end:])
	e.lines = strings.Split(updated, "\n")
	e.SetCursor(e.OffsetToPos(start + len([]rune(text))))
}

func (e *textEditor) ReplaceSelection(text string) {
	from, to := e.anchor, e.cursor
	if to.Before(from) {
		from, to = to, from
	}
	e.ReplaceRange(from, to, text)
}

func (e *textEditor) RangeText(from, to host.Position) string {
	start := e.PosToOffset(e.clamp(from))
	end := e.PosToOffset(e.clamp(to))
	if end < start {
		start, end = end, start
	}
	return string([]rune(e.Text())[start:end])
}

func (e *textEditor) PosToOffset(pos host.Position) int {
	pos = e.clamp(pos)
	off := 0
	for i := 0; i < pos.Line; i++ {
		off += len([]rune(e.lines[i])) + 1
	}
	return off + pos.Ch
}

func (e *textEditor) OffsetToPos(off int) host.Position {
	if off < 0 {
		off = 0
	}
	for i, line := range e.lines {
		n := len([]rune(line))
		if off <= n {
			return host.Position{Line: i, Ch: off}
		}
		off -= n + 1
	}
	last := len(e.lines) - 1
	return host.Position{Line: last, Ch: len([]rune(e.lines[last]))}
}

// ScrollIntoView adjusts the viewport so the range's head line is
// visible.
func (e *textEditor) ScrollIntoView(from, to host.Position) {
	line := to.Line
	if line < e.top {
		e.top = line
	}
	if e.height > 0 && line >= e.top+e.height {
		e.top = line - e.height + 1
	}
}

func (e *textEditor) MoveCharLeft() {
	e.SetCursor(e.OffsetToPos(e.PosToOffset(e.cursor) - 1))
}

func (e *textEditor) MoveCharRight() {
	e.SetCursor(e.OffsetToPos(e.PosToOffset(e.cursor) + 1))
}

func (e *textEditor) MoveLineUp() {
	e.SetCursor(host.Position{Line: e.cursor.Line - 1, Ch: e.cursor.Ch})
}

func (e *textEditor) MoveLineDown() {
	e.SetCursor(host.Position{Line: e.cursor.Line + 1, Ch: e.cursor.Ch})
}

func (e *textEditor) MoveWordLeft() {
	runes := []rune(e.Text())
	i := e.PosToOffset(e.cursor)
	for i > 0 && !textscan.IsWordChar(runes[i-1]) {
		i--
	}
	for i > 0 && textscan.IsWordChar(runes[i-1]) {
		i--
	}
	e.SetCursor(e.OffsetToPos(i))
}

func (e *textEditor) MoveWordRight() {
	runes := []rune(e.Text())
	i := e.PosToOffset(e.cursor)
	for i < len(runes) && !textscan.IsWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && textscan.IsWordChar(runes[i]) {
		i++
	}
	e.SetCursor(e.OffsetToPos(i))
}

func (e *textEditor) Undo() {
	if len(e.undo) == 0 {
		return
	}
	snap := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.snapshot())
	e.restore(snap)
}

func (e *textEditor) Redo() {
	if len(e.redo) == 0 {
		return
	}
	snap := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.snapshot())
	e.restore(snap)
}

// insertAtCursor types text, replacing any selection.
func (e *textEditor) insertAtCursor(text string) {
	e.ReplaceSelection(text)
}

// deleteBackward is the demo's Backspace: delete the selection, or the
// rune before the cursor.
func (e *textEditor) deleteBackward() {
	if !e.Selection().IsEmpty() {
		e.ReplaceSelection("")
		return
	}
	off := e.PosToOffset(e.cursor)
	if off == 0 {
		return
	}
	e.ReplaceRange(e.OffsetToPos(off-1), e.cursor, "")
}

// deleteForward is the demo's Delete key.
func (e *textEditor) deleteForward() {
	if !e.Selection().IsEmpty() {
		e.ReplaceSelection("")
		return
	}
	off := e.PosToOffset(e.cursor)
	if off >= len([]rune(e.Text())) {
		return
	}
	e.ReplaceRange(e.cursor, e.OffsetToPos(off+1), "")
}

func (e *textEditor) snapshot() editorSnapshot {
	return editorSnapshot{text: e.Text(), cursor: e.cursor}
}

func (e *textEditor) restore(snap editorSnapshot) {
	e.lines = strings.Split(snap.text, "\n")
	e.SetCursor(snap.cursor)
}

func (e *textEditor) pushUndo() {
	e.undo = append(e.undo, e.snapshot())
	e.redo = nil
}

func (e *textEditor) clamp(pos host.Position) host.Position {
	if pos.Line < 0 {
		return host.Position{}
	}
	if pos.Line >= len(e.lines) {
		last := len(e.lines) - 1
		return host.Position{Line: last, Ch: len([]rune(e.lines[last]))}
	}
	if pos.Ch < 0 {
		pos.Ch = 0
	}
	if n := len([]rune(e.lines[pos.Line])); pos.Ch > n {
		pos.Ch = n
	}
	return pos
}
