// Package hosttest provides a scripted in-memory host editor for tests.
//
// The fake enforces the host.Editor contract: out-of-range line access
// and inverted ranges panic so that command code relying on them fails
// loudly in tests rather than silently corrupting the buffer.
package hosttest

import (
	"fmt"
	"strings"

	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/textscan"
)

// Editor is an in-memory host.Editor backed by a slice of lines.
type Editor struct {
	lines  []string
	cursor host.Position
	anchor host.Position

	// Scrolled records the last ScrollIntoView range for assertions.
	Scrolled []host.Selection

	undo []snapshot
	redo []snapshot
}

type snapshot struct {
	text   string
	cursor host.Position
}

var _ host.Editor = (*Editor)(nil)

// New creates a fake editor containing text with the cursor at 0,0.
func New(text string) *Editor {
	return &Editor{
		lines: strings.Split(text, "\n"),
	}
}

// Cursor implements host.Editor.
func (e *Editor) Cursor() host.Position {
	return e.cursor
}

// SetCursor implements host.Editor. Any selection collapses to pos.
func (e *Editor) SetCursor(pos host.Position) {
	e.cursor = e.clamp(pos)
	e.anchor = e.cursor
}

// Line implements host.Editor.
func (e *Editor) Line(idx int) string {
	if idx < 0 || idx >= len(e.lines) {
		panic(fmt.Sprintf("hosttest: line %d out of range [0, %d)", idx, len(e.lines)))
	}
	return e.lines[idx]
}

// LineCount implements host.Editor.
func (e *Editor) LineCount() int {
	return len(e.lines)
}

// Text implements host.Editor.
func (e *Editor) Text() string {
	return strings.Join(e.lines, "\n")
}

// Selection implements host.Editor.
func (e *Editor) Selection() host.Selection {
	return host.Selection{Anchor: e.anchor, Head: e.cursor}
}

// SetSelection implements host.Editor.
func (e *Editor) SetSelection(anchor, head host.Position) {
	e.anchor = e.clamp(anchor)
	e.cursor = e.clamp(head)
}

// ReplaceRange implements host.Editor.
func (e *Editor) ReplaceRange(from, to host.Position, text string) {
	from = e.clamp(from)
	to = e.clamp(to)
	if to.Before(from) {
		panic(fmt.Sprintf("hosttest: inverted range %v..%v", from, to))
	}
	e.pushUndo()

	runes := []rune(e.Text())
	start := e.PosToOffset(from)
	end := e.PosToOffset(to)
	updated := string(runes[:start]) + text + string(runes[end:])
	e.lines = strings.Split(updated, "\n")
	e.SetCursor(e.OffsetToPos(start + len([]rune(text))))
}

// ReplaceSelection implements host.Editor.
func (e *Editor) ReplaceSelection(text string) {
	from, to := e.anchor, e.cursor
	if to.Before(from) {
		from, to = to, from
	}
	e.ReplaceRange(from, to, text)
}

// RangeText implements host.Editor.
func (e *Editor) RangeText(from, to host.Position) string {
	start := e.PosToOffset(e.clamp(from))
	end := e.PosToOffset(e.clamp(to))
	if end < start {
		panic(fmt.Sprintf("hosttest: inverted range %v..%v", from, to))
	}
	return string([]rune(e.Text())[start:end])
}

// PosToOffset implements host.Editor.
func (e *Editor) PosToOffset(pos host.Position) int {
	pos = e.clamp(pos)
	off := 0
	for i := 0; i < pos.Line; i++ {
		off += len([]rune(e.lines[i])) + 1
	}
	return off + pos.Ch
}

// OffsetToPos implements host.Editor.
func (e *Editor) OffsetToPos(off int) host.Position {
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

// ScrollIntoView implements host.Editor.
func (e *Editor) ScrollIntoView(from, to host.Position) {
	e.Scrolled = append(e.Scrolled, host.Selection{Anchor: from, Head: to})
}

// MoveCharLeft implements host.Editor.
func (e *Editor) MoveCharLeft() {
	e.SetCursor(e.OffsetToPos(e.PosToOffset(e.cursor) - 1))
}

// MoveCharRight implements host.Editor.
func (e *Editor) MoveCharRight() {
	e.SetCursor(e.OffsetToPos(e.PosToOffset(e.cursor) + 1))
}

// MoveLineUp implements host.Editor.
func (e *Editor) MoveLineUp() {
	e.SetCursor(host.Position{Line: e.cursor.Line - 1, Ch: e.cursor.Ch})
}

// MoveLineDown implements host.Editor.
func (e *Editor) MoveLineDown() {
	e.SetCursor(host.Position{Line: e.cursor.Line + 1, Ch: e.cursor.Ch})
}

// MoveWordLeft implements host.Editor.
func (e *Editor) MoveWordLeft() {
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

// MoveWordRight implements host.Editor.
func (e *Editor) MoveWordRight() {
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

// Undo implements host.Editor.
func (e *Editor) Undo() {
	if len(e.undo) == 0 {
		return
	}
	snap := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.snapshot())
	e.restore(snap)
}

// Redo implements host.Editor.
func (e *Editor) Redo() {
	if len(e.redo) == 0 {
		return
	}
	snap := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.snapshot())
	e.restore(snap)
}

func (e *Editor) snapshot() snapshot {
	return snapshot{text: e.Text(), cursor: e.cursor}
}

func (e *Editor) restore(snap snapshot) {
	e.lines = strings.Split(snap.text, "\n")
	e.SetCursor(snap.cursor)
}

func (e *Editor) pushUndo() {
	e.undo = append(e.undo, e.snapshot())
	e.redo = nil
}

func (e *Editor) clamp(pos host.Position) host.Position {
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
