// Package host defines the contract the keybinding layer requires from
// its host editor: buffer access, cursor and selection control, command
// registration, and the system clipboard.
//
// The package contains only interfaces and small value types. Production
// hosts (such as the tcell demo in cmd/keymacs) and the scripted fake in
// hosttest provide the implementations.
package host

import "context"

// Position is a line/character location in the document. Line and Ch
// are zero-based; Ch counts runes within the line.
type Position struct {
	Line int
	Ch   int
}

// Before reports whether p comes before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Ch < other.Ch
}

// Equals reports whether two positions are identical.
func (p Position) Equals(other Position) bool {
	return p.Line == other.Line && p.Ch == other.Ch
}

// Selection is a native editor selection. Anchor is where the selection
// started; Head is the moving end (the cursor). A collapsed selection
// has Anchor == Head.
type Selection struct {
	Anchor Position
	Head   Position
}

// IsEmpty reports whether the selection is collapsed to a single point.
func (s Selection) IsEmpty() bool {
	return s.Anchor.Equals(s.Head)
}

// Editor is the host text-buffer API the commands are written against.
//
// Mutating calls take effect before the call returns; the selection
// reported by Selection reflects all prior SetSelection and
// ReplaceSelection calls. Motion methods move the cursor only and never
// create or alter a selection.
type Editor interface {
	// Cursor returns the current cursor position (the selection head).
	Cursor() Position

	// SetCursor moves the cursor, collapsing any selection to it.
	SetCursor(pos Position)

	// Line returns the text of the zero-based line idx, without its
	// trailing line break.
	Line(idx int) string

	// LineCount returns the number of lines in the document.
	LineCount() int

	// Text returns the entire document text.
	Text() string

	// Selection returns the native selection. A collapsed selection
	// (Anchor == Head at the cursor) means no visible selection.
	Selection() Selection

	// SetSelection establishes a native selection from anchor to head
	// and places the cursor at head.
	SetSelection(anchor, head Position)

	// ReplaceRange replaces the text between from and to (from must not
	// come after to) with text.
	ReplaceRange(from, to Position, text string)

	// ReplaceSelection replaces the current selection with text and
	// collapses the cursor to the end of the inserted text.
	ReplaceSelection(text string)

	// RangeText returns the text between from and to.
	RangeText(from, to Position) string

	// PosToOffset converts a position to a linear rune offset.
	PosToOffset(pos Position) int

	// OffsetToPos converts a linear rune offset to a position.
	OffsetToPos(off int) Position

	// ScrollIntoView brings the range into the visible viewport.
	ScrollIntoView(from, to Position)

	// Cursor motions delegated to the host. Word motions use the host's
	// own word-boundary rules.
	MoveCharLeft()
	MoveCharRight()
	MoveLineUp()
	MoveLineDown()
	MoveWordLeft()
	MoveWordRight()

	// Undo and Redo drive the host's history.
	Undo()
	Redo()
}

// Context reports which editor, if any, currently has focus. The repeat
// scheduler consults it on every key event and on every repeat tick.
type Context interface {
	// ActiveEditor returns the focused editor, or ok=false when no
	// editor is active (focus lost, no open document).
	ActiveEditor() (Editor, bool)
}

// Clipboard is the system clipboard. Reads are asynchronous on some
// platforms, so ReadText takes a context; writes are synchronous.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(text string) error
}

// Command is a user-facing action registered with the host.
type Command struct {
	// ID is the stable identifier, namespaced with dots
	// ("kill.line", "cursor.forwardChar").
	ID string

	// Name is the display name shown in the host's command palette.
	Name string

	// Chord is the default key chord spec, empty for unbound commands.
	Chord string

	// Run executes the command against the active editor.
	Run func(ed Editor) error
}

// Registrar accepts command registrations from the keybinding layer.
type Registrar interface {
	Register(cmd Command)
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(cmd Command)

// Register implements Registrar.
func (f RegistrarFunc) Register(cmd Command) {
	f(cmd)
}
