package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press or release.
type Event struct {
	// Key identifies the key for special (non-character) keys.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if a motion-style modifier is held.
// Shift alone does not count for character keys, since Shift is part of
// the character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// IsPlainInsert returns true if the event would insert a character into
// the document: a printable rune with no Ctrl/Alt/Meta held.
func (e Event) IsPlainInsert() bool {
	return e.IsChar() && !e.IsModified()
}

// IsDeletion returns true if the event is a text-removing key.
func (e Event) IsDeletion() bool {
	return e.Key.IsDeletion()
}

// Chord returns the canonical identity string for this key chord.
// Modifiers appear in a fixed order (C, A, M, S) so the same physical
// chord always canonicalizes to the same string, which is what the
// repeat scheduler keys its state on.
//
// Examples: "f", "C-f", "A-b", "C-Left", "Backspace", "C-A-Space".
func (e Event) Chord() string {
	var b strings.Builder
	if e.Modifiers.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if e.Modifiers.Has(ModAlt) {
		b.WriteString("A-")
	}
	if e.Modifiers.Has(ModMeta) {
		b.WriteString("M-")
	}
	// Shift is folded into the rune for character keys.
	if e.Modifiers.Has(ModShift) && !e.IsRune() {
		b.WriteString("S-")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		b.WriteString("Space")
	case e.Key == KeyRune:
		b.WriteRune(e.Rune)
	default:
		b.WriteString(e.Key.String())
	}
	return b.String()
}

// String returns the chord identity.
func (e Event) String() string {
	return e.Chord()
}

// Equals returns true if two events represent the same key chord.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}

// Parse parses a chord spec like "C-f", "A-b", "Ctrl+Left", "Backspace"
// or "x" into an Event. The last segment is the base key; everything
// before it must be a modifier name.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, fmt.Errorf("key: empty chord spec")
	}

	sep := "-"
	if strings.Contains(spec, "+") {
		sep = "+"
	}

	parts := strings.Split(spec, sep)

	// A trailing empty segment means the base key was the separator
	// itself ("C--" is Ctrl+hyphen).
	base := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if base == "" && len(mods) > 0 {
		base = sep
		mods = mods[:len(mods)-1]
	}

	var modifiers Modifier
	for _, name := range mods {
		m := ModifierFromName(name)
		if m == ModNone {
			return Event{}, fmt.Errorf("key: unknown modifier %q in chord %q", name, spec)
		}
		modifiers = modifiers.With(m)
	}

	if k := KeyFromName(base); k != KeyNone {
		return NewSpecialEvent(k, modifiers), nil
	}

	runes := []rune(base)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("key: unknown key %q in chord %q", base, spec)
	}
	return NewRuneEvent(runes[0], modifiers), nil
}

// MustParse parses a chord spec and panics on error.
// Intended for static default binding tables.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
