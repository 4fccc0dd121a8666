// Package keymap maps key chords to command identifiers.
//
// Bindings are written as chord specs ("C-f", "A-Backspace") and
// canonicalized on insert, so lookup by a key event's chord identity is
// a single map access. User overrides load from a YAML file on top of
// the default Emacs set.
package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keymacs/internal/input/key"
)

// Binding is a single chord-to-command mapping.
type Binding struct {
	// Chord is the key chord spec ("C-k", "A-d").
	Chord string `yaml:"chord"`

	// Command is the command identifier ("kill.line").
	Command string `yaml:"command"`

	// Description documents the binding for display.
	Description string `yaml:"description,omitempty"`
}

// Keymap resolves key events to bindings.
type Keymap struct {
	mu      sync.RWMutex
	byChord map[string]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{byChord: make(map[string]Binding)}
}

// Bind adds or replaces a binding. The chord spec is canonicalized, so
// "Ctrl+F" and "C-f" bind the same chord.
func (m *Keymap) Bind(b Binding) error {
	ev, err := key.Parse(b.Chord)
	if err != nil {
		return fmt.Errorf("keymap: binding %q: %w", b.Command, err)
	}
	if b.Command == "" {
		return fmt.Errorf("keymap: binding for %q has no command", b.Chord)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byChord[ev.Chord()] = b
	return nil
}

// Unbind removes the binding for a chord spec, if any.
func (m *Keymap) Unbind(chord string) {
	ev, err := key.Parse(chord)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byChord, ev.Chord())
}

// Resolve returns the binding for a key event's chord identity.
func (m *Keymap) Resolve(ev key.Event) (Binding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.byChord[ev.Chord()]
	return b, ok
}

// ChordFor returns the chord spec bound to a command id, if any. When
// several chords map to the same command the lexically smallest canonical
// chord wins, keeping the answer deterministic.
func (m *Keymap) ChordFor(command string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := ""
	for chord, b := range m.byChord {
		if b.Command != command {
			continue
		}
		if best == "" || chord < best {
			best = chord
		}
	}
	return best, best != ""
}

// Bindings returns all bindings sorted by canonical chord.
func (m *Keymap) Bindings() []Binding {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chords := make([]string, 0, len(m.byChord))
	for c := range m.byChord {
		chords = append(chords, c)
	}
	sort.Strings(chords)

	out := make([]Binding, 0, len(chords))
	for _, c := range chords {
		out = append(out, m.byChord[c])
	}
	return out
}
