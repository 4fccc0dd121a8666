// Package key provides keyboard event types and canonical chord
// identities.
//
// A chord identity is a stable string encoding of modifier keys plus the
// base key ("C-f", "A-Left", "Backspace"). The repeat scheduler keys its
// per-key state on chord identities, and keymap bindings are written as
// chord specs parsed by Parse.
package key
