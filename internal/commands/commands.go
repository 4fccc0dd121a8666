// Package commands implements the user-facing Emacs commands: cursor
// motion wrapped in transient-mark selection updates, kill/yank against
// the system clipboard, case transforms, and paragraph navigation.
//
// Commands are thin: all motion math and text mutation is delegated to
// the host editor, selection arbitration to the mark controller, and
// scanning to textscan.
package commands

import (
	"context"

	"github.com/dshills/keymacs/internal/event"
	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/input/keymap"
	"github.com/dshills/keymacs/internal/mark"
)

// Commands bundles the dependencies every command needs.
type Commands struct {
	marks *mark.Controller
	clip  host.Clipboard
	bus   *event.Bus
}

// New creates the command set.
func New(marks *mark.Controller, clip host.Clipboard, bus *event.Bus) *Commands {
	return &Commands{marks: marks, clip: clip, bus: bus}
}

// readClipboard awaits the asynchronous clipboard read for yank.
func (c *Commands) readClipboard() (string, error) {
	return c.clip.ReadText(context.Background())
}

// writeClipboard stores text and publishes the given notification topic.
func (c *Commands) writeClipboard(topic event.Topic, text string) error {
	if err := c.clip.WriteText(text); err != nil {
		return err
	}
	c.bus.Publish(topic, text)
	return nil
}

// spec describes one registrable command.
type spec struct {
	id   string
	name string
	run  func(ed host.Editor) error
}

// specs returns every command in registration order.
func (c *Commands) specs() []spec {
	return []spec{
		{"cursor.forwardChar", "Forward character", c.ForwardChar},
		{"cursor.backwardChar", "Backward character", c.BackwardChar},
		{"cursor.nextLine", "Next line", c.NextLine},
		{"cursor.previousLine", "Previous line", c.PreviousLine},
		{"cursor.forwardWord", "Forward word", c.ForwardWord},
		{"cursor.backwardWord", "Backward word", c.BackwardWord},
		{"cursor.lineStart", "Beginning of line", c.LineStart},
		{"cursor.lineEnd", "End of line", c.LineEnd},
		{"cursor.forwardParagraph", "Forward paragraph", c.ForwardParagraph},
		{"cursor.backwardParagraph", "Backward paragraph", c.BackwardParagraph},
		{"mark.toggle", "Set or clear mark", c.SetMark},
		{"mark.keyboardQuit", "Keyboard quit", c.KeyboardQuit},
		{"kill.line", "Kill line", c.KillLine},
		{"kill.word", "Kill word", c.KillWord},
		{"kill.wordBackward", "Backward kill word", c.BackwardKillWord},
		{"kill.region", "Kill region", c.KillRegion},
		{"kill.ringSave", "Copy region", c.KillRingSave},
		{"kill.yank", "Yank", c.Yank},
		{"transform.upcaseWord", "Upcase word", c.UpcaseWord},
		{"transform.downcaseWord", "Downcase word", c.DowncaseWord},
		{"transform.capitalizeWord", "Capitalize word", c.CapitalizeWord},
		{"transform.upcaseRegion", "Upcase region", c.UpcaseRegion},
		{"transform.downcaseRegion", "Downcase region", c.DowncaseRegion},
		{"transform.capitalizeRegion", "Capitalize region", c.CapitalizeRegion},
		{"transform.upcaseDwim", "Upcase word or region", c.UpcaseDwim},
		{"transform.downcaseDwim", "Downcase word or region", c.DowncaseDwim},
		{"transform.capitalizeDwim", "Capitalize word or region", c.CapitalizeDwim},
		{"editor.undo", "Undo", c.Undo},
		{"editor.redo", "Redo", c.Redo},
	}
}

// RegisterAll registers every command with the host, using km to look up
// default chords. Commands without a binding register unbound.
func (c *Commands) RegisterAll(reg host.Registrar, km *keymap.Keymap) {
	for _, s := range c.specs() {
		chord, _ := km.ChordFor(s.id)
		reg.Register(host.Command{
			ID:    s.id,
			Name:  s.name,
			Chord: chord,
			Run:   s.run,
		})
	}
}

// Run executes a command by id against ed. Unknown ids are a no-op so a
// stale binding cannot break key handling.
func (c *Commands) Run(id string, ed host.Editor) error {
	for _, s := range c.specs() {
		if s.id == id {
			return s.run(ed)
		}
	}
	return nil
}

// Undo drives the host's history.
func (c *Commands) Undo(ed host.Editor) error {
	ed.Undo()
	return nil
}

// Redo drives the host's history.
func (c *Commands) Redo(ed host.Editor) error {
	ed.Redo()
	return nil
}
