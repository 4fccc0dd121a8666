// Package session wires the keybinding layer into a host: one Session
// owns the settings store, keymap, mark controller, repeat scheduler,
// command set, and init script runner, and routes the host's key events
// through them.
//
// The key-down pipeline is fixed: the keystroke is first classified for
// selection interruption, then offered to the repeat scheduler, and only
// if the scheduler does not claim it is it resolved against the keymap
// and dispatched as a command.
package session

import (
	"log"

	"github.com/google/uuid"

	"github.com/dshills/keymacs/internal/clipboard"
	"github.com/dshills/keymacs/internal/commands"
	"github.com/dshills/keymacs/internal/config"
	"github.com/dshills/keymacs/internal/event"
	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/input/key"
	"github.com/dshills/keymacs/internal/input/keymap"
	"github.com/dshills/keymacs/internal/mark"
	"github.com/dshills/keymacs/internal/repeat"
	"github.com/dshills/keymacs/internal/script"
)

// Options configures a Session. Zero values give an in-memory session
// with defaults: no persisted config, no keymap overrides, no init
// script, in-memory clipboard, system clock.
type Options struct {
	// ConfigPath is the TOML settings file. Empty disables persistence.
	ConfigPath string

	// KeymapPath is the YAML binding override file.
	KeymapPath string

	// InitScriptPath is the user's init.lua.
	InitScriptPath string

	// Clipboard overrides the in-memory default.
	Clipboard host.Clipboard

	// Clock overrides the system clock for the repeat scheduler.
	Clock repeat.Clock

	// WatchConfig starts a file watcher that live-reloads ConfigPath.
	WatchConfig bool
}

// repeatCommands is the repeat-eligible command set: cursor motions that
// are safe and useful to run on a timer while a chord is held.
var repeatCommands = []string{
	"cursor.forwardChar",
	"cursor.backwardChar",
	"cursor.nextLine",
	"cursor.previousLine",
	"cursor.forwardWord",
	"cursor.backwardWord",
}

// Session is one live instance of the keybinding layer.
type Session struct {
	// ID identifies the session in logs when a host runs several.
	ID uuid.UUID

	ctx       host.Context
	store     *config.Store
	keymap    *keymap.Keymap
	marks     *mark.Controller
	bus       *event.Bus
	cmds      *commands.Commands
	scheduler *repeat.Scheduler
	scripts   *script.Runner
	watcher   *config.Watcher
}

// New creates a session for a host context. Configuration problems are
// logged and skipped rather than returned: a broken settings file or
// init script leaves the defaults in effect, it never disables the
// keybinding layer.
func New(ctx host.Context, opts Options) *Session {
	store := config.NewStore(opts.ConfigPath)
	if opts.ConfigPath != "" {
		if err := store.Load(); err != nil {
			log.Printf("session: settings load failed, using defaults: %v", err)
		}
	}

	km := keymap.Default()
	if opts.KeymapPath != "" {
		if err := keymap.ApplyFile(km, opts.KeymapPath); err != nil {
			log.Printf("session: keymap overrides failed: %v", err)
		}
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewMemory()
	}

	bus := event.NewBus()
	marks := mark.NewController()
	cmds := commands.New(marks, clip, bus)

	s := &Session{
		ID:        uuid.New(),
		ctx:       ctx,
		store:     store,
		keymap:    km,
		marks:     marks,
		bus:       bus,
		cmds:      cmds,
		scheduler: repeat.NewScheduler(opts.Clock, ctx, store.Settings),
		scripts:   script.New(store, km),
	}

	if opts.InitScriptPath != "" {
		if err := s.scripts.RunFile(opts.InitScriptPath); err != nil {
			log.Printf("session: init script failed: %v", err)
		}
	}

	// The init script may have rebound motion chords, so the repeat
	// bindings derive from the keymap only after it has run.
	s.bindRepeatMotions()

	if opts.WatchConfig && opts.ConfigPath != "" {
		w, err := config.Watch(store)
		if err != nil {
			log.Printf("session: config watcher failed: %v", err)
		} else {
			s.watcher = w
		}
	}

	return s
}

// bindRepeatMotions registers the repeat-eligible commands with the
// scheduler under their current chords.
func (s *Session) bindRepeatMotions() {
	for _, id := range repeatCommands {
		chord, ok := s.keymap.ChordFor(id)
		if !ok {
			continue
		}
		id := id
		motion := func(ed host.Editor) error {
			return s.cmds.Run(id, ed)
		}
		if err := s.scheduler.Bind(chord, motion); err != nil {
			log.Printf("session: repeat binding for %s failed: %v", id, err)
		}
	}
}

// HandleKeyDown routes a key press. It returns true when the event was
// consumed (a repeat motion or a bound command) and the host should
// suppress its default handling.
func (s *Session) HandleKeyDown(ev key.Event) bool {
	ed, active := s.ctx.ActiveEditor()
	if !active {
		return false
	}

	// Classify before dispatch: a deletion or plain insert ends any
	// transient selection even though the host handles the edit itself.
	s.marks.InterruptSelection(ev)

	if s.scheduler.OnKeyDown(ev) {
		return true
	}

	b, bound := s.keymap.Resolve(ev)
	if !bound {
		return false
	}
	if err := s.cmds.Run(b.Command, ed); err != nil {
		log.Printf("session: command %s failed: %v", b.Command, err)
	}
	return true
}

// HandleKeyUp routes a key release to the repeat scheduler.
func (s *Session) HandleKeyUp(ev key.Event) {
	s.scheduler.OnKeyUp(ev)
}

// FocusLost cancels all held repeats.
func (s *Session) FocusLost() {
	s.scheduler.OnFocusLost()
}

// ActiveEditorChanged cancels all held repeats.
func (s *Session) ActiveEditorChanged() {
	s.scheduler.OnActiveEditorChanged()
}

// RegisterCommands registers every command with the host's registrar,
// chords included, for palettes and menus.
func (s *Session) RegisterCommands(reg host.Registrar) {
	s.cmds.RegisterAll(reg, s.keymap)
}

// Settings returns the current settings.
func (s *Session) Settings() config.Settings {
	return s.store.Settings()
}

// Keymap returns the live keymap.
func (s *Session) Keymap() *keymap.Keymap {
	return s.keymap
}

// Bus returns the session's event bus.
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// Close tears the session down: repeats cancelled, watcher stopped,
// script state released.
func (s *Session) Close() {
	s.scheduler.Unload()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Printf("session: watcher close: %v", err)
		}
	}
	s.scripts.Close()
}
