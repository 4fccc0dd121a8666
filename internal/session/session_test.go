package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/host/hosttest"
	"github.com/dshills/keymacs/internal/input/key"
)

func newSession(t *testing.T, text string, opts Options) (*Session, *hosttest.Editor, *hosttest.Host) {
	t.Helper()
	ed := hosttest.New(text)
	h := hosttest.NewHost(ed)
	s := New(h, opts)
	t.Cleanup(s.Close)
	return s, ed, h
}

func TestHandleKeyDownDispatchesCommand(t *testing.T) {
	s, ed, _ := newSession(t, "abcdef", Options{})
	ed.SetCursor(host.Position{Line: 0, Ch: 3})

	if !s.HandleKeyDown(key.MustParse("C-k")) {
		t.Fatal("C-k should be consumed")
	}
	if got := ed.Text(); got != "abc" {
		t.Errorf("text = %q, want %q", got, "abc")
	}
}

func TestUnboundChordPassesThrough(t *testing.T) {
	s, ed, _ := newSession(t, "abc", Options{})

	if s.HandleKeyDown(key.MustParse("C-A-M-q")) {
		t.Error("unbound chord should not be consumed")
	}
	if got := ed.Text(); got != "abc" {
		t.Errorf("text = %q, want unchanged", got)
	}
}

func TestNoActiveEditorPassesThrough(t *testing.T) {
	s, _, h := newSession(t, "abc", Options{})
	h.SetFocused(false)

	if s.HandleKeyDown(key.MustParse("C-k")) {
		t.Error("key events without an active editor should not be consumed")
	}
}

func TestRepeatMotionRunsImmediately(t *testing.T) {
	s, ed, _ := newSession(t, "abc", Options{})

	if !s.HandleKeyDown(key.MustParse("C-f")) {
		t.Fatal("C-f should be consumed by the repeat scheduler")
	}
	if got := ed.Cursor(); !got.Equals(host.Position{Line: 0, Ch: 1}) {
		t.Errorf("cursor = %v, want 0,1 after the immediate motion", got)
	}

	s.HandleKeyUp(key.MustParse("C-f"))
	if n := s.scheduler.Count(); n != 0 {
		t.Errorf("repeat entries after key-up = %d, want 0", n)
	}
}

func TestFocusLostCancelsRepeats(t *testing.T) {
	s, _, _ := newSession(t, "abc", Options{})

	s.HandleKeyDown(key.MustParse("C-f"))
	if n := s.scheduler.Count(); n != 1 {
		t.Fatalf("repeat entries = %d, want 1", n)
	}

	s.FocusLost()
	if n := s.scheduler.Count(); n != 0 {
		t.Errorf("repeat entries after focus loss = %d, want 0", n)
	}
}

func TestMarkMotionSelectsAndInsertInterrupts(t *testing.T) {
	s, ed, _ := newSession(t, "abcdef", Options{})

	if !s.HandleKeyDown(key.MustParse("C-Space")) {
		t.Fatal("C-Space should be consumed")
	}
	s.HandleKeyDown(key.MustParse("C-f"))
	s.HandleKeyUp(key.MustParse("C-f"))

	sel := ed.Selection()
	if sel.IsEmpty() {
		t.Fatal("motion after mark should select")
	}
	if !sel.Anchor.Equals(host.Position{Line: 0, Ch: 0}) || !sel.Head.Equals(host.Position{Line: 0, Ch: 1}) {
		t.Fatalf("selection = %v..%v, want 0,0..0,1", sel.Anchor, sel.Head)
	}

	// A plain character interrupts the mark; the next motion moves the
	// bare cursor instead of extending.
	if s.HandleKeyDown(key.NewRuneEvent('x', key.ModNone)) {
		t.Error("plain insert should pass through to the host")
	}
	s.HandleKeyDown(key.MustParse("C-f"))
	s.HandleKeyUp(key.MustParse("C-f"))

	if sel := ed.Selection(); !sel.IsEmpty() {
		t.Errorf("selection after interrupt = %v..%v, want collapsed", sel.Anchor, sel.Head)
	}
}

func TestConfigFileLoaded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymacs.toml")
	if err := os.WriteFile(path, []byte("key_repeat_delay = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, _, _ := newSession(t, "", Options{ConfigPath: path})
	if got := s.Settings().KeyRepeatDelay; got != 100 {
		t.Errorf("KeyRepeatDelay = %d, want 100", got)
	}
}

func TestInitScriptRebindsAndConfigures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	code := `
		set("key_repeat_interval", 20)
		bind("C-j", "cursor.nextLine")
		unbind("C-f")
		bind("C-l", "cursor.forwardChar")
	`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	s, ed, _ := newSession(t, "ab\ncd", Options{InitScriptPath: path})

	if got := s.Settings().KeyRepeatInterval; got != 20 {
		t.Errorf("KeyRepeatInterval = %d, want 20", got)
	}

	if !s.HandleKeyDown(key.MustParse("C-j")) {
		t.Fatal("C-j should dispatch after the init script bound it")
	}
	if got := ed.Cursor(); !got.Equals(host.Position{Line: 1, Ch: 0}) {
		t.Errorf("cursor = %v, want 1,0", got)
	}

	// Repeat bindings derive from the post-script keymap: the rebound
	// chord repeats, the unbound one passes through.
	if !s.HandleKeyDown(key.MustParse("C-l")) {
		t.Fatal("C-l should be consumed by the repeat scheduler")
	}
	s.HandleKeyUp(key.MustParse("C-l"))
	if s.HandleKeyDown(key.MustParse("C-f")) {
		t.Error("C-f should pass through after unbind")
	}
}

func TestBrokenInitScriptLeavesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	if err := os.WriteFile(path, []byte(`bind("C-j",`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, ed, _ := newSession(t, "abcdef", Options{InitScriptPath: path})

	// Defaults still work.
	if !s.HandleKeyDown(key.MustParse("C-k")) {
		t.Fatal("defaults should survive a broken init script")
	}
	if got := ed.Text(); got != "" {
		t.Errorf("text = %q, want empty after kill-line at 0,0", got)
	}
}

func TestKeymapOverridesApplied(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	overrides := "bindings:\n  - chord: C-d\n    command: kill.word\n"
	if err := os.WriteFile(path, []byte(overrides), 0o644); err != nil {
		t.Fatal(err)
	}

	s, ed, _ := newSession(t, "word next", Options{KeymapPath: path})

	if !s.HandleKeyDown(key.MustParse("C-d")) {
		t.Fatal("C-d should dispatch the override")
	}
	if got := ed.Text(); got != " next" {
		t.Errorf("text = %q, want %q", got, " next")
	}
}

func TestRegisterCommands(t *testing.T) {
	s, _, _ := newSession(t, "", Options{})
	reg := &hosttest.Registry{}

	s.RegisterCommands(reg)

	if len(reg.Commands) == 0 {
		t.Fatal("no commands registered")
	}
	if cmd, ok := reg.Find("cursor.forwardChar"); !ok || cmd.Chord != "C-f" {
		t.Errorf("cursor.forwardChar = %+v, ok=%v, want chord C-f", cmd, ok)
	}
}
