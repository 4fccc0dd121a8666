package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/keymacs/internal/config"
	"github.com/dshills/keymacs/internal/input/key"
	"github.com/dshills/keymacs/internal/input/keymap"
)

func newRunner(t *testing.T) (*Runner, *config.Store, *keymap.Keymap) {
	t.Helper()
	store := config.NewStore(filepath.Join(t.TempDir(), "keymacs.toml"))
	km := keymap.Default()
	r := New(store, km)
	t.Cleanup(r.Close)
	return r, store, km
}

func TestSetOptions(t *testing.T) {
	r, store, _ := newRunner(t)

	err := r.RunString(`
		set("key_repeat_delay", 300)
		set("key_repeat_interval", 25)
		set("enable_key_repeat", false)
	`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}

	s := store.Settings()
	if s.KeyRepeatDelay != 300 {
		t.Errorf("KeyRepeatDelay = %d, want 300", s.KeyRepeatDelay)
	}
	if s.KeyRepeatInterval != 25 {
		t.Errorf("KeyRepeatInterval = %d, want 25", s.KeyRepeatInterval)
	}
	if s.EnableKeyRepeat {
		t.Error("EnableKeyRepeat = true, want false")
	}
}

func TestSetClampsOutOfRangeValues(t *testing.T) {
	r, store, _ := newRunner(t)

	if err := r.RunString(`set("key_repeat_delay", 5)`); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if got := store.Settings().KeyRepeatDelay; got != config.MinRepeatDelay {
		t.Errorf("KeyRepeatDelay = %d, want clamped to %d", got, config.MinRepeatDelay)
	}
}

func TestSetUnknownOptionFails(t *testing.T) {
	r, _, _ := newRunner(t)

	err := r.RunString(`set("no_such_option", 1)`)
	if err == nil {
		t.Fatal("expected an error for an unknown option")
	}
}

func TestBindAddsBinding(t *testing.T) {
	r, _, km := newRunner(t)

	if err := r.RunString(`bind("C-j", "cursor.nextLine")`); err != nil {
		t.Fatalf("RunString: %v", err)
	}

	b, ok := km.Resolve(key.MustParse("C-j"))
	if !ok {
		t.Fatal("C-j not bound")
	}
	if b.Command != "cursor.nextLine" {
		t.Errorf("command = %q, want cursor.nextLine", b.Command)
	}
}

func TestBindBadChordFails(t *testing.T) {
	r, _, _ := newRunner(t)

	if err := r.RunString(`bind("Q--x-", "kill.line")`); err == nil {
		t.Fatal("expected an error for an unparseable chord")
	}
}

func TestUnbindRemovesDefault(t *testing.T) {
	r, _, km := newRunner(t)

	if err := r.RunString(`unbind("C-k")`); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if _, ok := km.Resolve(key.MustParse("C-k")); ok {
		t.Error("C-k still bound after unbind")
	}
}

func TestRunFile(t *testing.T) {
	r, store, _ := newRunner(t)

	path := filepath.Join(t.TempDir(), "init.lua")
	code := `set("key_repeat_delay", 450)`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := r.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got := store.Settings().KeyRepeatDelay; got != 450 {
		t.Errorf("KeyRepeatDelay = %d, want 450", got)
	}
}

func TestRunFileMissingIsNoop(t *testing.T) {
	r, _, _ := newRunner(t)

	path := filepath.Join(t.TempDir(), "does-not-exist.lua")
	if err := r.RunFile(path); err != nil {
		t.Errorf("RunFile on a missing file = %v, want nil", err)
	}
}

func TestSyntaxErrorReported(t *testing.T) {
	r, _, _ := newRunner(t)

	if err := r.RunString(`set("key_repeat_delay`); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestClosedRunner(t *testing.T) {
	r, _, _ := newRunner(t)
	r.Close()

	if err := r.RunString(`set("key_repeat_delay", 100)`); !errors.Is(err, ErrRunnerClosed) {
		t.Errorf("err = %v, want ErrRunnerClosed", err)
	}
}

func TestFileLoadersRemoved(t *testing.T) {
	r, _, _ := newRunner(t)

	if err := r.RunString(`if dofile ~= nil then error("dofile leaked") end`); err != nil {
		t.Errorf("dofile should be nil: %v", err)
	}
	if err := r.RunString(`if loadfile ~= nil then error("loadfile leaked") end`); err != nil {
		t.Errorf("loadfile should be nil: %v", err)
	}
}
