// Package script runs the user's init.lua at startup. The script can
// tune settings and rebind chords:
//
//	set("key_repeat_delay", 300)
//	set("enable_key_repeat", true)
//	bind("C-j", "cursor.nextLine")
//	unbind("C-/")
//
// The state is sandboxed: only the base, table, string, and math
// libraries are opened, and the file loaders are removed. Script errors
// are returned to the caller, which logs them and keeps going; a broken
// init.lua must never take the keybinding layer down with it.
package script

import (
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keymacs/internal/config"
	"github.com/dshills/keymacs/internal/input/keymap"
)

// Runner owns a sandboxed Lua state wired to the settings store and
// keymap.
//
// gopher-lua's LState is not goroutine-safe, so all execution goes
// through the mutex.
type Runner struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool

	store  *config.Store
	keymap *keymap.Keymap
}

// New creates a runner exposing set, bind, and unbind to Lua.
func New(store *config.Store, km *keymap.Keymap) *Runner {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io and os stay closed; the loaders could reopen the filesystem.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	r := &Runner{state: L, store: store, keymap: km}
	L.SetGlobal("set", L.NewFunction(r.luaSet))
	L.SetGlobal("bind", L.NewFunction(r.luaBind))
	L.SetGlobal("unbind", L.NewFunction(r.luaUnbind))
	return r
}

// RunFile executes the script at path. A missing file is not an error:
// most users have no init.lua.
func (r *Runner) RunFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunnerClosed
	}
	return r.doWithRecovery(func() error {
		return r.state.DoFile(path)
	})
}

// RunString executes code directly. Used by tests and the demo host's
// eval command.
func (r *Runner) RunString(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunnerClosed
	}
	return r.doWithRecovery(func() error {
		return r.state.DoString(code)
	})
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.state.Close()
	r.closed = true
}

func (r *Runner) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// luaSet implements set(option, value). Values are validated before the
// store update so a bad script argument raises a Lua error instead of
// corrupting settings.
func (r *Runner) luaSet(L *lua.LState) int {
	option := L.CheckString(1)

	var apply func(s *config.Settings)
	switch option {
	case "enable_key_repeat":
		v := L.CheckBool(2)
		apply = func(s *config.Settings) { s.EnableKeyRepeat = v }
	case "key_repeat_delay":
		v := L.CheckInt(2)
		apply = func(s *config.Settings) { s.KeyRepeatDelay = v }
	case "key_repeat_interval":
		v := L.CheckInt(2)
		apply = func(s *config.Settings) { s.KeyRepeatInterval = v }
	default:
		L.RaiseError("unknown option %q", option)
		return 0
	}

	r.store.Update(apply)
	return 0
}

// luaBind implements bind(chord, command).
func (r *Runner) luaBind(L *lua.LState) int {
	chord := L.CheckString(1)
	command := L.CheckString(2)

	err := r.keymap.Bind(keymap.Binding{Chord: chord, Command: command})
	if err != nil {
		L.RaiseError("bind %q: %s", chord, err.Error())
	}
	return 0
}

// luaUnbind implements unbind(chord).
func (r *Runner) luaUnbind(L *lua.LState) int {
	r.keymap.Unbind(L.CheckString(1))
	return 0
}
