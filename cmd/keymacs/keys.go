package main

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keymacs/internal/input/key"
)

// translateKey converts a tcell key event to a key.Event.
//
// tcell folds Ctrl+letter into dedicated key codes, so those are
// unfolded back into a rune with the Ctrl modifier; the keymap sees the
// same chord identity ("C-f") regardless of how the terminal encoded
// it. Ctrl+_ is what a terminal sends for Ctrl+/, the stock undo chord.
func translateKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := key.ModNone
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if ev.Modifiers()&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}

	// The special-key switch runs before the Ctrl-letter range check:
	// Enter, Tab, and Backspace share codes with Ctrl-M, Ctrl-I, and
	// Ctrl-H and must win.
	switch k := ev.Key(); k {
	case tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods), true
	case tcell.KeyCtrlSpace:
		return key.NewSpecialEvent(key.KeySpace, mods.With(key.ModCtrl)), true
	case tcell.KeyCtrlUnderscore:
		return key.NewRuneEvent('/', mods.With(key.ModCtrl)), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := rune('a' + (k - tcell.KeyCtrlA))
			return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
		}
		return key.Event{}, false
	}
}

// releaseTimeout is how long after the last key-down a synthesized
// key-up is delivered. Terminal auto-repeat sends key-downs roughly
// every 30-80ms while a key is held, so a quiet half second means the
// key was released.
const releaseTimeout = 500 * time.Millisecond

// keyUpSynthesizer fakes key releases for terminals, which only report
// presses. Each key-down arms (or re-arms) a timer for its chord; when
// the timer fires without another press of the same chord, the release
// callback runs.
type keyUpSynthesizer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	release func(ev key.Event)
}

func newKeyUpSynthesizer(release func(ev key.Event)) *keyUpSynthesizer {
	return &keyUpSynthesizer{
		timers:  make(map[string]*time.Timer),
		release: release,
	}
}

// keyDown records a press and re-arms the release timer for its chord.
func (s *keyUpSynthesizer) keyDown(ev key.Event) {
	chord := ev.Chord()
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[chord]; ok {
		t.Stop()
	}
	s.timers[chord] = time.AfterFunc(releaseTimeout, func() {
		s.mu.Lock()
		delete(s.timers, chord)
		s.mu.Unlock()
		s.release(ev)
	})
}

// stop cancels all pending synthetic releases.
func (s *keyUpSynthesizer) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for chord, t := range s.timers {
		t.Stop()
		delete(s.timers, chord)
	}
}
