// Package repeat implements the key-repeat scheduler: hold a bound
// motion chord and the motion runs once immediately, then again after a
// configurable initial delay, then at a configurable interval until the
// key is released, focus is lost, or the motion fails.
//
// Native OS auto-repeat is unreliable for custom cadence, so the
// scheduler owns its own timers. Each held chord moves through an
// explicit two-phase life cycle: Pending (waiting out the initial
// delay) then Repeating (ticking at the interval); key-up at any phase
// cancels the live timer and removes the entry.
package repeat

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/dshills/keymacs/internal/config"
	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/input/key"
)

// Motion is a repeatable cursor motion. It must be fast, synchronous,
// and restrict its side effects to the editor API: nothing can interrupt
// it mid-execution.
type Motion func(ed host.Editor) error

type phase int

const (
	phasePending phase = iota
	phaseRepeating
)

// entry is the repeat state for one held chord. At most one entry per
// chord identity exists at any time; its presence means the key is held
// and eligible to repeat.
type entry struct {
	chord  string
	motion Motion
	phase  phase
	timer  Timer
}

// Scheduler owns the per-chord repeat entries.
type Scheduler struct {
	clock    Clock
	ctx      host.Context
	settings func() config.Settings

	mu      sync.Mutex
	motions map[string]Motion
	entries map[string]*entry
}

// NewScheduler creates a scheduler. settings is called on every key-down
// and tick so configuration changes (including live reloads) take effect
// without restarting; ctx is consulted the same way for focus.
func NewScheduler(clock Clock, ctx host.Context, settings func() config.Settings) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{
		clock:    clock,
		ctx:      ctx,
		settings: settings,
		motions:  make(map[string]Motion),
		entries:  make(map[string]*entry),
	}
}

// Bind registers a repeatable motion for a chord spec.
func (s *Scheduler) Bind(chord string, m Motion) error {
	ev, err := key.Parse(chord)
	if err != nil {
		return fmt.Errorf("repeat: %w", err)
	}
	if m == nil {
		return errors.New("repeat: nil motion")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motions[ev.Chord()] = m
	return nil
}

// Count returns the number of live repeat entries.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// OnKeyDown handles a key press. It returns true when the event mapped
// to a repeatable motion and default handling should be suppressed;
// unmapped chords, disabled repeat, and an unfocused editor all return
// false so normal key handling proceeds.
func (s *Scheduler) OnKeyDown(ev key.Event) bool {
	cfg := s.settings()
	if !cfg.EnableKeyRepeat {
		return false
	}

	chord := ev.Chord()
	s.mu.Lock()
	motion, bound := s.motions[chord]
	_, held := s.entries[chord]
	s.mu.Unlock()
	if !bound {
		return false
	}

	ed, active := s.ctx.ActiveEditor()
	if !active {
		return false
	}

	// OS auto-repeat delivers key-down again while the key is held;
	// suppress it so duplicate timers never stack.
	if held {
		return true
	}

	if err := runMotion(motion, ed); err != nil {
		log.Printf("repeat: motion for %s failed: %v", chord, err)
		return true
	}

	// The entry goes into the map before the delay timer is armed so a
	// fast key-up racing the timer creation still cancels cleanly.
	e := &entry{chord: chord, motion: motion, phase: phasePending}
	s.mu.Lock()
	s.entries[chord] = e
	e.timer = s.clock.AfterFunc(cfg.Delay(), func() { s.startRepeating(e) })
	s.mu.Unlock()
	return true
}

// OnKeyUp handles a key release: the chord's timers are cancelled and
// its entry removed. A release with no entry is a no-op.
func (s *Scheduler) OnKeyUp(ev key.Event) {
	s.cancel(ev.Chord())
}

// OnFocusLost cancels every repeat entry. Orphaned timers must never
// fire into an unfocused editor.
func (s *Scheduler) OnFocusLost() {
	s.cancelAll()
}

// OnActiveEditorChanged cancels every repeat entry; held keys belong to
// the previous editor context.
func (s *Scheduler) OnActiveEditorChanged() {
	s.cancelAll()
}

// Unload cancels every repeat entry. No timer outlives the scheduler.
func (s *Scheduler) Unload() {
	s.cancelAll()
}

// startRepeating moves an entry from Pending to Repeating when the
// initial delay elapses.
func (s *Scheduler) startRepeating(e *entry) {
	s.mu.Lock()
	if s.entries[e.chord] != e {
		// Cancelled while the delay timer was in flight.
		s.mu.Unlock()
		return
	}
	e.phase = phaseRepeating
	e.timer = s.clock.AfterFunc(s.settings().Interval(), func() { s.tick(e) })
	s.mu.Unlock()
}

// tick runs one repeat of the motion and re-arms the interval timer.
func (s *Scheduler) tick(e *entry) {
	s.mu.Lock()
	live := s.entries[e.chord] == e
	s.mu.Unlock()
	if !live {
		return
	}

	ed, active := s.ctx.ActiveEditor()
	if !active {
		s.cancel(e.chord)
		return
	}

	if err := runMotion(e.motion, ed); err != nil {
		log.Printf("repeat: motion for %s failed, stopping repeat: %v", e.chord, err)
		s.cancel(e.chord)
		return
	}

	s.mu.Lock()
	if s.entries[e.chord] == e {
		e.timer = s.clock.AfterFunc(s.settings().Interval(), func() { s.tick(e) })
	}
	s.mu.Unlock()
}

func (s *Scheduler) cancel(chord string) {
	s.mu.Lock()
	e, ok := s.entries[chord]
	if ok {
		delete(s.entries, chord)
	}
	s.mu.Unlock()

	if ok && e.timer != nil {
		e.timer.Stop()
	}
}

func (s *Scheduler) cancelAll() {
	s.mu.Lock()
	cancelled := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		cancelled = append(cancelled, e)
	}
	s.entries = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range cancelled {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}

// runMotion invokes a motion, converting panics into errors so a broken
// motion stops its repeat cycle instead of crashing the host.
func runMotion(m Motion, ed host.Editor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("repeat: motion panic: %v", r)
		}
	}()
	return m(ed)
}
