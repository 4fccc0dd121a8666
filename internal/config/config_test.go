package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	s := Default()
	if !s.EnableKeyRepeat {
		t.Error("key repeat should default to enabled")
	}
	if s.KeyRepeatDelay != 500 {
		t.Errorf("default delay = %d, want 500", s.KeyRepeatDelay)
	}
	if s.KeyRepeatInterval != 50 {
		t.Errorf("default interval = %d, want 50", s.KeyRepeatInterval)
	}
}

func TestClamped(t *testing.T) {
	tests := []struct {
		name         string
		in           Settings
		wantDelay    int
		wantInterval int
	}{
		{"below minimum", Settings{KeyRepeatDelay: 1, KeyRepeatInterval: 1}, 25, 10},
		{"above maximum", Settings{KeyRepeatDelay: 99999, KeyRepeatInterval: 99999}, 2000, 1000},
		{"in range", Settings{KeyRepeatDelay: 300, KeyRepeatInterval: 40}, 300, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamped()
			if got.KeyRepeatDelay != tt.wantDelay {
				t.Errorf("delay = %d, want %d", got.KeyRepeatDelay, tt.wantDelay)
			}
			if got.KeyRepeatInterval != tt.wantInterval {
				t.Errorf("interval = %d, want %d", got.KeyRepeatInterval, tt.wantInterval)
			}
		})
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "nope.toml"))
	if err := st.Load(); err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if st.Settings() != Default() {
		t.Errorf("settings = %+v, want defaults", st.Settings())
	}
}

func TestLoadMergesDefaultsAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymacs.toml")
	// Only delay present, and out of range; the rest must stay default.
	if err := os.WriteFile(path, []byte("key_repeat_delay = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	st := NewStore(path)
	if err := st.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := st.Settings()
	if s.KeyRepeatDelay != MinRepeatDelay {
		t.Errorf("delay = %d, want clamped %d", s.KeyRepeatDelay, MinRepeatDelay)
	}
	if s.KeyRepeatInterval != DefaultRepeatInterval {
		t.Errorf("interval = %d, want default %d", s.KeyRepeatInterval, DefaultRepeatInterval)
	}
	if !s.EnableKeyRepeat {
		t.Error("enable flag should keep its default")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymacs.toml")

	st := NewStore(path)
	st.Update(func(s *Settings) {
		s.KeyRepeatDelay = 300
		s.KeyRepeatInterval = 75
		s.EnableKeyRepeat = false
	})
	if err := st.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.Settings(); got != st.Settings() {
		t.Errorf("round trip = %+v, want %+v", got, st.Settings())
	}
}

func TestUpdateNotifiesObservers(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "keymacs.toml"))

	var seen []Settings
	sub := st.Subscribe(func(s Settings) { seen = append(seen, s) })

	st.Update(func(s *Settings) { s.KeyRepeatDelay = 250 })
	if len(seen) != 1 || seen[0].KeyRepeatDelay != 250 {
		t.Fatalf("observer saw %+v, want one change with delay 250", seen)
	}

	// No-op updates do not notify.
	st.Update(func(s *Settings) { s.KeyRepeatDelay = 250 })
	if len(seen) != 1 {
		t.Errorf("observer ran %d times after no-op update, want 1", len(seen))
	}

	sub.Unsubscribe()
	st.Update(func(s *Settings) { s.KeyRepeatDelay = 100 })
	if len(seen) != 1 {
		t.Errorf("observer ran after unsubscribe")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymacs.toml")
	if err := os.WriteFile(path, []byte("key_repeat_delay = 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	st := NewStore(path)
	if err := st.Load(); err != nil {
		t.Fatal(err)
	}

	changed := make(chan Settings, 1)
	st.Subscribe(func(s Settings) {
		select {
		case changed <- s:
		default:
		}
	})

	w, err := Watch(st)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("key_repeat_delay = 750\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-changed:
		if s.KeyRepeatDelay != 750 {
			t.Errorf("reloaded delay = %d, want 750", s.KeyRepeatDelay)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher reload")
	}
}
