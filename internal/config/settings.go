package config

import "time"

// Clamping bounds for the key-repeat timing options. Values outside the
// range are pulled to the nearest bound on load and on every update.
const (
	MinRepeatDelay     = 25
	MaxRepeatDelay     = 2000
	DefaultRepeatDelay = 500

	MinRepeatInterval     = 10
	MaxRepeatInterval     = 1000
	DefaultRepeatInterval = 50
)

// Settings is the flat configuration object persisted for the plugin.
// Times are in integer milliseconds to match the persisted form.
type Settings struct {
	// EnableKeyRepeat is the master switch for the repeat scheduler.
	EnableKeyRepeat bool `toml:"enable_key_repeat"`

	// KeyRepeatDelay is the initial delay before the first repeat, ms.
	KeyRepeatDelay int `toml:"key_repeat_delay"`

	// KeyRepeatInterval is the steady-state repeat period, ms.
	KeyRepeatInterval int `toml:"key_repeat_interval"`
}

// Default returns the settings used when no file exists. Missing fields
// in a loaded file keep these values.
func Default() Settings {
	return Settings{
		EnableKeyRepeat:   true,
		KeyRepeatDelay:    DefaultRepeatDelay,
		KeyRepeatInterval: DefaultRepeatInterval,
	}
}

// Clamped returns a copy with the timing options pulled into their
// valid ranges.
func (s Settings) Clamped() Settings {
	s.KeyRepeatDelay = clamp(s.KeyRepeatDelay, MinRepeatDelay, MaxRepeatDelay)
	s.KeyRepeatInterval = clamp(s.KeyRepeatInterval, MinRepeatInterval, MaxRepeatInterval)
	return s
}

// Delay returns the initial repeat delay as a duration.
func (s Settings) Delay() time.Duration {
	return time.Duration(s.KeyRepeatDelay) * time.Millisecond
}

// Interval returns the steady-state repeat period as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.KeyRepeatInterval) * time.Millisecond
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
