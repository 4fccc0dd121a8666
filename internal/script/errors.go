package script

import "errors"

// ErrRunnerClosed is returned when a script runs after Close.
var ErrRunnerClosed = errors.New("script: runner closed")
