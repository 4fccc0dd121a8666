// Package clipboard provides host.Clipboard implementations: an
// in-memory clipboard for tests and headless use, and an OSC 52 terminal
// clipboard for the tcell demo host.
package clipboard

import (
	"context"
	"io"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/dshills/keymacs/internal/host"
)

// Memory is an in-memory clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

var _ host.Clipboard = (*Memory)(nil)

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadText implements host.Clipboard.
func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteText implements host.Clipboard.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// OSC52 mirrors clipboard writes to a terminal using the OSC 52 escape
// sequence, so kills land in the system clipboard even over SSH.
// Terminals cannot report clipboard contents back, so reads come from
// the local mirror.
type OSC52 struct {
	mirror Memory
	mu     sync.Mutex
	out    io.Writer
}

var _ host.Clipboard = (*OSC52)(nil)

// NewOSC52 creates a terminal clipboard writing escape sequences to out,
// normally the terminal's tty.
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out}
}

// ReadText implements host.Clipboard. Returns the last written text.
func (c *OSC52) ReadText(ctx context.Context) (string, error) {
	return c.mirror.ReadText(ctx)
}

// WriteText implements host.Clipboard.
func (c *OSC52) WriteText(text string) error {
	if err := c.mirror.WriteText(text); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := osc52.New(text).WriteTo(c.out)
	return err
}
