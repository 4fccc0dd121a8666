package clipboard

import (
	"context"
	"strings"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	c := NewMemory()
	if err := c.WriteText("killed"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got, err := c.ReadText(context.Background())
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "killed" {
		t.Errorf("ReadText = %q, want %q", got, "killed")
	}
}

func TestMemoryCanceledContext(t *testing.T) {
	c := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ReadText(ctx); err == nil {
		t.Error("ReadText with canceled context should fail")
	}
}

func TestOSC52WritesEscapeSequence(t *testing.T) {
	var out strings.Builder
	c := NewOSC52(&out)
	if err := c.WriteText("hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	if !strings.Contains(out.String(), "\x1b]52;") {
		t.Errorf("output %q does not contain an OSC 52 sequence", out.String())
	}

	got, err := c.ReadText(context.Background())
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "hello" {
		t.Errorf("mirror read = %q, want %q", got, "hello")
	}
}
