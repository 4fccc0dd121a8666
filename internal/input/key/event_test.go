package key

import "testing"

func TestChordCanonicalization(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('f', ModNone), "f"},
		{NewRuneEvent('f', ModCtrl), "C-f"},
		{NewRuneEvent('b', ModAlt), "A-b"},
		{NewRuneEvent('F', ModShift), "F"},
		{NewRuneEvent(' ', ModCtrl), "C-Space"},
		{NewSpecialEvent(KeyLeft, ModNone), "Left"},
		{NewSpecialEvent(KeyLeft, ModCtrl), "C-Left"},
		{NewSpecialEvent(KeyBackspace, ModNone), "Backspace"},
		{NewSpecialEvent(KeyUp, ModShift), "S-Up"},
		{NewRuneEvent('x', ModCtrl | ModAlt | ModMeta), "C-A-M-x"},
	}

	for _, tt := range tests {
		if got := tt.event.Chord(); got != tt.want {
			t.Errorf("Chord() = %q, want %q", got, tt.want)
		}
	}
}

func TestChordIsStableAcrossModifierOrder(t *testing.T) {
	a := NewRuneEvent('x', ModAlt.With(ModCtrl))
	b := NewRuneEvent('x', ModCtrl.With(ModAlt))
	if a.Chord() != b.Chord() {
		t.Errorf("same chord canonicalized differently: %q vs %q", a.Chord(), b.Chord())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"f", NewRuneEvent('f', ModNone)},
		{"C-f", NewRuneEvent('f', ModCtrl)},
		{"A-b", NewRuneEvent('b', ModAlt)},
		{"Ctrl+Left", NewSpecialEvent(KeyLeft, ModCtrl)},
		{"Backspace", NewSpecialEvent(KeyBackspace, ModNone)},
		{"C-A-Space", NewSpecialEvent(KeySpace, ModCtrl | ModAlt)},
		{"C--", NewRuneEvent('-', ModCtrl)},
		{"del", NewSpecialEvent(KeyDelete, ModNone)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.spec, err)
			continue
		}
		if !got.Equals(tt.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	specs := []string{"C-f", "A-b", "C-Left", "Backspace", "Space", "f"}
	for _, spec := range specs {
		e, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q): %v", spec, err)
		}
		reparsed, err := Parse(e.Chord())
		if err != nil {
			t.Fatalf("Parse(Chord(%q)): %v", spec, err)
		}
		if !e.Equals(reparsed) {
			t.Errorf("chord %q did not round-trip: %#v vs %#v", spec, e, reparsed)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "Q-f", "C-nosuchkey", "fg"} {
		if _, err := Parse(spec); err == nil {
			t.Errorf("Parse(%q) should fail", spec)
		}
	}
}

func TestIsPlainInsert(t *testing.T) {
	tests := []struct {
		event Event
		want  bool
	}{
		{NewRuneEvent('a', ModNone), true},
		{NewRuneEvent('A', ModShift), true},
		{NewRuneEvent('.', ModNone), true},
		{NewRuneEvent('a', ModCtrl), false},
		{NewRuneEvent('a', ModAlt), false},
		{NewSpecialEvent(KeyLeft, ModNone), false},
		{NewSpecialEvent(KeyBackspace, ModNone), false},
	}

	for _, tt := range tests {
		if got := tt.event.IsPlainInsert(); got != tt.want {
			t.Errorf("%s IsPlainInsert() = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestIsDeletion(t *testing.T) {
	if !NewSpecialEvent(KeyBackspace, ModNone).IsDeletion() {
		t.Error("Backspace should be a deletion key")
	}
	if !NewSpecialEvent(KeyDelete, ModNone).IsDeletion() {
		t.Error("Delete should be a deletion key")
	}
	if NewRuneEvent('d', ModNone).IsDeletion() {
		t.Error("plain rune should not be a deletion key")
	}
}
