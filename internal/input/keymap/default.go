package keymap

// defaultBindings is the stock Emacs binding set. Chords here must parse;
// Default panics otherwise, which a unit test catches.
var defaultBindings = []Binding{
	// Motion (the Ctrl chords and Alt word chords are also the
	// repeat-eligible set).
	{Chord: "C-f", Command: "cursor.forwardChar", Description: "Forward character"},
	{Chord: "C-b", Command: "cursor.backwardChar", Description: "Backward character"},
	{Chord: "C-n", Command: "cursor.nextLine", Description: "Next line"},
	{Chord: "C-p", Command: "cursor.previousLine", Description: "Previous line"},
	{Chord: "A-f", Command: "cursor.forwardWord", Description: "Forward word"},
	{Chord: "A-b", Command: "cursor.backwardWord", Description: "Backward word"},
	{Chord: "C-a", Command: "cursor.lineStart", Description: "Beginning of line"},
	{Chord: "C-e", Command: "cursor.lineEnd", Description: "End of line"},
	{Chord: "A-{", Command: "cursor.backwardParagraph", Description: "Backward paragraph"},
	{Chord: "A-}", Command: "cursor.forwardParagraph", Description: "Forward paragraph"},

	// Mark and selection.
	{Chord: "C-Space", Command: "mark.toggle", Description: "Set or clear mark"},
	{Chord: "C-g", Command: "mark.keyboardQuit", Description: "Keyboard quit"},

	// Kill and yank.
	{Chord: "C-k", Command: "kill.line", Description: "Kill line"},
	{Chord: "A-d", Command: "kill.word", Description: "Kill word"},
	{Chord: "A-Backspace", Command: "kill.wordBackward", Description: "Backward kill word"},
	{Chord: "C-w", Command: "kill.region", Description: "Kill region"},
	{Chord: "A-w", Command: "kill.ringSave", Description: "Copy region"},
	{Chord: "C-y", Command: "kill.yank", Description: "Yank"},

	// Case transforms.
	{Chord: "A-u", Command: "transform.upcaseDwim", Description: "Upcase word or region"},
	{Chord: "A-l", Command: "transform.downcaseDwim", Description: "Downcase word or region"},
	{Chord: "A-c", Command: "transform.capitalizeDwim", Description: "Capitalize word or region"},

	// History.
	{Chord: "C-/", Command: "editor.undo", Description: "Undo"},
	{Chord: "C-A-/", Command: "editor.redo", Description: "Redo"},
}

// Default returns a keymap populated with the stock Emacs bindings.
func Default() *Keymap {
	m := New()
	for _, b := range defaultBindings {
		if err := m.Bind(b); err != nil {
			panic(err)
		}
	}
	return m
}
