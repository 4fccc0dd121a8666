// Package main is a terminal demo host for the keymacs keybinding
// layer: a minimal line-buffer editor that routes every keystroke
// through a session, with kills mirrored to the system clipboard over
// OSC 52.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/keymacs/internal/clipboard"
	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/input/key"
	"github.com/dshills/keymacs/internal/session"
)

const welcomeText = `keymacs demo host

Emacs bindings are live: C-f/C-b/C-n/C-p move (hold to repeat),
C-Space sets the mark, C-k kills, C-y yanks, A-u upcases.
C-q quits.`

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	text := welcomeText
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keymacs: %v\n", err)
			return 1
		}
		text = string(data)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keymacs: creating screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "keymacs: initializing screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableFocus()

	_, height := screen.Size()
	ed := newTextEditor(text, height-1)
	h := &demoHost{editor: ed, focused: true}

	sess := session.New(h, session.Options{
		ConfigPath:     opts.configPath,
		KeymapPath:     opts.keymapPath,
		InitScriptPath: opts.initPath,
		Clipboard:      clipboard.NewOSC52(os.Stderr),
		WatchConfig:    true,
	})
	defer sess.Close()

	// Terminals report presses only; releases are synthesized after a
	// quiet period and redrawn so a finished repeat leaves a fresh frame.
	keyUps := newKeyUpSynthesizer(func(ev key.Event) {
		sess.HandleKeyUp(ev)
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer keyUps.stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
	}()

	status := "ready"
	for {
		draw(screen, ed, status)

		switch tev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			ev, ok := translateKey(tev)
			if !ok {
				continue
			}
			if ev.Chord() == "C-q" {
				return 0
			}
			keyUps.keyDown(ev)
			status = ev.Chord()
			if sess.HandleKeyDown(ev) {
				continue
			}
			applyDefaultKey(ed, ev)

		case *tcell.EventResize:
			_, height := screen.Size()
			ed.height = height - 1
			screen.Sync()

		case *tcell.EventFocus:
			h.focused = tev.Focused
			if !tev.Focused {
				sess.FocusLost()
			}

		case *tcell.EventInterrupt:
			if _, quit := tev.Data().(quitRequest); quit {
				return 0
			}
		}
	}
}

type quitRequest struct{}

// demoHost is the host.Context for the single-editor demo.
type demoHost struct {
	editor  *textEditor
	focused bool
}

func (h *demoHost) ActiveEditor() (host.Editor, bool) {
	if !h.focused {
		return nil, false
	}
	return h.editor, true
}

// applyDefaultKey is the host-side handling for keys the session did
// not consume: typing, line breaks, and deletion.
func applyDefaultKey(ed *textEditor, ev key.Event) {
	switch {
	case ev.IsPlainInsert():
		ed.insertAtCursor(string(ev.Rune))
	case ev.Key == key.KeyEnter:
		ed.insertAtCursor("\n")
	case ev.Key == key.KeyBackspace:
		ed.deleteBackward()
	case ev.Key == key.KeyDelete:
		ed.deleteForward()
	case ev.Key == key.KeyLeft:
		ed.MoveCharLeft()
	case ev.Key == key.KeyRight:
		ed.MoveCharRight()
	case ev.Key == key.KeyUp:
		ed.MoveLineUp()
	case ev.Key == key.KeyDown:
		ed.MoveLineDown()
	}
}

// draw renders the buffer, selection, cursor, and status line.
func draw(screen tcell.Screen, ed *textEditor, status string) {
	screen.Clear()
	width, height := screen.Size()

	selStart, selEnd := 0, 0
	sel := ed.Selection()
	if !sel.IsEmpty() {
		selStart = ed.PosToOffset(sel.Anchor)
		selEnd = ed.PosToOffset(sel.Head)
		if selEnd < selStart {
			selStart, selEnd = selEnd, selStart
		}
	}

	plain := tcell.StyleDefault
	selected := tcell.StyleDefault.Reverse(true)

	for row := 0; row < height-1; row++ {
		lineIdx := ed.top + row
		if lineIdx >= ed.LineCount() {
			break
		}
		x := 0
		for i, r := range []rune(ed.Line(lineIdx)) {
			if x >= width {
				break
			}
			style := plain
			off := ed.PosToOffset(host.Position{Line: lineIdx, Ch: i})
			if !sel.IsEmpty() && off >= selStart && off < selEnd {
				style = selected
			}
			screen.SetContent(x, row, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}

	bar := tcell.StyleDefault.Reverse(true)
	line := fmt.Sprintf(" %s  (C-q to quit) ", status)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len([]rune(line)) {
			r = []rune(line)[x]
		}
		screen.SetContent(x, height-1, r, nil, bar)
	}

	cur := ed.Cursor()
	col := 0
	for i, r := range []rune(ed.Line(cur.Line)) {
		if i >= cur.Ch {
			break
		}
		col += runewidth.RuneWidth(r)
	}
	screen.ShowCursor(col, cur.Line-ed.top)
	screen.Show()
}

type options struct {
	configPath string
	keymapPath string
	initPath   string
	file       string
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to the settings TOML file")
	flag.StringVar(&opts.keymapPath, "keymap", "", "Path to the keybinding override YAML file")
	flag.StringVar(&opts.initPath, "init", "", "Path to init.lua")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keymacs - Emacs keybinding layer demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keymacs [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		opts.file = flag.Arg(0)
	}

	// Unset paths fall back to the user config directory.
	if dir, err := os.UserConfigDir(); err == nil {
		base := filepath.Join(dir, "keymacs")
		if opts.configPath == "" {
			opts.configPath = filepath.Join(base, "keymacs.toml")
		}
		if opts.keymapPath == "" {
			opts.keymapPath = filepath.Join(base, "keymap.yaml")
		}
		if opts.initPath == "" {
			opts.initPath = filepath.Join(base, "init.lua")
		}
	}

	return opts
}
