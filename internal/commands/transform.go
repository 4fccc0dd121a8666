package commands

import (
	"strings"

	"github.com/dshills/keymacs/internal/host"
	"github.com/dshills/keymacs/internal/textscan"
)

// Case transforms come in three scopes. Word variants act on the word
// under or after the cursor and leave the cursor at its end. Region
// variants require an active selection, transform its full text, and
// clear the selection. Dwim variants pick region when a selection is
// active, word otherwise.
//
// The word-level capitalize transform treats the whole word as one
// token ("hello_WORLD" becomes "Hello_world"); the region-level one
// capitalizes every token independently.

// UpcaseWord uppercases the word at the cursor.
func (c *Commands) UpcaseWord(ed host.Editor) error {
	return c.transformWord(ed, strings.ToUpper)
}

// DowncaseWord lowercases the word at the cursor.
func (c *Commands) DowncaseWord(ed host.Editor) error {
	return c.transformWord(ed, strings.ToLower)
}

// CapitalizeWord capitalizes the word at the cursor as a single token.
func (c *Commands) CapitalizeWord(ed host.Editor) error {
	return c.transformWord(ed, textscan.CapitalizeToken)
}

// UpcaseRegion uppercases the active selection.
func (c *Commands) UpcaseRegion(ed host.Editor) error {
	return c.transformRegion(ed, strings.ToUpper)
}

// DowncaseRegion lowercases the active selection.
func (c *Commands) DowncaseRegion(ed host.Editor) error {
	return c.transformRegion(ed, strings.ToLower)
}

// CapitalizeRegion capitalizes every token in the active selection,
// leaving delimiters untouched.
func (c *Commands) CapitalizeRegion(ed host.Editor) error {
	return c.transformRegion(ed, textscan.CapitalizeWords)
}

// UpcaseDwim uppercases the selection when active, else the word.
func (c *Commands) UpcaseDwim(ed host.Editor) error {
	return c.transformDwim(ed, c.UpcaseRegion, c.UpcaseWord)
}

// DowncaseDwim lowercases the selection when active, else the word.
func (c *Commands) DowncaseDwim(ed host.Editor) error {
	return c.transformDwim(ed, c.DowncaseRegion, c.DowncaseWord)
}

// CapitalizeDwim capitalizes the selection when active, else the word.
func (c *Commands) CapitalizeDwim(ed host.Editor) error {
	return c.transformDwim(ed, c.CapitalizeRegion, c.CapitalizeWord)
}

func (c *Commands) transformWord(ed host.Editor, transform func(string) string) error {
	off := ed.PosToOffset(ed.Cursor())
	start, end, ok := textscan.WordAt(ed.Text(), off)
	if !ok {
		return nil
	}

	from := ed.OffsetToPos(start)
	to := ed.OffsetToPos(end)
	replaced := transform(ed.RangeText(from, to))
	ed.ReplaceRange(from, to, replaced)
	ed.SetCursor(ed.OffsetToPos(start + len([]rune(replaced))))
	return nil
}

func (c *Commands) transformRegion(ed host.Editor, transform func(string) string) error {
	sel := ed.Selection()
	if sel.IsEmpty() {
		return nil
	}

	from, to := orderRange(sel.Anchor, sel.Head)
	ed.ReplaceRange(from, to, transform(ed.RangeText(from, to)))
	c.marks.DisableSelection(ed)
	return nil
}

func (c *Commands) transformDwim(ed host.Editor, region, word func(host.Editor) error) error {
	if !ed.Selection().IsEmpty() {
		return region(ed)
	}
	return word(ed)
}
