// Package input holds the editable pattern text and its cursor.
package input

import "unicode"

// Mode is the editor state
type Mode int

const (
	// Normal is read-only; only session commands apply
	Normal Mode = iota
	// Editing accepts text mutation
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "EDIT"
	}
	return "NORMAL"
}

// Editor is a single-line text buffer with a cursor measured in runes.
// The cursor always satisfies 0 <= cursor <= len(text).
type Editor struct {
	text   []rune
	cursor int
	mode   Mode
}

// New returns an empty editor in the given mode
func New(mode Mode) *Editor {
	return &Editor{mode: mode}
}

// NewWithText returns an editor holding text with the cursor at cursor,
// clamped to the text bounds
func NewWithText(text string, cursor int) *Editor {
	e := &Editor{text: []rune(text)}
	e.cursor = e.clamp(cursor)
	return e
}

// Text returns the buffer contents
func (e *Editor) Text() string {
	return string(e.text)
}

// Cursor returns the cursor position in runes
func (e *Editor) Cursor() int {
	return e.cursor
}

// Len returns the text length in runes
func (e *Editor) Len() int {
	return len(e.text)
}

// BeforeCursor returns the text left of the cursor
func (e *Editor) BeforeCursor() string {
	return string(e.text[:e.cursor])
}

// Mode returns the current mode
func (e *Editor) Mode() Mode {
	return e.mode
}

// StartEditing switches to Editing
func (e *Editor) StartEditing() {
	e.mode = Editing
}

// Cancel switches back to Normal
func (e *Editor) Cancel() {
	e.mode = Normal
}

// MoveLeft moves the cursor one rune left
func (e *Editor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// MoveRight moves the cursor one rune right
func (e *Editor) MoveRight() {
	if e.cursor < len(e.text) {
		e.cursor++
	}
}

// Home moves the cursor to the start of the text
func (e *Editor) Home() {
	e.cursor = 0
}

// End moves the cursor past the last rune
func (e *Editor) End() {
	e.cursor = len(e.text)
}

// Insert inserts r at the cursor and advances past it
func (e *Editor) Insert(r rune) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
}

// DeleteBackward removes the rune before the cursor. Returns false at the
// start of the text.
func (e *Editor) DeleteBackward() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
	return true
}

// DeleteForward removes the rune under the cursor. Returns false at the end
// of the text.
func (e *Editor) DeleteForward() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
	return true
}

// DeleteWordBackward removes whitespace and then the word before the cursor
func (e *Editor) DeleteWordBackward() bool {
	start := e.cursor
	for start > 0 && unicode.IsSpace(e.text[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(e.text[start-1]) {
		start--
	}
	if start == e.cursor {
		return false
	}
	e.text = append(e.text[:start], e.text[e.cursor:]...)
	e.cursor = start
	return true
}

// Clear empties the buffer
func (e *Editor) Clear() bool {
	if len(e.text) == 0 {
		return false
	}
	e.text = e.text[:0]
	e.cursor = 0
	return true
}

// NextBoundary moves to the next whitespace after the cursor, skipping the
// rune under it, or to the end of the text when there is none
func (e *Editor) NextBoundary() {
	for i := e.cursor + 1; i < len(e.text); i++ {
		if unicode.IsSpace(e.text[i]) {
			e.cursor = i
			return
		}
	}
	e.cursor = len(e.text)
}

// PrevBoundary moves to the nearest whitespace strictly before the cursor,
// or to the start of the text when there is none
func (e *Editor) PrevBoundary() {
	for i := e.cursor - 1; i >= 0; i-- {
		if unicode.IsSpace(e.text[i]) {
			e.cursor = i
			return
		}
	}
	e.cursor = 0
}

func (e *Editor) clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > len(e.text) {
		return len(e.text)
	}
	return n
}
