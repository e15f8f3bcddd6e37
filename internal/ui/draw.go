package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"ofekazarya/resplit/internal/filter"
	"ofekazarya/resplit/internal/input"
	"ofekazarya/resplit/internal/segment"
	"ofekazarya/resplit/internal/session"
)

// help line, pattern line, separator
const headerRows = 3

const promptText = "pattern> "

// Render draws the whole session
func (t *Terminal) Render(s *session.Session) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	t.list.resize(termbox.Size())

	view := s.View()
	t.records = len(view)
	t.list.clamp(len(view))

	t.drawHelp(s)
	t.drawPrompt(s.Editor())
	drawFill(0, 2, t.list.width, '─', termbox.ColorDefault, termbox.ColorDefault)
	t.drawRecords(view)
	t.drawStatusBar(s)

	return termbox.Flush()
}

func (t *Terminal) drawHelp(s *session.Session) {
	opts := s.Options()
	var msg string
	if s.Editor().Mode() == input.Editing {
		msg = "Esc: stop editing  Enter: commit  Ctrl+B/F: word  Ctrl+C: abort  ↑↓ PgUp PgDn: scroll"
	} else {
		msg = fmt.Sprintf("%c: start editing  %c: quit", opts.EditRune, opts.QuitRune)
	}
	drawText(0, 0, t.list.width, 0, msg, termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault)
}

// drawPrompt draws the pattern text, scrolled so the cursor stays visible
func (t *Terminal) drawPrompt(e *input.Editor) {
	const y = 1
	promptWidth := runewidth.StringWidth(promptText)
	drawText(0, y, t.list.width, 0, promptText, termbox.ColorDefault, termbox.ColorDefault)

	fg := termbox.ColorDefault
	if e.Mode() == input.Editing {
		fg = termbox.ColorYellow
	}

	avail := t.list.width - promptWidth
	if avail <= 0 {
		termbox.HideCursor()
		return
	}
	cursorCol := textWidth(e.BeforeCursor())
	skip := 0
	if cursorCol >= avail {
		skip = cursorCol - avail + 1
	}
	drawText(promptWidth, y, avail, skip, e.Text(), fg, termbox.ColorDefault)

	if e.Mode() == input.Editing {
		termbox.SetCursor(promptWidth+cursorCol-skip, y)
	} else {
		termbox.HideCursor()
	}
}

func (t *Terminal) drawRecords(view []filter.MatchRecord) {
	for row := 0; row < t.list.height; row++ {
		idx := t.list.topLine + row
		if idx >= len(view) {
			break
		}
		t.drawRecord(headerRows+row, view[idx])
	}
}

// drawRecord draws one line with its captured segments colored by cycling
// the palette
func (t *Terminal) drawRecord(y int, r filter.MatchRecord) {
	gutter := fmt.Sprintf("%5d ", r.Index+1)
	x := drawText(0, y, t.list.width, 0, gutter, termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault)

	next := 0
	for _, seg := range r.Segments {
		if x >= t.list.width {
			return
		}
		fg := termbox.ColorDefault
		if seg.Kind == segment.Captured {
			fg = t.palette[next%len(t.palette)]
			next++
		}
		x += drawText(x, y, t.list.width-x, 0, seg.Text, fg, termbox.ColorDefault)
	}
}

func (t *Terminal) drawStatusBar(s *session.Session) {
	statusY := t.list.height + headerRows

	status := fmt.Sprintf(" %s | %d/%d lines | %s", s.Editor().Mode(), len(s.View()), s.CorpusSize(), s.Pattern().Engine())
	if t.records > 0 {
		status += fmt.Sprintf(" | top %d", t.list.topLine+1)
	}
	if !s.Valid() {
		status += " | invalid"
	}
	if n := s.Timeouts(); n > 0 {
		status += fmt.Sprintf(" | %d timed out", n)
	}
	if n := s.Notice(); n != "" {
		status += " | " + n
	}
	status += " "

	// Clear the status line first
	drawFill(0, statusY, t.list.width, ' ', termbox.ColorBlack, termbox.ColorWhite)
	drawText(0, statusY, t.list.width, 0, status, termbox.ColorBlack, termbox.ColorWhite)
}

// drawText writes s at (x, y) within maxWidth columns after skipping the
// first skip columns, and returns the number of columns written
func drawText(x, y, maxWidth, skip int, s string, fg, bg termbox.Attribute) int {
	col := 0
	written := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if r == '\t' {
			r, w = ' ', 1
		}
		if w == 0 {
			continue
		}
		if col < skip {
			col += w
			continue
		}
		if written+w > maxWidth {
			break
		}
		termbox.SetCell(x+written, y, r, fg, bg)
		written += w
		col += w
	}
	return written
}

// textWidth is the number of columns drawText uses for s
func textWidth(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n++
			continue
		}
		n += runewidth.RuneWidth(r)
	}
	return n
}

func drawFill(x, y, width int, r rune, fg, bg termbox.Attribute) {
	for i := 0; i < width; i++ {
		termbox.SetCell(x+i, y, r, fg, bg)
	}
}
