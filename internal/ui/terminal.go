// Package ui renders a session with termbox and turns terminal input into
// session keys.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nsf/termbox-go"

	"ofekazarya/resplit/internal/session"
)

// Terminal owns the screen between Open and Close
type Terminal struct {
	list    listView
	palette []termbox.Attribute
	records int // length of the last drawn view, for scrolling
	log     *slog.Logger
	out     io.Writer
	closed  bool
}

// Options configures the terminal
type Options struct {
	Palette []termbox.Attribute
	Logger  *slog.Logger
	// Out receives the alternate screen escapes
	Out io.Writer
}

// Open switches to the alternate screen and puts the terminal in raw mode.
// The caller must Close it on every exit path.
func Open(opts Options) (*Terminal, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette
	}
	t := &Terminal{
		palette: opts.Palette,
		log:     opts.Logger.With("component", "ui"),
		out:     opts.Out,
	}

	if t.out != nil {
		fmt.Fprint(t.out, "\033[?1049h\033[H")
	}
	if err := termbox.Init(); err != nil {
		if t.out != nil {
			fmt.Fprint(t.out, "\033[?1049l")
		}
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	termbox.SetInputMode(inputMode)
	termbox.SetOutputMode(termbox.Output256)
	t.list.resize(termbox.Size())
	return t, nil
}

// Close restores the terminal. Safe to call more than once.
func (t *Terminal) Close() {
	if t.closed {
		return
	}
	t.closed = true
	termbox.Close()
	if t.out != nil {
		fmt.Fprint(t.out, "\033[?1049l")
	}
}

// NextKey blocks until a key arrives. Scroll keys move the match list and
// come back as session.KeyNone so the caller redraws.
func (t *Terminal) NextKey(ctx context.Context) (session.Key, error) {
	stop := context.AfterFunc(ctx, termbox.Interrupt)
	defer stop()

	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			k, sc := translate(ev)
			if sc != scrollNone {
				t.scroll(sc)
			}
			return k, nil

		case termbox.EventResize:
			termbox.Sync()
			t.list.resize(ev.Width, ev.Height)
			t.log.Debug("terminal resized", "width", ev.Width, "height", ev.Height)
			return session.Key{Kind: session.KeyNone}, nil

		case termbox.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return session.Key{}, err
			}

		case termbox.EventError:
			return session.Key{}, ev.Err
		}
	}
}

func (t *Terminal) scroll(sc scroll) {
	switch sc {
	case scrollUp:
		t.list.navigateUp()
	case scrollDown:
		t.list.navigateDown(t.records)
	case scrollPageUp:
		t.list.pageUp()
	case scrollPageDown:
		t.list.pageDown(t.records)
	}
}

// inputMode reports a lone Esc immediately. Under it an Alt chord arrives as
// Esc followed by the key, so no binding relies on ModAlt.
const inputMode = termbox.InputEsc

type scroll int

const (
	scrollNone scroll = iota
	scrollUp
	scrollDown
	scrollPageUp
	scrollPageDown
)

// translate maps a termbox key event to a session key or a list scroll
func translate(ev termbox.Event) (session.Key, scroll) {
	none := session.Key{Kind: session.KeyNone}

	if ev.Ch != 0 {
		return session.Rune(ev.Ch), scrollNone
	}

	switch ev.Key {
	case termbox.KeySpace:
		return session.Rune(' '), scrollNone
	case termbox.KeyEnter:
		return session.Key{Kind: session.KeyEnter}, scrollNone
	case termbox.KeyEsc:
		return session.Key{Kind: session.KeyEsc}, scrollNone
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return session.Key{Kind: session.KeyBackspace}, scrollNone
	case termbox.KeyDelete:
		return session.Key{Kind: session.KeyDelete}, scrollNone
	case termbox.KeyArrowLeft:
		return session.Key{Kind: session.KeyLeft}, scrollNone
	case termbox.KeyArrowRight:
		return session.Key{Kind: session.KeyRight}, scrollNone
	case termbox.KeyHome, termbox.KeyCtrlA:
		return session.Key{Kind: session.KeyHome}, scrollNone
	case termbox.KeyEnd, termbox.KeyCtrlE:
		return session.Key{Kind: session.KeyEnd}, scrollNone
	case termbox.KeyCtrlB:
		return session.Key{Kind: session.KeyWordLeft}, scrollNone
	case termbox.KeyCtrlF:
		return session.Key{Kind: session.KeyWordRight}, scrollNone
	case termbox.KeyCtrlW:
		return session.Key{Kind: session.KeyDeleteWord}, scrollNone
	case termbox.KeyCtrlU:
		return session.Key{Kind: session.KeyClearLine}, scrollNone
	case termbox.KeyCtrlC:
		return session.Key{Kind: session.KeyInterrupt}, scrollNone
	case termbox.KeyArrowUp:
		return none, scrollUp
	case termbox.KeyArrowDown:
		return none, scrollDown
	case termbox.KeyPgup:
		return none, scrollPageUp
	case termbox.KeyPgdn:
		return none, scrollPageDown
	}
	return none, scrollNone
}
