// Package session drives pattern editing: it routes key events to the
// editor, recompiles the pattern after every edit and keeps the filtered,
// segmented view of the corpus current.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"ofekazarya/resplit/internal/filter"
	"ofekazarya/resplit/internal/input"
	"ofekazarya/resplit/internal/pattern"
)

// ErrAborted signals that the user quit without committing
var ErrAborted = errors.New("session aborted")

// Status is the lifecycle state of a session
type Status int

const (
	Running Status = iota
	Committed
	Aborted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Committed:
		return "committed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result is the committed pattern and the view it produced
type Result struct {
	Pattern pattern.Pattern
	Records []filter.MatchRecord
}

// Options configures a session
type Options struct {
	Engine       pattern.Engine
	MatchTimeout time.Duration
	StartEditing bool
	QuitRune     rune // defaults to 'q'
	EditRune     rune // defaults to 'e'
	Logger       *slog.Logger
}

// Session owns the editor, the sticky pattern and the current view
type Session struct {
	corpus []string
	opts   Options
	log    *slog.Logger

	editor   *input.Editor
	pattern  pattern.Pattern // last pattern that compiled
	view     []filter.MatchRecord
	valid    bool // editor text compiles
	timeouts int  // matches of the sticky pattern that timed out
	notice   string

	status Status
	result *Result
}

// New creates a session over corpus, starting with the empty pattern
func New(corpus []string, opts Options) *Session {
	if opts.QuitRune == 0 {
		opts.QuitRune = 'q'
	}
	if opts.EditRune == 0 {
		opts.EditRune = 'e'
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Session{
		corpus:  corpus,
		opts:    opts,
		log:     opts.Logger.With("component", "session"),
		editor:  input.New(input.Normal),
		pattern: pattern.Empty(opts.Engine),
		valid:   true,
	}
	s.view = filter.Evaluate(s.corpus, s.pattern)
	if opts.StartEditing {
		s.startEditing()
	}
	return s
}

// Editor returns the pattern editor
func (s *Session) Editor() *input.Editor { return s.editor }

// Pattern returns the sticky pattern
func (s *Session) Pattern() pattern.Pattern { return s.pattern }

// View returns the records computed for the sticky pattern
func (s *Session) View() []filter.MatchRecord { return s.view }

// CorpusSize returns the number of corpus lines
func (s *Session) CorpusSize() int { return len(s.corpus) }

// Valid reports whether the current editor text compiles
func (s *Session) Valid() bool { return s.valid }

// QuitEnabled reports whether the quit shortcut is active. Typed text may
// hold the quit rune, so it only works outside Editing.
func (s *Session) QuitEnabled() bool { return s.editor.Mode() == input.Normal }

// Timeouts returns how many corpus lines the sticky pattern gave up on
// because a match ran past the match timeout. Those lines are missing from
// the view.
func (s *Session) Timeouts() int { return s.timeouts }

// Notice returns a one-shot message for the status line
func (s *Session) Notice() string { return s.notice }

// Status returns the lifecycle state
func (s *Session) Status() Status { return s.status }

// Options returns the options the session runs with
func (s *Session) Options() Options { return s.opts }

// Result returns the committed result, if any
func (s *Session) Result() (*Result, bool) {
	return s.result, s.result != nil
}

// Handle applies one key event and returns the resulting status
func (s *Session) Handle(k Key) Status {
	if s.status != Running {
		return s.status
	}
	s.notice = ""

	if k.Kind == KeyInterrupt {
		s.abort()
		return s.status
	}

	switch s.editor.Mode() {
	case input.Normal:
		s.handleNormal(k)
	case input.Editing:
		s.handleEditing(k)
	}
	return s.status
}

func (s *Session) handleNormal(k Key) {
	if k.Kind != KeyRune {
		return
	}
	switch {
	case k.Rune == s.opts.EditRune:
		s.startEditing()
	case k.Rune == s.opts.QuitRune:
		s.abort()
	}
}

func (s *Session) handleEditing(k Key) {
	e := s.editor
	before := e.Text()

	switch k.Kind {
	case KeyRune:
		e.Insert(k.Rune)
	case KeyBackspace:
		e.DeleteBackward()
	case KeyDelete:
		e.DeleteForward()
	case KeyDeleteWord:
		e.DeleteWordBackward()
	case KeyClearLine:
		e.Clear()
	case KeyLeft:
		e.MoveLeft()
	case KeyRight:
		e.MoveRight()
	case KeyHome:
		e.Home()
	case KeyEnd:
		e.End()
	case KeyWordLeft:
		e.PrevBoundary()
	case KeyWordRight:
		e.NextBoundary()
	case KeyEsc:
		e.Cancel()
		return
	case KeyEnter:
		s.commit()
		return
	}

	if e.Text() != before {
		s.recompile()
	}
}

func (s *Session) startEditing() {
	s.editor.StartEditing()
}

// recompile adopts the editor text as the sticky pattern when it compiles.
// When it does not, the previous pattern and view stay in force.
func (s *Session) recompile() {
	p, err := s.compile(s.editor.Text())
	if err != nil {
		s.valid = false
		s.log.Debug("pattern does not compile", "error", err)
		return
	}
	s.valid = true
	s.adopt(p)
}

// commit finalizes the editor text. Text that does not compile is rejected
// and the session keeps editing.
func (s *Session) commit() {
	p, err := s.compile(s.editor.Text())
	if err != nil {
		s.valid = false
		s.notice = "pattern does not compile"
		s.log.Debug("commit rejected", "error", err)
		return
	}
	s.adopt(p)
	s.result = &Result{Pattern: p, Records: s.view}
	s.status = Committed
	s.log.Info("pattern committed", "pattern", p.String(), "matches", len(s.view), "timeouts", s.timeouts)
}

// adopt makes p the sticky pattern and recomputes the view
func (s *Session) adopt(p pattern.Pattern) {
	s.pattern = p
	s.view = filter.Evaluate(s.corpus, p)
	s.timeouts = pattern.Timeouts(p)
	if s.timeouts > 0 {
		s.log.Warn("match timed out, lines dropped from view", "pattern", p.String(), "lines", s.timeouts)
	}
}

func (s *Session) abort() {
	s.status = Aborted
	s.log.Info("session aborted")
}

func (s *Session) compile(expr string) (pattern.Pattern, error) {
	return pattern.CompileWithOptions(s.opts.Engine, expr, pattern.Options{MatchTimeout: s.opts.MatchTimeout})
}

// KeySource delivers key events. NextKey blocks until a key arrives or ctx
// is done.
type KeySource interface {
	NextKey(ctx context.Context) (Key, error)
}

// Renderer displays the session state
type Renderer interface {
	Render(s *Session) error
}

// Run renders the session and feeds it keys from src until the user commits
// or aborts. An abort returns ErrAborted.
func (s *Session) Run(ctx context.Context, src KeySource, r Renderer) (*Result, error) {
	for {
		if err := r.Render(s); err != nil {
			return nil, err
		}
		k, err := src.NextKey(ctx)
		if err != nil {
			return nil, err
		}
		switch s.Handle(k) {
		case Committed:
			return s.result, nil
		case Aborted:
			return nil, ErrAborted
		}
	}
}
