// Package pattern compiles user expressions into matchers that report the
// capture ranges of the leftmost match.
//
// Two engines are available: re2, backed by the standard library, and
// regexp2, a backtracking engine that adds lookaround and backreferences.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"ofekazarya/resplit/internal/segment"
)

// Engine names a regex implementation
type Engine string

const (
	EngineRE2     Engine = "re2"
	EngineRegexp2 Engine = "regexp2"
)

// DefaultMatchTimeout bounds a single regexp2 match
const DefaultMatchTimeout = 250 * time.Millisecond

// ErrUnknownEngine is returned for an engine name that is not supported
var ErrUnknownEngine = errors.New("unknown regex engine")

// ParseEngine validates an engine name
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(s)) {
	case EngineRE2, "":
		return EngineRE2, nil
	case EngineRegexp2:
		return EngineRegexp2, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
}

// Pattern is a compiled expression
type Pattern interface {
	// String returns the source expression
	String() string
	// Engine returns the implementation that compiled the expression
	Engine() Engine
	// Match reports whether line matches and, for the leftmost match, the
	// byte ranges of every participating capture group in group index order.
	Match(line string) ([]segment.CaptureRange, bool)
}

// Timeouts returns how many matches p abandoned because they ran past the
// match timeout. Only regexp2 patterns time out.
func Timeouts(p Pattern) int {
	if rp, ok := p.(*regexp2Pattern); ok {
		return int(rp.timeouts.Load())
	}
	return 0
}

// CompileError reports an expression that does not compile
type CompileError struct {
	Expr   string
	Engine Engine
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %q (%s): %v", e.Expr, e.Engine, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Options tunes compilation
type Options struct {
	// MatchTimeout limits a single regexp2 match; zero uses DefaultMatchTimeout
	MatchTimeout time.Duration
}

// Compile compiles expr with the given engine
func Compile(engine Engine, expr string) (Pattern, error) {
	return CompileWithOptions(engine, expr, Options{})
}

// CompileWithOptions compiles expr with the given engine and options
func CompileWithOptions(engine Engine, expr string, opts Options) (Pattern, error) {
	switch engine {
	case EngineRE2, "":
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &CompileError{Expr: expr, Engine: EngineRE2, Err: err}
		}
		return &re2Pattern{re: re}, nil
	case EngineRegexp2:
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, &CompileError{Expr: expr, Engine: engine, Err: err}
		}
		re.MatchTimeout = opts.MatchTimeout
		if re.MatchTimeout <= 0 {
			re.MatchTimeout = DefaultMatchTimeout
		}
		return &regexp2Pattern{re: re}, nil
	}
	return nil, &CompileError{Expr: expr, Engine: engine, Err: ErrUnknownEngine}
}

// Empty returns the empty expression for engine, which matches every line
// without capturing anything
func Empty(engine Engine) Pattern {
	p, err := Compile(engine, "")
	if err != nil {
		// the empty expression compiles on every supported engine
		return &re2Pattern{re: regexp.MustCompile("")}
	}
	return p
}

type re2Pattern struct {
	re *regexp.Regexp
}

func (p *re2Pattern) String() string { return p.re.String() }

func (p *re2Pattern) Engine() Engine { return EngineRE2 }

func (p *re2Pattern) Match(line string) ([]segment.CaptureRange, bool) {
	loc := p.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil, false
	}
	var ranges []segment.CaptureRange
	for g := 1; 2*g+1 < len(loc); g++ {
		if loc[2*g] < 0 {
			continue // group did not participate
		}
		ranges = append(ranges, segment.CaptureRange{Group: g, Start: loc[2*g], End: loc[2*g+1]})
	}
	return ranges, true
}

type regexp2Pattern struct {
	re       *regexp2.Regexp
	timeouts atomic.Int64
}

func (p *regexp2Pattern) String() string { return p.re.String() }

func (p *regexp2Pattern) Engine() Engine { return EngineRegexp2 }

// Match treats a match timeout as no match and counts it.
func (p *regexp2Pattern) Match(line string) ([]segment.CaptureRange, bool) {
	m, err := p.re.FindStringMatch(line)
	if err != nil {
		// the only error regexp2 returns is a timeout
		p.timeouts.Add(1)
		return nil, false
	}
	if m == nil {
		return nil, false
	}
	groups := m.Groups()
	if len(groups) <= 1 {
		return nil, true
	}

	// regexp2 reports rune offsets
	offsets := runeOffsets(line)
	var ranges []segment.CaptureRange
	for g := 1; g < len(groups); g++ {
		grp := groups[g]
		if len(grp.Captures) == 0 {
			continue
		}
		ranges = append(ranges, segment.CaptureRange{
			Group: g,
			Start: offsets[grp.Index],
			End:   offsets[grp.Index+grp.Length],
		})
	}
	return ranges, true
}

// runeOffsets maps rune index i to its byte offset, with one extra entry for
// the end of the string
func runeOffsets(s string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
