// Package segment splits a matched line into literal and captured pieces.
package segment

import "strings"

// Kind tags a segment as literal text or a captured substring
type Kind int

const (
	Literal Kind = iota
	Captured
)

func (k Kind) String() string {
	if k == Captured {
		return "Captured"
	}
	return "Literal"
}

// CaptureRange is the half-open byte interval [Start, End) of one capture group
type CaptureRange struct {
	Group int
	Start int
	End   int
}

// Segment is a contiguous piece of a line
type Segment struct {
	Kind  Kind
	Text  string
	Group int // capture group index, 0 for literal segments
}

// Split turns a line and its participating capture ranges into an ordered,
// gapless list of segments. Ranges are consumed in the order given (group
// index order); a range that starts behind the running offset is clipped to
// it, or skipped when it lies entirely behind it, so concatenating the
// segment texts always reproduces the line. A participating group that
// matched the empty string yields an empty Captured segment.
func Split(line string, ranges []CaptureRange) []Segment {
	if len(ranges) == 0 {
		return []Segment{{Kind: Literal, Text: line}}
	}

	segs := make([]Segment, 0, 2*len(ranges)+1)
	cursor := 0
	for _, r := range ranges {
		start, end := clamp(r.Start, len(line)), clamp(r.End, len(line))
		if end < start {
			continue
		}
		if start < cursor {
			if end <= cursor {
				continue
			}
			start = cursor
		}
		if start > cursor {
			segs = append(segs, Segment{Kind: Literal, Text: line[cursor:start]})
		}
		segs = append(segs, Segment{Kind: Captured, Text: line[start:end], Group: r.Group})
		cursor = end
	}
	if cursor < len(line) {
		segs = append(segs, Segment{Kind: Literal, Text: line[cursor:]})
	}
	return segs
}

// Join concatenates segment texts in order
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Captures returns the texts of the captured segments in order
func Captures(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		if s.Kind == Captured {
			out = append(out, s.Text)
		}
	}
	return out
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
