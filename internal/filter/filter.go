// Package filter selects the corpus lines a pattern matches and segments them.
package filter

import (
	"ofekazarya/resplit/internal/pattern"
	"ofekazarya/resplit/internal/segment"
)

// Match is a corpus line the pattern matched, with the capture ranges of its
// leftmost match
type Match struct {
	Index  int // position in the corpus
	Line   string
	Ranges []segment.CaptureRange
}

// MatchRecord is a matched line split into segments, plus its captured
// substrings for structured export
type MatchRecord struct {
	Index    int
	Line     string
	Segments []segment.Segment
	Captures []string
}

// Filter returns the lines of corpus that p matches, in corpus order. Each
// line appears at most once.
func Filter(corpus []string, p pattern.Pattern) []Match {
	var matches []Match
	for i, line := range corpus {
		ranges, ok := p.Match(line)
		if !ok {
			continue
		}
		matches = append(matches, Match{Index: i, Line: line, Ranges: ranges})
	}
	return matches
}

// Segment splits every match into a MatchRecord
func Segment(matches []Match) []MatchRecord {
	records := make([]MatchRecord, 0, len(matches))
	for _, m := range matches {
		segs := segment.Split(m.Line, m.Ranges)
		records = append(records, MatchRecord{
			Index:    m.Index,
			Line:     m.Line,
			Segments: segs,
			Captures: segment.Captures(segs),
		})
	}
	return records
}

// Evaluate filters corpus with p and segments the result
func Evaluate(corpus []string, p pattern.Pattern) []MatchRecord {
	return Segment(Filter(corpus, p))
}

// Lines returns the raw text of records
func Lines(records []MatchRecord) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Line
	}
	return lines
}
