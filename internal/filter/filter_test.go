package filter

import (
	"reflect"
	"testing"

	"ofekazarya/resplit/internal/pattern"
	"ofekazarya/resplit/internal/segment"
)

func mustCompile(t *testing.T, expr string) pattern.Pattern {
	t.Helper()
	p, err := pattern.Compile(pattern.EngineRE2, expr)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", expr, err)
	}
	return p
}

func TestFilterPreservesOrder(t *testing.T) {
	corpus := []string{"apple", "banana", "cherry", "apple pie", "date", "apple"}
	matches := Filter(corpus, mustCompile(t, "apple"))

	var idx []int
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	if want := []int{0, 3, 5}; !reflect.DeepEqual(idx, want) {
		t.Errorf("Expected indices %v, got %v", want, idx)
	}
}

func TestFilterLineAppearsOnce(t *testing.T) {
	corpus := []string{"a a a", "b", "a"}
	matches := Filter(corpus, mustCompile(t, "(a)"))
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	// leftmost match only
	want := []segment.CaptureRange{{Group: 1, Start: 0, End: 1}}
	if !reflect.DeepEqual(matches[0].Ranges, want) {
		t.Errorf("Expected ranges %v, got %v", want, matches[0].Ranges)
	}
}

func TestFilterNoMatch(t *testing.T) {
	if got := Filter([]string{"apple", "banana"}, mustCompile(t, "orange")); len(got) != 0 {
		t.Errorf("Expected no matches, got %v", got)
	}
}

func TestFilterIsSubsequence(t *testing.T) {
	corpus := []string{"error: 1", "warn: 2", "", "error: 3", "info", "error: 1"}
	p := mustCompile(t, `error: (\d+)`)
	matches := Filter(corpus, p)

	last := -1
	for _, m := range matches {
		if m.Index <= last {
			t.Fatalf("Index %d not increasing after %d", m.Index, last)
		}
		if corpus[m.Index] != m.Line {
			t.Errorf("Line %q does not match corpus[%d]", m.Line, m.Index)
		}
		last = m.Index
	}
	count := 0
	for _, line := range corpus {
		if _, ok := p.Match(line); ok {
			count++
		}
	}
	if count != len(matches) {
		t.Errorf("Expected %d matches, got %d", count, len(matches))
	}
}

func TestEvaluate(t *testing.T) {
	corpus := []string{"lala hello bleble world", "nothing here"}
	records := Evaluate(corpus, mustCompile(t, `.+(hello).+(world)`))
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	r := records[0]
	want := []segment.Segment{
		{Kind: segment.Literal, Text: "lala "},
		{Kind: segment.Captured, Text: "hello", Group: 1},
		{Kind: segment.Literal, Text: " bleble "},
		{Kind: segment.Captured, Text: "world", Group: 2},
	}
	if !reflect.DeepEqual(r.Segments, want) {
		t.Errorf("Segments = %v, want %v", r.Segments, want)
	}
	if !reflect.DeepEqual(r.Captures, []string{"hello", "world"}) {
		t.Errorf("Captures = %v", r.Captures)
	}
}

func TestEvaluateEmptyPattern(t *testing.T) {
	corpus := []string{"lala ", "second"}
	records := Evaluate(corpus, pattern.Empty(pattern.EngineRE2))
	if !reflect.DeepEqual(Lines(records), corpus) {
		t.Errorf("Expected every line, got %v", Lines(records))
	}
	for _, r := range records {
		if len(r.Segments) != 1 || r.Segments[0].Kind != segment.Literal || r.Segments[0].Text != r.Line {
			t.Errorf("Expected a single literal for %q, got %v", r.Line, r.Segments)
		}
		if len(r.Captures) != 0 {
			t.Errorf("Expected no captures, got %v", r.Captures)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	corpus := []string{"k=1 v=a", "k=2", "k=3 v=c"}
	p := mustCompile(t, `k=(\d)(?: v=(\w))?`)
	if a, b := Evaluate(corpus, p), Evaluate(corpus, p); !reflect.DeepEqual(a, b) {
		t.Errorf("Evaluate not deterministic: %v vs %v", a, b)
	}
}
