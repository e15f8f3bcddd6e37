package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ofekazarya/resplit/internal/filter"
	"ofekazarya/resplit/internal/pattern"
)

func evaluate(t *testing.T, expr string, corpus ...string) []filter.MatchRecord {
	t.Helper()
	p, err := pattern.Compile(pattern.EngineRE2, expr)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", expr, err)
	}
	return filter.Evaluate(corpus, p)
}

func TestWriteRaw(t *testing.T) {
	records := evaluate(t, `error`, "error one", "info", "error two")
	var buf bytes.Buffer
	if err := WriteRaw(&buf, records, `error`); err != nil {
		t.Fatalf("WriteRaw failed: %v", err)
	}
	if want := "error one\nerror two\nerror\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestWriteRawNoMatches(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRaw(&buf, nil, `nothing`); err != nil {
		t.Fatalf("WriteRaw failed: %v", err)
	}
	if buf.String() != "nothing\n" {
		t.Errorf("Expected only the trailer, got %q", buf.String())
	}
}

func TestWriteStructuredCSV(t *testing.T) {
	records := evaluate(t, `.+(hello).+(world)`, "lala hello bleble world")
	var buf bytes.Buffer
	if err := WriteStructured(&buf, records, CSV); err != nil {
		t.Fatalf("WriteStructured failed: %v", err)
	}
	if want := "hello,world\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestWriteStructuredTSV(t *testing.T) {
	records := evaluate(t, `\w+ (\w+) (\w+ \w+)`, "drop remain remain also")
	var buf bytes.Buffer
	if err := WriteStructured(&buf, records, TSV); err != nil {
		t.Fatalf("WriteStructured failed: %v", err)
	}
	if want := "remain\tremain also\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestWriteStructuredRaggedRows(t *testing.T) {
	records := evaluate(t, `k=(\d)(?: v=(\w))?`, "k=1 v=a", "k=2", "k=3 v=c")
	var buf bytes.Buffer
	if err := WriteStructured(&buf, records, CSV); err != nil {
		t.Fatalf("WriteStructured failed: %v", err)
	}
	if want := "1,a\n2\n3,c\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestWriteStructuredQuotesDelimiter(t *testing.T) {
	records := evaluate(t, `name=(.*)`, "name=Doe, John")
	var buf bytes.Buffer
	if err := WriteStructured(&buf, records, CSV); err != nil {
		t.Fatalf("WriteStructured failed: %v", err)
	}
	if want := "\"Doe, John\"\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	records := evaluate(t, `(\w+)=(\w+)`, "a=1", "b=2")
	if err := WriteFile(path, records, TSV); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "a\t1\nb\t2\n"; string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestWriteFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	err := WriteFile(path, nil, CSV)
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("Expected *WriteError, got %v", err)
	}
	if we.Path != path {
		t.Errorf("Expected path %q, got %q", path, we.Path)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path, explicit string
		want           Format
	}{
		{"out.csv", "", CSV},
		{"out.TSV", "", TSV},
		{"out.txt", "", CSV},
		{"out.csv", "tsv", TSV},
		{"out.tsv", "csv", CSV},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path, tt.explicit)
		if err != nil || got != tt.want {
			t.Errorf("FormatForPath(%q, %q) = %v, %v; want %v", tt.path, tt.explicit, got, err, tt.want)
		}
	}
	if _, err := FormatForPath("out.csv", "pipe"); err == nil {
		t.Error("Expected an error for an unknown delimiter")
	}
}
