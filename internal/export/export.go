// Package export writes a committed result either as raw lines or as
// delimited rows of captured substrings.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ofekazarya/resplit/internal/filter"
)

// Format selects the structured row delimiter
type Format int

const (
	CSV Format = iota
	TSV
)

func (f Format) String() string {
	if f == TSV {
		return "tsv"
	}
	return "csv"
}

func (f Format) delimiter() rune {
	if f == TSV {
		return '\t'
	}
	return ','
}

// ParseFormat parses "csv" or "tsv"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv", "comma", ",":
		return CSV, nil
	case "tsv", "tab", "\t":
		return TSV, nil
	}
	return CSV, fmt.Errorf("unknown delimiter %q (must be csv or tsv)", s)
}

// FormatForPath picks the format from an explicit name, falling back to the
// file extension and then to CSV
func FormatForPath(path, explicit string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return TSV, nil
	}
	return CSV, nil
}

// WriteError reports a destination that cannot be opened or written
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteRaw writes each matching line followed by a trailer line holding the
// pattern text
func WriteRaw(w io.Writer, records []filter.MatchRecord, pattern string) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.Line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString(pattern + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteStructured writes one row of captured substrings per record. Rows
// are not padded to a common width.
func WriteStructured(w io.Writer, records []filter.MatchRecord, format Format) error {
	cw := csv.NewWriter(w)
	cw.Comma = format.delimiter()
	for _, r := range records {
		row := r.Captures
		if row == nil {
			row = []string{}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates path and writes the structured rows to it. Rows already
// written stay on disk when a later write fails.
func WriteFile(path string, records []filter.MatchRecord, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	if err := WriteStructured(f, records, format); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
