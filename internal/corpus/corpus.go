// Package corpus loads the lines a pattern is evaluated against.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// maxLineSize is the longest line the scanner accepts
const maxLineSize = 10 * 1024 * 1024

// ErrNoMatch is returned when a glob matches no files
var ErrNoMatch = errors.New("no files match")

// ReadError reports an input source that cannot be read
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Source names where the corpus comes from. Exactly one of Path and Glob is set.
type Source struct {
	Path string
	Glob string
}

// Options tunes loading
type Options struct {
	// StripANSI removes SGR color sequences from every line
	StripANSI bool
}

// Corpus is the ordered list of input lines and the files they came from
type Corpus struct {
	Lines []string
	Files []string
}

// Load reads every line of src
func Load(src Source, opts Options) (*Corpus, error) {
	switch {
	case src.Path != "" && src.Glob != "":
		return nil, errors.New("file path and glob are mutually exclusive")
	case src.Path != "":
		return loadFiles([]string{src.Path}, opts)
	case src.Glob != "":
		files, err := Expand(src.Glob)
		if err != nil {
			return nil, err
		}
		return loadFiles(files, opts)
	}
	return nil, errors.New("no input source given")
}

// Expand resolves a glob into regular files in discovery order. "**"
// matches across directories.
func Expand(glob string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, &ReadError{Path: glob, Err: err}
	}
	if len(matches) == 0 {
		return nil, &ReadError{Path: glob, Err: ErrNoMatch}
	}
	return matches, nil
}

func loadFiles(files []string, opts Options) (*Corpus, error) {
	c := &Corpus{Files: files}
	for _, path := range files {
		lines, err := readFile(path, opts)
		if err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, lines...)
	}
	return c, nil
}

func readFile(path string, opts Options) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer file.Close()

	lines, err := ReadLines(file, opts)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return lines, nil
}

// ReadLines splits r on line boundaries. A trailing carriage return is
// dropped from each line.
func ReadLines(r io.Reader, opts Options) ([]string, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if opts.StripANSI {
			line = StripANSI(line)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
