package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ofekazarya/resplit/internal/config"
	"ofekazarya/resplit/internal/corpus"
	"ofekazarya/resplit/internal/export"
	"ofekazarya/resplit/internal/pattern"
	"ofekazarya/resplit/internal/session"
	"ofekazarya/resplit/internal/ui"
)

// Version information (set via ldflags during build).
var version = "dev"

// Exit codes
const (
	exitOK      = 0
	exitError   = 1
	exitUsage   = 2
	exitAborted = 130
)

// options holds the parsed command line
type options struct {
	File         string
	Glob         string
	Output       string
	Delimiter    string
	ConfigPath   string
	Engine       string
	StripANSI    bool
	StartEditing bool
	LogFile      string
	LogLevel     string
	ShowVersion  bool

	set map[string]bool // flags given explicitly
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if opts.ShowVersion {
		fmt.Fprintf(stdout, "resplit %s\n", version)
		return exitOK
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	palette, err := ui.ParsePalette(cfg.Highlight)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	format, err := export.FormatForPath(opts.Output, cfg.Delimiter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger, closeLog, err := newLogger(cfg.LogFile, opts.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeLog()

	// Source errors are fatal before the terminal is touched
	c, err := corpus.Load(corpus.Source{Path: opts.File, Glob: opts.Glob}, corpus.Options{StripANSI: cfg.StripANSI})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	logger.Info("corpus loaded", "files", len(c.Files), "lines", len(c.Lines))

	engine, _ := pattern.ParseEngine(cfg.Engine)
	s := session.New(c.Lines, session.Options{
		Engine:       engine,
		MatchTimeout: cfg.MatchTimeout.Duration,
		StartEditing: cfg.StartEditing,
		QuitRune:     cfg.QuitRune(),
		EditRune:     cfg.EditRune(),
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	res, err := interact(ctx, s, ui.Options{Palette: palette, Logger: logger, Out: stderr})
	switch {
	case errors.Is(err, session.ErrAborted):
		return exitAborted
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if err := writeResult(res, opts.Output, format, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	logger.Info("output written", "records", len(res.Records), "output", opts.Output)
	return exitOK
}

// interact owns the terminal for the duration of the session. The terminal
// is restored before any output is written.
func interact(ctx context.Context, s *session.Session, opts ui.Options) (*session.Result, error) {
	term, err := ui.Open(opts)
	if err != nil {
		return nil, err
	}
	defer term.Close()

	return s.Run(ctx, term, term)
}

// writeResult prints raw lines to stdout, or writes captured rows to output
// when one is given
func writeResult(res *session.Result, output string, format export.Format, stdout io.Writer) error {
	if output == "" {
		return export.WriteRaw(stdout, res.Records, res.Pattern.String())
	}
	return export.WriteFile(output, res.Records, format)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("resplit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.File, "file", "", "Input file")
	fs.StringVar(&opts.File, "f", "", "Input file (shorthand)")
	fs.StringVar(&opts.Glob, "glob", "", "Glob of input files, ** matches directories")
	fs.StringVar(&opts.Glob, "g", "", "Glob of input files (shorthand)")
	fs.StringVar(&opts.Output, "output", "", "Write captured groups as delimited rows to this file")
	fs.StringVar(&opts.Output, "o", "", "Output file (shorthand)")
	fs.StringVar(&opts.Delimiter, "delimiter", "", "Row delimiter: csv or tsv (default from extension)")
	fs.StringVar(&opts.Delimiter, "d", "", "Row delimiter (shorthand)")
	fs.StringVar(&opts.ConfigPath, "config", config.DefaultPath(), "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	fs.StringVar(&opts.Engine, "engine", "", "Regex engine: re2 or regexp2")
	fs.BoolVar(&opts.StripANSI, "strip-ansi", false, "Remove ANSI color codes from input lines")
	fs.BoolVar(&opts.StartEditing, "e", false, "Start in edit mode")
	fs.StringVar(&opts.LogFile, "log", "", "Write logs to this file")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.ShowVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "resplit - build a regex interactively and split lines into capture groups\n\n")
		fmt.Fprintf(stderr, "Usage: resplit [options] <file|glob>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  resplit app.log                     Print matching lines on commit\n")
		fmt.Fprintf(stderr, "  resplit -g 'logs/**/*.log' -o out.csv  Write captured groups as CSV\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.ShowVersion {
		return opts, nil
	}

	// Validate log level
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}

	rest := fs.Args()
	if opts.File != "" && opts.Glob != "" {
		return nil, errors.New("-file and -glob are mutually exclusive")
	}
	if opts.File == "" && opts.Glob == "" {
		if len(rest) != 1 {
			fs.Usage()
			return nil, errors.New("exactly one input file or glob is required")
		}
		if isGlob(rest[0]) {
			opts.Glob = rest[0]
		} else {
			opts.File = rest[0]
		}
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	return opts, nil
}

// apply overrides file settings with explicitly given flags
func (o *options) apply(cfg *config.Config) {
	if o.Engine != "" {
		cfg.Engine = o.Engine
	}
	if o.Delimiter != "" {
		cfg.Delimiter = o.Delimiter
	}
	if o.set["strip-ansi"] {
		cfg.StripANSI = o.StripANSI
	}
	if o.set["e"] {
		cfg.StartEditing = o.StartEditing
	}
	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}
}

// isGlob reports whether a positional argument is a glob. An existing file
// is never one, even when its name holds glob metacharacters.
func isGlob(s string) bool {
	if !strings.ContainsAny(s, "*?[{") {
		return false
	}
	_, err := os.Stat(s)
	return err != nil
}

// newLogger writes to path at the given level, or discards everything when
// path is empty. The terminal is busy while the session runs.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	logger.Info("starting", "version", version)
	return logger, func() { f.Close() }, nil
}
