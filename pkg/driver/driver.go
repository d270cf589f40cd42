// Package driver preprocesses a C file with an external preprocessor and
// parses the result into a translation unit.
package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/env"
	"github.com/raymyers/cparse/pkg/parser"
	"github.com/raymyers/cparse/pkg/preproc"
)

// Flavor selects the language accepted by the parser.
type Flavor int

const (
	// StdC11 is strict standard C11.
	StdC11 Flavor = iota
	// GnuC11 is C11 with GNU extensions.
	GnuC11
	// ClangC11 is C11 with GNU and Clang extensions.
	ClangC11
)

func (f Flavor) String() string {
	switch f {
	case StdC11:
		return "c11"
	case GnuC11:
		return "gnu11"
	case ClangC11:
		return "clang11"
	}
	return fmt.Sprintf("Flavor(%d)", int(f))
}

// ParseFlavor accepts the names printed by String and their short forms.
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(s) {
	case "c11", "std", "stdc11":
		return StdC11, nil
	case "gnu", "gnu11", "gnuc11":
		return GnuC11, nil
	case "clang", "clang11", "clangc11":
		return ClangC11, nil
	}
	return 0, fmt.Errorf("unknown flavor %q (want c11, gnu11 or clang11)", s)
}

// Config controls preprocessing and parsing.
type Config struct {
	// CPPCommand is the preprocessor program.
	CPPCommand string
	// CPPOptions are passed before the include, define and file arguments.
	CPPOptions []string

	IncludePaths   []string
	SystemIncludes []string
	Defines        []string
	Undefines      []string

	Flavor Flavor
	// Typenames are declared as typedef names before parsing starts.
	Typenames []string

	Logger *zap.Logger
}

// WithGCC uses gcc as the preprocessor and enables GNU extensions.
func WithGCC() *Config {
	return &Config{CPPCommand: "gcc", CPPOptions: []string{"-E"}, Flavor: GnuC11}
}

// WithClang uses clang as the preprocessor and enables Clang extensions.
func WithClang() *Config {
	return &Config{CPPCommand: "clang", CPPOptions: []string{"-E"}, Flavor: ClangC11}
}

// Default is WithClang on macOS and WithGCC elsewhere.
func Default() *Config {
	if runtime.GOOS == "darwin" {
		return WithClang()
	}
	return WithGCC()
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Config) preprocessor() *preproc.Options {
	return &preproc.Options{
		Command:        c.CPPCommand,
		Args:           c.CPPOptions,
		IncludePaths:   c.IncludePaths,
		SystemIncludes: c.SystemIncludes,
		Defines:        c.Defines,
		Undefines:      c.Undefines,
	}
}

// Result is a successfully parsed file.
type Result struct {
	// Source is the preprocessed text the spans refer to.
	Source string
	Unit   cabs.Node[cabs.TranslationUnit]
}

// ResultWith is a result whose identifiers are interned by a custom
// Interner.
type ResultWith[N cabs.Name] struct {
	Source string
	Unit   cabs.Node[cabs.TranslationUnit]
	Names  cabs.Interner[N]
}

// Preprocess runs the configured preprocessor on path. Files ending in
// .i are read as they are.
func Preprocess(ctx context.Context, cfg *Config, path string) (string, error) {
	log := cfg.logger()
	if !preproc.NeedsPreprocessing(path) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", &PreprocessorError{Path: path, Err: err}
		}
		log.Debug("read preprocessed file", zap.String("path", path), zap.Int("bytes", len(b)))
		return string(b), nil
	}

	opts := cfg.preprocessor()
	log.Debug("running preprocessor",
		zap.String("command", opts.Command),
		zap.Strings("args", opts.Arguments(path)))
	start := time.Now()
	src, err := preproc.Run(ctx, opts, path)
	if err != nil {
		log.Warn("preprocessor failed", zap.String("path", path), zap.Error(err))
		return "", &PreprocessorError{Path: path, Err: err}
	}
	log.Debug("preprocessed",
		zap.String("path", path),
		zap.Int("bytes", len(src)),
		zap.Duration("elapsed", time.Since(start)))
	return src, nil
}

// Parse preprocesses and parses the file at path. It returns a
// *PreprocessorError or a *SyntaxError on failure.
func Parse(ctx context.Context, cfg *Config, path string) (*Result, error) {
	src, err := Preprocess(ctx, cfg, path)
	if err != nil {
		return nil, err
	}
	return ParsePreprocessed(cfg, src)
}

// ParsePreprocessed parses source that has already been preprocessed.
// Identifiers are kept as strings.
func ParsePreprocessed(cfg *Config, source string) (*Result, error) {
	p, err := ParsePreprocessedWith[string](cfg, source, cabs.StringInterner{})
	if err != nil {
		return nil, err
	}
	return &Result{Source: p.Source, Unit: p.Unit}, nil
}

// ParsePreprocessedWith parses source, interning identifiers with names.
func ParsePreprocessedWith[N cabs.Name](cfg *Config, source string, names cabs.Interner[N]) (*ResultWith[N], error) {
	log := cfg.logger()
	e := NewEnv(cfg.Flavor, names)
	for _, t := range cfg.Typenames {
		e.AddTypename(names.Intern(t))
	}

	start := time.Now()
	unit, err := parser.TranslationUnit(source, e)
	if err != nil {
		serr := newSyntaxError(source, err)
		log.Warn("syntax error",
			zap.String("file", serr.Location.File),
			zap.Int("line", serr.Location.Line),
			zap.Strings("expected", serr.Expected))
		return nil, serr
	}
	log.Debug("parsed",
		zap.Stringer("flavor", cfg.Flavor),
		zap.Int("declarations", len(unit.Value)),
		zap.Duration("elapsed", time.Since(start)))
	return &ResultWith[N]{Source: source, Unit: unit, Names: names}, nil
}

// NewEnv returns an empty environment for flavor.
func NewEnv[N cabs.Name](flavor Flavor, names cabs.Interner[N]) *env.Env[N] {
	switch flavor {
	case GnuC11:
		return env.WithGNU(names)
	case ClangC11:
		return env.WithClang(names)
	}
	return env.WithCore(names)
}
