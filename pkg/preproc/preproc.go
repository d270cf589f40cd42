// Package preproc runs an external C preprocessor and returns its output.
package preproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Options configures the preprocessor invocation.
type Options struct {
	Command        string   // program to run; searched for when empty
	Args           []string // leading arguments, usually -E
	IncludePaths   []string // -I directories
	SystemIncludes []string // -isystem directories
	Defines        []string // -D macros, NAME or NAME=VALUE
	Undefines      []string // -U macros
}

// Error is a failed preprocessor run.
type Error struct {
	Command string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotFound is returned when no command is configured and none of the
// usual preprocessors is on PATH.
var ErrNotFound = errors.New("no C preprocessor found (tried: cc, gcc, clang)")

// ErrNotUTF8 is wrapped when the preprocessor output is not valid UTF-8.
var ErrNotUTF8 = errors.New("output is not valid UTF-8")

// Arguments returns the argument list Run passes for path.
func (o *Options) Arguments(path string) []string {
	args := append([]string(nil), o.Args...)
	for _, dir := range o.IncludePaths {
		args = append(args, "-I"+dir)
	}
	for _, dir := range o.SystemIncludes {
		args = append(args, "-isystem", dir)
	}
	for _, d := range o.Defines {
		args = append(args, "-D"+d)
	}
	for _, u := range o.Undefines {
		args = append(args, "-U"+u)
	}
	return append(args, path)
}

// Run preprocesses the file at path.
func Run(ctx context.Context, opts *Options, path string) (string, error) {
	if opts == nil {
		opts = &Options{Args: []string{"-E"}}
	}
	command := opts.Command
	if command == "" {
		command = FindCommand()
		if command == "" {
			return "", &Error{Command: "cpp", Err: ErrNotFound}
		}
	}

	cmd := exec.CommandContext(ctx, command, opts.Arguments(path)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if !utf8.Valid(stderr.Bytes()) {
			return "", &Error{Command: command, Err: fmt.Errorf("stderr: %w", ErrNotUTF8)}
		}
		return "", &Error{Command: command, Stderr: stderr.String(), Err: err}
	}
	if !utf8.Valid(stdout.Bytes()) {
		return "", &Error{Command: command, Err: fmt.Errorf("stdout: %w", ErrNotUTF8)}
	}
	return stdout.String(), nil
}

// RunString preprocesses source as if it were a file called name. The
// text is written to a temporary file that is removed afterwards.
func RunString(ctx context.Context, opts *Options, source, name string) (string, error) {
	base := filepath.Base(name)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "source.c"
	}
	f, err := os.CreateTemp("", "cparse-*-"+base)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(source); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return Run(ctx, opts, f.Name())
}

// NeedsPreprocessing reports whether path should go through the
// preprocessor. Files ending in .i are already preprocessed.
func NeedsPreprocessing(path string) bool {
	return strings.ToLower(filepath.Ext(path)) != ".i"
}

// FindCommand returns the first of cc, gcc and clang found on PATH.
func FindCommand() string {
	for _, name := range []string{"cc", "gcc", "clang"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
