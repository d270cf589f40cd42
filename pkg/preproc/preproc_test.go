package preproc

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArguments(t *testing.T) {
	opts := &Options{
		Args:           []string{"-E"},
		IncludePaths:   []string{"inc", "/usr/local/include"},
		SystemIncludes: []string{"sys"},
		Defines:        []string{"DEBUG", "LEVEL=2"},
		Undefines:      []string{"NDEBUG"},
	}
	want := []string{
		"-E",
		"-Iinc", "-I/usr/local/include",
		"-isystem", "sys",
		"-DDEBUG", "-DLEVEL=2",
		"-UNDEBUG",
		"main.c",
	}
	if diff := cmp.Diff(want, opts.Arguments("main.c")); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
	if len(opts.Args) != 1 {
		t.Errorf("Arguments modified Args: %v", opts.Args)
	}
}

func TestNeedsPreprocessing(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.c", true},
		{"dir/header.h", true},
		{"out.i", false},
		{"OUT.I", false},
		{"noext", true},
	}
	for _, tt := range tests {
		if got := NeedsPreprocessing(tt.path); got != tt.want {
			t.Errorf("NeedsPreprocessing(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// shell returns options that run script with sh; the file path is $0.
func shell(t *testing.T, script string) *Options {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return &Options{Command: "sh", Args: []string{"-c", script}}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.c")
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Run(context.Background(), shell(t, `cat "$0"`), path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "int x;\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRunString(t *testing.T) {
	out, err := RunString(context.Background(), shell(t, `cat "$0"`), "char c;", "snippet.c")
	if err != nil {
		t.Fatal(err)
	}
	if out != "char c;" {
		t.Errorf("output = %q", out)
	}
}

func TestRunFailure(t *testing.T) {
	_, err := Run(context.Background(), shell(t, "echo 'no such file' >&2; exit 3"), "missing.c")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if !strings.Contains(perr.Stderr, "no such file") {
		t.Errorf("stderr = %q", perr.Stderr)
	}
	var exit *exec.ExitError
	if !errors.As(err, &exit) || exit.ExitCode() != 3 {
		t.Errorf("error does not wrap exit status 3: %v", err)
	}
}

func TestRunInvalidUTF8(t *testing.T) {
	_, err := Run(context.Background(), shell(t, `printf '\377'`), "x.c")
	if !errors.Is(err, ErrNotUTF8) {
		t.Errorf("error = %v, want ErrNotUTF8", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, shell(t, "sleep 5"), "x.c"); err == nil {
		t.Error("expected error from canceled context")
	}
}
