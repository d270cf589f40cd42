package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// goldenCase is one entry of a testdata/*.yaml file. Output is the debug
// printer listing of the result; Error is a substring of the syntax error.
// IsTypename names must be typedef names once parsing succeeds.
type goldenCase struct {
	Name       string   `yaml:"name"`
	Entry      string   `yaml:"entry"`
	Flavor     flavor   `yaml:"flavor"`
	Typenames  []string `yaml:"typenames,omitempty"`
	IsTypename []string `yaml:"is_typename,omitempty"`
	Input      string   `yaml:"input"`
	Output     string   `yaml:"output,omitempty"`
	Error      string   `yaml:"error,omitempty"`
}

type goldenFile struct {
	Tests []goldenCase `yaml:"tests"`
}

func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden files found")
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("failed to read %s: %v", file, err)
		}
		var gf goldenFile
		if err := yaml.Unmarshal(data, &gf); err != nil {
			t.Fatalf("failed to parse %s: %v", file, err)
		}

		for _, tc := range gf.Tests {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				runGolden(t, tc)
			})
		}
	}
}

func runGolden(t *testing.T, tc goldenCase) {
	t.Helper()
	f := tc.Flavor
	if f == "" {
		f = flavorGNU
	}
	e := newTestEnv(f)
	for _, name := range tc.Typenames {
		e.AddTypename(name)
	}

	got, err := parseDump(tc.Entry, tc.Input, e)
	if tc.Error != "" {
		if err == nil {
			t.Fatalf("expected error containing %q, got:\n%s", tc.Error, got)
		}
		if !strings.Contains(err.Error(), tc.Error) {
			t.Errorf("error %q does not contain %q", err.Error(), tc.Error)
		}
		return
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tc.Output {
		t.Errorf("output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, tc.Output)
	}
	for _, name := range tc.IsTypename {
		if !e.IsTypename(name) {
			t.Errorf("%q is not a typedef name after parsing", name)
		}
	}
}
