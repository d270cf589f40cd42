package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raymyers/cparse/pkg/driver"
)

const yamlConfig = `
flavor: clang
cpp: clang-18
cpp_args: [-E, -P]
include: [include, third_party]
define: [DEBUG, LEVEL=2]
typenames: [size_t]
`

const tomlConfig = `
flavor = "clang"
cpp = "clang-18"
cpp_args = ["-E", "-P"]
include = ["include", "third_party"]
define = ["DEBUG", "LEVEL=2"]
typenames = ["size_t"]
`

func TestParseFormats(t *testing.T) {
	want := &File{
		Flavor:       "clang",
		CPP:          "clang-18",
		CPPArgs:      []string{"-E", "-P"},
		IncludePaths: []string{"include", "third_party"},
		Defines:      []string{"DEBUG", "LEVEL=2"},
		Typenames:    []string{"size_t"},
	}
	tests := []struct {
		name    string
		content string
		format  Format
	}{
		{"yaml", yamlConfig, FormatYAML},
		{"toml", tomlConfig, FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.content), tt.format)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  Format
		want    string
	}{
		{"unknown yaml key", "flavour: gnu\n", FormatYAML, "flavour"},
		{"unknown toml key", "flavour = \"gnu\"\n", FormatTOML, "flavour"},
		{"bad flavor", "flavor: c89\n", FormatYAML, "unknown flavor"},
		{"bad toml", "flavor = \n", FormatTOML, "parse toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), tt.format)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse([]byte("\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&File{}, f); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]Format{
		".cparse.yaml":  FormatYAML,
		"x/.cparse.yml": FormatYAML,
		"a.TOML":        FormatTOML,
	} {
		got, err := DetectFormat(path)
		if err != nil || got != want {
			t.Errorf("DetectFormat(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
	if _, err := DetectFormat("config.json"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("json: error = %v", err)
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, ".cparse.toml")
	if err := os.WriteFile(path, []byte(tomlConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Find(sub)
	if err != nil {
		t.Fatal(err)
	}
	if found != path {
		t.Fatalf("Find = %q, want %q", found, path)
	}

	f, err := Load(found)
	if err != nil {
		t.Fatal(err)
	}
	if f.Path != path || f.CPP != "clang-18" {
		t.Errorf("loaded %+v", f)
	}
}

func TestFindNothing(t *testing.T) {
	// a fresh temp dir may still sit below a directory with a config
	found, err := Find(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if found != "" && !strings.HasPrefix(filepath.Base(found), ".cparse") {
		t.Errorf("Find = %q", found)
	}
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(yamlConfig), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	cfg := driver.WithGCC()
	cfg.IncludePaths = []string{"cli"}
	if err := f.Apply(cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Flavor != driver.ClangC11 {
		t.Errorf("flavor = %v", cfg.Flavor)
	}
	if cfg.CPPCommand != "clang-18" {
		t.Errorf("command = %q", cfg.CPPCommand)
	}
	if diff := cmp.Diff([]string{"-E", "-P"}, cfg.CPPOptions); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cli", "include", "third_party"}, cfg.IncludePaths); diff != "" {
		t.Errorf("include paths (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"size_t"}, cfg.Typenames); diff != "" {
		t.Errorf("typenames (-want +got):\n%s", diff)
	}
}

func TestApplyKeepsDefaults(t *testing.T) {
	cfg := driver.WithGCC()
	if err := (&File{}).Apply(cfg); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(driver.WithGCC(), cfg); diff != "" {
		t.Errorf("empty file changed config (-want +got):\n%s", diff)
	}
}
