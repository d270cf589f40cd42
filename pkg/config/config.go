// Package config loads project settings for cparse from a .cparse.yaml,
// .cparse.yml or .cparse.toml file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/raymyers/cparse/pkg/driver"
)

// Format is the syntax of a configuration file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FileNames are the names Find looks for, in order.
var FileNames = []string{".cparse.yaml", ".cparse.yml", ".cparse.toml"}

// File is the content of a configuration file. Empty fields leave the
// defaults alone.
type File struct {
	Flavor         string   `yaml:"flavor" toml:"flavor"`
	CPP            string   `yaml:"cpp" toml:"cpp"`
	CPPArgs        []string `yaml:"cpp_args" toml:"cpp_args"`
	IncludePaths   []string `yaml:"include" toml:"include"`
	SystemIncludes []string `yaml:"isystem" toml:"isystem"`
	Defines        []string `yaml:"define" toml:"define"`
	Undefines      []string `yaml:"undefine" toml:"undefine"`
	Typenames      []string `yaml:"typenames" toml:"typenames"`

	// Path is where the file was loaded from.
	Path string `yaml:"-" toml:"-"`
}

// ErrUnknownFormat is returned for a path whose extension is not a
// supported format.
var ErrUnknownFormat = errors.New("unknown config format")

// DetectFormat picks the format from the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads the configuration file at path.
func Load(path string) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes content. Unknown keys are errors.
func Parse(content []byte, format Format) (*File, error) {
	f := &File{}
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), f)
		if err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		// an empty document decodes to io.EOF
		if err := dec.Decode(f); err != nil && len(bytes.TrimSpace(content)) > 0 {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if f.Flavor != "" {
		if _, err := driver.ParseFlavor(f.Flavor); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Find looks for a configuration file in dir and its parents and returns
// the first one found, or "" if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Apply copies the settings of f into cfg. cpp_args replaces the
// preprocessor options; the other lists are appended.
func (f *File) Apply(cfg *driver.Config) error {
	if f.Flavor != "" {
		flavor, err := driver.ParseFlavor(f.Flavor)
		if err != nil {
			return err
		}
		cfg.Flavor = flavor
	}
	if f.CPP != "" {
		cfg.CPPCommand = f.CPP
	}
	if f.CPPArgs != nil {
		cfg.CPPOptions = append([]string(nil), f.CPPArgs...)
	}
	cfg.IncludePaths = append(cfg.IncludePaths, f.IncludePaths...)
	cfg.SystemIncludes = append(cfg.SystemIncludes, f.SystemIncludes...)
	cfg.Defines = append(cfg.Defines, f.Defines...)
	cfg.Undefines = append(cfg.Undefines, f.Undefines...)
	cfg.Typenames = append(cfg.Typenames, f.Typenames...)
	return nil
}

// Default returns the platform default driver configuration.
func Default() *driver.Config {
	return driver.Default()
}
