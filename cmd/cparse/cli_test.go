package main

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// CLITestSpec is a single command line run read from testdata/cli.yaml.
// Input comes from stdin, so no preprocessor is involved.
type CLITestSpec struct {
	Name           string   `yaml:"name"`
	Args           []string `yaml:"args"`
	Stdin          string   `yaml:"stdin"`
	Stdout         *string  `yaml:"stdout"`
	StdoutContains []string `yaml:"stdout_contains"`
	StderrContains []string `yaml:"stderr_contains"`
	Error          bool     `yaml:"error"`
	Skip           string   `yaml:"skip,omitempty"`
}

type CLITestFile struct {
	Tests []CLITestSpec `yaml:"tests"`
}

func TestCLICases(t *testing.T) {
	data, err := os.ReadFile("testdata/cli.yaml")
	if err != nil {
		t.Fatalf("failed to read cli.yaml: %v", err)
	}
	var file CLITestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("failed to parse cli.yaml: %v", err)
	}

	for _, tc := range file.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}
			args := append([]string{"--no-config"}, tc.Args...)
			args = append(args, "-")
			out, errOut, err := execute(t, tc.Stdin, args...)
			if tc.Error != (err != nil) {
				t.Fatalf("error = %v, want error %v\nstderr: %s", err, tc.Error, errOut)
			}
			if tc.Stdout != nil && out != *tc.Stdout {
				t.Errorf("stdout mismatch\ngot:\n%s\nwant:\n%s", out, *tc.Stdout)
			}
			for _, want := range tc.StdoutContains {
				if !strings.Contains(out, want) {
					t.Errorf("stdout missing %q:\n%s", want, out)
				}
			}
			for _, want := range tc.StderrContains {
				if !strings.Contains(errOut, want) {
					t.Errorf("stderr missing %q:\n%s", want, errOut)
				}
			}
		})
	}
}
