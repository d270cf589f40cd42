package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/config"
	"github.com/raymyers/cparse/pkg/driver"
	"github.com/raymyers/cparse/pkg/parser"
)

var version = "0.1.0"

// Grammar rules selectable with --entry.
const (
	entryTranslationUnit = "translation-unit"
	entryDeclaration     = "declaration"
	entryStatement       = "statement"
	entryExpression      = "expression"
	entryConstant        = "constant"
)

var entries = []string{entryTranslationUnit, entryDeclaration, entryStatement, entryExpression, entryConstant}

// Output formats selectable with --format.
const (
	formatDump = "dump"
	formatC    = "c"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
)

type options struct {
	configPath string
	noConfig   bool

	flavor         string
	cpp            string
	cppArgs        []string
	includePaths   []string
	systemIncludes []string
	defines        []string
	undefines      []string
	typenames      []string

	entry          string
	format         string
	preprocessOnly bool
	quiet          bool
	verbose        bool
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// normalizeFlags rewrites the single-dash -isystem spelling used by C
// compilers to the long flag pflag understands.
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	done := false
	for i, arg := range args {
		switch {
		case done:
			result[i] = arg
		case arg == "--":
			done = true
			result[i] = arg
		case arg == "-isystem" || strings.HasPrefix(arg, "-isystem="):
			result[i] = "-" + arg
		default:
			result[i] = arg
		}
	}
	return result
}

// normalizeName lets flags be spelled with the underscores used by the
// configuration file keys.
func normalizeName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var opts options
	rootCmd := &cobra.Command{
		Use:   "cparse [file]",
		Short: "cparse parses C11 source into an abstract syntax tree",
		Long: `cparse runs the C preprocessor on a file and parses the result as
C11 with optional GNU and Clang extensions. The tree is printed as an
indented dump or as C source. Files ending in .i are not preprocessed,
and "-" reads preprocessed source from standard input.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			err := opts.run(cmd, args[0], out, errOut)
			if err != nil {
				report(errOut, err)
			}
			return err
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.Flags()
	flags.SetNormalizeFunc(normalizeName)
	flags.StringVar(&opts.configPath, "config", "", "Read settings from this file instead of searching for "+strings.Join(config.FileNames, ", "))
	flags.BoolVar(&opts.noConfig, "no-config", false, "Do not search for a configuration file")

	flags.StringVar(&opts.flavor, "flavor", "", "Language flavor: c11, gnu11 or clang11")
	flags.StringVar(&opts.cpp, "cpp", "", "Preprocessor command")
	flags.StringArrayVar(&opts.cppArgs, "cpp-arg", nil, "Preprocessor option, replacing the defaults (repeatable)")
	flags.StringArrayVarP(&opts.includePaths, "include", "I", nil, "Add directory to include search path")
	flags.StringArrayVar(&opts.systemIncludes, "isystem", nil, "Add directory to system include search path")
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	flags.StringArrayVarP(&opts.undefines, "undefine", "U", nil, "Undefine macro")
	flags.StringArrayVarP(&opts.typenames, "typename", "t", nil, "Treat identifier as a typedef name")

	flags.StringVar(&opts.entry, "entry", entryTranslationUnit, "Grammar rule to parse: "+strings.Join(entries, ", "))
	flags.StringVar(&opts.format, "format", formatDump, "Output format: dump or c")
	flags.BoolVarP(&opts.preprocessOnly, "preprocess", "E", false, "Preprocess only, output to stdout")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Check syntax without printing the tree")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log driver activity to stderr")

	return rootCmd
}

func (o *options) run(cmd *cobra.Command, input string, out, errOut io.Writer) error {
	if o.format != formatDump && o.format != formatC {
		return fmt.Errorf("unknown format %q (want dump or c)", o.format)
	}
	if !validEntry(o.entry) {
		return fmt.Errorf("unknown entry %q (want %s)", o.entry, strings.Join(entries, ", "))
	}
	cfg, err := o.driverConfig(cmd.Flags(), input)
	if err != nil {
		return err
	}
	cfg.Logger = newLogger(errOut, o.verbose)
	defer func() { _ = cfg.Logger.Sync() }()

	if o.entry != entryTranslationUnit {
		src, err := readInput(cmd.InOrStdin(), input)
		if err != nil {
			return err
		}
		root, err := parseEntry(cfg, o.entry, src)
		if err != nil {
			return err
		}
		return o.write(out, root)
	}

	var src string
	if input == "-" {
		src, err = readInput(cmd.InOrStdin(), input)
	} else {
		src, err = driver.Preprocess(cmd.Context(), cfg, input)
	}
	if err != nil {
		return err
	}
	if o.preprocessOnly {
		_, err := io.WriteString(out, src)
		return err
	}
	p, err := driver.ParsePreprocessed(cfg, src)
	if err != nil {
		return err
	}
	return o.write(out, p.Unit)
}

// driverConfig layers the platform defaults, the configuration file and
// the command line flags, in that order.
func (o *options) driverConfig(flags *pflag.FlagSet, input string) (*driver.Config, error) {
	cfg := config.Default()

	path := o.configPath
	if path == "" && !o.noConfig {
		dir := "."
		if input != "-" {
			dir = filepath.Dir(input)
		}
		found, err := config.Find(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if flags.Changed("flavor") {
		flavor, err := driver.ParseFlavor(o.flavor)
		if err != nil {
			return nil, err
		}
		cfg.Flavor = flavor
	}
	if flags.Changed("cpp") {
		cfg.CPPCommand = o.cpp
	}
	if flags.Changed("cpp-arg") {
		cfg.CPPOptions = o.cppArgs
	}
	cfg.IncludePaths = append(cfg.IncludePaths, o.includePaths...)
	cfg.SystemIncludes = append(cfg.SystemIncludes, o.systemIncludes...)
	cfg.Defines = append(cfg.Defines, o.defines...)
	cfg.Undefines = append(cfg.Undefines, o.undefines...)
	cfg.Typenames = append(cfg.Typenames, o.typenames...)
	return cfg, nil
}

func validEntry(name string) bool {
	for _, e := range entries {
		if e == name {
			return true
		}
	}
	return false
}

// parseEntry parses src with a single grammar rule. No preprocessing is
// done.
func parseEntry(cfg *driver.Config, entry, src string) (any, error) {
	names := cabs.StringInterner{}
	e := driver.NewEnv[string](cfg.Flavor, names)
	for _, t := range cfg.Typenames {
		e.AddTypename(t)
	}
	switch entry {
	case entryDeclaration:
		return parser.Declaration(src, e)
	case entryStatement:
		return parser.Statement(src, e)
	case entryExpression:
		return parser.Expression(src, e)
	case entryConstant:
		c, err := parser.Constant(src, e)
		if err != nil {
			return nil, err
		}
		// every constant is also an expression
		return cabs.Node[cabs.Expression]{Value: c.Value.(cabs.Expression), Span: c.Span}, nil
	}
	return parser.TranslationUnit(src, e)
}

func (o *options) write(out io.Writer, root any) error {
	if o.quiet {
		return nil
	}
	names := cabs.StringInterner{}
	if o.format == formatC {
		cabs.Fprint[string](out, names, root)
		if _, ok := root.(cabs.Node[cabs.Expression]); ok {
			fmt.Fprintln(out)
		}
		return nil
	}
	cabs.Fdump[string](out, names, root)
	return nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel))
}

// report prints err to w. Syntax errors from a file are followed by
// their location in the original sources.
func report(w io.Writer, err error) {
	r := lipgloss.NewRenderer(w)
	prefix := r.NewStyle().Foreground(colorError).Bold(true).Render("cparse:")
	detail := r.NewStyle().Foreground(colorMuted)

	var serr *driver.SyntaxError
	var perr *parser.SyntaxError
	switch {
	case errors.As(err, &serr):
		lines := strings.Split(serr.Report(), "\n")
		fmt.Fprintln(w, prefix, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintln(w, detail.Render(line))
		}
	case errors.As(err, &perr):
		fmt.Fprintln(w, prefix, "syntax error:", perr)
	default:
		fmt.Fprintln(w, prefix, err)
	}
}
