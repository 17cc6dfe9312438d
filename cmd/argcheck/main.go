// Command argcheck parses one command line, or one per stdin line, against the builtin argument
// shapes plus any loaded from HCL schema files, and prints the coerced arguments.
//
//	argcheck "sub --left 1.5 --right 2.0"
//	argcheck -format json -- sub --right 2.0
//	printf 'add 1 2\ndate 2024-02-29\n' | argcheck -stdin -format yaml
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mfridman/xflag"

	"github.com/mfridman/argcheck"
	"github.com/mfridman/argcheck/internal/ctxlog"
	"github.com/mfridman/argcheck/pkg/hclschema"
)

// exitError carries a process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	os.Exit(1)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Everything after "--" belongs to the parsed command line, never to argcheck itself.
	var rest []string
	for i, arg := range args {
		if arg == "--" {
			args, rest = args[:i], args[i+1:]
			break
		}
	}

	var (
		configPath string
		schemas    []string
		readStdin  bool
		list       bool
		overrides  = make(map[string]string)
	)
	fs := flag.NewFlagSet("argcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "path to a TOML config file")
	fs.Func("schema", "HCL schema file with extra commands (repeatable)", func(s string) error {
		schemas = append(schemas, s)
		return nil
	})
	for _, name := range []string{"format", "log-level", "log-format"} {
		fs.Func(name, name+" override", func(s string) error {
			overrides[name] = s
			return nil
		})
	}
	fs.BoolVar(&readStdin, "stdin", false, "parse one command line per stdin line")
	fs.BoolVar(&list, "list", false, "list available commands and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage:\n  argcheck [flags] <command line>\n  argcheck [flags] -- <command> [args...]\n\nFlags:")
		fs.PrintDefaults()
	}
	if err := xflag.ParseToEnd(fs, args); err != nil {
		return &exitError{code: 2, err: err}
	}

	cfg := defaultConfig()
	if configPath != "" {
		if err := loadConfig(configPath, &cfg); err != nil {
			return &exitError{code: 2, err: err}
		}
	}
	cfg.Schemas = append(cfg.Schemas, schemas...)
	if v, ok := overrides["format"]; ok {
		cfg.Format = v
	}
	if v, ok := overrides["log-level"]; ok {
		cfg.LogLevel = v
	}
	if v, ok := overrides["log-format"]; ok {
		cfg.LogFormat = v
	}
	if err := cfg.validate(); err != nil {
		return &exitError{code: 2, err: err}
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	opts := []argcheck.Option{argcheck.WithLogger(logger)}
	if cfg.Suggestions != nil {
		opts = append(opts, argcheck.WithSuggestions(*cfg.Suggestions))
	}
	parser := argcheck.NewDefault(opts...)
	if len(cfg.Schemas) > 0 {
		cmds, err := hclschema.LoadFiles(ctx, cfg.Schemas...)
		if err != nil {
			return &exitError{code: 2, err: err}
		}
		if err := parser.Register(cmds...); err != nil {
			return &exitError{code: 2, err: err}
		}
	}

	if list {
		_, err := fmt.Fprintln(stdout, argcheck.DefaultUsage(parser))
		return err
	}

	positional := append(fs.Args(), rest...)
	if readStdin {
		if len(positional) > 0 {
			return &exitError{code: 2, err: errors.New("-stdin does not take a command line argument")}
		}
		return parseLines(ctx, parser, cfg.Format, stdin, stdout)
	}
	switch len(positional) {
	case 0:
		fs.Usage()
		return &exitError{code: 2, err: errors.New("no command line provided")}
	case 1:
		// A single argument is a whole command line and goes through the tokenizer.
		name, tokens := argcheck.Tokenize(positional[0])
		return parseOne(parser, cfg.Format, name, tokens, stdout)
	default:
		// Already split by the shell.
		return parseOne(parser, cfg.Format, positional[0], positional[1:], stdout)
	}
}

func parseOne(parser *argcheck.Parser, format, name string, tokens []string, stdout io.Writer) error {
	parsed, err := parser.ParseArgs(name, tokens)
	if err != nil {
		return explain(parser, name, err)
	}
	return writeResult(stdout, format, name, parsed)
}

// explain appends the command help to structural errors so the expected shape is visible.
func explain(parser *argcheck.Parser, name string, err error) error {
	if argcheck.CodeOf(err) == argcheck.ErrStructuralMismatch {
		if cmd, ok := parser.Lookup(name); ok {
			return fmt.Errorf("%w\n\n%s", err, argcheck.CommandHelp(cmd))
		}
	}
	return err
}

// parseLines parses every non-empty stdin line independently. Failures are reported and the
// remaining lines are still parsed.
func parseLines(ctx context.Context, parser *argcheck.Parser, format string, stdin io.Reader, stdout io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	scanner := bufio.NewScanner(stdin)
	var (
		lineNo, failed int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parsed, err := parser.Parse(line)
		if err != nil {
			failed++
			logger.Error("failed to parse line", "line", lineNo, "error", err)
			continue
		}
		name, _ := argcheck.Tokenize(line)
		if err := writeResult(stdout, format, name, parsed); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if failed > 0 {
		return &exitError{code: 1, err: fmt.Errorf("%d of %d lines failed to parse", failed, lineNo)}
	}
	return nil
}
