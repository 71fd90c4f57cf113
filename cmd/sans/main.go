package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"sanskrit-lang/impl/internal/config"
	"sanskrit-lang/impl/internal/evaluator"
	"sanskrit-lang/impl/internal/langerr"
	"sanskrit-lang/impl/internal/lexer"
	"sanskrit-lang/impl/internal/parser"
)

type tokenOut struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

func printTokens(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	toks := lexer.Lex(string(data))
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range toks {
		if err := enc.Encode(tokenOut{Type: t.Type, Value: t.Lit, Line: t.Line, Col: t.Col}); err != nil {
			return err
		}
	}
	return nil
}

func printAST(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p := parser.New(lexer.Lex(string(data)))
	prog := p.ParseProgram()
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prog); err != nil {
		return err
	}
	return bw.Flush()
}

// options maps configuration onto interpreter options.
func options(cfg *config.Config, logger *slog.Logger, stderr io.Writer) []evaluator.Option {
	opts := []evaluator.Option{
		evaluator.WithErrorWriter(stderr),
		evaluator.WithLogger(logger),
		evaluator.WithParseCache(cfg.ParseCache),
	}
	if cfg.Diagnostics {
		opts = append(opts, evaluator.WithDiagnostics())
	}
	if cfg.TypeAdvice {
		opts = append(opts, evaluator.WithTypeAdvice())
	}
	if cfg.LenientArity {
		opts = append(opts, evaluator.WithLenientArity())
	}
	if cfg.SourceSnippets {
		opts = append(opts, evaluator.WithSourceSnippets())
	}
	return opts
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// setup loads configuration and builds the logger shared by run and repl.
func setup(configPath string, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(config.Locate(configPath))
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}
	return cfg, logger, nil
}

func runProgram(path, configPath string, stdout, stderr io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	cfg, logger, err := setup(configPath, stderr)
	if err != nil {
		return err
	}
	ev := evaluator.New(stdout, options(cfg, logger, stderr)...)
	return ev.Execute(string(data))
}

// errReported marks errors the interpreter has already written to stderr.
var errReported = errors.New("reported")

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [run|tokens|ast|repl] [--config file] <file>\n", filepath.Base(prog))
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := "sans"
	if len(args) > 0 {
		prog, args = args[0], args[1:]
	}
	cmd := "repl"
	if len(args) > 0 {
		switch args[0] {
		case "run", "tokens", "ast", "repl":
			cmd, args = args[0], args[1:]
		default:
			cmd = "run"
		}
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()

	var err error
	switch cmd {
	case "repl":
		err = repl(*configPath, stdout, stderr)
	default:
		if len(rest) != 1 {
			usage(stderr, prog)
			return 2
		}
		switch cmd {
		case "tokens":
			err = printTokens(stdout, rest[0])
		case "ast":
			err = printAST(stdout, rest[0])
		default:
			if err = runProgram(rest[0], *configPath, stdout, stderr); err != nil {
				if _, ok := langerr.KindOf(err); ok {
					err = errReported
				}
			}
		}
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errReported):
		return 1
	}
	fmt.Fprintln(stderr, "[त्रुटि]", err)
	return 1
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
