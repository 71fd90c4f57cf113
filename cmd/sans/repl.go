package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"sanskrit-lang/impl/internal/evaluator"
	"sanskrit-lang/impl/internal/lexer"
)

const (
	banner     = "संस्कृत भाषा  (:निकास से बाहर निकलें)"
	promptMain = "संस्कृत> "
	promptCont = "......> "
)

func repl(configPath string, stdout, stderr io.Writer) error {
	cfg, logger, err := setup(configPath, stderr)
	if err != nil {
		return err
	}
	ev := evaluator.New(stdout, options(cfg, logger, stderr)...)
	fmt.Fprintln(stdout, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				logger.Warn("history not saved", "path", cfg.HistoryFile, "err", err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		code, ok := readBalanced(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return nil
		}
		switch strings.TrimSpace(code) {
		case "":
			continue
		case ":निकास", ":quit":
			return nil
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		// Errors are already written by the interpreter.
		_ = ev.Execute(code)
	}
}

// readBalanced keeps prompting until every opened brace is closed.
func readBalanced(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openBraces(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// openBraces counts unclosed braces, ignoring any inside string literals.
func openBraces(src string) int {
	depth := 0
	for _, t := range lexer.Lex(src) {
		switch t.Type {
		case "{":
			depth++
		case "}":
			depth--
		}
	}
	return depth
}
