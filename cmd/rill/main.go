package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/rill-lang/rill/internal/config"
	"github.com/rill-lang/rill/internal/evaluator"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/parser"
)

const usage = `usage: rill [script%s]
       rill -e "expression"

With no arguments and a terminal on stdin, rill starts a REPL.`

func main() {
	args := os.Args[1:]

	switch {
	case len(args) >= 2 && args[0] == "-e":
		result, err := runSource(strings.Join(args[1:], " "), "-e", evaluator.New())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(result.Inspect())
	case len(args) == 1 && !strings.HasPrefix(args[0], "-"):
		runFile(args[0])
	case len(args) == 0:
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			repl()
			return
		}
		// Piped input: evaluate stdin as a script.
		src := new(strings.Builder)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			src.WriteString(scanner.Text())
			src.WriteByte('\n')
		}
		if _, err := runSource(src.String(), "<stdin>", evaluator.New()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, usage+"\n", config.SourceFileExt)
		os.Exit(2)
	}
}

func runFile(path string) {
	if !isSourceFile(path) {
		fmt.Fprintf(os.Stderr, "rill: %s is not a source file (expected %s)\n", path, strings.Join(config.SourceFileExtensions, " or "))
		os.Exit(2)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rill: %v\n", err)
		os.Exit(1)
	}
	if _, err := runSource(string(src), path, evaluator.New()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func runSource(src, name string, ev *evaluator.Evaluator) (evaluator.Object, error) {
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors) > 0 {
		var msgs []string
		for _, perr := range p.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", name, perr.Error()))
		}
		return nil, fmt.Errorf("%s", strings.Join(msgs, "\n"))
	}
	program.File = name
	return ev.Run(program)
}

func repl() {
	fmt.Println("rill repl — end with ctrl-d")
	ev := evaluator.New()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		result, err := runSource(line, "<repl>", ev)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf("=> %s\n", result.Inspect())
	}
}
