// Command jal runs JAL source files: run <file.jal> [--debug|-d] [--output|-o].
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jal/checker"
	"jal/config"
	"jal/evaluator"
	"jal/lexer"
	"jal/parser"
)

type commandFunc func(args []string) int

type commandInfo struct {
	description string
	fn          commandFunc
}

var commands map[string]commandInfo

func init() {
	commands = map[string]commandInfo{
		"run": {
			description: "run <file.jal> [--debug|-d] [--output|-o] — execute a JAL source file",
			fn:          runCommand,
		},
		"help": {
			description: "print the command catalog",
			fn:          helpCommand,
		},
	}
}

func helpCommand(args []string) int {
	fmt.Println("Supported commands:")
	for name, cmd := range commands {
		fmt.Printf("  %-6s %s\n", name, cmd.description)
	}
	return 0
}

type runOptions struct {
	file   string
	debug  bool
	output bool
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for _, a := range args {
		switch a {
		case "--debug", "-d":
			opts.debug = true
		case "--output", "-o":
			opts.output = true
		default:
			if opts.file != "" {
				return opts, fmt.Errorf("unexpected argument %q", a)
			}
			opts.file = a
		}
	}
	if opts.file == "" {
		return opts, fmt.Errorf("provide a .jal file to run")
	}
	return opts, nil
}

func runCommand(args []string) int {
	opts, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}

	cwd, _ := os.Getwd()
	cfg, err := config.FindAndLoad(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: loading jal.toml:", err)
		return 1
	}
	debug := opts.debug || cfg.Run.Debug

	content, err := os.ReadFile(opts.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}

	l := lexer.New(opts.file, string(content))
	tokens := l.Tokenize()

	if debug {
		dumpJSON(cfg.Run.OutputDir, "token.json", tokens)
	}

	p := parser.New(tokens, filepath.Base(opts.file))
	program, err := p.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if debug {
		dumpJSON(cfg.Run.OutputDir, "AST.json", program.String())
	}

	c := checker.New()
	errs := c.Check(program)
	if debug {
		dumpJSON(cfg.Run.OutputDir, "walker.json", errs)
	}
	if len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintln(os.Stderr, msg)
		}
		return 1
	}

	ev := evaluator.New()
	ev.SetMaxCallDepth(cfg.Run.MaxCallDepth)
	runErr := ev.Run(program)

	if debug || opts.output {
		status := "ok"
		if runErr != nil {
			status = runErr.Error()
		}
		dumpJSON(cfg.Run.OutputDir, "EXE.json", map[string]string{"status": status})
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	return 0
}

func dumpJSON(dir, name string, v any) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: creating output dir:", err)
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: encoding", name, err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: writing", name, err)
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "ERROR: provide a command, e.g. run <file.jal>")
		os.Exit(1)
	}
	name := os.Args[1]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "ERROR: unknown command %q, try 'help'\n", name)
		os.Exit(1)
	}
	os.Exit(cmd.fn(os.Args[2:]))
}
