// Package main provides the Lumen CLI.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	lumen "github.com/lumenlang/golumen"
	"github.com/lumenlang/golumen/model"
	"github.com/lumenlang/golumen/store"
)

var (
	version = "dev"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "run":
		runCmd(args)
	case "validate":
		validateCmd(args)
	case "repl":
		replCmd(args)
	case "models":
		modelsCmd(args)
	case "version":
		fmt.Printf("golumen %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Lumen - AI scripting language

Usage:
  golumen <command> [options]

Commands:
  run       Run a .lum script
  validate  Check a .lum script for syntax errors
  repl      Interactive statement-by-statement session
  models    List configured models
  version   Print version information
  help      Show this help message

Examples:
  golumen run analyze.lum --config lumen.yaml
  golumen validate analyze.lum
  golumen repl --config lumen.yaml

Run 'golumen <command> --help' for more information on a command.`)
}

// buildEngine loads the model config and wires an engine, optionally
// backed by a SQLite state database.
func buildEngine(configPath, dbPath string, timeout time.Duration) (*lumen.Engine, func(), error) {
	var registry *model.Registry
	opts := []lumen.Option{}

	if configPath != "" {
		cfg, err := model.LoadConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		registry = cfg.Registry()
		if timeout == 0 && cfg.CompleteTimeout != "" {
			if d, err := time.ParseDuration(cfg.CompleteTimeout); err == nil {
				timeout = d
			}
		}
	} else {
		registry = model.NewRegistry(model.NewOllama(), model.NewAnthropic())
	}

	if timeout > 0 {
		opts = append(opts, lumen.WithCompleteTimeout(timeout))
	}

	cleanup := func() {}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open state db: %w", err)
		}
		opts = append(opts, lumen.WithRecorder(st))
		engine := lumen.New(registry, opts...)
		if err := st.Seed(engine); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("restore state: %w", err)
		}
		return engine, func() { st.Close() }, nil
	}

	return lumen.New(registry, opts...), cleanup, nil
}

// runCmd executes a .lum script.
func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Model configuration file (lumen.yaml)")
	dbPath := fs.String("db", "", "SQLite database for persistent state")
	timeout := fs.Duration("timeout", 0, "Per-completion timeout (overrides config)")
	output := fs.String("output", "", "Output format: json or text (default)")

	fs.Usage = func() {
		fmt.Println(`Usage: golumen run <script.lum> [options]

Run a Lumen script.

Options:`)
		fs.PrintDefaults()
		fmt.Println(`
Examples:
  golumen run analyze.lum --config lumen.yaml
  golumen run analyze.lum --db state.db --timeout 90s`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: no script file specified")
		fs.Usage()
		os.Exit(1)
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}

	engine, cleanup, err := buildEngine(*configPath, *dbPath, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	result := engine.Execute(context.Background(), string(source))

	if *output == "json" {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		printResult(result)
	}

	if result.Status != lumen.ProgramSuccess {
		os.Exit(1)
	}
}

func printResult(result *lumen.ProgramResult) {
	switch result.Status {
	case lumen.ProgramParseError:
		fmt.Fprintln(os.Stderr, "Syntax errors:")
		for _, e := range result.ParseErrors {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
	case lumen.ProgramExecutionError:
		fmt.Fprintf(os.Stderr, "Execution failed: %s\n", result.Error)
	default:
		for _, r := range result.Results {
			marker := "ok"
			if r.Status == lumen.StatusError {
				marker = "error"
			} else if r.Status == lumen.StatusInfo {
				marker = "info"
			}
			fmt.Printf("[%-5s] %-10s %s\n", marker, r.Kind, r.Message)
			if r.Response != "" {
				fmt.Printf("        %s\n", strings.ReplaceAll(r.Response, "\n", "\n        "))
			}
		}
	}
}

// validateCmd checks a script for syntax errors without executing it.
func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Println(`Usage: golumen validate <script.lum>

Check a Lumen script for syntax errors without executing it.`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: no script file specified")
		fs.Usage()
		os.Exit(1)
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}

	engine := lumen.New(model.NewRegistry())
	res := engine.Validate(string(source))
	if !res.Valid {
		fmt.Fprintf(os.Stderr, "%s is invalid:\n", fs.Arg(0))
		for _, msg := range res.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
		os.Exit(1)
	}

	fmt.Printf("%s is valid (%d statements)\n", fs.Arg(0), len(res.Program.Statements))
}

// replCmd runs statements interactively against one persistent context.
func replCmd(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	configPath := fs.String("config", "", "Model configuration file (lumen.yaml)")
	dbPath := fs.String("db", "", "SQLite database for persistent state")
	timeout := fs.Duration("timeout", 0, "Per-completion timeout (overrides config)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	engine, cleanup, err := buildEngine(*configPath, *dbPath, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	fmt.Printf("Lumen %s REPL. Type a statement, or .help for commands.\n", version)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case ".exit", ".quit":
			return
		case ".clear":
			engine.ClearContext()
			fmt.Println("context cleared")
			continue
		case ".context":
			data, _ := json.MarshalIndent(engine.Context(), "", "  ")
			fmt.Println(string(data))
			continue
		case ".models":
			for _, d := range engine.Registry().List() {
				fmt.Printf("  %-30s %-10s local=%v\n", d.Name, d.Provider, d.Local)
			}
			continue
		case ".help":
			fmt.Println(".exit .clear .context .models .help")
			continue
		}

		result := engine.Execute(context.Background(), line)
		printResult(result)
	}
}

// modelsCmd lists the models a config declares.
func modelsCmd(args []string) {
	fs := flag.NewFlagSet("models", flag.ExitOnError)
	configPath := fs.String("config", "", "Model configuration file (lumen.yaml)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	engine, cleanup, err := buildEngine(*configPath, "", 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	for _, d := range engine.Registry().List() {
		fmt.Printf("%-30s %-10s local=%-5v context=%d\n", d.Name, d.Provider, d.Local, d.ContextWindow)
	}
}
