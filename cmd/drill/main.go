package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = cmdInit()
	case "config":
		err = cmdConfig()
	case "provider":
		err = cmdProvider(os.Args[2:])
	case "exercise":
		err = cmdExercise(os.Args[2:])
	case "hint":
		err = cmdExercise(append([]string{"hints"}, os.Args[2:]...))
	case "run":
		err = cmdRun(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("drill %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Drill - AI Client Practice Exercises

Usage:
  drill <command> [arguments]

Setup Commands:
  init            Initialize Drill (first-time setup)
  config          Show current configuration
  provider        Manage LLM providers

Exercise Commands:
  exercise list              List available exercise packs
  exercise info <id>         Show exercise details
  exercise template <id>     Print the starter template
  exercise solution <id>     Print the reference solution
  exercise hints <id> [n]    Reveal the first n hints
  hint <id> [n]              Shorthand for exercise hints

Run Commands:
  run <pack> --dir <path>    Grade every submission in a directory

Other:
  help            Show this help message
  version         Show version information

Examples:
  drill init                          # Create ~/.drill with defaults
  drill provider set-key anthropic    # Configure the Anthropic API key
  drill exercise list                 # List exercises
  drill run ai-v1 --dir ./work        # Grade ./work against the ai-v1 pack`)
}

// newLogger builds the CLI logger; debug switches on verbose output
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
}
