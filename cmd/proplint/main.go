package main

import (
	"fmt"
	"os"
	"strings"
)

const version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		// No subcommand: lint the working directory
		return runLint(args)
	}

	switch args[0] {
	case "lint":
		return runLint(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "--version", "-v":
		fmt.Println("proplint", version)
		return 0
	case "--help", "-h", "help":
		printUsage()
		return 0
	default:
		// A flag or a path rather than a subcommand
		if strings.HasPrefix(args[0], "-") || looksLikePath(args[0]) {
			return runLint(args)
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		return 1
	}
}

func looksLikePath(arg string) bool {
	if strings.ContainsAny(arg, "/.\\") {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

func printUsage() {
	fmt.Println("proplint - checks Vue component prop declarations")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  proplint [flags] [paths...]         Lint files (default)")
	fmt.Println("  proplint lint [flags] [paths...]    Lint files")
	fmt.Println("  proplint watch [flags] [paths...]   Lint now and again on every change")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Lint Flags:")
	fmt.Println("  --config <path>        Path to proplint.config.json or .yaml")
	fmt.Println("  --format text|json     Output format (default: text)")
	fmt.Println("  --color auto|always|never")
	fmt.Println("  --estree               Inputs are ESTree JSON documents")
	fmt.Println("  --strict               Report warnings as errors")
	fmt.Println("  --quiet                Report errors only")
	fmt.Println("  --jobs <n>             Files checked in parallel (default: CPUs)")
	fmt.Println("  --cache                Reuse results for unchanged files")
	fmt.Println("  --cache-location <p>   Cache file (default: .proplintcache)")
	fmt.Println()
	fmt.Println("Rules:")
	fmt.Println("  require-prop-types          every prop declares a type")
	fmt.Println("  require-valid-default-prop  defaults match the declared type")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  proplint")
	fmt.Println("  proplint src/components")
	fmt.Println("  proplint --format json src > report.json")
	fmt.Println("  proplint watch --config proplint.config.yaml src")
	fmt.Println()
}
