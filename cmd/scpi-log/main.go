// Command scpi-log is a tool for viewing and analyzing instrument
// protocol log files.
//
// Log files are created by scpi-voltmeter with the -log-file flag.
//
// Usage:
//
//	scpi-log <command> [flags] <file.cbor>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON Lines
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	scpi-log view meter.cbor
//
//	# View only dispatch-layer events
//	scpi-log view -layer dispatch meter.cbor
//
//	# View only errors
//	scpi-log view -category error meter.cbor
//
//	# Export to JSONL
//	scpi-log export meter.cbor
//
//	# Show statistics
//	scpi-log stats meter.cbor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/scpi-protocol/scpi-go/cmd/scpi-log/commands"
)

const usage = `scpi-log - Instrument Protocol Log Analyzer

Usage:
  scpi-log <command> [flags] <file.cbor>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON Lines
  stats    Show statistics about the log file

Use "scpi-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	layer := fs.String("layer", "", "Filter by layer (transport, dispatch, device)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, state, error)")
	connID := fs.String("conn-id", "", "Filter by connection ID")
	_ = fs.Parse(args)

	path := requirePath(fs)
	filter, err := commands.BuildFilter(*connID, *direction, *layer, *category)
	if err != nil {
		fatal(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	path := requirePath(fs)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := commands.RunExport(path, nil, w); err != nil {
		fatal(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	_ = fs.Parse(args)

	path := requirePath(fs)
	if err := commands.RunStats(path, os.Stdout); err != nil {
		fatal(err)
	}
}

func requirePath(fs *flag.FlagSet) string {
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one log file expected")
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
