// Command bgapi-log is a tool for viewing and analyzing BGAPI capture files.
//
// Capture files are created by attaching a log.FileLogger to a stream
// parser, or with the "capture" command of bgapi-repl.
//
// Usage:
//
//	bgapi-log <command> [flags] <file.blog>
//
// Commands:
//
//	view     View capture in human-readable format
//	export   Export capture to JSONL
//
// Examples:
//
//	# View all events
//	bgapi-log view session.blog
//
//	# View only decoded packets
//	bgapi-log view -category packet session.blog
//
//	# View only module-to-host traffic
//	bgapi-log view -direction rx session.blog
//
//	# Export to JSONL
//	bgapi-log export session.blog > session.jsonl
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/perilib/bgapi-go/cmd/bgapi-log/commands"
	"github.com/perilib/bgapi-go/pkg/log"
)

const usage = `bgapi-log - BGAPI capture analyzer

Usage:
  bgapi-log <command> [flags] <file.blog>

Commands:
  view     View capture in human-readable format
  export   Export capture to JSONL

Use "bgapi-log <command> -help" for more information about a command.
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
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func parseFilter(direction, category, packet string) (log.Filter, error) {
	var filter log.Filter
	filter.PacketName = packet

	if direction != "" {
		d, err := commands.ParseDirectionFlag(direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}
	if category != "" {
		c, err := commands.ParseCategoryFlag(category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	return filter, nil
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bgapi-log view - View capture in human-readable format

Usage:
  bgapi-log view [flags] <file.blog>

Flags:
`)
		fs.PrintDefaults()
	}

	direction := fs.String("direction", "", "Filter by direction (rx, tx)")
	category := fs.String("category", "", "Filter by category (frame, packet, error)")
	packet := fs.String("packet", "", "Filter by exact packet name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := parseFilter(*direction, *category, *packet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bgapi-log export - Export capture to JSONL

Usage:
  bgapi-log export [flags] <file.blog>

Flags:
`)
		fs.PrintDefaults()
	}

	direction := fs.String("direction", "", "Filter by direction (rx, tx)")
	category := fs.String("category", "", "Filter by category (frame, packet, error)")
	packet := fs.String("packet", "", "Filter by exact packet name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := parseFilter(*direction, *category, *packet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
