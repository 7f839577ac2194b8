// Command slp-tool is a client for SLP service discovery.
//
// It finds services, registers and withdraws them with a service agent or
// directory agent, discovers DAs and OLA daemons, and inspects scope lists
// and protocol event logs.
//
// Usage:
//
//	slp-tool <command> [flags]
//
// Commands:
//
//	find        Find services of a type
//	register    Register a service URL
//	deregister  Withdraw a service URL
//	das         Discover directory agents
//	browse      Browse for OLA daemons over mDNS
//	scopes      Inspect and compare scope lists
//	log         View a protocol event log
//	shell       Interactive mode
//
// Examples:
//
//	# Multicast search in the default scope
//	slp-tool find service:lighting-control
//
//	# Unicast search against a known agent
//	slp-tool find -target 192.168.1.10 -scopes east-wing service:lighting-control
//
//	# Register for two hours
//	slp-tool register -target 192.168.1.10 -lifetime 7200 \
//	    service:lighting-control://192.168.1.20:9090
//
//	# Compare scope lists
//	slp-tool scopes " Default,EAST-wing" "east-wing,annex"
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/openlighting/ola-go/cmd/slp-tool/commands"
)

const usage = `slp-tool - SLP service discovery client

Usage:
  slp-tool <command> [flags]

Commands:
  find        Find services of a type
  register    Register a service URL
  deregister  Withdraw a service URL
  das         Discover directory agents
  browse      Browse for OLA daemons over mDNS
  scopes      Inspect and compare scope lists
  log         View a protocol event log
  shell       Interactive mode

Use "slp-tool <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "find":
		err = runFind(args)
	case "register":
		err = runRegister(args)
	case "deregister":
		err = runDeregister(args)
	case "das":
		err = runDAs(args)
	case "browse":
		err = runBrowse(args)
	case "scopes":
		err = runScopes(args)
	case "log":
		err = runLog(args)
	case "shell":
		err = commands.RunShell()
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "slp-tool: %v\n", err)
		os.Exit(1)
	}
}

// endpointFlags adds the flags shared by every command that talks to an
// agent.
func endpointFlags(fs *flag.FlagSet) (scopes *string, target *string, port *int, wait *time.Duration) {
	scopes = fs.String("scopes", "", "scope list (default scope when empty)")
	target = fs.String("target", "", "agent address for unicast (multicast when empty)")
	port = fs.Int("port", 0, "agent SLP port (427 when zero)")
	wait = fs.Duration("wait", 3*time.Second, "how long to wait for replies")
	return
}

func runFind(args []string) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: slp-tool find [flags] <service-type>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	scopes, target, port, wait := endpointFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	return commands.RunFind(fs.Arg(0), *scopes, *target, *port, *wait)
}

func runRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: slp-tool register [flags] <service-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	scopes, target, port, wait := endpointFlags(fs)
	lifetime := fs.Uint("lifetime", 3600, "registration lifetime in seconds (max 65535)")
	attrs := fs.String("attrs", "", "attribute list, e.g. \"(name=Stage Left)\"")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	return commands.RunRegister(fs.Arg(0), *scopes, *attrs, *lifetime, *target, *port, *wait)
}

func runDeregister(args []string) error {
	fs := flag.NewFlagSet("deregister", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: slp-tool deregister [flags] <service-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	scopes, target, port, wait := endpointFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	return commands.RunDeregister(fs.Arg(0), *scopes, *target, *port, *wait)
}

func runDAs(args []string) error {
	fs := flag.NewFlagSet("das", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: slp-tool das [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	scopes, _, _, wait := endpointFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return commands.RunDAs(*scopes, *wait)
}

func runBrowse(args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: slp-tool browse [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	wait := fs.Duration("wait", 5*time.Second, "how long to browse")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return commands.RunBrowse(*wait)
}

func runScopes(args []string) error {
	fs := flag.NewFlagSet("scopes", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: slp-tool scopes <list> [<list>]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() == 1 {
		return commands.RunScopes(fs.Arg(0), "")
	}
	return commands.RunScopes(fs.Arg(0), fs.Arg(1))
}

func runLog(args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: slp-tool log [flags] <file.olog>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	direction := fs.String("direction", "", "filter by direction (in, out)")
	function := fs.String("function", "", "filter by function name, e.g. SrvRqst")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	return commands.RunLog(fs.Arg(0), *direction, *function)
}
