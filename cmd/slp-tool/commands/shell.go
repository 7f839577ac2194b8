package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
)

const shellHelp = `Commands:
  find <type> [scopes] [target]        Find services of a type
  register <url> <lifetime> [scopes] <target>
                                       Register a service URL
  deregister <url> [scopes] <target>   Withdraw a service URL
  das [scopes]                         Discover directory agents
  browse                               Browse for OLA daemons over mDNS
  scopes <list> [<list>]               Inspect and compare scope lists
  wait <duration>                      Set the reply timeout (e.g. 5s)
  help, ?                              Show this help
  exit, quit                           Leave the shell
`

// RunShell runs the interactive command loop.
func RunShell() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "slp> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprint(rl.Stdout(), shellHelp)

	wait := 3 * time.Second

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			fmt.Fprint(rl.Stdout(), shellHelp)

		case "find", "f":
			switch len(args) {
			case 1:
				cmdErr = RunFind(args[0], "", "", 0, wait)
			case 2:
				cmdErr = RunFind(args[0], args[1], "", 0, wait)
			case 3:
				cmdErr = RunFind(args[0], args[1], args[2], 0, wait)
			default:
				cmdErr = fmt.Errorf("usage: find <type> [scopes] [target]")
			}

		case "register", "r":
			switch len(args) {
			case 3:
				cmdErr = registerArgs(args[0], args[1], "", args[2], wait)
			case 4:
				cmdErr = registerArgs(args[0], args[1], args[2], args[3], wait)
			default:
				cmdErr = fmt.Errorf("usage: register <url> <lifetime> [scopes] <target>")
			}

		case "deregister", "d":
			switch len(args) {
			case 2:
				cmdErr = RunDeregister(args[0], "", args[1], 0, wait)
			case 3:
				cmdErr = RunDeregister(args[0], args[1], args[2], 0, wait)
			default:
				cmdErr = fmt.Errorf("usage: deregister <url> [scopes] <target>")
			}

		case "das":
			scopes := ""
			if len(args) > 0 {
				scopes = args[0]
			}
			cmdErr = RunDAs(scopes, wait)

		case "browse", "b":
			cmdErr = RunBrowse(wait)

		case "scopes", "s":
			switch len(args) {
			case 1:
				cmdErr = RunScopes(args[0], "")
			case 2:
				cmdErr = RunScopes(args[0], args[1])
			default:
				cmdErr = fmt.Errorf("usage: scopes <list> [<list>]")
			}

		case "wait":
			if len(args) != 1 {
				cmdErr = fmt.Errorf("usage: wait <duration>")
				break
			}
			d, err := time.ParseDuration(args[0])
			if err != nil || d <= 0 {
				cmdErr = fmt.Errorf("bad duration %q", args[0])
				break
			}
			wait = d
			fmt.Fprintf(rl.Stdout(), "Reply timeout set to %s\n", wait)

		case "exit", "quit", "q":
			return nil

		default:
			cmdErr = fmt.Errorf("unknown command %q (try \"help\")", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintf(rl.Stderr(), "Error: %v\n", cmdErr)
		}
	}
}

func registerArgs(url, lifetimeStr, scopes, target string, wait time.Duration) error {
	lifetime, err := strconv.ParseUint(lifetimeStr, 10, 16)
	if err != nil || lifetime == 0 {
		return fmt.Errorf("bad lifetime %q", lifetimeStr)
	}
	return RunRegister(url, scopes, "", uint(lifetime), target, 0, wait)
}
