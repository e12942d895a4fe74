package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
)

// signedOut is the kind reported when nobody is signed in.
const signedOut = ""

type command struct {
	name  string
	usage string
	kinds []string
	run   func(ctx context.Context, args []string) error
}

func (c command) allowed(kind string) bool {
	return slices.Contains(c.kinds, kind)
}

var errQuit = errors.New("quit")

// runREPL reads commands from reader until EOF or a command returns errQuit.
// kindFn reports the signed-in account kind and decides which commands are
// offered. Command errors are printed and the loop continues.
func runREPL(ctx context.Context, cmds []command, kindFn, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	byName := make(map[string]command, len(cmds))
	for _, c := range cmds {
		byName[c.name] = c
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "sb %s> ", statusFn())

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		name, args := parts[0], parts[1:]
		kind := kindFn()

		switch name {
		case "help":
			printHelp(out, cmds, kind)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			c, ok := byName[name]
			if !ok || !c.allowed(kind) {
				fmt.Fprintln(out, "Unknown command:", name)
				break
			}
			if runErr := c.run(ctx, args); runErr != nil {
				if errors.Is(runErr, errQuit) {
					return
				}
				fmt.Fprintln(out, "error:", runErr)
			}
		}

		if err != nil {
			return
		}
	}
}

func printHelp(out io.Writer, cmds []command, kind string) {
	var lines []string
	for _, c := range cmds {
		if c.allowed(kind) {
			lines = append(lines, fmt.Sprintf("  %-14s %s", c.name, c.usage))
		}
	}
	sort.Strings(lines)
	fmt.Fprintln(out, "Available commands:")
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintf(out, "  %-14s %s\n", "exit", "leave the shell")
}
