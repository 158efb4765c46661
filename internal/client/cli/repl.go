package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Root runs the interactive shell until EOF or exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Community portal CLI (type 'help' for commands)")
	a.runREPL(ctx)
}

func (a *App) prompt(ctx context.Context) string {
	p, err := a.authService.WhoAmI(ctx)
	if err != nil {
		return "portal> "
	}
	return fmt.Sprintf("portal (%s)> ", p.UserName)
}

// runREPL reads commands line by line from a.reader and dispatches them.
// Prompts inside a command read from the same reader, so they consume the
// lines that follow the command. Command errors are printed and do not end
// the loop.
func (a *App) runREPL(ctx context.Context) {
	for {
		fmt.Fprint(a.out, a.prompt(ctx))

		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(a.out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		}

		if err := a.dispatch(ctx, parts); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			a.printError(err)
		}
	}
}
