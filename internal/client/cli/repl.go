package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/BuiltByShivam/smart-inventory/internal/printer"
)

// execIface is the command surface the REPL needs. The real App satisfies
// it; tests can provide a lightweight stub.
type execIface interface {
	prompt() string
	exec(ctx context.Context, name string, args []string) error
}

// runREPL reads command lines from r until EOF, "exit" or "quit", or ctx
// cancellation. Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, r *bufio.Reader, out *printer.Printer) {
	for {
		if ctx.Err() != nil {
			return
		}
		_, _ = io.WriteString(out.Writer(), a.prompt())
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			out.Info("")
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := strings.ToLower(parts[0])
		if cmd == "exit" || cmd == "quit" {
			out.Info("Bye!")
			return
		}
		if err := a.exec(ctx, cmd, parts[1:]); err != nil {
			out.Error(describe(err))
		}
	}
}
