package logging

import "context"

type commandKey struct{}

// WithCommand tags ctx with the interactive command being executed. Loggers
// add it to every entry written with that ctx as "command".
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey{}, name)
}

// CommandFrom returns the command stored by WithCommand, if any.
func CommandFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	name, ok := ctx.Value(commandKey{}).(string)
	return name, ok && name != ""
}

func withContextArgs(ctx context.Context, args []any) []any {
	if name, ok := CommandFrom(ctx); ok {
		return append(args, "command", name)
	}
	return args
}
