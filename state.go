package argcheck

import (
	"io"
	"log/slog"
)

// Arguments maps parameter names to their coerced values. Every parameter of the parsed command
// has an entry; omitted optional flags are bound to [Absent] or their default.
type Arguments map[string]Value

// Get retrieves a value by name, with type inference. Example usage:
//
//	left, ok := argcheck.Get[int64](args, "left")
//	right, ok := argcheck.Get[float64](args, "right")
//	when, ok := argcheck.Get[argcheck.CalendarDate](args, "date")
//
// Integers are int64, decimals float64, strings and enumerated values string, bare flags bool.
// The second result is false when the name is unknown, the value is absent, or T does not match
// the stored type.
func Get[T any](args Arguments, name string) (T, bool) {
	var zero T
	v, ok := args[name]
	if !ok {
		return zero, false
	}
	t, ok := v.Interface().(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// State is handed to [Command.Exec] after a successful parse.
type State struct {
	// Command is the command that was parsed.
	Command *Command

	// Args contains the coerced arguments.
	Args Arguments

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger is the parser's logger.
	Logger *slog.Logger
}
