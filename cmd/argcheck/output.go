package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mfridman/argcheck"
)

// plain converts coerced arguments into values every encoder understands. Dates become
// yyyy-mm-dd strings and absent values become nil.
func plain(args argcheck.Arguments) map[string]any {
	out := make(map[string]any, len(args))
	for name, v := range args {
		if d, ok := v.Date(); ok {
			out[name] = d.String()
			continue
		}
		out[name] = v.Interface()
	}
	return out
}

func writeResult(w io.Writer, format, command string, args argcheck.Arguments) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		return enc.Encode(map[string]any{"command": command, "arguments": plain(args)})
	case "yaml":
		data, err := yaml.Marshal(map[string]any{"command": command, "arguments": plain(args)})
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		var b strings.Builder
		for _, name := range slices.Sorted(maps.Keys(args)) {
			fmt.Fprintf(&b, "%s=%s\n", name, args[name])
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
}
