package argcheck

import (
	"fmt"
	"strings"

	"github.com/mfridman/argcheck/pkg/textutil"
)

// Usage returns the command's usage line. If [Command.Usage] is empty it is derived from the
// parameters, e.g. "sub [--left <double>] --right <double>".
func Usage(c *Command) string {
	if c == nil {
		return ""
	}
	if c.Usage != "" {
		return c.Usage
	}
	parts := []string{c.Name}
	for _, p := range c.Params {
		var part string
		switch {
		case p.Flag == "":
			part = placeholder(&p)
		case p.arity() == 0:
			part = p.Flag
		default:
			part = p.Flag + " " + placeholder(&p)
		}
		if p.Optional {
			part = "[" + part + "]"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func placeholder(p *Param) string {
	switch p.Kind {
	case Enum:
		return "{" + strings.Join(p.Values, "|") + "}"
	case Date:
		return "<yyyy-mm-dd>"
	case Integer, Decimal, StringLiteral, CommandName, Custom:
		if p.Flag != "" {
			return "<" + p.Kind.String() + ">"
		}
		return "<" + p.Name + ">"
	}
	return "<" + p.Name + ">"
}

// CommandHelp renders the short help, usage line and parameter list of a single command.
func CommandHelp(c *Command) string {
	var b strings.Builder

	if c.ShortHelp != "" {
		for _, line := range textutil.Wrap(c.ShortHelp, 80) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	b.WriteString("Usage:\n  ")
	b.WriteString(Usage(c))
	b.WriteString("\n")

	var params []paramInfo
	for _, p := range c.Params {
		name := p.Name
		if p.Flag != "" {
			name = p.Flag
		}
		desc := p.Help
		if desc == "" {
			desc = p.Kind.String()
		}
		if !p.Default.IsAbsent() {
			desc += fmt.Sprintf(" (default: %s)", p.Default)
		}
		params = append(params, paramInfo{name: name, usage: desc, positional: p.Flag == ""})
	}
	if len(params) == 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	maxLen := 0
	hasPositional, hasFlags := false, false
	for _, p := range params {
		maxLen = max(maxLen, len(p.name))
		if p.positional {
			hasPositional = true
		} else {
			hasFlags = true
		}
	}
	if hasPositional {
		b.WriteString("\nArguments:\n")
		writeParamSection(&b, params, maxLen, true)
	}
	if hasFlags {
		b.WriteString("\nFlags:\n")
		writeParamSection(&b, params, maxLen, false)
	}
	return strings.TrimRight(b.String(), "\n")
}

// DefaultUsage lists every command registered with the parser, sorted by name.
func DefaultUsage(p *Parser) string {
	var b strings.Builder
	b.WriteString("Available Commands:\n")

	commands := p.Commands()
	maxNameLen := 0
	for _, c := range commands {
		maxNameLen = max(maxNameLen, len(c.Name))
	}
	nameWidth := maxNameLen + 4
	wrapWidth := 80 - nameWidth

	for _, c := range commands {
		help := c.ShortHelp
		if help == "" {
			help = Usage(c)
		}
		lines := textutil.Wrap(help, wrapWidth)
		padding := strings.Repeat(" ", maxNameLen-len(c.Name)+4)
		fmt.Fprintf(&b, "  %s%s%s\n", c.Name, padding, lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(&b, "%s%s\n", indentPadding, line)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// writeParamSection writes either the positional or the flag section.
func writeParamSection(b *strings.Builder, params []paramInfo, maxLen int, positional bool) {
	nameWidth := maxLen + 4
	wrapWidth := 80 - nameWidth

	for _, p := range params {
		if p.positional != positional {
			continue
		}
		lines := textutil.Wrap(p.usage, wrapWidth)
		padding := strings.Repeat(" ", maxLen-len(p.name)+4)
		fmt.Fprintf(b, "  %s%s%s\n", p.name, padding, lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}

type paramInfo struct {
	name       string
	usage      string
	positional bool
}
